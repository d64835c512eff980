// Package tradedesk is the engine of a single-user equities trading desk.
//
// It loads daily price series for a fixed set of symbols, keeps a cash and
// holdings portfolio, executes market and limit orders against it and
// evaluates technical indicator strategies that give buy, sell or hold
// advice. There is no exchange: orders are filled against the latest known
// price, and signals are never acted upon automatically.
//
// The main types are:
//   - Ledger: cash and holdings, mutated only by Buy, Sell and Liquidate and
//     written through a Store after every change.
//   - Order: a market or limit buy, evaluated against a reference price.
//   - Strategy: moving average, RSI, mean reversion or momentum advice over a
//     Series of Bars.
//   - Engine: places orders on the Ledger and records every fill as an Event.
//   - Market: the series loaded by a Provider, with optional intraday quotes.
//
// The trade command in package trade is the command-line front end.
package tradedesk
