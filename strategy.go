package tradedesk

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// StrategyKind selects the indicator a Strategy evaluates.
type StrategyKind int

const (
	// MovingAverageStrategy compares the latest close with the mean close of the period.
	MovingAverageStrategy StrategyKind = iota
	// RSIStrategy reads the precomputed RSI of the latest bar.
	RSIStrategy
	// MeanReversionStrategy measures the relative deviation of the latest close from the mean close.
	MeanReversionStrategy
	// MomentumStrategy compares the latest close with the close period bars back.
	MomentumStrategy
)

func (k StrategyKind) String() string {
	switch k {
	case MovingAverageStrategy:
		return "ma"
	case RSIStrategy:
		return "rsi"
	case MeanReversionStrategy:
		return "meanrev"
	case MomentumStrategy:
		return "momentum"
	default:
		return "unknown"
	}
}

// ParseStrategyKind parses a string into a StrategyKind.
func ParseStrategyKind(s string) (StrategyKind, error) {
	switch s {
	case "ma":
		return MovingAverageStrategy, nil
	case "rsi":
		return RSIStrategy, nil
	case "meanrev":
		return MeanReversionStrategy, nil
	case "momentum":
		return MomentumStrategy, nil
	default:
		return 0, fmt.Errorf("unknown strategy: %q", s)
	}
}

// StrategyKinds lists every kind, in menu order.
var StrategyKinds = []StrategyKind{MovingAverageStrategy, RSIStrategy, MeanReversionStrategy, MomentumStrategy}

// Strategy is a technical indicator turned into buy, sell or hold advice.
// Thresholds are only meaningful for the kinds that use them.
type Strategy struct {
	Kind          StrategyKind
	Period        int             // lookback in bars
	BuyThreshold  decimal.Decimal // RSI below which to buy
	SellThreshold decimal.Decimal // RSI above which to sell
	Deviation     decimal.Decimal // mean reversion band, 0.05 is 5%
}

func NewMovingAverage(period int) Strategy {
	return Strategy{Kind: MovingAverageStrategy, Period: period}
}

func NewRSI(period int, buy, sell decimal.Decimal) Strategy {
	return Strategy{Kind: RSIStrategy, Period: period, BuyThreshold: buy, SellThreshold: sell}
}

func NewMeanReversion(period int, deviation decimal.Decimal) Strategy {
	return Strategy{Kind: MeanReversionStrategy, Period: period, Deviation: deviation}
}

func NewMomentum(period int) Strategy {
	return Strategy{Kind: MomentumStrategy, Period: period}
}

// DefaultStrategy returns the desk's standard parameters for kind: a 10 day
// moving average, a 14 day RSI between 30 and 70, a 5% band around the 10
// day mean, and a 10 day momentum.
func DefaultStrategy(kind StrategyKind) Strategy {
	switch kind {
	case MovingAverageStrategy:
		return NewMovingAverage(10)
	case RSIStrategy:
		return NewRSI(14, decimal.NewFromInt(30), decimal.NewFromInt(70))
	case MeanReversionStrategy:
		return NewMeanReversion(10, decimal.RequireFromString("0.05"))
	case MomentumStrategy:
		return NewMomentum(10)
	default:
		panic(fmt.Sprintf("unsupported strategy kind %d", kind))
	}
}

// Name describes the strategy and its parameters.
func (s Strategy) Name() string {
	switch s.Kind {
	case MovingAverageStrategy:
		return fmt.Sprintf("Moving Average(%d)", s.Period)
	case RSIStrategy:
		return fmt.Sprintf("RSI(%d, %s, %s)", s.Period, s.BuyThreshold, s.SellThreshold)
	case MeanReversionStrategy:
		return fmt.Sprintf("Mean Reversion(%d, %s)", s.Period, s.Deviation)
	case MomentumStrategy:
		return fmt.Sprintf("Momentum(%d)", s.Period)
	default:
		return "Unknown"
	}
}

// Validate checks the parameters.
func (s Strategy) Validate() error {
	var errs error
	if s.Period < 1 {
		errs = errors.Join(errs, fmt.Errorf("period must be at least 1, got %d", s.Period))
	}
	switch s.Kind {
	case MovingAverageStrategy, MomentumStrategy:
	case RSIStrategy:
		if s.BuyThreshold.GreaterThan(s.SellThreshold) {
			errs = errors.Join(errs, fmt.Errorf("buy threshold %s is above sell threshold %s", s.BuyThreshold, s.SellThreshold))
		}
	case MeanReversionStrategy:
		if s.Deviation.IsNegative() {
			errs = errors.Join(errs, fmt.Errorf("deviation must not be negative, got %s", s.Deviation))
		}
	default:
		errs = errors.Join(errs, fmt.Errorf("unsupported strategy kind %d", s.Kind))
	}
	if errs != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidStrategy, s.Name(), errs)
	}
	return nil
}

// Evaluate returns the advice for symbol given its history. A series shorter
// than the period gives a HOLD signal explaining that data is missing.
func (s Strategy) Evaluate(symbol string, series Series) Signal {
	sig := Signal{Symbol: symbol, Strategy: s.Name(), Action: Hold}
	latest, ok := series.Latest()
	if !ok || len(series) < s.Period || s.Period < 1 {
		sig.Rationale = fmt.Sprintf("insufficient data: have %d bars, need %d", len(series), max(s.Period, 1))
		return sig
	}
	sig.Price = latest.Close

	switch s.Kind {
	case MovingAverageStrategy:
		s.movingAverage(&sig, series)
	case RSIStrategy:
		s.rsi(&sig, latest)
	case MeanReversionStrategy:
		s.meanReversion(&sig, series)
	case MomentumStrategy:
		s.momentum(&sig, series)
	default:
		panic(fmt.Sprintf("unsupported strategy kind %d", s.Kind))
	}
	return sig
}

func (s Strategy) movingAverage(sig *Signal, series Series) {
	avg := mean(series.Closes(s.Period))
	switch sig.Price.Cmp(avg) {
	case -1:
		sig.Action = Buy
		sig.Rationale = fmt.Sprintf("close %s is below the %d bar moving average %s", sig.Price, s.Period, round(avg))
	case 1:
		sig.Action = Sell
		sig.Rationale = fmt.Sprintf("close %s is above the %d bar moving average %s", sig.Price, s.Period, round(avg))
	default:
		sig.Rationale = fmt.Sprintf("close %s is at the %d bar moving average", sig.Price, s.Period)
	}
}

func (s Strategy) rsi(sig *Signal, latest Bar) {
	switch {
	case latest.RSI.LessThan(s.BuyThreshold):
		sig.Action = Buy
		sig.Rationale = fmt.Sprintf("RSI %s is below the buy threshold %s", latest.RSI, s.BuyThreshold)
	case latest.RSI.GreaterThan(s.SellThreshold):
		sig.Action = Sell
		sig.Rationale = fmt.Sprintf("RSI %s is above the sell threshold %s", latest.RSI, s.SellThreshold)
	default:
		sig.Rationale = fmt.Sprintf("RSI %s is within the neutral range %s-%s", latest.RSI, s.BuyThreshold, s.SellThreshold)
	}
}

func (s Strategy) meanReversion(sig *Signal, series Series) {
	avg := mean(series.Closes(s.Period))
	if avg.IsZero() {
		sig.Rationale = fmt.Sprintf("%d bar moving average is zero", s.Period)
		return
	}
	deviation := sig.Price.Sub(avg).Div(avg)
	switch {
	case deviation.LessThan(s.Deviation.Neg()):
		sig.Action = Buy
		sig.Rationale = fmt.Sprintf("close %s is %s below the %d bar moving average %s", sig.Price, NewPercent(deviation.Neg()), s.Period, round(avg))
	case deviation.GreaterThan(s.Deviation):
		sig.Action = Sell
		sig.Rationale = fmt.Sprintf("close %s is %s above the %d bar moving average %s", sig.Price, NewPercent(deviation), s.Period, round(avg))
	default:
		sig.Rationale = fmt.Sprintf("close %s is within %s of the %d bar moving average %s", sig.Price, NewPercent(s.Deviation), s.Period, round(avg))
	}
}

func (s Strategy) momentum(sig *Signal, series Series) {
	past := series[len(series)-s.Period].Close
	momentum := sig.Price.Sub(past)
	switch momentum.Sign() {
	case 1:
		sig.Action = Buy
		sig.Rationale = fmt.Sprintf("positive momentum %s over %d bars", momentum, s.Period)
	case -1:
		sig.Action = Sell
		sig.Rationale = fmt.Sprintf("negative momentum %s over %d bars", momentum, s.Period)
	default:
		sig.Rationale = fmt.Sprintf("no momentum over %d bars", s.Period)
	}
}

func mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(decimal.Zero, values...).Div(decimal.NewFromInt(int64(len(values))))
}

func round(d decimal.Decimal) string { return d.Round(4).String() }
