package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/tradedesk"
	"github.com/etnz/tradedesk/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// Tool is a desk function a model can call.
type Tool struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, args map[string]any) (string, error)
}

func (t *Tool) Declaration() *genai.FunctionDeclaration { return t.Decl }

func (t *Tool) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	out, err := t.Func(ctx, args)
	if err != nil {
		return failure(id, t.Decl.Name, err)
	}
	return success(id, t.Decl.Name, out)
}

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You assist the user of a paper trading desk: a cash balance, a few equity
			holdings and daily price series for a fixed set of symbols.

			The experts listed in your tools are dedicated to you and keep the context
			of your previous questions. Devise a plan of questions to ask them, then
			answer the user's request.

			Signals computed by the desk are advisory only and nothing is traded on
			your behalf. Never pretend an order was placed.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewTrader returns an expert grounded on Google Search, for recent news.
func NewTrader() *Expert {
	return &Expert{
		Name: "Trader",
		Description: `An expert trader, aware of the latest news about listed companies
		and the markets they trade on. Ask the Trader whenever you need recent or
		grounding information about a symbol.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a trader. Answer with facts from recent news and cite your sources.
		`}}},
		},
	}
}

// NewAnalyst returns an expert that reads the desk: the portfolio, the market
// of symbols and the strategy signals.
func NewAnalyst(desk *tradedesk.Engine, symbols []string) *Expert {
	tools := DeskTools(desk, symbols)
	return &Expert{
		Name: "Analyst",
		Description: `The desk analyst knows the current portfolio, the latest prices
		and price history of the desk symbols, and can run the technical strategies
		(moving average, RSI, mean reversion, momentum) to get buy, sell or hold advice.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(tools)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are the analyst of a trading desk. Use your tools to read the desk
			state, they return markdown. Quote figures exactly as the tools give them.
		`}}},
		},
		Library: NewLibrary(tools),
	}
}

// DeskTools returns the functions reading desk.
func DeskTools(desk *tradedesk.Engine, symbols []string) []*Tool {
	return []*Tool{
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Portfolio",
				Description: "Portfolio returns the cash balance and every holding with its cost, latest price, value and gain.",
				Response:    &genai.Schema{Type: genai.TypeString, Description: "A markdown document."},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				s := desk.Ledger().Snapshot()
				prices := desk.Market().LatestPrices(desk.Ledger().Symbols()...)
				return renderer.PortfolioMarkdown(s, prices), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Market",
				Description: "Market returns the latest price of every desk symbol and its change since the previous close.",
				Response:    &genai.Schema{Type: genai.TypeString, Description: "A markdown table."},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				return renderer.MarketMarkdown(desk.Market(), symbols), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Signals",
				Description: "Signals runs a technical strategy with its default parameters over every desk symbol.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"strategy": {
							Type:        genai.TypeString,
							Description: "The strategy to run.",
							Enum:        kindNames(),
						},
					},
					Required: []string{"strategy"},
				},
				Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown table of BUY, SELL or HOLD signals with their rationale."},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				name, _ := args["strategy"].(string)
				kind, err := tradedesk.ParseStrategyKind(name)
				if err != nil {
					return "", err
				}
				s := tradedesk.DefaultStrategy(kind)
				signals, err := desk.RunStrategy(s, desk.Market().All())
				if err != nil {
					return "", err
				}
				return renderer.SignalsMarkdown(s.Name(), signals), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "History",
				Description: "History returns the most recent daily bars of a symbol.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"symbol": {Type: genai.TypeString, Description: "The symbol, for instance AAPL."},
						"bars":   {Type: genai.TypeInteger, Description: "How many bars to return, 20 by default."},
					},
					Required: []string{"symbol"},
				},
				Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown table of daily bars."},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				symbol, _ := args["symbol"].(string)
				if symbol == "" {
					return "", errors.New("symbol is missing")
				}
				n := 20
				if v, ok := args["bars"].(float64); ok && v > 0 {
					n = int(v)
				}
				series, ok := desk.Market().Series(symbol)
				if !ok {
					return "", fmt.Errorf("%s: %w", symbol, tradedesk.ErrDataUnavailable)
				}
				return renderer.HistoryMarkdown(symbol, series, n), nil
			},
		},
	}
}

func kindNames() []string {
	names := make([]string, 0, len(tradedesk.StrategyKinds))
	for _, k := range tradedesk.StrategyKinds {
		names = append(names, k.String())
	}
	return names
}
