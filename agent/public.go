package agent

import (
	"bytes"
	"context"
	"fmt"

	"github.com/kobedemuelenaere/InvestoApp"
	"github.com/kobedemuelenaere/InvestoApp/date"
	"github.com/kobedemuelenaere/InvestoApp/docs"
	"github.com/kobedemuelenaere/InvestoApp/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

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
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand his portfolio: what he holds, what it is
			worth, how it evolved, and what he paid for it.

			Devise a plan of questions to ask each expert and come up with the best response
			to the user's request.

			The user will assume that you know his holdings; check the portfolio first to
			understand what they are.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst is the market news expert, grounded by search.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert market analyst,
		very well aware of financial products and institutions,
		and of the latest news about the different funds or companies.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert market analyst. You can search and find anything related to
			financial institutions, companies, markets, funds etc. You leverage Google Search
			to ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewBookkeeper is the expert over the user's own books: valuation, history
// and orders, all computed from the loaded accounting state.
func NewBookkeeper(a *investo.Accounting) *Expert {
	lib := []Function{
		newSummaryFunc(a),
		newHistoryFunc(a),
		newOrdersFunc(a),
		newMappingsFunc(a),
	}

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. He keeps the user's portfolio books:
		the holdings, their market value on any date, the value history and the
		past orders. Ask the Bookkeeper for any figure about the user's own wealth.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the bookkeeper of the user's investment portfolio.
				You know how to use the Tools to extract relevant information about the
				user's holdings and wealth. You are part of a team of experts; yours is
				everything recorded in the user's own books. Pardon their approximative
				language and figure out what they meant.

				A value reported as "n/a" is a market data gap: report it as unknown,
				never as zero.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// respond wraps a rendered markdown document, or the error, into a function
// response.
func respond(id, name, output string, err error) *genai.FunctionResponse {
	resp := &genai.FunctionResponse{ID: id, Name: name}
	if err != nil {
		resp.Response = map[string]any{"error": err.Error()}
		return resp
	}
	resp.Response = map[string]any{"output": output}
	return resp
}

var dateSchema = &genai.Schema{
	Type: genai.TypeString,
	Description: `A date in YYYY-MM-DD form. Today is the default.

	` + must(docs.GetTopic("dates")),
}

func newSummaryFunc(a *investo.Accounting) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Summary",
			Description: `Summary values the portfolio on a given date: the cash, the
			deposited amount, every holding with its market value, and the total.`,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{"date": dateSchema},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown document with the full valuation on that date.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			on, err := parseDate(args, "date")
			if err != nil {
				return respond(id, "Summary", "", err)
			}
			return respond(id, "Summary", renderer.SummaryMarkdown(a.Valuation(on)), nil)
		},
	}
}

func newHistoryFunc(a *investo.Accounting) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "History",
			Description: `History values the portfolio on every grid date of a range and
			reports the value evolution with point-over-point returns.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"from":   dateSchema,
					"to":     dateSchema,
					"period": {Type: genai.TypeString, Description: "Grid period: day, week, month, quarter or year. Month is the default."},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the portfolio value per grid date.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			from, err := parseDate(args, "from")
			if err != nil {
				return respond(id, "History", "", err)
			}
			to, err := parseDate(args, "to")
			if err != nil {
				return respond(id, "History", "", err)
			}
			if inception := a.Ledger.OldestDate(); args["from"] == nil && !inception.IsZero() {
				from = inception
			}
			period := date.Monthly
			if p, ok := args["period"].(string); ok && p != "" {
				period, err = date.ParsePeriod(p)
				if err != nil {
					return respond(id, "History", "", err)
				}
			}
			h, err := investo.BuildHistory(a, date.Range{From: from, To: to}, period)
			if err != nil {
				return respond(id, "History", "", err)
			}
			return respond(id, "History", renderer.HistoryMarkdown(h), nil)
		},
	}
}

func newOrdersFunc(a *investo.Accounting) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Orders",
			Description: `Orders lists every past broker order with its shares, execution
			price, settled amount, fees and taxes.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of all past orders.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			return respond(id, "Orders", renderer.OrdersMarkdown(investo.Orders(a.Ledger, a.Tickers)), nil)
		},
	}
}

func newMappingsFunc(a *investo.Accounting) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Declarations",
			Description: `Declarations lists all instruments in this portfolio with the
			ISIN, the usual name, and the ticker quoting it at the market data source.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of all known instruments and their mappings.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			return respond(id, "Declarations", renderer.TickersMarkdown(a.Tickers), nil)
		},
	}
}

func parseDate(args map[string]any, key string) (date.Date, error) {
	ivalue, has := args[key]
	if !has {
		return date.Today(), nil
	}
	svalue, ok := ivalue.(string)
	if !ok {
		return date.Today(), fmt.Errorf("argument %q is not a string as expected but %T", key, ivalue)
	}
	d, err := date.Parse(svalue)
	if err != nil {
		var b bytes.Buffer
		fmt.Fprintf(&b, "argument %q must be a valid date, got %q. Below is the doc about the date format\n\n%s",
			key, svalue, must(docs.GetTopic("dates")))
		return date.Today(), fmt.Errorf("%s", b.String())
	}
	return d, nil
}
