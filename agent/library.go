package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Library resolves one function call into its response. It never fails
// the exchange: errors travel inside the response where the model reads
// them and recovers on its own.
type Library func(context.Context, *genai.FunctionCall) *genai.FunctionResponse

// Function is anything an expert can call: a declaration the model reads,
// and the call resolving it. Experts implement it themselves, so a
// facilitator's library is simply its experts.
type Function interface {
	Declaration() *genai.FunctionDeclaration
	Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

// NewLibrary dispatches calls by declared name over a set of functions.
func NewLibrary[T Function](functions []T) Library {
	return func(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
		for _, f := range functions {
			if f.Declaration().Name == call.Name {
				return f.Call(ctx, call.ID, call.Args)
			}
		}
		return respond(call.ID, call.Name, "", fmt.Errorf("unknown function %s", call.Name))
	}
}

// NewDeclaration collects the declarations of a set of functions, the
// shape a tool list wants them in.
func NewDeclaration[T Function](functions []T) []*genai.FunctionDeclaration {
	declarations := make([]*genai.FunctionDeclaration, 0, len(functions))
	for _, f := range functions {
		declarations = append(declarations, f.Declaration())
	}
	return declarations
}
