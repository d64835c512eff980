package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Library serves the function calls made by a model.
type Library func(context.Context, *genai.FunctionCall) *genai.FunctionResponse

// Function is something a model can call: a desk tool or another expert.
type Function interface {
	Declaration() *genai.FunctionDeclaration
	Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

// NewLibrary returns a Library dispatching calls to functions by name.
func NewLibrary[T Function](functions []T) Library {
	byName := make(map[string]Function, len(functions))
	for _, f := range functions {
		byName[f.Declaration().Name] = f
	}
	return func(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
		f, ok := byName[call.Name]
		if !ok {
			return failure(call.ID, call.Name, fmt.Errorf("unknown function %s", call.Name))
		}
		return f.Call(ctx, call.ID, call.Args)
	}
}

// NewDeclaration returns the declarations of functions, in order.
func NewDeclaration[T Function](functions []T) []*genai.FunctionDeclaration {
	result := make([]*genai.FunctionDeclaration, 0, len(functions))
	for _, f := range functions {
		result = append(result, f.Declaration())
	}
	return result
}

func success(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"output": output}}
}

func failure(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"error": err.Error()}}
}
