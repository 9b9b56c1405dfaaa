package agent

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

// Expert is one chat session with a specialized model configuration: a
// name the facilitator calls it by, the tools it may use, and an optional
// function library resolving its tool calls. The Bookkeeper and the
// Analyst are experts; so is the facilitator orchestrating them.
type Expert struct {
	Name        string
	Description string
	ModelName   string
	Config      *genai.GenerateContentConfig
	Library     Library
	chat        *genai.Chat
}

// Start opens the expert's chat session. The session keeps the history of
// everything asked, so follow-up questions stay in context.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return fmt.Errorf("cannot start expert %s: %w", e.Name, err)
	}
	e.chat = chat
	return nil
}

// Ask sends parts to the expert and returns its final answer. A function
// call in the answer is resolved through the expert's library and the
// exchange recurses until the expert answers with content instead of a
// call.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	resp, err := e.chat.Send(ctx, parts...)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty answer from expert %s", e.Name)
	}
	content := resp.Candidates[0].Content
	if call := content.Parts[0].FunctionCall; call != nil {
		if e.Library == nil {
			return nil, fmt.Errorf("expert %s made a function call but has no library", e.Name)
		}
		// The library never fails the exchange: its errors travel back to
		// the model inside the response.
		return e.Ask(ctx, &genai.Part{FunctionResponse: e.Library(ctx, call)})
	}
	return content, nil
}

// Declaration exposes the expert itself as a callable function, the form
// the facilitator's tool list expects.
func (e *Expert) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        e.Name,
		Description: e.Description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {
					Type:        genai.TypeString,
					Description: "The question to ask this expert.",
				},
			},
			Required: []string{"question"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "The expert's answer.",
		},
	}
}

// Call answers a facilitator call by asking this expert the question.
func (e *Expert) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	question, ok := args["question"].(string)
	if !ok {
		return respond(id, e.Name, "", fmt.Errorf("argument \"question\" is %T, want a string", args["question"]))
	}
	answer, err := e.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return respond(id, e.Name, "", fmt.Errorf("asking expert %s: %w", e.Name, err))
	}
	log.Printf("expert %s answered %q", e.Name, question)
	return respond(id, e.Name, answer.Parts[0].Text, nil)
}
