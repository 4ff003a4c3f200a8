package agent

import (
	"context"
	"fmt"

	"github.com/stupidvibecoder/pre-ipo/docs"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used by the analyst.
const DefaultModel = "gemini-2.5-flash"

// Analyst is a chat with a model that can read the catalog through function calls.
type Analyst struct {
	ModelName string
	Config    *genai.GenerateContentConfig
	Library   Library
	chat      *genai.Chat
}

// NewAnalyst creates an analyst over the catalog. An empty model means DefaultModel.
func NewAnalyst(model string, c *Catalog) *Analyst {
	if model == "" {
		model = DefaultModel
	}
	functions := c.Functions()
	return &Analyst{
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(functions)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an analyst of private companies before their IPO.
			You know their funding rounds: dates, post-money valuations and capital raised.
			Use the Tools to get the list of companies, their reports and their growth metrics.

			Ground every figure you give in a tool response. Answer in markdown.

			Below is the documentation of the metrics.

			` + must(docs.GetTopic("metrics"))}}},
		},
		Library: NewLibrary(functions),
	}
}

// Start creates the chat session.
func (a *Analyst) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, a.ModelName, a.Config, nil)
	if err != nil {
		return err
	}
	a.chat = chat
	return nil
}

// Ask sends a question and returns the text of the answer, after serving every function
// call the model made.
func (a *Analyst) Ask(ctx context.Context, question string) (string, error) {
	if a.chat == nil {
		return "", fmt.Errorf("analyst is not started")
	}
	content, err := a.send(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	return content.Parts[0].Text, nil
}

func (a *Analyst) send(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	resp, err := a.chat.Send(ctx, parts...)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from the model")
	}
	part0 := resp.Candidates[0].Content.Parts[0]
	if part0.FunctionCall != nil {
		// Ask again with the function response until we have a real response.
		return a.send(ctx, &genai.Part{FunctionResponse: a.Library(ctx, part0.FunctionCall)})
	}
	return resp.Candidates[0].Content, nil
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
