// Package assistant is the boundary to the LLM collaborator: it shapes
// the rendered game context and a user question into a chat prompt and
// hands it to whatever Responder the composition root provides.
package assistant

import (
	"context"
	"fmt"

	"dota-gsi-assistant/internal/formatting"
	"dota-gsi-assistant/internal/gamestate"
)

// Message is one chat message in a prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Responder answers a built prompt. The actual LLM client lives
// outside this module.
type Responder interface {
	Respond(ctx context.Context, messages []Message) (string, error)
}

// StateReader is the read-only slice of the state store Ask needs.
type StateReader interface {
	GetState(ctx context.Context) (gamestate.GameState, error)
}

// BuildPrompt embeds the game context in the system message and the
// player's question as the user message.
func BuildPrompt(userQuery, contextText string) []Message {
	return []Message{
		{
			Role: "system",
			Content: "You are an expert Dota 2 assistant. " +
				"Use the following game context to help the player:\n\n" +
				contextText +
				"\n\nProvide top-tier strategic advice.",
		},
		{
			Role:    "user",
			Content: userQuery,
		},
	}
}

// Ask renders the current snapshot, builds the prompt around the
// user's question and forwards it to the responder.
func Ask(ctx context.Context, r Responder, store StateReader, userQuery string) (string, error) {
	state, err := store.GetState(ctx)
	if err != nil {
		return "", fmt.Errorf("reading game state: %w", err)
	}

	contextText, _ := formatting.Render(state)
	answer, err := r.Respond(ctx, BuildPrompt(userQuery, contextText))
	if err != nil {
		return "", fmt.Errorf("querying assistant: %w", err)
	}
	return answer, nil
}
