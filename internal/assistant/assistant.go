// Package assistant implements the chat helper for the public site.  A
// scripted responder always produces an answer; when a Groq API key is
// configured the message is additionally sent to the model with a bounded
// timeout, and the scripted answer is used whenever the model call fails,
// times out or returns nothing.
package assistant

import (
    "context"
    "log"
    "time"
)

// FoodSummary is the menu excerpt the assistant answers against.  Price is in
// the smallest currency unit.
type FoodSummary struct {
    ID    int64  `json:"id"`
    Name  string `json:"name"`
    Price int64  `json:"price"`
}

// Responder produces a reply to a customer message given a menu excerpt.
type Responder interface {
    Respond(ctx context.Context, message string, foods []FoodSummary) (string, error)
}

// maxMenuItems caps the menu excerpt forwarded to the model.
const maxMenuItems = 10

// Assistant wraps an optional model-backed Responder behind the scripted
// fallback.  Reply never fails: the fallback answer is always available.
type Assistant struct {
    client  Responder // nil when no model is configured
    timeout time.Duration
}

// New builds an Assistant.  Pass a nil client to run fallback-only.
func New(client Responder, timeout time.Duration) *Assistant {
    if timeout <= 0 {
        timeout = 10 * time.Second
    }
    return &Assistant{client: client, timeout: timeout}
}

// Reply answers a customer message.  The model call, when configured, runs
// under a hard timeout; any failure falls back to the scripted responder.
func (a *Assistant) Reply(ctx context.Context, message string, foods []FoodSummary) string {
    if len(foods) > maxMenuItems {
        foods = foods[:maxMenuItems]
    }
    fallback := Fallback(message, foods)
    if a.client == nil {
        return fallback
    }
    ctx, cancel := context.WithTimeout(ctx, a.timeout)
    defer cancel()
    answer, err := a.client.Respond(ctx, message, foods)
    if err != nil || answer == "" {
        if err != nil {
            log.Printf("assistant: model call failed, using fallback: %v", err)
        }
        return fallback
    }
    return answer
}
