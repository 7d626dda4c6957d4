package model

import "time"

// ChatMessage is one line of an assistant conversation stored in
// `chat_messages`.  Role is either "user" or "assistant".  FoodSnapshot holds
// the JSON-encoded menu excerpt the message was answered against, so old
// conversations can be replayed against the menu as it was at the time.
type ChatMessage struct {
    ID           uint64    // chat_messages.id
    SessionID    string    // chat_messages.session_id
    Role         string    // chat_messages.role
    Message      string    // chat_messages.message
    FoodSnapshot string    // chat_messages.food_snapshot
    CreatedAt    time.Time // chat_messages.created_at
}
