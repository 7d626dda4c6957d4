package repository

import (
    "context"
    "database/sql"

    "github.com/mtpfood/restaurant-backoffice/internal/model"
)

// ChatRepo appends assistant conversation lines to `chat_messages`.
type ChatRepo struct{ DB *sql.DB }

// NewChatRepo returns a ChatRepo bound to the given database.
func NewChatRepo(db *sql.DB) *ChatRepo { return &ChatRepo{DB: db} }

// Append stores one message.  Failures here are logged by callers but never
// fail the chat request itself.
func (r *ChatRepo) Append(ctx context.Context, m *model.ChatMessage) error {
    _, err := r.DB.ExecContext(ctx,
        "INSERT INTO chat_messages (session_id, role, message, food_snapshot) VALUES (?,?,?,?)",
        m.SessionID, m.Role, m.Message, m.FoodSnapshot)
    return err
}

// BySession returns a session's messages, oldest first.
func (r *ChatRepo) BySession(ctx context.Context, sessionID string) ([]*model.ChatMessage, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT id, session_id, role, message, food_snapshot, created_at FROM chat_messages WHERE session_id = ? ORDER BY id",
        sessionID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    msgs := make([]*model.ChatMessage, 0)
    for rows.Next() {
        var m model.ChatMessage
        var snapshot sql.NullString
        if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Message, &snapshot, &m.CreatedAt); err != nil {
            return nil, err
        }
        m.FoodSnapshot = snapshot.String
        msgs = append(msgs, &m)
    }
    return msgs, rows.Err()
}
