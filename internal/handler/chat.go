package handler

import (
    "encoding/json"
    "log"
    "net/http"
    "strings"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/mtpfood/restaurant-backoffice/internal/assistant"
    "github.com/mtpfood/restaurant-backoffice/internal/model"
    "github.com/mtpfood/restaurant-backoffice/internal/repository"
)

// ChatHandler answers customer questions about the menu.  Both sides of the
// exchange are stored for later review; storage failures are logged and never
// fail the request.
type ChatHandler struct {
    Assist *assistant.Assistant
    Foods  *repository.FoodRepo
    Chats  *repository.ChatRepo
}

func NewChatHandler(a *assistant.Assistant, foods *repository.FoodRepo, chats *repository.ChatRepo) *ChatHandler {
    return &ChatHandler{Assist: a, Foods: foods, Chats: chats}
}

type chatReq struct {
    Message   string `json:"message"`
    SessionID string `json:"sessionId"`
}

type chatResp struct {
    Response  string `json:"response"`
    SessionID string `json:"sessionId"`
}

// Send handles POST /api/ai/chat.
func (h *ChatHandler) Send(c echo.Context) error {
    var req chatReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Message = strings.TrimSpace(req.Message)
    if req.Message == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "message is required"})
    }
    if strings.TrimSpace(req.SessionID) == "" {
        req.SessionID = uuid.New().String()
    }

    ctx := c.Request().Context()

    foods, err := h.Foods.ListActive(ctx)
    if err != nil {
        log.Printf("chat: menu load failed: %v", err)
        foods = nil
    }
    summaries := make([]assistant.FoodSummary, 0, len(foods))
    for _, f := range foods {
        summaries = append(summaries, assistant.FoodSummary{ID: f.ID, Name: f.Name, Price: f.Price})
    }

    reply := h.Assist.Reply(ctx, req.Message, summaries)

    snapshot := ""
    if raw, err := json.Marshal(summaries); err == nil {
        snapshot = string(raw)
    }
    if err := h.Chats.Append(ctx, &model.ChatMessage{
        SessionID: req.SessionID, Role: "user", Message: req.Message, FoodSnapshot: snapshot,
    }); err != nil {
        log.Printf("chat: store user message failed: %v", err)
    }
    if err := h.Chats.Append(ctx, &model.ChatMessage{
        SessionID: req.SessionID, Role: "assistant", Message: reply,
    }); err != nil {
        log.Printf("chat: store reply failed: %v", err)
    }

    return c.JSON(http.StatusOK, chatResp{Response: reply, SessionID: req.SessionID})
}

// History returns a session's stored exchange, oldest first.  Admin only.
func (h *ChatHandler) History(c echo.Context) error {
    sessionID := c.Param("session")
    msgs, err := h.Chats.BySession(c.Request().Context(), sessionID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    type msgResp struct {
        Role    string `json:"role"`
        Message string `json:"message"`
    }
    out := make([]msgResp, 0, len(msgs))
    for _, m := range msgs {
        out = append(out, msgResp{Role: m.Role, Message: m.Message})
    }
    return c.JSON(http.StatusOK, out)
}
