package assistant

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
)

const groqEndpoint = "https://api.groq.com/openai/v1/chat/completions"

// GroqClient calls the Groq chat-completions API.  The zero value is not
// usable; construct it with NewGroqClient.
type GroqClient struct {
    apiKey string
    model  string
    http   *http.Client
}

// NewGroqClient returns a client for the given key and model, or nil when the
// key is empty so callers can wire it straight into assistant.New.
func NewGroqClient(apiKey, model string) *GroqClient {
    if apiKey == "" {
        return nil
    }
    return &GroqClient{
        apiKey: apiKey,
        model:  model,
        http:   &http.Client{},
    }
}

type chatMessage struct {
    Role    string `json:"role"`
    Content string `json:"content"`
}

type chatRequest struct {
    Model       string        `json:"model"`
    Messages    []chatMessage `json:"messages"`
    Temperature float64       `json:"temperature"`
    MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
    Choices []struct {
        Message struct {
            Content string `json:"content"`
        } `json:"message"`
    } `json:"choices"`
}

// Respond sends the customer message and the menu excerpt to the model.  The
// caller's context carries the deadline; the request is cancelled with it.
func (g *GroqClient) Respond(ctx context.Context, message string, foods []FoodSummary) (string, error) {
    user, err := json.Marshal(map[string]any{
        "message": message,
        "menu":    foods,
    })
    if err != nil {
        return "", err
    }
    payload := chatRequest{
        Model: g.model,
        Messages: []chatMessage{
            {Role: "system", Content: systemPrompt},
            {Role: "user", Content: string(user)},
        },
        Temperature: 0.6,
        MaxTokens:   350,
    }
    body, err := json.Marshal(payload)
    if err != nil {
        return "", err
    }

    req, err := http.NewRequestWithContext(ctx, http.MethodPost, groqEndpoint, bytes.NewReader(body))
    if err != nil {
        return "", err
    }
    req.Header.Set("Content-Type", "application/json")
    req.Header.Set("Authorization", "Bearer "+g.apiKey)

    resp, err := g.http.Do(req)
    if err != nil {
        return "", err
    }
    defer resp.Body.Close()

    raw, err := io.ReadAll(resp.Body)
    if err != nil {
        return "", err
    }
    if resp.StatusCode != http.StatusOK {
        return "", fmt.Errorf("groq api error: %s", string(raw))
    }

    var result chatResponse
    if err := json.Unmarshal(raw, &result); err != nil {
        return "", err
    }
    if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
        return "", errors.New("empty groq response")
    }
    return result.Choices[0].Message.Content, nil
}
