package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

type GeminiChatParts struct {
	Text string `json:"text"`
}

type GeminiChatContent struct {
	Parts []*GeminiChatParts `json:"parts"`
	Role  string             `json:"role"`
}

type GeminiChatRequest struct {
	Contents []*GeminiChatContent `json:"contents"`
}

type GeminiChatCandidate struct {
	Content *GeminiChatContent `json:"content"`
}

type GeminiChatResponse struct {
	Candidates []*GeminiChatCandidate `json:"candidates"`
}

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"

	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

// APIError wraps whatever detail the Gemini service returned for a
// failed call: network failure, quota, malformed request.
type APIError struct {
	Detail string
}

func (e *APIError) Error() string {
	return e.Detail
}

// ChatHistory is one prior turn of a conversation.
type ChatHistory struct {
	Chat string
	Role string
}

// Conversation is an opaque handle owning the accumulated dialogue
// history for one session. Handles are replaced, never reused, when a
// session's chat is reset.
type Conversation struct {
	Id      uuid.UUID
	History []*ChatHistory
}

// Client calls the Gemini generateContent REST endpoint.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
	}
}

// NewClientWithBaseURL points the client at an alternate endpoint.
// Used by tests to talk to a local stub server.
func NewClientWithBaseURL(apiKey, model, baseURL string) *Client {
	c := NewClient(apiKey, model)
	c.baseURL = baseURL
	return c
}

func (c *Client) Model() string {
	return c.model
}

// NewConversation starts an empty dialogue against the configured model.
func (c *Client) NewConversation() *Conversation {
	return &Conversation{
		Id:      uuid.New(),
		History: make([]*ChatHistory, 0),
	}
}

// Send transmits text appended to the conversation's accumulated
// history and blocks until the service replies or errors. On success
// the user turn and the model reply are folded into the handle's
// history so later calls keep the full context; on failure the history
// is left untouched and an *APIError is returned. A single attempt, no
// retry, no backoff.
func (c *Client) Send(ctx context.Context, conv *Conversation, text string) (string, error) {
	chatContents := make([]*GeminiChatContent, 0, len(conv.History)+1)
	for _, turn := range conv.History {
		chatContents = append(chatContents, &GeminiChatContent{
			Parts: []*GeminiChatParts{{Text: turn.Chat}},
			Role:  turn.Role,
		})
	}
	chatContents = append(chatContents, &GeminiChatContent{
		Parts: []*GeminiChatParts{{Text: text}},
		Role:  ChatMessageRoleUser,
	})

	payload := GeminiChatRequest{Contents: chatContents}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", &APIError{Detail: err.Error()}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", &APIError{Detail: err.Error()}
	}

	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", &APIError{Detail: err.Error()}
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &APIError{Detail: err.Error()}
	}

	if res.StatusCode != http.StatusOK {
		return "", &APIError{Detail: fmt.Sprintf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)}
	}

	var geminiRes GeminiChatResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", &APIError{Detail: err.Error()}
	}

	if len(geminiRes.Candidates) == 0 ||
		geminiRes.Candidates[0].Content == nil ||
		len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", &APIError{Detail: "empty response from model"}
	}

	reply := geminiRes.Candidates[0].Content.Parts[0].Text

	conv.History = append(conv.History,
		&ChatHistory{Chat: text, Role: ChatMessageRoleUser},
		&ChatHistory{Chat: reply, Role: ChatMessageRoleModel},
	)

	return reply, nil
}
