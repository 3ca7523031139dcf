package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statement-chat-be/internal/pkg/serverutils"
	"statement-chat-be/internal/repository/memory"
	"statement-chat-be/internal/service"
	"statement-chat-be/pkg/chatbot"
	"statement-chat-be/pkg/extractor"
	"statement-chat-be/pkg/prompt"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type stubExtractor struct {
	result extractor.Result
}

func (s stubExtractor) Extract(payload []byte) extractor.Result {
	return s.result
}

func newTestApp(t *testing.T, ext service.DocumentExtractor) *fiber.App {
	t.Helper()

	gemini := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatbot.GeminiChatResponse{
			Candidates: []*chatbot.GeminiChatCandidate{
				{Content: &chatbot.GeminiChatContent{
					Parts: []*chatbot.GeminiChatParts{{Text: "stub reply"}},
					Role:  chatbot.ChatMessageRoleModel,
				}},
			},
		})
	}))
	t.Cleanup(gemini.Close)

	llm := chatbot.NewClientWithBaseURL("test-key", "gemini-2.0-flash", gemini.URL)
	sessions := service.NewSessionManager(memory.NewSessionRepository(time.Hour), llm)
	chatService := service.NewChatService(sessions, llm, ext, prompt.NewBuilder(0), nopLogger{})

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewChatController(chatService).RegisterRoutes(api)

	return app
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/chat/v1/session", nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Data struct {
			Id string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.NotEmpty(t, body.Data.Id)
	return body.Data.Id
}

func TestCreateAndFetchSession(t *testing.T) {
	app := newTestApp(t, stubExtractor{result: extractor.Result{Ok: true, Text: "doc"}})

	id := createSession(t, app)

	req := httptest.NewRequest("GET", "/api/chat/v1/session/"+id, nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	raw, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(raw), `"document_loaded":false`)
}

func TestUnknownSessionReturns404(t *testing.T) {
	app := newTestApp(t, stubExtractor{result: extractor.Result{Ok: true, Text: "doc"}})

	req := httptest.NewRequest("GET", "/api/chat/v1/session/2f4cf837-92f3-4cf0-9219-de3cdb2f9d04", nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestProcessDocumentUpload(t *testing.T) {
	app := newTestApp(t, stubExtractor{result: extractor.Result{Ok: true, Text: "Balance: $100"}})
	id := createSession(t, app)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("pdf", "statement.pdf")
	require.NoError(t, err)
	fw.Write([]byte("%PDF-1.4 fake"))
	mw.Close()

	req := httptest.NewRequest("POST", "/api/chat/v1/session/"+id+"/document", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	raw, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(raw), `"document_chars":13`)
}

func TestProcessDocumentExtractionFailureIs422(t *testing.T) {
	app := newTestApp(t, stubExtractor{result: extractor.Result{Reason: "No text could be extracted from this PDF."}})
	id := createSession(t, app)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("pdf", "scan.pdf")
	fw.Write([]byte("scanned image pdf"))
	mw.Close()

	req := httptest.NewRequest("POST", "/api/chat/v1/session/"+id+"/document", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

	raw, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(raw), "No text could be extracted")
}

func TestProcessDocumentMissingFileIs400(t *testing.T) {
	app := newTestApp(t, stubExtractor{result: extractor.Result{Ok: true, Text: "doc"}})
	id := createSession(t, app)

	req := httptest.NewRequest("POST", "/api/chat/v1/session/"+id+"/document", nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestSendChatRoundTrip(t *testing.T) {
	app := newTestApp(t, stubExtractor{result: extractor.Result{Ok: true, Text: "doc"}})
	id := createSession(t, app)

	payload := strings.NewReader(`{"chat":"What is the balance?"}`)
	req := httptest.NewRequest("POST", "/api/chat/v1/session/"+id+"/chat", payload)
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	raw, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(raw), "stub reply")
	assert.Contains(t, string(raw), `"role":"assistant"`)
}

func TestSendChatEmptyBodyIsRejected(t *testing.T) {
	app := newTestApp(t, stubExtractor{result: extractor.Result{Ok: true, Text: "doc"}})
	id := createSession(t, app)

	payload := strings.NewReader(`{"chat":""}`)
	req := httptest.NewRequest("POST", "/api/chat/v1/session/"+id+"/chat", payload)
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestResetChatAndClearDocument(t *testing.T) {
	app := newTestApp(t, stubExtractor{result: extractor.Result{Ok: true, Text: "doc"}})
	id := createSession(t, app)

	req := httptest.NewRequest("DELETE", "/api/chat/v1/session/"+id+"/chat", nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	req = httptest.NewRequest("DELETE", "/api/chat/v1/session/"+id+"/document", nil)
	res, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
