package routers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Nat1anWasTaken/sitcon-camp-2025/ai"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/ai/handlers"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/auth"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/prompts"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/schemas"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/stores"
)

// ChatRouter exposes the assistant conversation endpoints.
type ChatRouter struct {
	store   stores.Store
	engine  *ai.Engine
	prompts *prompts.Manager
	logger  zerolog.Logger
}

func (r *ChatRouter) Register(rg *gin.RouterGroup) {
	rg.POST("/", r.chat)
	rg.POST("/siri", r.siri)
}

// bindChatRequest validates the request body shared by both endpoints.
func bindChatRequest(c *gin.Context) (*schemas.ChatRequest, bool) {
	var req schemas.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("請求格式錯誤: %v", err)})
		return nil, false
	}
	if len(req.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "訊息不能為空"})
		return nil, false
	}
	if err := ai.ValidateImages(req.HistoryMessages); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return nil, false
	}
	if err := ai.ValidateImages(req.Messages); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return nil, false
	}
	return &req, true
}

// chat streams a plain text conversation with no tool access.
func (r *ChatRouter) chat(c *gin.Context) {
	req, ok := bindChatRequest(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("Cache-Control", "no-cache")

	ctx := c.Request.Context()
	for chunk := range r.engine.StreamChat(ctx, req.HistoryMessages, req.Messages, "") {
		if chunk.Type != "text" {
			continue
		}
		if _, err := c.Writer.WriteString(chunk.Content); err != nil {
			return
		}
		c.Writer.Flush()
	}
}

// siri streams the tool-enabled assistant conversation over SSE.
//
// Event order: connected first, then message/tool_call events as the engine
// produces them, then exactly one terminal done (or error) event. Every
// event is flushed immediately.
func (r *ChatRouter) siri(c *gin.Context) {
	req, ok := bindChatRequest(c)
	if !ok {
		return
	}
	user := auth.CurrentUser(c)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	writeSSE(c.Writer, "connected", schemas.SSEConnectedEvent{
		Status:  "connected",
		Message: "SSE 連線已建立",
	})

	contacts, err := r.store.ListContactsWithRecords(user.ID)
	if err != nil {
		r.streamError(c, err)
		return
	}
	prompt, err := r.prompts.SiriPrompt(contacts)
	if err != nil {
		r.streamError(c, err)
		return
	}

	handler := handlers.NewUnifiedHandler(r.store, user)
	ctx := c.Request.Context()
	for chunk := range r.engine.StreamChatWithTools(ctx, req.HistoryMessages, req.Messages, prompt, handler) {
		timestamp := time.Now().Format(time.RFC3339)
		switch chunk.Type {
		case "tool_call":
			writeSSE(c.Writer, "tool_call", schemas.SSEToolCallEvent{
				Type:      "tool_call",
				Content:   chunk.Content,
				ToolCall:  chunk.ToolCall,
				Timestamp: timestamp,
			})
		default:
			writeSSE(c.Writer, "message", schemas.SSEMessageEvent{
				Type:      "text",
				Content:   chunk.Content,
				Timestamp: timestamp,
			})
		}
		if ctx.Err() != nil {
			return
		}
	}

	writeSSE(c.Writer, "done", schemas.SSEDoneEvent{Status: "completed"})
}

// streamError reports a failure on an already-open SSE stream. The error
// event is terminal; no done event follows it.
func (r *ChatRouter) streamError(c *gin.Context, err error) {
	r.logger.Error().Err(err).Msg("chat stream failed")
	writeSSE(c.Writer, "error", schemas.SSEErrorEvent{
		Status:    "error",
		Message:   err.Error(),
		ErrorType: fmt.Sprintf("%T", err),
	})
}

// writeSSE frames one event and flushes it to the client.
func writeSSE(w gin.ResponseWriter, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	w.Flush()
}
