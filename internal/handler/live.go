package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/matthewbaird/snippetchooser/internal/chooser"
	"github.com/matthewbaird/snippetchooser/internal/types"
)

// ClientMessage is a message from the chooser modal.
type ClientMessage struct {
	Type string          `json:"type"` // "results", "ping"
	ID   string          `json:"id,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ResultsRequest is the data of a "results" message.
type ResultsRequest struct {
	Query  string `json:"q,omitempty"`
	Locale string `json:"locale,omitempty"`
	Page   int    `json:"page,omitempty"`
}

// ServerMessage is a message to the chooser modal.
type ServerMessage struct {
	Type      string `json:"type"` // "results", "pong", "error"
	RequestID string `json:"request_id,omitempty"`
	Data      any    `json:"data,omitempty"`
}

// ErrorData is the data of an "error" message.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LiveHandler streams result pages over a websocket so the modal can
// search as the editor types.
type LiveHandler struct {
	chooser *chooser.Chooser
	types   ContentTypes
	origins []string
}

// NewLiveHandler creates a LiveHandler. origins lists the cross-origin
// host patterns allowed to connect; same-origin is always allowed.
func NewLiveHandler(c *chooser.Chooser, reg ContentTypes, origins ...string) *LiveHandler {
	return &LiveHandler{chooser: c, types: reg, origins: origins}
}

// ServeHTTP upgrades to a websocket and answers results requests until the
// client goes away.
// GET {prefix}/choose/{app_label}/{model_name}/live/
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ct, ok := contentType(w, r, h.types)
	if !ok {
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.origins,
	})
	if err != nil {
		log.Printf("live: websocket accept: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	for {
		var msg ClientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
				log.Printf("live: read: %v", err)
			}
			return
		}

		switch msg.Type {
		case "results":
			h.handleResults(ctx, conn, ct, msg)
		case "ping":
			h.send(ctx, conn, ServerMessage{Type: "pong", RequestID: msg.ID})
		default:
			h.sendError(ctx, conn, msg.ID, "UNKNOWN_TYPE", fmt.Sprintf("unknown message type: %s", msg.Type))
		}
	}
}

func (h *LiveHandler) handleResults(ctx context.Context, conn *websocket.Conn, ct types.ContentType, msg ClientMessage) {
	var req ResultsRequest
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			h.sendError(ctx, conn, msg.ID, "VALIDATION_ERROR", "invalid results data")
			return
		}
	}

	schema, err := h.chooser.Schema(ctx, ct)
	if err != nil {
		h.sendChooserError(ctx, conn, msg.ID, err)
		return
	}
	in := schema.Clean(url.Values{
		chooser.FieldQuery:  {req.Query},
		chooser.FieldLocale: {req.Locale},
	})
	page := req.Page
	if page == 0 {
		page = 1
	}

	view, err := h.chooser.RenderResults(ctx, ct, in, page)
	if err != nil {
		h.sendChooserError(ctx, conn, msg.ID, err)
		return
	}
	h.send(ctx, conn, ServerMessage{Type: "results", RequestID: msg.ID, Data: view})
}

func (h *LiveHandler) send(ctx context.Context, conn *websocket.Conn, msg ServerMessage) {
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		log.Printf("live: write %s: %v", msg.Type, err)
	}
}

func (h *LiveHandler) sendError(ctx context.Context, conn *websocket.Conn, requestID, code, message string) {
	h.send(ctx, conn, ServerMessage{
		Type:      "error",
		RequestID: requestID,
		Data:      ErrorData{Code: code, Message: message},
	})
}

func (h *LiveHandler) sendChooserError(ctx context.Context, conn *websocket.Conn, requestID string, err error) {
	status, code := errorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("live: internal error: %v", err)
		message = "internal server error"
	}
	h.sendError(ctx, conn, requestID, code, message)
}
