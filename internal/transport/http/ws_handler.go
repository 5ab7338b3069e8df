package http

import (
	"encoding/json"
	"log"
	"net/http"

	"quiz-runner/internal/app"
	"quiz-runner/internal/chart"
	"quiz-runner/internal/domain"
	"github.com/gorilla/websocket"
)

// WSHandler bridges one websocket connection to one quiz attempt. It holds no
// quiz logic: inbound messages become controller intents and every view change
// is pushed back out.
type WSHandler struct {
	service  *app.RunnerService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.RunnerService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

type selectPayload struct {
	Option int `json:"option"`
}

type jumpPayload struct {
	Index int `json:"index"`
}

type openedPayload struct {
	AttemptID string `json:"attemptId"`
}

type resultsPayload struct {
	Results domain.Results `json:"results"`
	Chart   string         `json:"chart"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into a fresh attempt.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	attempt := h.service.Open()
	defer h.service.Close(attempt.ID())

	updates, cancel := attempt.Subscribe()
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// Single writer goroutine: gorilla connections allow one concurrent writer.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	// Buffered and still empty, so opened always precedes the first state.
	send <- outboundMessage[any]{Type: "opened", Payload: openedPayload{AttemptID: attempt.ID()}}

	go func() {
		defer close(updatesDone)
		for {
			select {
			case view, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "state", Payload: view}:
				case <-closeSignals:
					return
				case <-writerDone:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	reply := func(msg outboundMessage[any]) bool {
		select {
		case send <- msg:
			return true
		case <-writerDone:
			return false
		}
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		msg, ok := h.dispatch(r, attempt, name, inbound)
		if ok && !reply(msg) {
			break
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

// dispatch applies one intent. State changes reach the client through the
// subscription; dispatch only returns direct replies (errors, results).
func (h *WSHandler) dispatch(r *http.Request, attempt *app.Controller, name string, inbound inboundMessage) (outboundMessage[any], bool) {
	var err error
	switch inbound.Type {
	case "start":
		var payload startPayload
		if err := decodePayload(inbound.Payload, &payload); err != nil {
			return errorMessage("invalid start payload"), true
		}
		if payload.Name != "" {
			name = payload.Name
		}
		_, err = attempt.Start(r.Context(), name, domain.SetKey{Category: payload.Category, Difficulty: payload.Difficulty})
	case "select":
		var payload selectPayload
		if err := decodePayload(inbound.Payload, &payload); err != nil {
			return errorMessage("invalid select payload"), true
		}
		_, err = attempt.SelectOption(payload.Option)
	case "previous":
		_, err = attempt.Previous()
	case "next":
		_, err = attempt.Next()
	case "jump":
		var payload jumpPayload
		if err := decodePayload(inbound.Payload, &payload); err != nil {
			return errorMessage("invalid jump payload"), true
		}
		_, err = attempt.JumpTo(payload.Index)
	case "restart":
		_, err = attempt.Restart()
	case "submit":
		results, err := attempt.Submit()
		if err != nil {
			return errorMessage(err.Error()), true
		}
		return outboundMessage[any]{Type: "results", Payload: resultsPayload{
			Results: results,
			Chart:   string(chart.Render(results.Correct, results.Wrong)),
		}}, true
	default:
		return errorMessage("unsupported message type"), true
	}
	if err != nil {
		return errorMessage(err.Error()), true
	}
	return outboundMessage[any]{}, false
}

func decodePayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func errorMessage(message string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: message}}
}
