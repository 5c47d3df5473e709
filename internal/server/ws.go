package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/electomaps/turnoutmap/internal/app"
	"github.com/electomaps/turnoutmap/internal/mapview"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Type       string  `json:"type"` // year, hover, leave, showall, zoom, source, frame
	Year       int     `json:"year,omitempty"`
	Region     string  `json:"region,omitempty"`
	Enabled    bool    `json:"enabled,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	TranslateX float64 `json:"translateX,omitempty"`
	TranslateY float64 `json:"translateY,omitempty"`
	Source     string  `json:"source,omitempty"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type      string                   `json:"type"` // frame or error
	SessionID string                   `json:"session_id"`
	Year      int                      `json:"year,omitempty"`
	Source    string                   `json:"source,omitempty"`
	Scenes    map[string]mapview.Scene `json:"scenes,omitempty"`
	Error     string                   `json:"error,omitempty"`
}

// handleWebSocket runs one interactive session per connection. Every
// accepted message mutates the session and is answered with a fresh
// frame of all three maps; the client samples further animation frames
// by sending "frame" messages at its own cadence.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.New().String()
	session, err := app.NewSession(s.cfg, s.geography, s.recordSource)
	if err != nil {
		s.sendWSError(conn, sessionID, "session init: "+err.Error())
		return
	}

	// Initial frame so the client can render before any interaction.
	s.sendFrame(conn, sessionID, session)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("server: websocket read: %v", err)
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendWSError(conn, sessionID, "invalid message format")
			continue
		}

		switch req.Type {
		case "year":
			session.Timeline().SetYear(req.Year)
		case "hover":
			session.Primary().HoverEnter(req.Region)
		case "leave":
			session.Primary().HoverLeave()
		case "showall":
			session.Primary().SetShowAllLabels(req.Enabled)
		case "zoom":
			session.Primary().SetZoom(mapview.Transform{
				Scale:      req.Scale,
				TranslateX: req.TranslateX,
				TranslateY: req.TranslateY,
			})
		case "source":
			if err := session.SetSource(req.Source); err != nil {
				s.sendWSError(conn, sessionID, err.Error())
				continue
			}
		case "frame":
			// Pure sample request, no state change.
		default:
			s.sendWSError(conn, sessionID, "unknown message type: "+req.Type)
			continue
		}

		s.sendFrame(conn, sessionID, session)
	}
}

func (s *Server) sendFrame(conn *websocket.Conn, sessionID string, session *app.Session) {
	resp := wsResponse{
		Type:      "frame",
		SessionID: sessionID,
		Year:      session.Timeline().Active(),
		Source:    session.Source(),
		Scenes:    session.Frames(time.Now()),
	}
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("server: websocket write: %v", err)
	}
}

func (s *Server) sendWSError(conn *websocket.Conn, sessionID, msg string) {
	resp := wsResponse{Type: "error", SessionID: sessionID, Error: msg}
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("server: websocket write: %v", err)
	}
}
