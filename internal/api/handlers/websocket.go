package handlers

import (
	"log"
	"net/http"
	"time"

	ws "github.com/gorilla/websocket"

	"github.com/satyam/medicare-backend/internal/service"
)

const (
	wsWriteWait      = 10 * time.Second
	wsReadWait       = 5 * time.Minute
	wsMaxMessageSize = 16 * 1024
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // mobile client connects from a non-browser origin
	},
}

type WebSocketHandler struct {
	authService   *service.AuthService
	triageService *service.TriageService
}

func NewWebSocketHandler(authService *service.AuthService, triageService *service.TriageService) *WebSocketHandler {
	return &WebSocketHandler{
		authService:   authService,
		triageService: triageService,
	}
}

type wsTurn struct {
	Symptoms string `json:"symptoms"`
}

type wsReply struct {
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Handle upgrades the connection and runs triage turns over it: each inbound
// frame is one turn, each outbound frame its reply. The session key is the
// authenticated user's username, so the greeted flag carries over from the
// HTTP chat flow.
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	// Browsers cannot set headers on websocket dials; token rides the query.
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		respondMessage(w, http.StatusUnauthorized, "Token required")
		return
	}

	userID, err := h.authService.VerifyToken(tokenString)
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Unknown user")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ERROR [ws.Handle] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsMaxMessageSize)

	for {
		conn.SetReadDeadline(time.Now().Add(wsReadWait))

		var turn wsTurn
		if err := conn.ReadJSON(&turn); err != nil {
			if ws.IsUnexpectedCloseError(err, ws.CloseGoingAway, ws.CloseNormalClosure) {
				log.Printf("ERROR [ws.Handle] read failed: %v", err)
			}
			return
		}
		if turn.Symptoms == "" {
			continue
		}

		reply := wsReply{}
		resp, err := h.triageService.Respond(r.Context(), user.Username, turn.Symptoms)
		if err != nil {
			log.Printf("ERROR [ws.Handle] triage turn failed: %v", err)
			reply.Error = "Error generating response"
		} else {
			reply.Response = resp
		}

		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(reply); err != nil {
			log.Printf("ERROR [ws.Handle] write failed: %v", err)
			return
		}
	}
}
