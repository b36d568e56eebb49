package realtime

import (
	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

type WebSocketController struct {
	Hub    *Hub
	Logger *zap.Logger
}

func NewWebSocketController(hub *Hub, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{
		Hub:    hub,
		Logger: logger,
	}
}

// joinFrame is what a client sends to enter its user channel.
type joinFrame struct {
	Event  string `json:"event"`
	UserID string `json:"userId"`
}

const joinUserRoomEvent = "join-user-room"

// HandleWebSocket runs the read loop for one connection. Clients send a
// join frame naming their user id and then receive settings updates until
// they disconnect.
func (h *WebSocketController) HandleWebSocket(c *websocket.Conn) {
	var joinedUser string
	defer func() {
		if joinedUser != "" {
			h.Hub.Unsubscribe(joinedUser, c)
		}
		c.Close()
	}()

	for {
		var frame joinFrame
		if err := c.ReadJSON(&frame); err != nil {
			h.Logger.Debug("WebSocket read ended", zap.Error(err))
			return
		}

		if frame.Event != joinUserRoomEvent || frame.UserID == "" {
			continue
		}

		// A connection belongs to one channel; re-joining moves it
		if joinedUser != "" && joinedUser != frame.UserID {
			h.Hub.Unsubscribe(joinedUser, c)
		}
		joinedUser = frame.UserID
		h.Hub.Subscribe(joinedUser, c)
		h.Logger.Info("WebSocket joined user room", zap.String("userId", joinedUser))
	}
}
