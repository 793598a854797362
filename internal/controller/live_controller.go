package controller

import (
	"dark_patterns_game/internal/dashboard"
	"dark_patterns_game/internal/service"
	"dark_patterns_game/pkg/logger"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveMessage is pushed to leaderboard subscribers after every refresh.
type LiveMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	UpdatedAt *time.Time  `json:"updatedAt,omitempty"`
	Error     string      `json:"error,omitempty"`
}

type LiveController struct {
	Feed *service.LeaderboardFeed
}

func NewLiveController(feed *service.LeaderboardFeed) *LiveController {
	return &LiveController{Feed: feed}
}

func liveMessage(s dashboard.Snapshot) LiveMessage {
	msg := LiveMessage{Type: "scoreboard", Data: s.Board}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		msg.UpdatedAt = &t
	}
	if s.Err != nil {
		msg.Error = "Leaderboard temporarily unavailable"
	}
	return msg
}

// Stream godoc
// @Summary 实时排行榜
// @Description WebSocket，每次刷新后推送排行榜
// @Tags 成绩
// @Router /scores/live [get]
func (c *LiveController) Stream(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		logger.Log.Debug("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	updates, unsubscribe := c.Feed.Poller.Subscribe()
	defer unsubscribe()

	closed := make(chan struct{})
	go readPump(conn, closed)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	if snap := c.Feed.Poller.Snapshot(); snap.Board != nil {
		if err := writeLive(conn, snap); err != nil {
			return
		}
	}

	for {
		select {
		case <-closed:
			return
		case snap := <-updates:
			if err := writeLive(conn, snap); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeLive(conn *websocket.Conn, snap dashboard.Snapshot) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(liveMessage(snap))
}

// readPump 只处理 pong 和关闭帧，客户端消息一律丢弃
func readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error { conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Log.Debug("WebSocket unexpected close", zap.Error(err))
			}
			return
		}
	}
}
