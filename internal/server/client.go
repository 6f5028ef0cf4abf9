package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"photohunt-server/internal/domain"
	"photohunt-server/internal/engine"
	"photohunt-server/pkg/api"
	"photohunt-server/pkg/logger"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	joinTimeout    = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и GameService
type Client struct {
	game    *engine.GameService
	conn    *websocket.Conn
	codec   api.Codec
	id      domain.SessionID
	updates <-chan api.ServerResponse
	log     *logrus.Entry
}

func NewClient(game *engine.GameService, conn *websocket.Conn, codec api.Codec) *Client {
	return &Client{
		game:  game,
		conn:  conn,
		codec: codec,
		log:   logger.WithComponent("client").WithField("remote", conn.RemoteAddr().String()),
	}
}

// join регистрирует охотника в игре. Вне выбора уровня соединение закрывается.
func (c *Client) join(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, joinTimeout)
	defer cancel()

	id, updates, err := c.game.Join(ctx, name)
	if err != nil {
		code := websocket.CloseTryAgainLater
		if errors.Is(err, engine.ErrJoinRefused) {
			code = websocket.ClosePolicyViolation
		}
		c.closeWith(code, err.Error())
		return err
	}

	c.id = id
	c.updates = updates
	c.log = c.log.WithField("session_id", id)
	c.log.WithField("codec", c.codec.Name()).Info("client connected")
	return nil
}

func (c *Client) closeWith(code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	if err := c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
		c.log.WithError(err).Debug("write close message failed")
	}
	if err := c.conn.Close(); err != nil {
		c.log.WithError(err).Debug("failed to close websocket connection")
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		c.game.Leave(c.id)
		if err := c.conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("client disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("websocket read error")
			}
			return
		}

		var cmd api.ClientCommand
		if err := c.codec.Decode(data, &cmd); err != nil {
			c.log.WithError(err).Debug("malformed message dropped")
			continue
		}
		if err := c.game.Submit(ctx, c.id, cmd); err != nil {
			c.log.WithError(err).WithField("action", cmd.Action).Debug("command dropped")
		}
	}
}

// writePump отправляет данные клиенту + Ping.
// Закрытый канал обновлений значит, что движок отключил сессию.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	frame := websocket.TextMessage
	if c.codec.Binary() {
		frame = websocket.BinaryMessage
	}

	for {
		select {
		case message, ok := <-c.updates:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}

			data, err := c.codec.Encode(message)
			if err != nil {
				c.log.WithError(err).WithField("action", message.Action).Error("encode message failed")
				continue
			}
			if err := c.conn.WriteMessage(frame, data); err != nil {
				c.log.WithError(err).Debug("write message failed")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
