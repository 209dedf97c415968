package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/verte-zerg/typeuber/internal/model"
	"github.com/verte-zerg/typeuber/internal/session"
	"github.com/verte-zerg/typeuber/internal/trainer"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 512
)

// Message types exchanged with the browser.
const (
	TypeStart    = "start"
	TypePause    = "pause"
	TypeRestart  = "restart"
	TypeKey      = "key"
	TypeSnapshot = "snapshot"
	TypeError    = "error"
)

// InMessage is a command sent by the browser.
type InMessage struct {
	Type string `json:"type"`
	Key  string `json:"key,omitempty"`
}

// OutMessage is sent to the browser after every state change.
type OutMessage struct {
	Type   string        `json:"type"`
	Data   any           `json:"data"`
	Result *model.Result `json:"result,omitempty"`
}

type client struct {
	id      string
	conn    *websocket.Conn
	logger  *zap.Logger
	writeMu sync.Mutex
}

func (c *client) write(msg OutMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}

func (c *client) sendError(err error) {
	if werr := c.write(OutMessage{Type: TypeError, Data: err.Error()}); werr != nil {
		c.logger.Debug("failed to send error", zap.Error(werr))
	}
}

// publish forwards loop updates. Out-of-phase commands are no-ops for the
// browser, so only the snapshot is sent for them.
func (c *client) publish(u trainer.Update) {
	if u.Err != nil && !errors.Is(u.Err, session.ErrInvalidPhase) {
		c.sendError(u.Err)
		return
	}
	msg := OutMessage{Type: TypeSnapshot, Data: u.Snapshot, Result: u.Result}
	if err := c.write(msg); err != nil {
		c.logger.Debug("failed to send snapshot", zap.Error(err))
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	s.conns.Add(1)
	defer s.conns.Done()

	c := &client{id: uuid.NewString(), conn: conn}
	c.logger = s.logger.With(zap.String("conn", c.id))
	c.logger.Info("client connected", zap.String("remote", r.RemoteAddr))
	s.serveClient(c)
	c.logger.Info("client disconnected")
}

func (s *Server) serveClient(c *client) {
	defer c.conn.Close()

	tr, err := trainer.New(s.cfg.Words(), trainer.WithClock(s.cfg.Clock), trainer.WithLogger(c.logger))
	if err != nil {
		c.logger.Error("failed to create session", zap.Error(err))
		c.sendError(err)
		return
	}

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.Close()
	})
	defer stop()

	loop := trainer.NewLoop(tr, s.cfg.Scheduler, c.publish, c.logger)
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		_ = loop.Run(ctx)
	}()
	defer func() {
		cancel()
		<-loopDone
	}()

	c.conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) && ctx.Err() == nil {
				c.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}
		var msg InMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Warn("malformed client message", zap.Error(err))
			c.sendError(fmt.Errorf("malformed message: %w", err))
			continue
		}
		cmd, err := parseCommand(msg)
		if err != nil {
			c.logger.Warn("malformed client message", zap.String("type", msg.Type), zap.Error(err))
			c.sendError(err)
			continue
		}
		if err := loop.Send(ctx, cmd); err != nil {
			return
		}
	}
}

// parseCommand normalizes a browser message into a loop command. Keys are
// lowercased; the session decides whether the key is accepted.
func parseCommand(msg InMessage) (trainer.Command, error) {
	switch msg.Type {
	case TypeStart:
		return trainer.Command{Kind: trainer.CommandStart}, nil
	case TypePause:
		return trainer.Command{Kind: trainer.CommandTogglePause}, nil
	case TypeRestart:
		return trainer.Command{Kind: trainer.CommandRestart}, nil
	case TypeKey:
		runes := []rune(strings.ToLower(msg.Key))
		if len(runes) != 1 {
			return trainer.Command{}, fmt.Errorf("key must be a single character, got %q", msg.Key)
		}
		return trainer.Command{Kind: trainer.CommandKey, Key: runes[0]}, nil
	default:
		return trainer.Command{}, fmt.Errorf("unknown message type %q", msg.Type)
	}
}
