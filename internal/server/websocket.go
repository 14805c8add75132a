package server

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/cosmicgardener/gardener-server-go/internal/game"
	"github.com/cosmicgardener/gardener-server-go/internal/game/catalog"
	"github.com/cosmicgardener/gardener-server-go/internal/game/garden"
	"github.com/cosmicgardener/gardener-server-go/internal/game/gesture"
	"github.com/cosmicgardener/gardener-server-go/internal/game/rules"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
	sendBuffer   = 256
)

// envelope is the shape of every message sent to a socket.
type envelope struct {
	Type    string      `json:"type"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// command is a client request received over a socket.
type command struct {
	Type      string  `json:"type"`
	CardID    int     `json:"card_id"`
	Category  string  `json:"category"`
	Diff      float64 `json:"diff"`
	X         float64 `json:"x"`
	SkipIntro bool    `json:"skip_intro"`
}

// dragSession is the pointer drag in progress on one socket.
type dragSession struct {
	gesture.Drag
	cardID int
}

// stringToIntHookFunc accepts card ids sent as strings.
func stringToIntHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
		if from == reflect.String && to == reflect.Int {
			return strconv.Atoi(data.(string))
		}
		return data, nil
	}
}

func decodeCommand(raw map[string]interface{}) (command, error) {
	var cmd command
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringToIntHookFunc(),
		Result:     &cmd,
		TagName:    "json",
	})
	if err != nil {
		return command{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return command{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if cmd.Type == "" {
		return command{}, fmt.Errorf("%w: missing command type", errBadRequest)
	}
	return cmd, nil
}

// socket is one browser connection watching one game.
type socket struct {
	conn   *websocket.Conn
	send   chan envelope
	done   chan struct{}
	once   sync.Once
	logger *zap.Logger
	drag   dragSession
}

func (s *socket) push(msg envelope) {
	select {
	case <-s.done:
	case s.send <- msg:
	default:
		s.logger.Warn("websocket send buffer full, dropping message", zap.String("type", msg.Type))
	}
}

func (s *socket) close() {
	s.once.Do(func() { close(s.done) })
}

func (s *socket) writeLoop() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case <-s.done:
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case msg := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(msg); err != nil {
				s.logger.Debug("websocket write failed", zap.Error(err))
				s.close()
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.close()
				return
			}
		}
	}
}

// stream upgrades the request and relays the game's events until the client
// disconnects. Commands sent by the client are applied to the game.
func (api *API) stream(c *gin.Context) {
	g, err := api.games.GetGame(c.Param("gameID"))
	if err != nil {
		api.fail(c, err)
		return
	}

	conn, err := api.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		api.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	s := &socket{
		conn:   conn,
		send:   make(chan envelope, sendBuffer),
		done:   make(chan struct{}),
		logger: api.logger.With(zap.String("game_id", g.ID())),
	}
	handle := g.Events().Subscribe(func(evt rules.Event) {
		s.push(envelope{Type: "event", Data: evt})
	})
	defer g.Events().Unsubscribe(handle)
	defer s.close()

	go s.writeLoop()
	s.push(envelope{Type: "view", Data: g.View()})
	s.logger.Info("websocket client connected", zap.String("client", c.ClientIP()))

	conn.SetReadLimit(4096)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !isClosed(err) {
				s.logger.Debug("websocket read ended", zap.Error(err))
			}
			break
		}

		var raw map[string]interface{}
		if err := json.Unmarshal(data, &raw); err != nil {
			s.push(envelope{Type: "error", Message: "malformed message"})
			continue
		}
		cmd, err := decodeCommand(raw)
		if err != nil {
			s.push(envelope{Type: "error", Message: err.Error()})
			continue
		}
		reply, err := api.apply(g, &s.drag, cmd)
		if err != nil {
			s.push(envelope{Type: "error", Message: err.Error()})
			continue
		}
		s.push(reply)
	}
	s.logger.Info("websocket client disconnected")
}

// apply runs one socket command against a game. Drag commands track the
// socket's pointer in drag.
func (api *API) apply(g *game.Game, drag *dragSession, cmd command) (envelope, error) {
	var err error
	switch cmd.Type {
	case "view":
	case "begin":
		err = g.Begin()
	case "browse":
		category, perr := catalog.ParseCategory(cmd.Category)
		if perr != nil {
			return envelope{}, fmt.Errorf("%w: %v", errBadRequest, perr)
		}
		offers := g.Browse(category)
		out := make([]game.CardView, 0, len(offers))
		for _, o := range offers {
			out = append(out, game.NewCardView(o.Card, o.Selected, o.Affordable))
		}
		return envelope{Type: "cards", Data: out}, nil
	case "select":
		err = g.Select(cmd.CardID)
	case "deselect":
		err = g.Deselect(cmd.CardID)
	case "toggle":
		err = g.Toggle(cmd.CardID)
	case "gesture":
		err = g.ApplyGesture(cmd.CardID, gesture.ActionFor(cmd.Diff))
	case "drag_start":
		if g.Phase() != game.PhaseSelection {
			return envelope{}, fmt.Errorf("%w: drag outside selection", game.ErrWrongPhase)
		}
		selected, affordable, serr := g.CardState(cmd.CardID)
		if serr != nil {
			return envelope{}, serr
		}
		if !drag.Start(cmd.X, selected, affordable) {
			return envelope{}, fmt.Errorf("card %d: %w", cmd.CardID, garden.ErrOverBudget)
		}
		drag.cardID = cmd.CardID
		return envelope{Type: "drag", Data: gesture.FeedbackFor(0)}, nil
	case "drag_move":
		if !drag.Active() {
			return envelope{}, fmt.Errorf("%w: no drag in progress", errBadRequest)
		}
		return envelope{Type: "drag", Data: drag.Move(cmd.X)}, nil
	case "drag_end":
		if !drag.Active() {
			return envelope{}, fmt.Errorf("%w: no drag in progress", errBadRequest)
		}
		err = g.ApplyGesture(drag.cardID, drag.End())
	case "deploy":
		err = api.games.Deploy(g.ID())
	case "reset":
		err = api.games.Reset(g.ID(), cmd.SkipIntro)
	case "report":
		r, ready := g.Report()
		if !ready {
			return envelope{}, fmt.Errorf("%w: report not ready", game.ErrWrongPhase)
		}
		return envelope{Type: "report", Data: r}, nil
	default:
		return envelope{}, fmt.Errorf("%w: unknown command %q", errBadRequest, cmd.Type)
	}
	if err != nil {
		return envelope{}, err
	}
	return envelope{Type: "view", Data: g.View()}, nil
}
