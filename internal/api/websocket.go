package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"pantrychef/internal/dictation"
	"pantrychef/internal/shell"
	"pantrychef/internal/timer"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB
)

// Client message types.
const (
	msgDictationStart = "dictation.start"
	msgDictationStop  = "dictation.stop"
	msgDictationEvent = "dictation.event"
	msgTimerToggle    = "timer.toggle"
	msgTimerReset     = "timer.reset"
)

// wsEnvelope is the frame for both directions. Server frames use the types
// "session", "timer", "chime", "dictation" and "error".
type wsEnvelope struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

type wsInbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// eventPusher is satisfied by recognizers fed from the client.
type eventPusher interface {
	Push(ev dictation.Event) error
}

// originChecker accepts requests without an Origin header (non-browser
// clients) and browser origins listed in allowed.
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		o = strings.TrimRight(strings.ToLower(strings.TrimSpace(o)), "/")
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[strings.TrimRight(strings.ToLower(origin), "/")]
		return ok
	}
}

// wsConnect streams session, timer and dictation updates to the client and
// accepts dictation events and timer controls from it.
func (h *Handler) wsConnect(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	release, err := h.Sessions.Hold(sess.ID())
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer release()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("ws_upgrade_failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()
	// The socket is the only feed for a browser recognizer.
	defer sess.StopDictation()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	timerEvents, stopTimer := sess.Clock().Subscribe()
	defer stopTimer()
	updates, stopUpdates := sess.Subscribe()
	defer stopUpdates()

	replies := make(chan wsEnvelope, 8)
	done := make(chan struct{})
	go h.startReader(conn, sess, replies, done)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	if err := writeEnvelope(conn, wsEnvelope{Type: shell.UpdateSession, Data: sess.Snapshot()}); err != nil {
		h.log.Infow("ws_write_failed_initial", "err", err)
		return
	}

	for {
		var env wsEnvelope
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.log.Infow("ws_ping_failed", "err", err)
				return
			}
			continue
		case ev, ok := <-timerEvents:
			if !ok {
				return
			}
			env = timerEnvelope(ev)
		case u, ok := <-updates:
			if !ok {
				return
			}
			env = updateEnvelope(u)
		case env = <-replies:
		}

		if err := writeEnvelope(conn, env); err != nil {
			h.log.Infow("ws_write_failed", "err", err)
			return
		}
	}
}

// startReader handles client frames until the connection closes.
func (h *Handler) startReader(conn *websocket.Conn, sess *shell.Shell, replies chan<- wsEnvelope, done chan<- struct{}) {
	defer close(done)
	for {
		var in wsInbound
		if err := conn.ReadJSON(&in); err != nil {
			h.log.Infow("ws_read_closed", "err", err)
			return
		}
		if err := h.handleInbound(sess, in); err != nil {
			select {
			case replies <- wsEnvelope{Type: "error", Error: errorMessage(err)}:
			default:
			}
		}
	}
}

func (h *Handler) handleInbound(sess *shell.Shell, in wsInbound) error {
	switch in.Type {
	case msgDictationStart:
		return sess.StartDictation()
	case msgDictationStop:
		sess.StopDictation()
		return nil
	case msgDictationEvent:
		pusher, ok := sess.Recognizer().(eventPusher)
		if !ok {
			return dictation.ErrUnavailable
		}
		var ev dictation.Event
		if err := json.Unmarshal(in.Data, &ev); err != nil {
			return fmt.Errorf("invalid dictation event: %w", err)
		}
		return pusher.Push(ev)
	case msgTimerToggle:
		sess.ToggleTimer()
		return nil
	case msgTimerReset:
		sess.ResetTimer()
		return nil
	default:
		return fmt.Errorf("unknown message type %q", in.Type)
	}
}

func timerEnvelope(ev timer.Event) wsEnvelope {
	return wsEnvelope{Type: string(ev.Kind), Data: ev}
}

func updateEnvelope(u shell.Update) wsEnvelope {
	if u.Kind == shell.UpdateDictation {
		return wsEnvelope{Type: u.Kind, Data: u.Dictation}
	}
	return wsEnvelope{Type: u.Kind, Data: u.Snapshot}
}

func writeEnvelope(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}
