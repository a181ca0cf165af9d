package server

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"

	"github.com/nxtrace/qsieve/qs"
)

var factorUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	wsSendQueueSize = 1024
	wsWriteTimeout  = 5 * time.Second
)

var (
	errWSSlowConsumer  = errors.New("websocket client too slow for event stream")
	errWSSessionClosed = errors.New("websocket session closed")
	errWSBadPayload    = errors.New("invalid request payload")
)

// sanitizeLogParam replaces line breaks and control characters in user input
// so a request cannot forge log lines.
func sanitizeLogParam(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\r' {
			b.WriteString("\\n")
		} else if r < 0x20 && r != '\t' {
			b.WriteRune('�')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type wsEnvelope struct {
	Type   string      `json:"type"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
	Status int         `json:"status,omitempty"`
}

type wsConn interface {
	WriteJSON(v interface{}) error
	SetWriteDeadline(t time.Time) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
	NextReader() (messageType int, r io.Reader, err error)
}

// wsFactorSession serialises writes to one connection through a bounded
// queue. Observer callbacks from concurrent splits only enqueue.
type wsFactorSession struct {
	conn       wsConn
	sendMu     sync.Mutex
	sendCh     chan wsEnvelope
	stopCh     chan struct{}
	writerDone chan struct{}
	closeOnce  sync.Once
	finishOnce sync.Once
	closed     atomic.Bool
	events     atomic.Int64
}

func newWSFactorSession(conn wsConn, queueSize int) *wsFactorSession {
	if queueSize <= 0 {
		queueSize = wsSendQueueSize
	}
	s := &wsFactorSession{
		conn:       conn,
		sendCh:     make(chan wsEnvelope, queueSize),
		stopCh:     make(chan struct{}),
		writerDone: make(chan struct{}),
	}
	go s.writeLoop()
	return s
}

func (s *wsFactorSession) writeLoop() {
	defer close(s.writerDone)
	for {
		select {
		case <-s.stopCh:
			return
		case msg, ok := <-s.sendCh:
			if !ok {
				return
			}
			deadline := time.Now().Add(wsWriteTimeout)
			_ = s.conn.SetWriteDeadline(deadline)
			err := s.conn.WriteJSON(msg)
			if err != nil {
				s.closeWithCode(websocket.CloseInternalServerErr, "write failed")
				return
			}
		}
	}
}

func (s *wsFactorSession) send(msg wsEnvelope) error {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if s.closed.Load() {
		return errWSSessionClosed
	}
	select {
	case s.sendCh <- msg:
		return nil
	default:
		s.closeWithCode(websocket.CloseTryAgainLater, "client too slow for event stream")
		return errWSSlowConsumer
	}
}

// observe forwards a progress event. Send errors close the session, which
// in turn cancels the factorization.
func (s *wsFactorSession) observe(ev qs.Event) {
	if err := s.send(wsEnvelope{Type: "event", Data: ev}); err == nil {
		s.events.Add(1)
	}
}

func (s *wsFactorSession) closeWithCode(code int, reason string) {
	s.closed.Store(true)
	s.closeOnce.Do(func() {
		close(s.stopCh)
		deadline := time.Now().Add(wsWriteTimeout)
		_ = s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
		_ = s.conn.Close()
	})
}

func (s *wsFactorSession) finish() {
	s.finishOnce.Do(func() {
		s.sendMu.Lock()
		wasClosed := s.closed.Swap(true)
		if !wasClosed {
			close(s.sendCh)
		}
		s.sendMu.Unlock()
		<-s.writerDone
		s.closeOnce.Do(func() {
			_ = s.conn.Close()
		})
	})
}

// parseFactorRequest reads the first websocket message. n may be sent as a
// JSON string or, for small values, a number.
func parseFactorRequest(message []byte) (factorRequest, error) {
	if !gjson.ValidBytes(message) {
		return factorRequest{}, errWSBadPayload
	}
	res := gjson.ParseBytes(message)
	if !res.IsObject() {
		return factorRequest{}, errWSBadPayload
	}
	n := res.Get("n")
	if !n.Exists() {
		return factorRequest{}, errWSBadPayload
	}
	return factorRequest{
		N:           n.String(),
		Mode:        res.Get("mode").String(),
		Bound:       res.Get("bound").Int(),
		BaseSize:    int(res.Get("base_size").Int()),
		SearchLimit: int(res.Get("search_limit").Int()),
		Interval:    int(res.Get("interval").Int()),
		TimeoutMs:   int(res.Get("timeout_ms").Int()),
	}, nil
}

func (s *service) factorWebsocketHandler(c *gin.Context) {
	conn, err := factorUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[deploy] websocket upgrade failed: %v", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	_, message, err := conn.ReadMessage()
	if err != nil {
		log.Printf("[deploy] websocket read failed: %v", err)
		return
	}

	req, err := parseFactorRequest(message)
	if err != nil {
		_ = conn.WriteJSON(wsEnvelope{Type: "error", Error: err.Error(), Status: http.StatusBadRequest})
		return
	}

	exec, statusCode, err := s.prepareFactor(req)
	if err != nil {
		log.Printf("[deploy] websocket prepare factor failed n=%s error=%v", sanitizeLogParam(req.N), err)
		_ = conn.WriteJSON(wsEnvelope{Type: "error", Error: err.Error(), Status: statusCode})
		return
	}

	session := newWSFactorSession(conn, wsSendQueueSize)
	defer session.finish()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				session.closeWithCode(websocket.CloseNormalClosure, "client disconnected")
				cancel()
				return
			}
		}
	}()

	log.Printf("[deploy] (ws) factor request n=%s mode=%s", exec.N, exec.Config.Mode)
	s.streamFactor(ctx, session, exec)
}

// streamFactor runs one factorization and reports it on session as
// start, event..., then complete or error.
func (s *service) streamFactor(ctx context.Context, session *wsFactorSession, exec *factorExecution) {
	startPayload := gin.H{
		"n":          exec.N.String(),
		"mode":       exec.Config.Mode,
		"timeout_ms": exec.Config.Timeout.Milliseconds(),
	}
	if err := session.send(wsEnvelope{Type: "start", Data: startPayload}); err != nil {
		log.Printf("[deploy] websocket send start failed: %v", err)
		return
	}

	exec.Config.Observer = session.observe
	resp, err := s.runFactor(ctx, exec)
	if err != nil {
		log.Printf("[deploy] (ws) factor failed n=%s error=%v", exec.N, err)
		_ = session.send(wsEnvelope{Type: "error", Error: err.Error(), Status: statusFor(err)})
		return
	}
	if session.closed.Load() {
		return
	}
	if err := session.send(wsEnvelope{Type: "complete", Data: resp}); err != nil {
		log.Printf("[deploy] websocket send complete failed: %v", err)
	}
	log.Printf("[deploy] (ws) factor completed n=%s events=%d duration=%dms", exec.N, session.events.Load(), resp.DurationMs)
}
