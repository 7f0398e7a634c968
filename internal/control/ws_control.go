// Package control handles the touch surface protocol and command application.
package control

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/frudas24/deskpad/internal/gesture"
	"github.com/frudas24/deskpad/internal/session"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const writeWait = time.Second

// Server handles websocket control input from the touch surface.
type Server struct {
	mu        sync.Mutex
	upgrader  websocket.Upgrader
	session   *session.Session
	sink      gesture.Sink
	engine    *gesture.Engine
	playPause PlayPause
	conn      *websocket.Conn
	connID    string
	// out feeds the connection writer; nil while no surface is connected.
	out       chan Message
}

// NewServer creates a control server that emits commands to sink while input is enabled.
func NewServer(sess *session.Session, sink gesture.Sink, opts ...gesture.Option) *Server {
	s := &Server{
		session: sess,
		sink:    sink,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	opts = append([]gesture.Option{
		gesture.WithSensitivity(sess.Sensitivity()),
		gesture.WithTrackingFunc(s.handleTracking),
	}, opts...)
	s.engine = gesture.NewEngine(gesture.SinkFunc(s.send), opts...)
	s.engine.SetScrollMode(sess.ScrollMode())
	return s
}

// Engine returns the gesture engine fed by this server.
func (s *Server) Engine() *gesture.Engine {
	return s.engine
}

// ServeHTTP upgrades the connection and processes control messages.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if err := s.acceptConn(conn); err != nil {
		log.Printf("control: rejected: %v", err)
		_ = conn.Close()
		return
	}
	defer s.cleanupConn(conn)

	s.mu.Lock()
	out := s.out
	s.mu.Unlock()
	go writeLoop(conn, out)

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if err := s.HandleMessage(msg); err != nil {
			log.Printf("control: %v", err)
			return
		}
	}
}

// HandleFrame decodes and dispatches a raw message from an alternate transport.
func (s *Server) HandleFrame(data []byte) error {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("decode control frame: %w", err)
	}
	return s.HandleMessage(msg)
}

// acceptConn ensures only one active control connection exists.
func (s *Server) acceptConn(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return fmt.Errorf("control connection already active")
	}
	s.conn = conn
	s.out = make(chan Message, 1)
	s.connID = uuid.NewString()
	log.Printf("control: connected %s from %s", s.connID, conn.RemoteAddr())
	return nil
}

// cleanupConn clears the active connection and releases any held button.
func (s *Server) cleanupConn(conn *websocket.Conn) {
	s.mu.Lock()
	if s.conn == conn {
		log.Printf("control: disconnected %s", s.connID)
		close(s.out)
		s.conn = nil
		s.out = nil
		s.connID = ""
	}
	s.mu.Unlock()
	s.engine.Reset()
	_ = conn.Close()
}

// HandleMessage dispatches a single control message.
func (s *Server) HandleMessage(msg Message) error {
	switch msg.T {
	case "touchstart":
		s.engine.TouchStart(msg.Batch())
	case "touchmove":
		s.engine.TouchMove(msg.Batch())
	case "touchend", "touchcancel":
		s.engine.TouchEnd(msg.Batch())
	case "scrollMode":
		if msg.Enabled != nil {
			s.session.SetScrollMode(*msg.Enabled)
			s.engine.SetScrollMode(*msg.Enabled)
		}
	case "sensitivity":
		if err := s.engine.SetSensitivity(msg.Value); err != nil {
			log.Printf("control: sensitivity %v ignored: %v", msg.Value, err)
			return nil
		}
		s.session.SetSensitivity(msg.Value)
	case "click":
		return s.handleClick(gesture.Button(msg.Button))
	case "keyboard":
		if msg.Enabled != nil {
			s.session.SetKeyboardOpen(*msg.Enabled)
		}
	case "key":
		if !IsKnownKey(msg.Key) {
			log.Printf("control: unknown key %q ignored", msg.Key)
			return nil
		}
		s.send(gesture.Key(msg.Key))
	case "playPause":
		s.send(gesture.Key(s.playPause.Toggle()))
	case "inputEnabled":
		if msg.Enabled != nil {
			s.session.SetInputEnabled(*msg.Enabled)
		}
	}
	return nil
}

// handleClick sends a discrete press and release from the button bar.
func (s *Server) handleClick(b gesture.Button) error {
	if !b.Valid() {
		return fmt.Errorf("unknown button %q", b)
	}
	s.send(gesture.Click(b, true))
	s.send(gesture.Click(b, false))
	return nil
}

// send forwards a command when input is enabled. Button releases always pass
// so that disabling input never leaves a button held on the host.
func (s *Server) send(cmd gesture.Command) {
	if s.sink == nil {
		return
	}
	release := cmd.Type == gesture.CmdClick && !cmd.Press
	if !release && !s.session.InputEnabled() {
		return
	}
	s.sink.Send(cmd)
}

// handleTracking mirrors the engine's tracking flag to the session and the client.
// It never blocks: only the newest tracking state is kept for the writer.
func (s *Server) handleTracking(on bool) {
	s.session.SetTracking(on)
	enabled := on
	msg := Message{T: "tracking", Enabled: &enabled}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.out == nil {
		return
	}
	select {
	case s.out <- msg:
		return
	default:
	}
	select {
	case <-s.out:
	default:
	}
	select {
	case s.out <- msg:
	default:
	}
}

// writeLoop writes queued messages to conn until out is closed or a write fails.
func writeLoop(conn *websocket.Conn, out <-chan Message) {
	for msg := range out {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("control: write: %v", err)
			_ = conn.Close()
			return
		}
	}
}
