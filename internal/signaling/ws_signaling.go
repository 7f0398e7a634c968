package signaling

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	pub "github.com/frudas24/deskpad/internal/webrtc"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v3"
)

// SurfacePolicy controls how a second touch surface is handled.
type SurfacePolicy int

const (
	// SurfaceReject refuses a new surface while one is active.
	SurfaceReject SurfacePolicy = iota
	// SurfaceReplace closes the active surface in favor of the new one.
	SurfaceReplace
)

const writeWait = time.Second

// errStaleSurface is returned for frames arriving from a surface that was closed or replaced.
var errStaleSurface = errors.New("touch surface no longer active")

// Option configures a Server.
type Option func(*Server)

// WithCloseHook runs fn once whenever an active surface goes away.
func WithCloseHook(fn func()) Option {
	return func(s *Server) {
		s.onClose = fn
	}
}

// Server pairs one touch surface at a time with a peer carrying its touch datachannel.
type Server struct {
	mu       sync.Mutex
	upgrader websocket.Upgrader
	peers    *pub.Peers
	onFrame  pub.FrameHandler
	onClose  func()
	policy   SurfacePolicy
	authFn   func() bool
	active   *surface
}

// surface is one touch page: its signaling socket and the peer negotiated over it.
type surface struct {
	id      string
	conn    *websocket.Conn
	writeMu sync.Mutex
	peer    *webrtc.PeerConnection
	closed  atomic.Bool
}

// NewServer creates a signaling server that routes touch frames from the active surface to onFrame.
func NewServer(peers *pub.Peers, onFrame pub.FrameHandler, policy SurfacePolicy, authFn func() bool, opts ...Option) *Server {
	s := &Server{
		peers:   peers,
		onFrame: onFrame,
		policy:  policy,
		authFn:  authFn,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ServeHTTP upgrades the request, claims the surface slot, and runs negotiation.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if s.authFn != nil && !s.authFn() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	sf := &surface{id: uuid.NewString(), conn: conn}
	if err := s.claim(sf); err != nil {
		log.Printf("signal: rejected %s: %v", conn.RemoteAddr(), err)
		msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error())
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}
	log.Printf("signal: surface %s connected from %s", sf.id, conn.RemoteAddr())
	defer s.release(sf)

	peer, err := s.peers.NewPeer(s.route(sf))
	if err != nil {
		log.Printf("signal: %s: new peer: %v", sf.id, err)
		return
	}
	if !s.bindPeer(sf, peer) {
		return
	}

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if err := s.negotiate(sf, msg); err != nil {
			log.Printf("signal: %s: %v", sf.id, err)
			return
		}
	}
}

// claim makes sf the active surface according to the policy.
func (s *Server) claim(sf *surface) error {
	s.mu.Lock()
	prev := s.active
	if prev != nil && s.policy != SurfaceReplace {
		s.mu.Unlock()
		return fmt.Errorf("surface %s already connected", prev.id)
	}
	s.active = sf
	s.mu.Unlock()

	if prev != nil {
		log.Printf("signal: surface %s replaced by %s", prev.id, sf.id)
		s.release(prev)
	}
	return nil
}

// bindPeer attaches the peer to sf and releases sf when its connection fails or closes.
func (s *Server) bindPeer(sf *surface, peer *webrtc.PeerConnection) bool {
	s.mu.Lock()
	if sf.closed.Load() {
		s.mu.Unlock()
		_ = peer.Close()
		return false
	}
	sf.peer = peer
	s.mu.Unlock()

	peer.OnICECandidate(func(c *webrtc.ICECandidate) {
		if c == nil {
			return
		}
		candidate := c.ToJSON()
		_ = sf.send(Message{T: KindICE, Candidate: &candidate})
	})
	peer.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		switch state {
		case webrtc.PeerConnectionStateFailed, webrtc.PeerConnectionStateClosed:
			s.release(sf)
		}
	})
	return true
}

// route returns the frame handler for sf's datachannel; frames stop flowing once sf is released.
func (s *Server) route(sf *surface) pub.FrameHandler {
	return func(data []byte) error {
		if sf.closed.Load() {
			return errStaleSurface
		}
		if s.onFrame == nil {
			return nil
		}
		return s.onFrame(data)
	}
}

// release closes sf once, frees the slot if sf still holds it, and runs the close hook.
func (s *Server) release(sf *surface) {
	if !sf.closed.CompareAndSwap(false, true) {
		return
	}
	s.mu.Lock()
	if s.active == sf {
		s.active = nil
	}
	peer := sf.peer
	s.mu.Unlock()

	if peer != nil {
		_ = peer.Close()
	}
	if sf.conn != nil {
		_ = sf.conn.Close()
	}
	log.Printf("signal: surface %s closed", sf.id)
	if s.onClose != nil {
		s.onClose()
	}
}

// negotiate applies one signaling message from sf.
func (s *Server) negotiate(sf *surface, msg Message) error {
	switch msg.T {
	case KindOffer:
		answer, err := answerOffer(sf.peer, msg.SDP)
		if err != nil {
			return fmt.Errorf("offer: %w", err)
		}
		return sf.send(Message{T: KindAnswer, SDP: answer})
	case KindICE:
		if msg.Candidate == nil {
			return nil
		}
		return sf.peer.AddICECandidate(*msg.Candidate)
	default:
		return nil
	}
}

// answerOffer applies a remote offer and returns the fully gathered local answer.
func answerOffer(peer *webrtc.PeerConnection, sdp string) (string, error) {
	if sdp == "" {
		return "", errors.New("empty offer")
	}
	offer := webrtc.SessionDescription{Type: webrtc.SDPTypeOffer, SDP: sdp}
	if err := peer.SetRemoteDescription(offer); err != nil {
		return "", err
	}
	answer, err := peer.CreateAnswer(nil)
	if err != nil {
		return "", err
	}
	gathered := webrtc.GatheringCompletePromise(peer)
	if err := peer.SetLocalDescription(answer); err != nil {
		return "", err
	}
	<-gathered
	local := peer.LocalDescription()
	if local == nil {
		return "", errors.New("missing local description")
	}
	return local.SDP, nil
}

// send writes msg to sf's socket unless sf was released.
func (sf *surface) send(msg Message) error {
	if sf.closed.Load() {
		return errStaleSurface
	}
	sf.writeMu.Lock()
	defer sf.writeMu.Unlock()
	if err := sf.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return sf.conn.WriteJSON(msg)
}
