// Package webrtc provides the peer connection carrying the touch datachannel.
package webrtc

import (
	"fmt"
	"log"
	"sync"

	"github.com/pion/interceptor"
	"github.com/pion/webrtc/v3"
)

// TouchChannelLabel is the datachannel label the touch page opens.
const TouchChannelLabel = "touch"

// FrameHandler consumes one datachannel message.
type FrameHandler func(data []byte) error

// Peers creates peer connections and remembers the newest for shutdown.
type Peers struct {
	mu   sync.Mutex
	api  *webrtc.API
	peer *webrtc.PeerConnection
}

// NewPeers initializes a WebRTC API with default codecs/interceptors.
func NewPeers() (*Peers, error) {
	media := &webrtc.MediaEngine{}
	if err := media.RegisterDefaultCodecs(); err != nil {
		return nil, fmt.Errorf("register codecs: %w", err)
	}

	interceptors := &interceptor.Registry{}
	if err := webrtc.RegisterDefaultInterceptors(media, interceptors); err != nil {
		return nil, fmt.Errorf("register interceptors: %w", err)
	}

	api := webrtc.NewAPI(
		webrtc.WithMediaEngine(media),
		webrtc.WithInterceptorRegistry(interceptors),
	)

	return &Peers{api: api}, nil
}

// NewPeer returns a peer that routes touch frames to onFrame. Closing older
// peers is left to their owners.
func (p *Peers) NewPeer(onFrame FrameHandler) (*webrtc.PeerConnection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	peer, err := p.api.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		return nil, err
	}
	peer.OnDataChannel(func(dc *webrtc.DataChannel) {
		attachTouchChannel(dc, onFrame)
	})

	p.peer = peer
	return peer, nil
}

// ClosePeer closes the newest peer connection.
func (p *Peers) ClosePeer() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.peer != nil {
		_ = p.peer.Close()
		p.peer = nil
	}
}

// attachTouchChannel wires message delivery for the touch channel and ignores other labels.
func attachTouchChannel(dc *webrtc.DataChannel, onFrame FrameHandler) {
	if dc.Label() != TouchChannelLabel {
		log.Printf("webrtc: ignoring datachannel %q", dc.Label())
		return
	}
	dc.OnOpen(func() {
		if debugEnabled() {
			log.Printf("webrtc: datachannel %q open", dc.Label())
		}
	})
	dc.OnClose(func() {
		if debugEnabled() {
			log.Printf("webrtc: datachannel %q closed", dc.Label())
		}
	})
	dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		if !msg.IsString || onFrame == nil {
			return
		}
		if err := onFrame(msg.Data); err != nil {
			log.Printf("webrtc: touch frame: %v", err)
		}
	})
}
