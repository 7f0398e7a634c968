// Package app wires HTTP, signaling, and the gesture pipeline together.
package app

import (
	"errors"

	"github.com/frudas24/deskpad/internal/config"
	"github.com/frudas24/deskpad/internal/control"
	"github.com/frudas24/deskpad/internal/gesture"
	"github.com/frudas24/deskpad/internal/hostlink"
	"github.com/frudas24/deskpad/internal/session"
	"github.com/frudas24/deskpad/internal/signaling"
	"github.com/frudas24/deskpad/internal/webrtc"
)

// App coordinates the HTTP API and the websocket servers feeding the gesture engine.
type App struct {
	cfg       config.Config
	session   *session.Session
	peers     *webrtc.Peers
	signaling *signaling.Server
	control   *control.Server
	host      *hostlink.Receiver
}

// New creates a new application with its dependencies wired.
// Commands produced by the engine go to sink; a non-nil local sink also
// serves /ws/host when cfg.HostToken is set.
func New(cfg config.Config, sess *session.Session, sink gesture.Sink, local gesture.Sink, peers *webrtc.Peers, policy signaling.SurfacePolicy, opts ...gesture.Option) (*App, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if sink == nil {
		return nil, errors.New("command sink is required")
	}
	if peers == nil {
		return nil, errors.New("webrtc peers are required")
	}

	app := &App{
		cfg:     cfg,
		session: sess,
		peers:   peers,
	}
	app.control = control.NewServer(sess, sink, opts...)
	app.signaling = signaling.NewServer(peers, app.control.HandleFrame, policy, sess.IsAuthenticated,
		signaling.WithCloseHook(app.control.Engine().Reset))
	if local != nil && cfg.HostToken != "" {
		app.host = hostlink.NewReceiver(cfg.HostToken, local)
	}
	return app, nil
}

// Stop releases held input and closes the active peer.
func (a *App) Stop() error {
	a.control.Engine().Reset()
	a.peers.ClosePeer()
	return nil
}

// Signaling returns the signaling websocket handler.
func (a *App) Signaling() *signaling.Server {
	return a.signaling
}

// Control returns the control websocket handler.
func (a *App) Control() *control.Server {
	return a.control
}

// Host returns the forwarded command receiver, or nil when disabled.
func (a *App) Host() *hostlink.Receiver {
	return a.host
}
