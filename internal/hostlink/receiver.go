// Package hostlink forwards gesture commands to a remote DeskPad host.
package hostlink

import (
	"crypto/subtle"
	"encoding/json"
	"log"
	"net/http"

	"github.com/frudas24/deskpad/internal/gesture"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Receiver accepts forwarded commands and applies them to a local sink.
type Receiver struct {
	token    string
	sink     gesture.Sink
	upgrader websocket.Upgrader
}

// NewReceiver returns a receiver that requires token on every connection.
func NewReceiver(token string, sink gesture.Sink) *Receiver {
	return &Receiver{
		token: token,
		sink:  sink,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 1024,
		},
	}
}

// ServeHTTP upgrades authorized requests and applies each decoded command.
func (r *Receiver) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if !r.authorized(req) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	log.Printf("hostlink: forwarder %s connected from %s", id, conn.RemoteAddr())
	held := map[gesture.Button]bool{}
	defer func() {
		r.releaseHeld(id, held)
		log.Printf("hostlink: forwarder %s disconnected", id)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd gesture.Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			log.Printf("hostlink: %s: bad command: %v", id, err)
			continue
		}
		if cmd.Type == gesture.CmdClick {
			if cmd.Press {
				held[cmd.Button] = true
			} else {
				delete(held, cmd.Button)
			}
		}
		r.sink.Send(cmd)
	}
}

// releaseHeld sends a release for every button a departed forwarder left pressed.
func (r *Receiver) releaseHeld(id string, held map[gesture.Button]bool) {
	for _, b := range []gesture.Button{gesture.ButtonLeft, gesture.ButtonRight, gesture.ButtonMiddle} {
		if !held[b] {
			continue
		}
		log.Printf("hostlink: forwarder %s left %s held; releasing", id, b)
		r.sink.Send(gesture.Click(b, false))
	}
}

// authorized compares the request token in constant time.
func (r *Receiver) authorized(req *http.Request) bool {
	if r.token == "" {
		return false
	}
	got := req.Header.Get(TokenHeader)
	return subtle.ConstantTimeCompare([]byte(got), []byte(r.token)) == 1
}
