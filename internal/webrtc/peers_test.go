package webrtc

import (
	"testing"
	"time"

	"github.com/pion/webrtc/v3"
)

// TestPeers_TouchChannelDeliversFrames verifies frames on the touch channel reach the handler.
func TestPeers_TouchChannelDeliversFrames(t *testing.T) {
	peers, err := NewPeers()
	if err != nil {
		t.Fatalf("NewPeers failed: %v", err)
	}
	defer peers.ClosePeer()

	frames := make(chan string, 1)
	answerer, err := peers.NewPeer(func(data []byte) error {
		frames <- string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("NewPeer failed: %v", err)
	}

	offerer, err := webrtc.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		t.Fatalf("offerer failed: %v", err)
	}
	defer offerer.Close()

	dc, err := offerer.CreateDataChannel(TouchChannelLabel, nil)
	if err != nil {
		t.Fatalf("CreateDataChannel failed: %v", err)
	}
	dc.OnOpen(func() {
		_ = dc.SendText(`{"t":"touchstart"}`)
	})

	if err := signalPair(offerer, answerer); err != nil {
		t.Fatalf("signaling failed: %v", err)
	}

	select {
	case got := <-frames:
		if got != `{"t":"touchstart"}` {
			t.Fatalf("unexpected frame %q", got)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("timed out waiting for datachannel frame")
	}
}

// signalPair exchanges a non-trickle offer/answer between two local peers.
func signalPair(offerer, answerer *webrtc.PeerConnection) error {
	offer, err := offerer.CreateOffer(nil)
	if err != nil {
		return err
	}
	offerGathered := webrtc.GatheringCompletePromise(offerer)
	if err := offerer.SetLocalDescription(offer); err != nil {
		return err
	}
	<-offerGathered

	if err := answerer.SetRemoteDescription(*offerer.LocalDescription()); err != nil {
		return err
	}
	answer, err := answerer.CreateAnswer(nil)
	if err != nil {
		return err
	}
	answerGathered := webrtc.GatheringCompletePromise(answerer)
	if err := answerer.SetLocalDescription(answer); err != nil {
		return err
	}
	<-answerGathered
	return offerer.SetRemoteDescription(*answerer.LocalDescription())
}
