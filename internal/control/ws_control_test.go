package control

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/frudas24/deskpad/internal/gesture"
	"github.com/frudas24/deskpad/internal/session"
	"github.com/frudas24/deskpad/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *session.Session, *testutil.RecordingSink) {
	t.Helper()
	sess := session.New("pw")
	require.True(t, sess.Authenticate("pw"))
	sink := &testutil.RecordingSink{}
	return NewServer(sess, sink), sess, sink
}

func touchMsg(kind string, ts float64, touches ...gesture.Sample) Message {
	return Message{T: kind, TS: ts, Touches: touches}
}

// TestHandleMessage_TwoFingerTap verifies touch messages drive the engine.
func TestHandleMessage_TwoFingerTap(t *testing.T) {
	s, _, sink := newTestServer(t)
	a := gesture.Sample{ID: 1, X: 100, Y: 100}
	b := gesture.Sample{ID: 2, X: 200, Y: 100}

	require.NoError(t, s.HandleMessage(touchMsg("touchstart", 10, a, b)))
	require.NoError(t, s.HandleMessage(touchMsg("touchcancel", 60, a, b)))

	want := []gesture.Command{
		gesture.Click(gesture.ButtonRight, true),
		gesture.Click(gesture.ButtonRight, false),
	}
	if diff := cmp.Diff(want, sink.Commands()); diff != "" {
		t.Fatalf("unexpected commands (-want +got):\n%s", diff)
	}
	assert.False(t, s.Engine().IsTracking())
}

// TestHandleMessage_InputDisabled verifies the kill switch blocks every command.
func TestHandleMessage_InputDisabled(t *testing.T) {
	s, sess, sink := newTestServer(t)
	sess.SetInputEnabled(false)

	require.NoError(t, s.HandleMessage(Message{T: "click", Button: "left"}))
	require.NoError(t, s.HandleMessage(Message{T: "key", Key: "esc"}))
	assert.Empty(t, sink.Commands())
}

// TestHandleMessage_ButtonBar verifies scroll toggle, discrete clicks, and the keyboard flag.
func TestHandleMessage_ButtonBar(t *testing.T) {
	s, sess, sink := newTestServer(t)
	on := true

	require.NoError(t, s.HandleMessage(Message{T: "scrollMode", Enabled: &on}))
	require.NoError(t, s.HandleMessage(Message{T: "keyboard", Enabled: &on}))
	require.NoError(t, s.HandleMessage(Message{T: "click", Button: "right"}))
	require.Error(t, s.HandleMessage(Message{T: "click", Button: "fourth"}))

	assert.True(t, s.Engine().ScrollMode())
	snap := sess.Snapshot()
	assert.True(t, snap.ScrollMode)
	assert.True(t, snap.KeyboardOpen)
	want := []gesture.Command{
		gesture.Click(gesture.ButtonRight, true),
		gesture.Click(gesture.ButtonRight, false),
	}
	assert.Equal(t, want, sink.Commands())
}

// TestHandleMessage_Keys verifies catalog filtering and the play/pause latch.
func TestHandleMessage_Keys(t *testing.T) {
	s, _, sink := newTestServer(t)

	require.NoError(t, s.HandleMessage(Message{T: "key", Key: "f5"}))
	require.NoError(t, s.HandleMessage(Message{T: "key", Key: "notakey"}))
	require.NoError(t, s.HandleMessage(Message{T: "playPause"}))
	require.NoError(t, s.HandleMessage(Message{T: "playPause"}))

	want := []gesture.Command{gesture.Key("f5"), gesture.Key("audioplay"), gesture.Key("audiopause")}
	assert.Equal(t, want, sink.Commands())
}

// TestHandleMessage_Sensitivity verifies valid values reach the engine and session.
func TestHandleMessage_Sensitivity(t *testing.T) {
	s, sess, _ := newTestServer(t)

	require.NoError(t, s.HandleMessage(Message{T: "sensitivity", Value: 2}))
	require.NoError(t, s.HandleMessage(Message{T: "sensitivity", Value: -1}))

	assert.Equal(t, 2.0, s.Engine().Sensitivity())
	assert.Equal(t, 2.0, sess.Sensitivity())
}

// TestHandleFrame_RejectsGarbage verifies undecodable frames return an error.
func TestHandleFrame_RejectsGarbage(t *testing.T) {
	s, _, _ := newTestServer(t)
	assert.Error(t, s.HandleFrame([]byte("{")))
	assert.NoError(t, s.HandleFrame([]byte(`{"t":"key","key":"tab"}`)))
}

// TestServeHTTP_Unauthorized verifies the websocket requires a login.
func TestServeHTTP_Unauthorized(t *testing.T) {
	sess := session.New("pw")
	s := NewServer(sess, &testutil.RecordingSink{})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/control", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// TestServeHTTP_TapOverWebsocket verifies a tap over the wire reports tracking and clicks left.
func TestServeHTTP_TapOverWebsocket(t *testing.T) {
	s, _, sink := newTestServer(t)
	srv := httptest.NewServer(s)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	p := gesture.Sample{ID: 7, X: 100, Y: 100}
	require.NoError(t, conn.WriteJSON(touchMsg("touchstart", 1000, p)))

	var msg Message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "tracking", msg.T)
	require.NotNil(t, msg.Enabled)
	assert.True(t, *msg.Enabled)

	require.NoError(t, conn.WriteJSON(touchMsg("touchend", 1040, p)))
	require.NoError(t, conn.ReadJSON(&msg))
	require.NotNil(t, msg.Enabled)
	assert.False(t, *msg.Enabled)

	require.Eventually(t, func() bool { return len(sink.Commands()) == 2 }, 2*time.Second, 10*time.Millisecond)
	want := []gesture.Command{
		gesture.Click(gesture.ButtonLeft, true),
		gesture.Click(gesture.ButtonLeft, false),
	}
	assert.Equal(t, want, sink.Commands())
}

// TestHandleMessage_DisableInputMidDragReleases verifies turning input off never strands a held button.
func TestHandleMessage_DisableInputMidDragReleases(t *testing.T) {
	s, _, sink := newTestServer(t)
	p := gesture.Sample{ID: 1, X: 100, Y: 100}
	off := false

	require.NoError(t, s.HandleMessage(touchMsg("touchstart", 1000, p)))
	require.NoError(t, s.HandleMessage(touchMsg("touchend", 1040, p)))
	require.NoError(t, s.HandleMessage(touchMsg("touchstart", 1100, p)))
	require.Equal(t, gesture.StateLatchedDragging, s.Engine().State())

	require.NoError(t, s.HandleMessage(Message{T: "inputEnabled", Enabled: &off}))
	require.NoError(t, s.HandleMessage(touchMsg("touchmove", 1500, gesture.Sample{ID: 1, X: 180, Y: 100})))
	require.NoError(t, s.HandleMessage(touchMsg("touchend", 1600, p)))
	s.Engine().Reset()

	want := []gesture.Command{
		gesture.Click(gesture.ButtonLeft, true),
		gesture.Click(gesture.ButtonLeft, false),
	}
	if diff := cmp.Diff(want, sink.Commands()); diff != "" {
		t.Fatalf("unexpected commands (-want +got):\n%s", diff)
	}
}

// TestHandleMessage_DisconnectReleasesWhileDisabled verifies the disconnect reset still releases.
func TestHandleMessage_DisconnectReleasesWhileDisabled(t *testing.T) {
	s, sess, sink := newTestServer(t)
	p := gesture.Sample{ID: 1, X: 100, Y: 100}

	require.NoError(t, s.HandleMessage(touchMsg("touchstart", 1000, p)))
	require.NoError(t, s.HandleMessage(touchMsg("touchend", 1040, p)))
	sess.SetInputEnabled(false)
	s.Engine().Reset()

	cmds := sink.Commands()
	require.NotEmpty(t, cmds)
	assert.Equal(t, gesture.Click(gesture.ButtonLeft, false), cmds[len(cmds)-1])
}

// TestHandleTracking_NeverBlocks verifies a stalled writer cannot hold up the engine.
func TestHandleTracking_NeverBlocks(t *testing.T) {
	s, _, _ := newTestServer(t)
	out := make(chan Message, 1)
	s.mu.Lock()
	s.out = out
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			s.handleTracking(i%2 == 0)
		}
		s.handleTracking(false)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("handleTracking blocked on a full writer queue")
	}

	msg := <-out
	require.NotNil(t, msg.Enabled)
	assert.False(t, *msg.Enabled)
}
