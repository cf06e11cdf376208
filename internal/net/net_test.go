package net

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PenBoard/internal/canvas"
	"PenBoard/internal/config"
	"PenBoard/internal/state"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHost(t *testing.T) (*Host, *httptest.Server) {
	t.Helper()
	cfg := config.Default()
	cfg.Canvas.Width, cfg.Canvas.Height = 200, 150
	h := NewHost(cfg, quietLogger())
	srv := httptest.NewServer(h.Handler())
	t.Cleanup(srv.Close)
	return h, srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

type testClient struct {
	*Client
	msgs chan Message
}

func dialTest(t *testing.T, srv *httptest.Server) *testClient {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Dial(ctx, wsURL(srv))
	require.NoError(t, err)

	tc := &testClient{Client: c, msgs: make(chan Message, 64)}
	go func() {
		_ = c.Listen(func(m Message) { tc.msgs <- m })
		close(tc.msgs)
	}()
	t.Cleanup(func() { _ = c.Close() })
	return tc
}

// next waits for the next message of the given type, dropping others.
func (tc *testClient) next(t *testing.T, typ MessageType) Message {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case m, ok := <-tc.msgs:
			require.True(t, ok, "connection closed while waiting for %s", typ)
			if m.Type == typ {
				return m
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s", typ)
		}
	}
}

func TestHostHandle(t *testing.T) {
	h, _ := newTestHost(t)

	reply := h.Handle(Message{Type: TypeCommand, Text: "moveto 10,20"})
	assert.True(t, reply.OK)
	require.NotNil(t, reply.Pen)
	assert.Equal(t, state.Point{X: 10, Y: 20}, reply.Pen.Position)

	reply = h.Handle(Message{Type: TypeCheck, Text: "pen red\ncircle 0"})
	assert.False(t, reply.OK)
	assert.Equal(t, "line 2: 'circle': negative or zero radius 0", reply.Error)

	reply = h.Handle(Message{Type: TypeRun, Text: "pen red\nfill on\nrectangle 5,5"})
	assert.True(t, reply.OK)
	assert.Equal(t, state.Red, reply.Pen.Color)

	reply = h.Handle(Message{Type: "dance"})
	assert.False(t, reply.OK)
	assert.Contains(t, reply.Error, `unknown message type "dance"`)
}

func TestHostSessionOverWebsocket(t *testing.T) {
	h, srv := newTestHost(t)
	require.True(t, h.Handle(Message{Type: TypeCommand, Text: "moveto 50,50"}).OK)

	a := dialTest(t, srv)
	snap := a.next(t, TypeSnapshot)
	// initial marker, erase and new marker
	assert.Len(t, snap.Primitives, 3)

	b := dialTest(t, srv)
	b.next(t, TypeSnapshot)

	require.NoError(t, a.Send(TypeCommand, "drawto 60,60"))
	res := a.next(t, TypeResult)
	assert.True(t, res.OK, res.Error)
	assert.Equal(t, state.Point{X: 60, Y: 60}, res.Pen.Position)

	// b sees the same erase, line and marker
	var ops []canvas.Op
	for range 3 {
		m := b.next(t, TypeDraw)
		ops = append(ops, m.Primitive.Op)
		assert.Equal(t, h.Site(), m.Primitive.Site)
	}
	assert.Equal(t, []canvas.Op{canvas.OpEllipse, canvas.OpLine, canvas.OpEllipse}, ops)

	require.NoError(t, b.Send(TypeCommand, "moveto 999,0"))
	res = b.next(t, TypeResult)
	assert.False(t, res.OK)
	assert.Contains(t, res.Error, "greater than the canvas width 200")

	// round trip on a ensures its replica has caught up
	require.NoError(t, a.Send(TypeCheck, "reset"))
	a.next(t, TypeResult)
	assert.Len(t, a.Replica().Primitives(), 6)
}

func TestHostCanvasPNG(t *testing.T) {
	h, srv := newTestHost(t)
	require.True(t, h.Handle(Message{Type: TypeRun, Text: "moveto 20,20\nfill on\nrectangle 30,30"}).OK)

	resp, err := http.Get(srv.URL + "/canvas.png")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}

func TestHostServeStopsOnCancel(t *testing.T) {
	h, _ := newTestHost(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Serve(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
	}
}

func TestReplica(t *testing.T) {
	src := canvas.NewRecorder(10, 10)
	src.DrawLine(state.Point{}, state.Point{X: 1, Y: 1}, state.Black)
	src.Ellipse(state.Point{}, 3, state.Red, true)

	r := NewReplica()
	assert.Equal(t, 2, r.Merge(src.Primitives()))
	assert.Zero(t, r.Merge(src.Primitives()))
	assert.Equal(t, uint64(2), r.Latest())

	// same seq from another site is a different primitive
	other := src.Primitives()[0]
	other.Site = "elsewhere"
	assert.True(t, r.Add(other))
	assert.Len(t, r.Primitives(), 3)

	src.Clear(state.Yellow)
	r.Merge(src.Primitives())
	require.Len(t, r.Primitives(), 1)
	assert.Equal(t, canvas.OpClear, r.Primitives()[0].Op)

	dst := canvas.NewRecorder(10, 10)
	r.Replay(dst)
	assert.Equal(t, 1, dst.Len())
}

func TestShareURL(t *testing.T) {
	assert.Equal(t, "ws://192.168.1.4:8888/ws", ShareURL("192.168.1.4", 8888))
	assert.Equal(t, "ws://[::1]:80/ws", ShareURL("::1", 80))
	assert.NotEmpty(t, OutgoingIP())
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, dedupe([]string{"a", "b", "a"}))
}

func TestPeerManagerBroadcastWithoutPeers(t *testing.T) {
	pm := NewPeerManager(quietLogger())
	pm.Broadcast(Message{Type: TypeDraw}, nil)
	assert.Zero(t, pm.Len())
}

func TestReplicaOutOfOrder(t *testing.T) {
	src := canvas.NewRecorder(10, 10)
	src.DrawLine(state.Point{}, state.Point{X: 1, Y: 1}, state.Black) // seq 1
	src.Clear(state.Yellow)                                            // seq 2
	src.DrawLine(state.Point{}, state.Point{X: 2, Y: 2}, state.Red)    // seq 3
	src.Ellipse(state.Point{}, 3, state.Red, true)                     // seq 4
	prims := src.Primitives()
	require.Len(t, prims, 3)

	// the newest draw arrives before the snapshot that holds the clear
	r := NewReplica()
	assert.True(t, r.Add(prims[2]))
	assert.Equal(t, 2, r.Merge(prims))

	var seqs []uint64
	var ops []canvas.Op
	for _, p := range r.Primitives() {
		seqs = append(seqs, p.Seq)
		ops = append(ops, p.Op)
	}
	assert.Equal(t, []uint64{2, 3, 4}, seqs)
	assert.Equal(t, []canvas.Op{canvas.OpClear, canvas.OpLine, canvas.OpEllipse}, ops)

	// a primitive sequenced before the clear stays cleared
	stale := prims[0]
	stale.Seq = 1
	stale.Op = canvas.OpLine
	assert.False(t, r.Add(stale))
	assert.Len(t, r.Primitives(), 3)
}

func TestPeerSendQueue(t *testing.T) {
	_, srv := newTestHost(t)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)

	// no writer runs, so the queue holds exactly one message
	p := newPeer(conn, 1)
	require.NoError(t, p.Send(Message{Type: TypeCommand, Text: "moveto 1,1"}))
	assert.ErrorIs(t, p.Send(Message{Type: TypeCommand, Text: "moveto 2,2"}), errSlowPeer)
	assert.ErrorIs(t, p.Send(Message{Type: TypeCommand, Text: "moveto 3,3"}), errPeerClosed)
	p.Close()
}

func TestHostJoinWhileDrawing(t *testing.T) {
	h, srv := newTestHost(t)
	require.True(t, h.Handle(Message{Type: TypeRun, Text: "moveto 10,10\nclear\nmoveto 20,20"}).OK)

	a := dialTest(t, srv)
	a.next(t, TypeSnapshot)

	const commands = 30
	sent := make(chan error, 1)
	go func() {
		for i := range commands {
			if err := a.Send(TypeCommand, fmt.Sprintf("moveto %d,%d", 20+i, 20+i)); err != nil {
				sent <- err
				return
			}
		}
		sent <- nil
	}()

	b := dialTest(t, srv)
	require.NoError(t, <-sent)
	for range commands {
		res := a.next(t, TypeResult)
		require.True(t, res.OK, res.Error)
	}

	// b's answer is queued after every draw from a's commands
	require.NoError(t, b.Send(TypeCheck, "pen red"))
	require.True(t, b.next(t, TypeResult).OK)

	if diff := cmp.Diff(h.rec.Primitives(), b.Replica().Primitives()); diff != "" {
		t.Errorf("replica differs from host (-host +replica):\n%s", diff)
	}
}
