package net

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"PenBoard/internal/canvas"
	"PenBoard/internal/config"
	"PenBoard/internal/export"
	"PenBoard/internal/lang"
)

// Host shares one drawing session with every connected peer. Commands
// from all peers run one at a time against the same pen.
type Host struct {
	mu     sync.Mutex
	interp *lang.Interpreter
	raster *export.Raster
	rec    *canvas.Recorder

	peers    *PeerManager
	upgrader websocket.Upgrader
	log      *slog.Logger
}

// NewHost creates a session sized by cfg.Canvas.
func NewHost(cfg config.Config, log *slog.Logger) *Host {
	if log == nil {
		log = slog.Default()
	}
	bg := cfg.BackgroundColor()
	h := &Host{
		raster: export.NewRaster(cfg.Canvas.Width, cfg.Canvas.Height, cfg.Pen.Width, bg),
		rec:    canvas.NewRecorder(cfg.Canvas.Width, cfg.Canvas.Height),
		peers:  NewPeerManager(log),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log,
	}
	h.rec.OnDraw = func(p canvas.Primitive) {
		h.peers.Broadcast(Message{Type: TypeDraw, Primitive: &p}, nil)
	}
	h.interp = lang.New(canvas.Tee{h.raster, h.rec}, lang.WithBackground(bg))
	return h
}

// Site identifies the primitives this host emits.
func (h *Host) Site() string { return h.rec.Site() }

// Handle executes one client message and returns the reply.
func (h *Host) Handle(msg Message) Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	var err error
	switch msg.Type {
	case TypeCommand:
		err = h.interp.Execute(msg.Text)
	case TypeRun:
		err = h.interp.Run(msg.Text)
	case TypeCheck:
		err = h.interp.Check(msg.Text)
	default:
		err = fmt.Errorf("unknown message type %q", msg.Type)
	}

	pen := h.interp.Pen()
	reply := Message{Type: TypeResult, OK: err == nil, Pen: &pen}
	if err != nil {
		reply.Error = err.Error()
		h.log.Debug("request failed", "type", msg.Type, "err", err)
	}
	return reply
}

// Handler serves /ws and /canvas.png.
func (h *Host) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	mux.HandleFunc("/canvas.png", h.servePNG)
	return mux
}

func (h *Host) servePNG(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	h.mu.Lock()
	err := h.raster.EncodePNG(&buf)
	h.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

func (h *Host) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "err", err)
		return
	}

	peer := NewPeer(conn)
	defer peer.Close()

	// The snapshot is queued under the session lock, ahead of any draw
	// broadcast that follows it.
	h.mu.Lock()
	h.peers.Add(peer)
	err = peer.Send(Message{Type: TypeSnapshot, Primitives: h.rec.Primitives()})
	h.mu.Unlock()
	defer h.peers.Remove(peer)
	if err != nil {
		h.log.Warn("sending snapshot", "addr", peer.Addr(), "err", err)
		return
	}

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debug("peer read ended", "addr", peer.Addr(), "err", err)
			}
			return
		}
		h.log.Debug("received", "type", msg.Type, "addr", peer.Addr())
		if err := peer.Send(h.Handle(msg)); err != nil {
			h.log.Warn("sending result", "addr", peer.Addr(), "err", err)
			return
		}
	}
}

// Serve listens on addr until ctx is done.
func (h *Host) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		h.log.Info("host listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
