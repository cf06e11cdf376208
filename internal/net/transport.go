package net

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendQueue = 256
	writeWait = 10 * time.Second
)

var (
	errPeerClosed = errors.New("peer closed")
	errSlowPeer   = errors.New("peer send queue full")
)

// Peer is one websocket connection. Messages are queued and written by a
// single goroutine, so a slow peer never blocks the sender. A peer whose
// queue fills up is closed.
type Peer struct {
	conn *websocket.Conn
	out  chan Message
	quit chan struct{}
	once sync.Once
}

// NewPeer wraps conn and starts its writer.
func NewPeer(conn *websocket.Conn) *Peer {
	p := newPeer(conn, sendQueue)
	go p.writeLoop()
	return p
}

func newPeer(conn *websocket.Conn, size int) *Peer {
	return &Peer{
		conn: conn,
		out:  make(chan Message, size),
		quit: make(chan struct{}),
	}
}

// Addr returns the remote address.
func (p *Peer) Addr() string { return p.conn.RemoteAddr().String() }

// Send queues msg. Messages are written in the order they were queued.
func (p *Peer) Send(msg Message) error {
	select {
	case <-p.quit:
		return errPeerClosed
	default:
	}
	select {
	case p.out <- msg:
		return nil
	default:
		p.Close()
		return errSlowPeer
	}
}

// Close stops the writer and closes the connection. It is safe to call
// more than once.
func (p *Peer) Close() {
	p.once.Do(func() {
		close(p.quit)
		_ = p.conn.Close()
	})
}

func (p *Peer) writeLoop() {
	for {
		select {
		case msg := <-p.out:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteJSON(msg); err != nil {
				p.Close()
				return
			}
		case <-p.quit:
			return
		}
	}
}

// PeerManager tracks the peers connected to a host.
type PeerManager struct {
	peers map[*Peer]bool
	mu    sync.RWMutex
	log   *slog.Logger
}

// NewPeerManager creates an empty manager.
func NewPeerManager(log *slog.Logger) *PeerManager {
	return &PeerManager{
		peers: make(map[*Peer]bool),
		log:   log,
	}
}

func (pm *PeerManager) Add(p *Peer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.peers[p] = true
	pm.log.Info("peer connected", "addr", p.Addr(), "peers", len(pm.peers))
}

func (pm *PeerManager) Remove(p *Peer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.peers, p)
	pm.log.Info("peer disconnected", "addr", p.Addr(), "peers", len(pm.peers))
}

// Len returns the number of connected peers.
func (pm *PeerManager) Len() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// Broadcast queues msg for every peer except exclude, which may be nil.
// It does not wait for any write.
func (pm *PeerManager) Broadcast(msg Message, exclude *Peer) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	for p := range pm.peers {
		if p == exclude {
			continue
		}
		if err := p.Send(msg); err != nil {
			pm.log.Warn("broadcast failed", "addr", p.Addr(), "err", err)
		}
	}
}
