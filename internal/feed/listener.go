// Package feed ingests TickManifest frames streamed over a websocket
// connection, so the verification engine can run against a live
// simulator the same way it runs against a file (spec.md §6.1, §6.4).
package feed

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/nomai-verify/internal/manifest"
)

// Listener is a websocket server the simulator dials to stream
// manifests into. Each accepted connection feeds the same channel, so
// a caller draining Manifests() never sees which connection a frame
// came from.
type Listener struct {
	upgrader  websocket.Upgrader
	logger    *log.Logger
	manifests chan manifest.TickManifest
	snapshots chan manifest.EngineSnapshot
	replays   chan manifest.ReplayLog

	mux        *http.ServeMux
	httpServer *http.Server

	mu       sync.Mutex
	lastTick *manifest.Tick
}

// NewListener returns a Listener with a bounded manifest channel of
// the given depth.
func NewListener(logger *log.Logger, bufSize int) *Listener {
	if logger == nil {
		logger = log.Default()
	}
	l := &Listener{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger:    logger.WithPrefix("feed"),
		manifests: make(chan manifest.TickManifest, bufSize),
		snapshots: make(chan manifest.EngineSnapshot, 1),
		replays:   make(chan manifest.ReplayLog, 1),
		mux:       http.NewServeMux(),
	}
	l.mux.HandleFunc("/manifests", l.handleManifests)
	return l
}

// Manifests returns the channel a consumer drains TickManifest frames
// from.
func (l *Listener) Manifests() <-chan manifest.TickManifest { return l.manifests }

// Snapshots returns the channel opaque EngineSnapshot blobs arrive on.
func (l *Listener) Snapshots() <-chan manifest.EngineSnapshot { return l.snapshots }

// ReplayLogs returns the channel opaque ReplayLog blobs arrive on.
func (l *Listener) ReplayLogs() <-chan manifest.ReplayLog { return l.replays }

// Serve accepts connections on listener until ctx is cancelled.
func (l *Listener) Serve(ctx context.Context, ln net.Listener) error {
	l.httpServer = &http.Server{Handler: l.mux}

	errCh := make(chan error, 1)
	go func() { errCh <- l.httpServer.Serve(ln) }()

	select {
	case <-ctx.Done():
		return l.httpServer.Close()
	case err := <-errCh:
		return err
	}
}

type feedFrame struct {
	Manifest *manifest.TickManifest  `json:"manifest,omitempty"`
	Snapshot *manifest.EngineSnapshot `json:"snapshot,omitempty"`
	Replay   *manifest.ReplayLog      `json:"replay,omitempty"`
}

func (l *Listener) handleManifests(w http.ResponseWriter, r *http.Request) {
	conn, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.logger.Error("upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				l.logger.Warn("connection closed unexpectedly", "err", err)
			}
			return
		}

		var frame feedFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			l.logger.Error("malformed feed frame", "err", err)
			continue
		}

		switch {
		case frame.Manifest != nil:
			if !l.acceptInOrder(*frame.Manifest) {
				l.logger.Error("out-of-order manifest rejected", "tick", frame.Manifest.Tick)
				continue
			}
			l.manifests <- *frame.Manifest
		case frame.Snapshot != nil:
			l.snapshots <- *frame.Snapshot
		case frame.Replay != nil:
			l.replays <- *frame.Replay
		}
	}
}

// acceptInOrder rejects a manifest whose tick doesn't strictly
// increase from the last one accepted — a transport bug, not a
// simulator design choice (spec.md §3's TickManifest sequence
// invariant is enforced here, at the wire boundary).
func (l *Listener) acceptInOrder(m manifest.TickManifest) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lastTick != nil && m.Tick <= *l.lastTick {
		return false
	}
	tick := m.Tick
	l.lastTick = &tick
	return true
}

// Drain collects every manifest pending on the channel without
// blocking past the channel's current contents, for a caller that
// wants a []TickManifest slice the same shape a file-based run would
// build.
func Drain(ch <-chan manifest.TickManifest) []manifest.TickManifest {
	var out []manifest.TickManifest
	for {
		select {
		case m := <-ch:
			out = append(out, m)
		default:
			return out
		}
	}
}

// DrainIdle collects manifests from ch until idle has elapsed since the
// last one arrived (or since the call began, if none ever arrive), using
// clock so tests can control the passage of time instead of racing a
// live simulator connection. A plain Drain immediately after starting a
// Listener would almost always return empty, since the simulator hasn't
// dialed in yet; DrainIdle is what cmd/nomai-verify's --feed mode
// actually waits on.
func DrainIdle(ctx context.Context, ch <-chan manifest.TickManifest, clock quartz.Clock, idle time.Duration) []manifest.TickManifest {
	var out []manifest.TickManifest
	timer := clock.NewTimer(idle)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return out
		case <-timer.C:
			return out
		case m, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, m)
			timer.Reset(idle)
		}
	}
}
