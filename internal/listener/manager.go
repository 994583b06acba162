package listener

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jademud/jademud/internal/player"
)

// ConnectionManager is the seam between transports and the player layer:
// listeners hand it normalized line streams and it runs one game session
// per stream, absorbing session failures so a bad connection never takes
// a listener down.
type ConnectionManager struct {
	pm   *player.Manager
	live atomic.Int64
}

func NewConnectionManager(pm *player.Manager) *ConnectionManager {
	return &ConnectionManager{
		pm: pm,
	}
}

// Live reports the number of sessions currently running.
func (m *ConnectionManager) Live() int64 {
	return m.live.Load()
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	m.live.Add(1)
	start := time.Now()
	defer func() {
		m.live.Add(-1)
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "session panicked", "panic", r, "duration", time.Since(start))
		}
	}()

	if err := m.pm.RunSession(ctx, conn); err != nil {
		slog.WarnContext(ctx, "session ended with error", "error", err, "duration", time.Since(start))
	}
}
