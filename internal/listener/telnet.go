package listener

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"syscall"

	"github.com/iammegalith/telnet"
	log "github.com/pixil98/go-log"
	"github.com/sirupsen/logrus"
)

// TelnetListener serves the game over plain telnet. Negotiation is left to
// the library; each accepted connection becomes one line-based session.
type TelnetListener struct {
	port uint16
	cm   *ConnectionManager
}

func NewTelnetListener(port uint16, cm *ConnectionManager) *TelnetListener {
	return &TelnetListener{
		port: port,
		cm:   cm,
	}
}

func (l *TelnetListener) Start(ctx context.Context) error {
	// Sessions share one context so shutdown reaches all of them at once.
	sessCtx, cancelSessions := context.WithCancel(context.Background())

	sessions := &telnetSessions{
		cm:     l.cm,
		logger: log.GetLogger(ctx),
		ctx:    sessCtx,
		cancel: cancelSessions,
	}

	svr := telnet.NewServer(fmt.Sprintf(":%d", l.port), sessions)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			svr.Stop()
			sessions.drain()
		case <-done:
		}
	}()

	log.GetLogger(ctx).Infof("telnet listener up on port %d", l.port)

	if err := svr.ListenAndServe(); err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("port %d is already in use (another server running?)", l.port)
		}
		return fmt.Errorf("serving telnet on port %d: %w", l.port, err)
	}
	return nil
}

// telnetSessions is the telnet library's connection callback plus the
// bookkeeping needed to drain live sessions on shutdown.
type telnetSessions struct {
	wg     sync.WaitGroup
	cm     *ConnectionManager
	logger logrus.FieldLogger
	ctx    context.Context
	cancel context.CancelFunc
}

func (s *telnetSessions) HandleTelnet(conn *telnet.Connection) {
	s.wg.Add(1)
	defer s.wg.Done()

	logger := s.logger.WithField("remote", conn.RemoteAddr())
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Warnf("closing telnet connection: %s", err)
		}
	}()

	logger.Info("telnet session started")
	ctx := log.SetLogger(s.ctx, logger)
	s.cm.AcceptConnection(ctx, newWireText(conn))
	logger.Info("telnet session ended")
}

func (s *telnetSessions) drain() {
	s.cancel()
	s.wg.Wait()
}
