package player

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/jademud/jademud/internal/commands"
	"github.com/jademud/jademud/internal/display"
	"github.com/jademud/jademud/internal/game"
)

// session is the interactive command loop for one connected player. It
// shares the login flow's reader so no buffered input is lost at the
// handoff.
type session struct {
	reader   *bufio.Reader
	writer   io.Writer
	entity   *game.Entity
	registry *commands.Registry
	msgs     <-chan []byte
}

func (s *session) run(ctx context.Context) error {
	// done releases the input pump when run returns; without it a line
	// buffered behind "quit" would leave the goroutine stuck on the send.
	done := make(chan struct{})
	defer close(done)

	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		for {
			line, err := s.reader.ReadString('\n')
			if len(line) > 0 {
				select {
				case inputChan <- line:
				case <-done:
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					inputErrChan <- err
				}
				close(inputChan)
				return
			}
		}
	}()

	// Show the player their surroundings on login.
	if err := s.exec(ctx, "look"); err != nil {
		return err
	}
	if err := s.prompt(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg := <-s.msgs:
			// World output pushed at the player (broadcasts, denials).
			if err := s.writeLine("\n" + string(msg)); err != nil {
				return err
			}
			if err := s.prompt(); err != nil {
				return err
			}

		case line, ok := <-inputChan:
			if !ok {
				// Connection lost.
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			line = strings.TrimSpace(line)
			if line == "" {
				if err := s.prompt(); err != nil {
					return err
				}
				continue
			}

			if strings.EqualFold(line, "quit") {
				s.writeLine("Farewell.")
				return nil
			}

			if err := s.exec(ctx, line); err != nil {
				return err
			}
			if err := s.prompt(); err != nil {
				return err
			}
		}
	}
}

func (s *session) exec(ctx context.Context, line string) error {
	res, err := s.registry.Exec(ctx, s.entity, line)
	if err != nil {
		return err
	}
	if res.Message == "" {
		return nil
	}
	return s.writeLine(res.Message)
}

func (s *session) prompt() error {
	_, err := s.writer.Write([]byte("> "))
	return err
}

func (s *session) writeLine(msg string) error {
	_, err := s.writer.Write([]byte(display.Wrap(msg) + "\n"))
	return err
}
