// Package player owns the connection-to-entity lifecycle: login, entity
// materialization, the interactive session loop, and character persistence.
package player

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/jademud/jademud/internal/commands"
	"github.com/jademud/jademud/internal/display"
	"github.com/jademud/jademud/internal/game"
	"github.com/jademud/jademud/internal/messaging"
	"github.com/jademud/jademud/internal/storage"
)

// Subscriber delivers messages published to a subject. The NATS server
// satisfies this.
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

type Manager struct {
	world    *game.World
	registry *commands.Registry
	chars    storage.Storer[*Character]
	sub      Subscriber

	// spawnRoom is where characters without a saved location start.
	spawnRoom string

	login loginFlow

	mu       sync.Mutex
	sessions map[string]struct{}
}

const welcomeBanner = "Welcome, {{ .Name | title }}. The road awaits.\n"

func NewManager(world *game.World, registry *commands.Registry, chars storage.Storer[*Character], sub Subscriber, spawnRoom string) *Manager {
	return &Manager{
		world:     world,
		registry:  registry,
		chars:     chars,
		sub:       sub,
		spawnRoom: spawnRoom,
		login:     loginFlow{chars: chars},
		sessions:  map[string]struct{}{},
	}
}

func (m *Manager) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// RunSession walks one connection through login and then runs its command
// loop until quit or disconnect. The player entity exists in the world only
// while the session is live.
func (m *Manager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	br := bufio.NewReader(conn)

	char, err := m.login.Run(br, conn)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	id := game.PlayerId(char.Name)
	if !m.claim(id) {
		conn.Write([]byte("That character is already connected.\n"))
		return nil
	}
	defer m.release(id)

	entity, err := m.materialize(id, char)
	if err != nil {
		return fmt.Errorf("materializing %s: %w", id, err)
	}
	if banner, err := display.ExpandTemplate(welcomeBanner, char); err == nil {
		conn.Write([]byte(banner))
	}
	defer func() {
		m.save(char, entity)
		m.world.Destroy(entity)
	}()

	msgs := make(chan []byte, 16)
	unsub, err := m.sub.Subscribe(messaging.EntitySubject(id), func(data []byte) {
		select {
		case msgs <- data:
		default: // slow consumer, drop
		}
	})
	if err != nil {
		return fmt.Errorf("subscribing %s: %w", id, err)
	}
	defer unsub()

	s := &session{
		reader:   br,
		writer:   conn,
		entity:   entity,
		registry: m.registry,
		msgs:     msgs,
	}
	return s.run(ctx)
}

func (m *Manager) claim(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; ok {
		return false
	}
	m.sessions[id] = struct{}{}
	return true
}

func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// materialize builds the live entity for a character and places it in its
// saved room, or the spawn room when the saved one no longer exists.
func (m *Manager) materialize(id string, char *Character) (*game.Entity, error) {
	entity := game.NewEntity(id, display.Capitalize(char.Name))
	if char.Attrs != nil {
		entity.RestoreAttrs(char.Attrs.Clone())
	}
	if err := m.world.Add(entity); err != nil {
		return nil, err
	}

	room := m.world.Get(char.Room)
	if room == nil {
		room = m.world.Get(m.spawnRoom)
	}
	if room == nil {
		m.world.Destroy(entity)
		return nil, fmt.Errorf("no spawn room %q", m.spawnRoom)
	}
	if err := m.world.Place(entity, room); err != nil {
		m.world.Destroy(entity)
		return nil, err
	}
	return entity, nil
}

func (m *Manager) save(char *Character, entity *game.Entity) {
	char.Attrs = entity.Attrs().Clone()
	if env := entity.Environment(); env != nil {
		char.Room = env.Id()
	}
	if err := m.chars.Save(strings.ToLower(char.Name), char); err != nil {
		slog.Warn("saving character", "name", char.Name, "error", err)
	}
}
