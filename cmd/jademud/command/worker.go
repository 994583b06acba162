package command

import (
	"fmt"
	"time"

	service "github.com/pixil98/go-service"

	"github.com/jademud/jademud/internal/commands"
	"github.com/jademud/jademud/internal/driver"
	"github.com/jademud/jademud/internal/game"
	"github.com/jademud/jademud/internal/listener"
	"github.com/jademud/jademud/internal/messaging"
	"github.com/jademud/jademud/internal/player"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	nats, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	dict, err := cfg.Storage.BuildDictionary()
	if err != nil {
		return nil, fmt.Errorf("loading world definitions: %w", err)
	}

	world, err := game.BuildWorld(dict, messaging.NewEntityPublisher(nats))
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}

	spawnRoom := game.AreaId(cfg.Game.SpawnRoom)
	if world.Get(spawnRoom) == nil {
		return nil, fmt.Errorf("spawn room %q not found", cfg.Game.SpawnRoom)
	}

	registry := commands.NewRegistry(world, game.NewSpawner(dict.Items))

	chars, err := cfg.Storage.Characters.BuildStore()
	if err != nil {
		return nil, fmt.Errorf("creating character store: %w", err)
	}

	pm := player.NewManager(world, registry, chars, nats, spawnRoom)
	cm := listener.NewConnectionManager(pm)

	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lst, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = lst
	}

	tick, err := time.ParseDuration(cfg.TickInterval)
	if err != nil {
		return nil, fmt.Errorf("parsing tick_interval: %w", err)
	}
	drv := driver.NewTickDriver(
		[]driver.Manager{game.NewRespawner(world, dict)},
		driver.WithTickLength(tick),
	)

	return service.WorkerList{
		"nats":      nats,
		"driver":    drv,
		"players":   pm,
		"listeners": &listeners,
	}, nil
}
