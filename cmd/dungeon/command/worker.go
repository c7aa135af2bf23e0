package command

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/go-service"

	"github.com/pixil98/go-dungeon/internal/commands"
	"github.com/pixil98/go-dungeon/internal/dispatch"
	"github.com/pixil98/go-dungeon/internal/driver"
	"github.com/pixil98/go-dungeon/internal/listener"
	"github.com/pixil98/go-dungeon/internal/messaging"
	"github.com/pixil98/go-dungeon/internal/metrics"
	"github.com/pixil98/go-dungeon/internal/player"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	logger, err := cfg.Log.buildLogger()
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	slog.SetDefault(logger)

	world, err := cfg.World.load()
	if err != nil {
		return nil, fmt.Errorf("loading world: %w", err)
	}
	universe := world.NewUniverse()
	slog.Info("world loaded", "rooms", len(world.Rooms), "spawn", world.Spawn.Id(), "timescale", world.Timescale)

	narr, err := cfg.Narration.buildNarrator()
	if err != nil {
		return nil, fmt.Errorf("creating narrator: %w", err)
	}

	workers := service.WorkerList{}

	queueOpts := []dispatch.QueueOpt{dispatch.WithShutdownAlarm("Server closing...")}
	var handlerOpts []commands.HandlerOpt
	var driverOpts []driver.DriverOpt

	if cfg.Metrics.enabled() {
		recorder := metrics.NewRecorder(universe)
		queueOpts = append(queueOpts, dispatch.WithObserver(recorder))
		handlerOpts = append(handlerOpts, commands.WithObserver(recorder))
		driverOpts = append(driverOpts, driver.WithObserver(recorder))
		workers["metrics"] = cfg.Metrics.buildServer(recorder)
	}

	if cfg.Nats.Enabled {
		ns, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		queueOpts = append(queueOpts, dispatch.WithMirror(messaging.NewEventMirror(ns, cfg.Nats.SubjectPrefix)))
		workers["nats"] = ns
	}

	queue := dispatch.NewQueue(universe, queueOpts...)
	handler := commands.NewHandler(universe, queue, narr, handlerOpts...)
	sessions := player.NewSessionManager(universe, handler, queue, narr)
	cm := listener.NewConnectionManager(sessions)

	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		w, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d-%s", i, l.Protocol)] = w
	}

	tickLength := driver.TickLength(world.Timescale)
	if d := cfg.tickLength(); d > 0 {
		tickLength = d
	}
	driverOpts = append(driverOpts, driver.WithTickLength(tickLength))

	workers["dispatch"] = queue
	workers["driver"] = driver.NewDriver([]driver.Ticker{universe}, driverOpts...)
	workers["listeners"] = &listeners

	return workers, nil
}
