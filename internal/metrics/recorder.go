package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// World reports live game figures at scrape time.
type World interface {
	PlayerCount() int
}

// Recorder holds the server's metrics on a private registry. It satisfies
// the dispatch and command observer interfaces.
type Recorder struct {
	registry *prometheus.Registry

	queueDepth  prometheus.Gauge
	delivered   *prometheus.CounterVec
	recipients  *prometheus.CounterVec
	writeErrors *prometheus.CounterVec
	commands    *prometheus.CounterVec
	ticks       prometheus.Counter
}

func NewRecorder(world World) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dungeon_dispatch_queue_depth",
			Help: "Events waiting to be delivered.",
		}),
		delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dungeon_events_delivered_total",
			Help: "Events delivered by kind.",
		}, []string{"kind"}),
		recipients: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dungeon_event_recipients_total",
			Help: "Outputs written to by kind.",
		}, []string{"kind"}),
		writeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dungeon_event_write_errors_total",
			Help: "Failed writes to player outputs by kind.",
		}, []string{"kind"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dungeon_commands_total",
			Help: "Commands processed by action and outcome.",
		}, []string{"command", "outcome"}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dungeon_ticks_total",
			Help: "Simulation clock ticks.",
		}),
	}

	r.registry.MustRegister(
		r.queueDepth,
		r.delivered,
		r.recipients,
		r.writeErrors,
		r.commands,
		r.ticks,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "dungeon_players_connected",
			Help: "Players currently in the world.",
		}, func() float64 { return float64(world.PlayerCount()) }),
	)

	return r
}

// Registry is the gatherer served on /metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) ObserveDepth(depth int) {
	r.queueDepth.Set(float64(depth))
}

func (r *Recorder) ObserveDelivered(kind string, targets int) {
	r.delivered.WithLabelValues(kind).Inc()
	r.recipients.WithLabelValues(kind).Add(float64(targets))
}

func (r *Recorder) ObserveWriteError(kind string) {
	r.writeErrors.WithLabelValues(kind).Inc()
}

func (r *Recorder) ObserveCommand(action, outcome string) {
	r.commands.WithLabelValues(action, outcome).Inc()
}

func (r *Recorder) ObserveTick() {
	r.ticks.Inc()
}
