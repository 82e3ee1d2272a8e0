// Package instrument collects chat session counters and exposes them for
// Prometheus scraping.
//
// A nil *Metrics is valid and records nothing.
package instrument

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Discard reasons recorded by MessageDiscarded.
const (
	ReasonOwnEcho   = "own_echo"
	ReasonNotForUs  = "not_addressed"
	ReasonMalformed = "malformed"
)

const (
	namespace        = "lanchat"
	shutdownDeadline = 2 * time.Second
)

// Metrics holds the counters of one chat session.
type Metrics struct {
	registry *prometheus.Registry

	sent      prometheus.Counter
	received  prometheus.Counter
	delivered prometheus.Counter
	discarded *prometheus.CounterVec
}

// New registers the session counters on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_sent_total",
			Help:      "Number of chat datagrams sent to the group",
		}),
		received: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "datagrams_received_total",
			Help:      "Number of datagrams received from the group",
		}),
		delivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_delivered_total",
			Help:      "Number of received messages shown to the user",
		}),
		discarded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messages_discarded_total",
				Help:      "Number of received datagrams not shown to the user",
			},
			[]string{"reason"},
		),
	}
	m.registry.MustRegister(
		m.sent, m.received, m.delivered, m.discarded,
		collectors.NewGoCollector(),
	)
	return m
}

// MessageSent counts one datagram handed to the transport.
func (m *Metrics) MessageSent() {
	if m != nil {
		m.sent.Inc()
	}
}

// DatagramReceived counts one datagram read from the transport.
func (m *Metrics) DatagramReceived() {
	if m != nil {
		m.received.Inc()
	}
}

// MessageDelivered counts one message passed to the console.
func (m *Metrics) MessageDelivered() {
	if m != nil {
		m.delivered.Inc()
	}
}

// MessageDiscarded counts one datagram dropped for reason.
func (m *Metrics) MessageDiscarded(reason string) {
	if m != nil {
		m.discarded.WithLabelValues(reason).Inc()
	}
}

// Sent returns the sent counter. Used by tests.
func (m *Metrics) Sent() prometheus.Counter { return m.sent }

// Received returns the received counter.
func (m *Metrics) Received() prometheus.Counter { return m.received }

// Delivered returns the delivered counter.
func (m *Metrics) Delivered() prometheus.Counter { return m.delivered }

// Discarded returns the discard counter for reason.
func (m *Metrics) Discarded(reason string) prometheus.Counter {
	return m.discarded.WithLabelValues(reason)
}

// Handler returns the scrape handler for the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return m.serve(ctx, ln)
}

func (m *Metrics) serve(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownDeadline)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
