package instrument

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()
	m.MessageSent()
	m.MessageSent()
	m.DatagramReceived()
	m.MessageDelivered()
	m.MessageDiscarded(ReasonOwnEcho)
	m.MessageDiscarded(ReasonMalformed)
	m.MessageDiscarded(ReasonMalformed)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Sent()))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Received()))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Delivered()))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Discarded(ReasonOwnEcho)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Discarded(ReasonMalformed)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Discarded(ReasonNotForUs)))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.MessageSent()
		m.DatagramReceived()
		m.MessageDelivered()
		m.MessageDiscarded(ReasonNotForUs)
	})
}

func TestMetrics_Serve(t *testing.T) {
	m := New()
	m.MessageSent()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "lanchat_messages_sent_total 1")

	cancel()
	require.NoError(t, <-done)
}
