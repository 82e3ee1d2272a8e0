package transport_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lanchat/internal/log"
	"lanchat/internal/transport"
)

func TestHub_DeliversToEveryMemberIncludingSender(t *testing.T) {
	hub := transport.NewHub(log.NewDiscard().LoggerFactory())
	alice := hub.Join("alice")
	bob := hub.Join("bob")
	defer alice.Close()
	defer bob.Close()

	ctx := context.Background()
	require.NoError(t, alice.Send(ctx, []byte("ping")))

	for _, m := range []*transport.Member{alice, bob} {
		got, err := m.Receive(ctx)
		require.NoError(t, err)
		assert.Equal(t, []byte("ping"), got)
	}
}

func TestHub_PreservesOrderPerSender(t *testing.T) {
	hub := transport.NewHub(nil)
	alice := hub.Join("alice")
	bob := hub.Join("bob")
	defer alice.Close()
	defer bob.Close()

	ctx := context.Background()
	for _, s := range []string{"one", "two", "three"} {
		require.NoError(t, alice.Send(ctx, []byte(s)))
	}
	for _, want := range []string{"one", "two", "three"} {
		got, err := bob.Receive(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	}
}

func TestHub_ReceiveHonoursCancellation(t *testing.T) {
	hub := transport.NewHub(nil)
	bob := hub.Join("bob")
	defer bob.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := bob.Receive(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The member stays usable after a cancelled receive.
	require.NoError(t, bob.Send(context.Background(), []byte("again")))
	got, err := bob.Receive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "again", string(got))
}

func TestHub_CloseUnblocksReceive(t *testing.T) {
	hub := transport.NewHub(nil)
	bob := hub.Join("bob")

	errc := make(chan error, 1)
	go func() {
		_, err := bob.Receive(context.Background())
		errc <- err
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, bob.Close())

	select {
	case err := <-errc:
		var terr *transport.Error
		require.True(t, errors.As(err, &terr))
		assert.ErrorIs(t, err, transport.ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("receive did not return after close")
	}
	assert.Equal(t, 0, hub.Len())
	assert.ErrorIs(t, bob.Close(), transport.ErrClosed)
	assert.ErrorIs(t, bob.Send(context.Background(), []byte("x")), transport.ErrClosed)
}

func TestHub_RejectsOversizedDatagram(t *testing.T) {
	hub := transport.NewHub(nil)
	alice := hub.Join("alice")
	defer alice.Close()

	err := alice.Send(context.Background(), make([]byte, transport.MaxDatagramSize+1))
	assert.ErrorIs(t, err, transport.ErrMessageTooLarge)
}
