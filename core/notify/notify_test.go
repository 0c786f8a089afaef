package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWebhookNotifierDelivers(t *testing.T) {
	var (
		mu       sync.Mutex
		received []Event
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev Event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ev))
		mu.Lock()
		received = append(received, ev)
		mu.Unlock()
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, zap.NewNop())
	n.Emit(OperationDelete, EntityStockEntry, map[string]any{"id": 7})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, OperationDelete, received[0].Operation)
	assert.Equal(t, EntityStockEntry, received[0].Entity)
}

func TestWebhookNotifierNeverBlocksOnDeadEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	n := NewWebhookNotifier(srv.URL, zap.NewNop())

	done := make(chan struct{})
	go func() {
		n.Emit(OperationCreateOrUpdate, EntityTransaction, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a dead endpoint")
	}
}

func TestMultiFansOut(t *testing.T) {
	var calls int
	fn := notifierFunc(func(op Operation, entity string, payload any) { calls++ })

	Multi{fn, fn, fn}.Emit(OperationCreateOrUpdate, EntityListing, nil)
	assert.Equal(t, 3, calls)
}

type notifierFunc func(op Operation, entity string, payload any)

func (f notifierFunc) Emit(op Operation, entity string, payload any) { f(op, entity, payload) }
