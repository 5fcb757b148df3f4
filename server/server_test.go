package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akovalev/feedsync/pkg/domain"
	"github.com/akovalev/feedsync/pkg/opml"
	"github.com/akovalev/feedsync/pkg/repository"
	"github.com/akovalev/feedsync/server/mocks"
)

// newTestServer wires a server over real in-memory repositories with a mocked
// sync trigger, returns the server and the default account ID
func newTestServer(t *testing.T, trigger *mocks.SyncTriggerMock) (*Server, *repository.Repositories, int64) {
	t.Helper()
	ctx := context.Background()

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:          ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })

	account, err := repos.Account.EnsureDefaultAccount(ctx)
	require.NoError(t, err)

	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return ":8080", 30 * time.Second
		},
	}

	if trigger == nil {
		trigger = &mocks.SyncTriggerMock{
			SyncAllFunc: func(_ context.Context, scope domain.SyncScope, reason domain.SyncReason) (*domain.SyncRunResult, error) {
				return &domain.SyncRunResult{Scope: scope, Reason: reason}, nil
			},
		}
	}

	adapter := NewRepositoryAdapter(repos)
	srv := New(cfg, adapter, trigger, opml.NewTransactionalImporter(adapter, adapter), "test", false)
	return srv, repos, account.ID
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	repos, err := repository.NewRepositories(context.Background(), repository.Config{
		DSN:          ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	defer repos.Close()

	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return fmt.Sprintf("127.0.0.1:%d", port), 30 * time.Second
		},
	}
	adapter := NewRepositoryAdapter(repos)
	srv := New(cfg, adapter, &mocks.SyncTriggerMock{}, opml.NewTransactionalImporter(adapter, adapter), "1.0.0", false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = srv.Run(ctx)
	}()

	// wait for server to start
	time.Sleep(100 * time.Millisecond)

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", strings.TrimSpace(string(body)))

	cancel()
	time.Sleep(100 * time.Millisecond)
}

func TestServer_statusHandler(t *testing.T) {
	srv, _, _ := newTestServer(t, nil)

	req := httptest.NewRequest("GET", "/api/v1/status", http.NoBody)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"version":"test"`)
	assert.Contains(t, w.Body.String(), `"name":"Local"`)
}

func TestServer_syncHandler(t *testing.T) {
	done := make(chan domain.SyncScope, 1)
	trigger := &mocks.SyncTriggerMock{
		SyncAllFunc: func(_ context.Context, scope domain.SyncScope, reason domain.SyncReason) (*domain.SyncRunResult, error) {
			done <- scope
			return &domain.SyncRunResult{Scope: scope, Reason: reason}, nil
		},
	}
	srv, _, _ := newTestServer(t, trigger)

	t.Run("everything", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/sync", strings.NewReader(`{"scope":"all"}`))
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
		select {
		case scope := <-done:
			assert.Equal(t, domain.ScopeAll, scope.Kind)
		case <-time.After(time.Second):
			t.Fatal("sync was not triggered")
		}
		require.Len(t, trigger.SyncAllCalls(), 1)
		assert.Equal(t, domain.ReasonManual, trigger.SyncAllCalls()[0].Reason)
	})

	t.Run("forced single feed", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/sync", strings.NewReader(`{"scope":"feed","feed_id":42,"forced":true}`))
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
		select {
		case scope := <-done:
			assert.Equal(t, domain.ScopeFeed, scope.Kind)
			assert.Equal(t, int64(42), scope.FeedID)
		case <-time.After(time.Second):
			t.Fatal("sync was not triggered")
		}
		assert.Equal(t, domain.ReasonForced, trigger.SyncAllCalls()[1].Reason)
	})

	t.Run("feed scope without feed_id", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/sync", strings.NewReader(`{"scope":"feed"}`))
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown scope", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/sync", strings.NewReader(`{"scope":"galaxy"}`))
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
