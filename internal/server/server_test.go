package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yasinhessnawi1/jcadmin/internal/config"
	"github.com/yasinhessnawi1/jcadmin/internal/constants"
	"github.com/yasinhessnawi1/jcadmin/internal/handlers"
	"github.com/yasinhessnawi1/jcadmin/internal/models"
)

const (
	testCallLog = "--DATE = 011916--TIME = 1600--NMBR = 8005551212--NAME = PIZZA PALACE--\n" +
		"B-DATE = 011916--TIME = 1616--NMBR = 8774845967--NAME = TOLL FREE CALLE--\n" +
		"--DATE = 011916--TIME = 1800--NMBR = 8005551212--NAME = O--\n"

	testSafe    = "5551234567?        ++++++        Mom\n"
	testBlocked = "8774845967?        011916        Cruise Scam\n"
)

// createTestConfig writes a jcblock directory fixture and returns a config pointing at it.
func createTestConfig(t *testing.T) *config.AppConfig {
	t.Helper()

	dir := t.TempDir()
	for name, content := range map[string]string{
		constants.DefaultCallLogFile:     testCallLog,
		constants.DefaultSafeListFile:    testSafe,
		constants.DefaultBlockedListFile: testBlocked,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	return &config.AppConfig{
		App: config.AppSettings{
			Environment: constants.EnvTesting,
			Name:        "jcadmin-test",
			Version:     "test-version",
		},
		Server: config.ServerSettings{
			Host:            "localhost",
			Port:            8080,
			ReadTimeout:     constants.DefaultReadTimeout,
			WriteTimeout:    constants.DefaultWriteTimeout,
			ShutdownTimeout: constants.DefaultShutdownTimeout,
		},
		Files: config.FileSettings{
			Dir:         dir,
			CallLog:     constants.DefaultCallLogFile,
			SafeList:    constants.DefaultSafeListFile,
			BlockedList: constants.DefaultBlockedListFile,
			Database:    constants.DefaultDatabaseFile,
		},
		Limits: config.LimitSettings{
			MaxNameLength:    constants.DefaultMaxNameLength,
			MatchMode:        constants.MatchModeSubstring,
			DefaultCallLimit: constants.DefaultCallLimit,
		},
		CORS: config.CORSSettings{
			AllowedOrigins: []string{"http://example.com"},
		},
		Metrics: config.MetricsSettings{
			Enabled: true,
			Path:    constants.DefaultMetricsPath,
		},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	s, err := NewServer(context.Background(), createTestConfig(t))
	require.NoError(t, err)
	return s
}

// pollCounter is a caller service that only counts polls.
type pollCounter struct {
	handlers.CallerServiceInterface
	polls atomic.Int32
}

func (p *pollCounter) PollModificationTimes(ctx context.Context) (*models.ModificationTimes, error) {
	p.polls.Add(1)
	return &models.ModificationTimes{}, nil
}

func TestNewServer(t *testing.T) {
	s := newTestServer(t)

	assert.NotNil(t, s.GetRouter())
	require.NotNil(t, s.Handlers)
	assert.NotNil(t, s.Handlers.CallerHandler)
	assert.Equal(t, "localhost:8080", s.httpServer.Addr)
	assert.Equal(t, constants.DefaultIdleTimeout, s.httpServer.IdleTimeout)

	// Bootstrapping created the name database
	_, err := os.Stat(s.Config.Files.DatabasePath())
	assert.NoError(t, err)
}

func TestNewServer_MissingCallLog(t *testing.T) {
	cfg := createTestConfig(t)
	require.NoError(t, os.Remove(cfg.Files.CallLogPath()))

	_, err := NewServer(context.Background(), cfg)
	assert.Error(t, err)
}

func TestServerAddress(t *testing.T) {
	ss := &config.ServerSettings{
		Host: "localhost",
		Port: 8080,
	}

	assert.Equal(t, "localhost:8080", ss.ServerAddress())
}

func TestCorsMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("allowed origin", func(t *testing.T) {
		handler := corsMiddleware([]string{"http://example.com"}, true)(next)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "http://example.com")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight", func(t *testing.T) {
		handler := corsMiddleware([]string{"*"}, false)(next)

		req := httptest.NewRequest(http.MethodOptions, "/test", nil)
		req.Header.Set("Origin", "http://example.com")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin", func(t *testing.T) {
		handler := corsMiddleware([]string{"http://example.com"}, true)(next)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("no origin", func(t *testing.T) {
		handler := corsMiddleware([]string{"*"}, true)(next)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestSetupMaintenanceTasks(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	svc := &pollCounter{}
	s := NewServerWithService(createTestConfig(t), svc)

	s.SetupMaintenanceTasks(5 * time.Millisecond)
	assert.Eventually(t, func() bool {
		return svc.polls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	// The server never started listening, so shutdown only stops the poll loop
	require.NoError(t, s.Shutdown(context.Background()))

	after := svc.polls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, svc.polls.Load())
}

func TestShutdown_WithoutMaintenance(t *testing.T) {
	s := NewServerWithService(createTestConfig(t), &pollCounter{})

	assert.NoError(t, s.Shutdown(context.Background()))
}

// watchRecorder is a caller service that records whether the watcher ran.
type watchRecorder struct {
	pollCounter
	watching chan struct{}
}

func (w *watchRecorder) WatchFiles(ctx context.Context) error {
	close(w.watching)
	<-ctx.Done()
	return nil
}

func TestSetupMaintenanceTasks_FileWatcher(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	cfg := createTestConfig(t)
	cfg.Files.Watch = true
	svc := &watchRecorder{watching: make(chan struct{})}
	s := NewServerWithService(cfg, svc)

	s.SetupMaintenanceTasks(time.Hour)

	select {
	case <-svc.watching:
	case <-time.After(time.Second):
		t.Fatal("file watcher was not started")
	}

	require.NoError(t, s.Shutdown(context.Background()))
}
