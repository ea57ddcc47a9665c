//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quote-sync-service/internal/adapters/clients"
	"github.com/jsamuelsen/quote-sync-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-sync-service/internal/adapters/featureflags"
	httpadapter "github.com/jsamuelsen/quote-sync-service/internal/adapters/http"
	"github.com/jsamuelsen/quote-sync-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-sync-service/internal/adapters/notify"
	"github.com/jsamuelsen/quote-sync-service/internal/adapters/storage/memory"
	"github.com/jsamuelsen/quote-sync-service/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen/quote-sync-service/internal/app"
	"github.com/jsamuelsen/quote-sync-service/internal/domain"
	"github.com/jsamuelsen/quote-sync-service/internal/platform/config"
	"github.com/jsamuelsen/quote-sync-service/internal/ports"
)

const postsPath = "/posts"

func init() {
	gin.SetMode(gin.TestMode)
}

// remoteStub is a posts-style collection endpoint. It serves whatever posts
// it holds and records every pushed body.
type remoteStub struct {
	server *httptest.Server

	mu     sync.Mutex
	posts  []any
	pushes [][]domain.Quote
	down   bool
	delay  time.Duration
}

func newRemoteStub(posts ...any) *remoteStub {
	r := &remoteStub{posts: posts}
	r.server = httptest.NewServer(http.HandlerFunc(r.serveHTTP))

	return r
}

func (r *remoteStub) serveHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	down, delay, posts := r.down, r.delay, r.posts
	r.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	if down || req.URL.Path != postsPath {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	switch req.Method {
	case http.MethodGet:
		if posts == nil {
			posts = []any{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(posts)
	case http.MethodPost:
		var body struct {
			Quotes []domain.Quote `json:"quotes"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		r.mu.Lock()
		r.pushes = append(r.pushes, body.Quotes)
		r.mu.Unlock()

		w.WriteHeader(http.StatusCreated)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (r *remoteStub) setPosts(posts ...any) {
	r.mu.Lock()
	r.posts = posts
	r.mu.Unlock()
}

func (r *remoteStub) setDown(down bool) {
	r.mu.Lock()
	r.down = down
	r.mu.Unlock()
}

func (r *remoteStub) setDelay(d time.Duration) {
	r.mu.Lock()
	r.delay = d
	r.mu.Unlock()
}

func (r *remoteStub) pushed() [][]domain.Quote {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([][]domain.Quote(nil), r.pushes...)
}

func (r *remoteStub) close() {
	r.server.Close()
}

func post(title any) map[string]any {
	return map[string]any{"userId": 1, "title": title, "body": "ignored"}
}

// testApp is the service assembled the way main wires it, minus the listener.
type testApp struct {
	store    *sqlite.Store
	quotes   *app.QuoteService
	sync     *app.SyncService
	notifier *notify.LogNotifier
	remote   *acl.RemoteQuoteClient
	engine   *gin.Engine
}

type appOptions struct {
	features map[string]any
	auth     *config.AuthConfig
}

func startApp(ctx context.Context, dbPath, remoteURL string, opts appOptions) (*testApp, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		return nil, err
	}

	client, err := clients.New(&clients.Config{
		BaseURL:     remoteURL,
		ServiceName: "remote-quotes",
		Timeout:     2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     2,
			InitialInterval: 5 * time.Millisecond,
			MaxInterval:     20 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   50,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
		Logger: logger,
	})
	if err != nil {
		return nil, errors.Join(err, store.Close())
	}

	remote := acl.NewRemoteQuoteClient(acl.RemoteQuoteClientConfig{
		Client:         client,
		Path:           postsPath,
		FetchLimit:     config.DefaultSyncFetchLimit,
		ServerCategory: config.DefaultSyncServerCategory,
		Logger:         logger,
	})

	features := opts.features
	if features == nil {
		features = map[string]any{ports.FlagSyncPush: true, ports.FlagSyncConflictNotice: true}
	}

	flags, err := featureflags.NewStatic(features, logger)
	if err != nil {
		return nil, errors.Join(err, store.Close())
	}

	session := memory.NewSessionStore()

	registry := ports.NewHealthRegistry()
	_ = registry.Register(store)
	_ = registry.Register(session)
	_ = registry.RegisterOptional(remote)

	quotes := app.NewQuoteService(app.QuoteServiceConfig{
		Repository: store,
		Session:    session,
		Logger:     logger,
	})
	quotes.Load(ctx)

	notifier := notify.NewLogNotifier(logger, 20)

	syncService := app.NewSyncService(app.SyncServiceConfig{
		Quotes:   quotes,
		Remote:   remote,
		Notifier: notifier,
		Flags:    flags,
		Logger:   logger,
	})

	server := &config.ServerConfig{
		MaxRequestSize: config.DefaultMaxRequestSize,
		RequestTimeout: 5 * time.Second,
	}

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		Logger:        logger,
		ServiceName:   "quote-sync-service",
		Server:        server,
		Auth:          opts.auth,
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "test", "test"), prometheus.NewRegistry()),
		QuoteHandler:  handlers.NewQuoteHandler(quotes),
		SyncHandler:   handlers.NewSyncHandler(syncService, notifier),
	})

	return &testApp{
		store:    store,
		quotes:   quotes,
		sync:     syncService,
		notifier: notifier,
		remote:   remote,
		engine:   engine,
	}, nil
}

func (a *testApp) close() error {
	return a.store.Close()
}

func (a *testApp) do(method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	return w
}
