package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jsamuelsen/quote-sync-service/internal/adapters/clients"
	"github.com/jsamuelsen/quote-sync-service/internal/domain"
	"github.com/jsamuelsen/quote-sync-service/internal/platform/logging"
)

const (
	defaultFetchLimit     = 10
	defaultServerCategory = "server"
)

// RemoteQuoteClientConfig configures a RemoteQuoteClient.
type RemoteQuoteClientConfig struct {
	// Client must have its BaseURL pointed at the remote.
	Client *clients.Client

	// Name identifies the remote in errors and health results.
	Name string

	// Path is used for both fetch (GET) and push (POST).
	Path string

	// FetchLimit caps how many remote items are considered per fetch.
	FetchLimit int

	// ServerCategory is assigned to every fetched quote.
	ServerCategory string

	Logger *slog.Logger
}

// RemoteQuoteClient implements ports.RemoteQuoteSource against a posts-style
// JSON API: fetched post titles become quote texts.
type RemoteQuoteClient struct {
	BaseAdapter

	client         *clients.Client
	path           string
	fetchLimit     int
	serverCategory string
	logger         *slog.Logger
}

// NewRemoteQuoteClient creates the adapter. Panics if Client is nil.
func NewRemoteQuoteClient(cfg RemoteQuoteClientConfig) *RemoteQuoteClient {
	if cfg.Client == nil {
		panic("RemoteQuoteClient: Client is required")
	}

	if cfg.Name == "" {
		cfg.Name = "remote-quotes"
	}

	if cfg.FetchLimit <= 0 {
		cfg.FetchLimit = defaultFetchLimit
	}

	if cfg.ServerCategory == "" {
		cfg.ServerCategory = defaultServerCategory
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &RemoteQuoteClient{
		BaseAdapter:    NewBaseAdapter(cfg.Client, cfg.Name),
		client:         cfg.Client,
		path:           cfg.Path,
		fetchLimit:     cfg.FetchLimit,
		serverCategory: cfg.ServerCategory,
		logger:         logger.With(slog.String("component", "acl.RemoteQuoteClient")),
	}
}

// postDTO is one element of the remote collection. Title is loosely typed
// because the remote does not guarantee a string.
type postDTO struct {
	Title any `json:"title"`
}

// pushRequest is the body sent on push.
type pushRequest struct {
	Quotes []domain.Quote `json:"quotes"`
}

// FetchQuotes reads the remote collection, keeps the first FetchLimit items
// and returns those that translate into valid quotes, in remote order.
func (c *RemoteQuoteClient) FetchQuotes(ctx context.Context) ([]domain.Quote, error) {
	logger := logging.FromContextOr(ctx, c.logger)
	logger.DebugContext(ctx, "fetching remote quotes", slog.String("path", c.path))

	body, err := c.Get(ctx, c.path, "fetch quotes")
	if err != nil {
		return nil, err
	}

	items, err := DecodeResponse[[]json.RawMessage](body)
	if err != nil {
		return nil, domain.NewUnavailableError(c.ServiceName(), fmt.Sprintf("fetch quotes: %v", err))
	}

	if *items == nil {
		return nil, domain.NewUnavailableError(c.ServiceName(), "fetch quotes: response is null")
	}

	raw := *items
	if len(raw) > c.fetchLimit {
		raw = raw[:c.fetchLimit]
	}

	for i, item := range raw {
		if isJSONNull(item) {
			return nil, domain.NewUnavailableError(c.ServiceName(), fmt.Sprintf("fetch quotes: item %d is null", i))
		}
	}

	quotes, dropped := TranslateAll(raw, c.translate)

	logger.Log(ctx, logging.LevelTrace, "translated remote posts",
		slog.Int("received", len(*items)),
		slog.Int("considered", len(raw)),
		slog.Int("kept", len(quotes)),
		slog.Int("dropped", dropped),
	)

	return quotes, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// PushQuotes posts the whole collection as {"quotes": [...]}.
func (c *RemoteQuoteClient) PushQuotes(ctx context.Context, quotes []domain.Quote) error {
	if quotes == nil {
		quotes = []domain.Quote{}
	}

	logging.FromContextOr(ctx, c.logger).DebugContext(ctx, "pushing local quotes",
		slog.String("path", c.path),
		slog.Int("count", len(quotes)),
	)

	return c.PostJSON(ctx, c.path, pushRequest{Quotes: quotes}, "push quotes")
}

// translate maps a post onto a quote filed under the server category.
func (c *RemoteQuoteClient) translate(post *postDTO) (domain.Quote, bool) {
	q := domain.Quote{
		Text:     strings.TrimSpace(titleText(post.Title)),
		Category: c.serverCategory,
	}

	return q, q.IsValid()
}

// titleText renders a scalar title as text. Missing, null, false, zero and
// structured titles yield "".
func titleText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == 0 {
			return ""
		}

		return fmt.Sprint(t)
	case bool:
		if !t {
			return ""
		}

		return "true"
	default:
		return ""
	}
}

// Name implements ports.HealthChecker.
func (c *RemoteQuoteClient) Name() string {
	return c.ServiceName()
}

// Check reports the remote unhealthy while the circuit is open or when the
// collection endpoint does not answer with a 2xx.
func (c *RemoteQuoteClient) Check(ctx context.Context) error {
	if c.client.CircuitState() == clients.StateOpen {
		return domain.NewUnavailableError(c.ServiceName(), "circuit breaker open")
	}

	body, err := c.Get(ctx, c.path, "health check")
	if err != nil {
		return err
	}

	return body.Close()
}
