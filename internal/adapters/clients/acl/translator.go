package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jsamuelsen/quote-sync-service/internal/adapters/clients"
)

// BaseAdapter carries the client and the downstream name shared by adapters.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
}

// NewBaseAdapter returns a BaseAdapter for serviceName.
func NewBaseAdapter(client *clients.Client, serviceName string) BaseAdapter {
	return BaseAdapter{client: client, serviceName: serviceName}
}

// ServiceName returns the downstream name.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// Get fetches path. On success the caller owns the returned body. Any
// failure is already a domain error.
func (a *BaseAdapter) Get(ctx context.Context, path, operation string) (io.ReadCloser, error) {
	resp, err := a.client.Get(ctx, path)
	if err != nil {
		return nil, MapHTTPError(nil, err, a.serviceName, operation)
	}

	if mapped := MapHTTPError(resp, nil, a.serviceName, operation); mapped != nil {
		_ = resp.Body.Close()
		return nil, mapped
	}

	return resp.Body, nil
}

// PostJSON sends body as JSON to path and discards the response body.
func (a *BaseAdapter) PostJSON(ctx context.Context, path string, body any, operation string) error {
	resp, err := a.client.PostJSON(ctx, path, body)
	if err != nil {
		return MapHTTPError(nil, err, a.serviceName, operation)
	}
	defer func() { _ = resp.Body.Close() }()

	if mapped := MapHTTPError(resp, nil, a.serviceName, operation); mapped != nil {
		return mapped
	}

	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// DecodeResponse decodes a JSON body into T and closes it.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, errors.New("response body is nil")
	}
	defer func() { _ = body.Close() }()

	var result T
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}

// Translator converts one external DTO into a domain value. ok is false when
// the DTO cannot become a valid domain value.
type Translator[External, Domain any] func(ext *External) (d Domain, ok bool)

// TranslateAll applies translate to each raw element in order and keeps the
// successful results. Elements that do not decode as External are dropped
// like any other untranslatable item.
func TranslateAll[E, D any](items []json.RawMessage, translate Translator[E, D]) (kept []D, dropped int) {
	kept = make([]D, 0, len(items))

	for _, raw := range items {
		var ext E
		if err := json.Unmarshal(raw, &ext); err != nil {
			dropped++
			continue
		}

		if d, ok := translate(&ext); ok {
			kept = append(kept, d)
		} else {
			dropped++
		}
	}

	return kept, dropped
}
