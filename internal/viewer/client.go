package viewer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const productsPath = "/api/products"

type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

var (
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrCatalogBadStatus   = errors.New("catalog bad status")
	ErrCatalogBadBody     = errors.New("catalog bad body")
)

type CatalogClient struct {
	BaseURL string
	Client  *http.Client
}

// NewCatalogClient returns a client for the catalog service at baseURL. A
// zero timeout leaves requests unbounded.
func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &CatalogClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (c *CatalogClient) ListProducts(ctx context.Context) ([]Product, error) {
	ctx, span := otel.Tracer("Storefront/internal/viewer").Start(ctx, "GET "+productsPath,
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	products, err := c.listProducts(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list products failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("catalog.products", len(products)))
	return products, nil
}

func (c *CatalogClient) listProducts(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+productsPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status=%d", ErrCatalogBadStatus, resp.StatusCode)
	}

	var products []Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogBadBody, err)
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}
