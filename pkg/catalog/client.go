package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"favorites-api/internal/customer/domain"
	"favorites-api/pkg/metrics"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
)

// errNotFound marks a 404 from the catalog. The breaker counts it as a
// successful call.
var errNotFound = errors.New("catalog: not found")

type productPayload struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Brand       string  `json:"brand"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	ReviewScore float64 `json:"reviewScore"`
}

func (p productPayload) toDomain() domain.Product {
	return domain.Product{
		ID:          p.ID,
		Title:       p.Title,
		Brand:       p.Brand,
		Image:       p.Image,
		Price:       p.Price,
		ReviewScore: p.ReviewScore,
	}
}

// pagePayload accepts both {data,page,size} and {meta,products} listings.
type pagePayload struct {
	Data     []productPayload `json:"data"`
	Products []productPayload `json:"products"`
	Page     int              `json:"page"`
	Size     int              `json:"size"`
	Meta     *struct {
		PageNumber int `json:"page_number"`
		PageSize   int `json:"page_size"`
	} `json:"meta"`
}

func (p pagePayload) toDomain() *domain.ProductPage {
	items := p.Data
	if items == nil {
		items = p.Products
	}
	page := &domain.ProductPage{
		Items: make([]domain.Product, 0, len(items)),
		Page:  p.Page,
		Size:  p.Size,
	}
	if p.Meta != nil {
		page.Page = p.Meta.PageNumber
		page.Size = p.Meta.PageSize
	}
	for _, item := range items {
		page.Items = append(page.Items, item.toDomain())
	}
	return page
}

// Client reads products from the remote catalog over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     *logrus.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "product-catalog",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
	})
	return c
}

// GetProductByID returns nil, nil when the catalog answers 404.
func (c *Client) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	body, err := c.get(ctx, "get_product", "/product/"+url.PathEscape(productID)+"/")
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.CatalogFailure("failed to get product", err)
	}

	var payload productPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, domain.CatalogFailure("failed to decode product", err)
	}
	product := payload.toDomain()
	return &product, nil
}

// ListProducts returns an empty page when the catalog answers 404.
func (c *Client) ListProducts(ctx context.Context, page int) (*domain.ProductPage, error) {
	body, err := c.get(ctx, "list_products", "/product/?page="+strconv.Itoa(page))
	if errors.Is(err, errNotFound) {
		return &domain.ProductPage{Items: []domain.Product{}, Page: page}, nil
	}
	if err != nil {
		return nil, domain.CatalogFailure("failed to list products", err)
	}

	var payload pagePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, domain.CatalogFailure("failed to decode product page", err)
	}
	result := payload.toDomain()
	if result.Page == 0 {
		result.Page = page
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, operation, endpoint string) ([]byte, error) {
	start := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, endpoint)
	})

	outcome := "success"
	switch {
	case errors.Is(err, errNotFound):
		outcome = "not_found"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		outcome = "rejected"
	case err != nil:
		outcome = "failure"
	}
	metrics.RecordCatalogRequest(operation, outcome, time.Since(start))

	if err != nil && !errors.Is(err, errNotFound) {
		c.logger.WithError(err).WithField("endpoint", endpoint).Error("product catalog request failed")
	}
	return body, err
}

func (c *Client) do(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotFound
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog responded %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
