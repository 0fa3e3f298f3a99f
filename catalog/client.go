package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Edumoretti/chatbot-llm/models"
)

// ErrTimeout marks a catalog call that exceeded its deadline.
var ErrTimeout = errors.New("catalog: request timed out")

// Client resolves products from the external catalog API.
type Client interface {
	// GetProduct returns (nil, nil) when the product does not exist.
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	SearchProducts(ctx context.Context, query string) ([]models.Product, error)
}

type httpClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) Client {
	return &httpClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *httpClient) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	endpoint := fmt.Sprintf("%s/products/%s", c.baseURL, url.PathEscape(productID))

	resp, err := c.do(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var prod models.Product
		if err := json.NewDecoder(resp.Body).Decode(&prod); err != nil {
			return nil, err
		}
		if prod.ID == "" {
			prod.ID = productID
		}
		return &prod, nil
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("catalog service returned %d", resp.StatusCode)
	}
}

func (c *httpClient) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	endpoint := fmt.Sprintf("%s/products/search?q=%s", c.baseURL, url.QueryEscape(query))

	resp, err := c.do(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return []models.Product{}, nil
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *httpClient) do(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, err
	}
	return resp, nil
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
