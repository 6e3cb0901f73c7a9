package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/jafarshop/catalogapi/pkg/errors"
)

// shopURLPattern accepts scheme://host with an optional trailing slash
var shopURLPattern = regexp.MustCompile(`^https?://([^/]+)/?$`)

// Client reads collections and products from the Shopify Admin REST API
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	logger      *zap.Logger
}

// New creates a read client for one shop. The shop URL must match
// scheme://host[/] and the access token must be non-empty; both are checked
// before any network call.
func New(shopURL, accessToken, apiVersion string, logger *zap.Logger) (*Client, error) {
	match := shopURLPattern.FindStringSubmatch(shopURL)
	if match == nil {
		return nil, &apperrors.ErrValidation{Message: "invalid shop url", Fields: map[string]string{"shop_url": shopURL}}
	}
	if accessToken == "" {
		return nil, &apperrors.ErrValidation{Message: "invalid access token"}
	}

	return &Client{
		baseURL:     fmt.Sprintf("https://%s/admin/api/%s", match[1], apiVersion),
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}, nil
}

// GetCollection fetches one collection listing by id
func (c *Client) GetCollection(ctx context.Context, collectionID string) (*Collection, error) {
	url := fmt.Sprintf("%s/collection_listings/%s.json", c.baseURL, collectionID)

	var payload struct {
		CollectionListing Collection `json:"collection_listing"`
	}
	if err := c.get(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch collection %s: %w", collectionID, err)
	}
	return &payload.CollectionListing, nil
}

// GetCollectionProducts fetches the products of a collection
func (c *Client) GetCollectionProducts(ctx context.Context, collectionID string) ([]Product, error) {
	url := fmt.Sprintf("%s/products.json?collection_id=%s", c.baseURL, collectionID)

	var payload struct {
		Products []Product `json:"products"`
	}
	if err := c.get(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch products of collection %s: %w", collectionID, err)
	}
	return payload.Products, nil
}

func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("shopify API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(body))
	}
	return nil
}
