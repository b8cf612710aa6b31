package commerce

import (
	"bytes"
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

	"PulseBoard/internal/model"

	"github.com/tidwall/gjson"
)

// ErrNotConfigured is returned by every call when no shop is configured.
var ErrNotConfigured = errors.New("commerce platform not configured")

// ShopifyClient talks to the Shopify Admin REST API.
type ShopifyClient struct {
	BaseURL     string
	AccessToken string
	Client      *http.Client
}

// NewShopifyClient creates a client with optional proxy support. baseURL is
// the full Admin API root, e.g. https://shop.myshopify.com/admin/api/2023-10.
func NewShopifyClient(baseURL, accessToken, proxyURL string) *ShopifyClient {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &ShopifyClient{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		AccessToken: accessToken,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (c *ShopifyClient) Name() string { return "shopify" }

// ListProducts returns up to limit product records as raw JSON objects.
func (c *ShopifyClient) ListProducts(ctx context.Context, limit int) ([]json.RawMessage, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	return c.list(ctx, "/products.json", q, "products")
}

// ListOrders returns up to limit orders with the given status ("any", "open", ...).
func (c *ShopifyClient) ListOrders(ctx context.Context, status string, limit int) ([]json.RawMessage, error) {
	q := url.Values{"status": {status}, "limit": {strconv.Itoa(limit)}}
	return c.list(ctx, "/orders.json", q, "orders")
}

// ListCustomers returns up to limit customer records.
func (c *ShopifyClient) ListCustomers(ctx context.Context, limit int) ([]json.RawMessage, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	return c.list(ctx, "/customers.json", q, "customers")
}

// shopifyVariant and shopifyProduct mirror the create-product request body.
type shopifyVariant struct {
	Price               string `json:"price"`
	InventoryQuantity   int    `json:"inventory_quantity"`
	InventoryManagement string `json:"inventory_management"`
}

type shopifyProduct struct {
	Title       string           `json:"title"`
	BodyHTML    string           `json:"body_html"`
	Vendor      string           `json:"vendor"`
	ProductType string           `json:"product_type"`
	Status      string           `json:"status"`
	Variants    []shopifyVariant `json:"variants"`
	Tags        string           `json:"tags"`
}

// CreateProduct submits a product and returns the created record.
func (c *ShopifyClient) CreateProduct(ctx context.Context, draft model.ProductDraft) (json.RawMessage, error) {
	payload := map[string]shopifyProduct{
		"product": {
			Title:       draft.Title,
			BodyHTML:    draft.BodyHTML,
			Vendor:      draft.Vendor,
			ProductType: draft.ProductType,
			Status:      draft.Status,
			Variants: []shopifyVariant{{
				Price:               strconv.FormatFloat(draft.Price, 'f', 2, 64),
				InventoryQuantity:   draft.InventoryQuantity,
				InventoryManagement: "shopify",
			}},
			Tags: draft.Tags,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal product: %w", err)
	}

	respBody, err := c.do(ctx, http.MethodPost, "/products.json", nil, body)
	if err != nil {
		return nil, err
	}
	product := gjson.GetBytes(respBody, "product")
	if !product.IsObject() {
		return nil, fmt.Errorf("shopify: create product response has no product")
	}
	return json.RawMessage(product.Raw), nil
}

func (c *ShopifyClient) list(ctx context.Context, path string, q url.Values, key string) ([]json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return nil, err
	}
	arr := gjson.GetBytes(body, key)
	if !arr.IsArray() {
		return nil, fmt.Errorf("shopify: response has no %q array", key)
	}
	items := arr.Array()
	out := make([]json.RawMessage, 0, len(items))
	for _, it := range items {
		out = append(out, json.RawMessage(it.Raw))
	}
	return out, nil
}

func (c *ShopifyClient) do(ctx context.Context, method, path string, q url.Values, body []byte) ([]byte, error) {
	if c.BaseURL == "" {
		return nil, ErrNotConfigured
	}
	u := c.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Shopify-Access-Token", c.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shopify %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("shopify read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("shopify %s %s: status %d, body: %s", method, path, resp.StatusCode, string(respBody))
	}
	if !gjson.ValidBytes(respBody) {
		return nil, fmt.Errorf("shopify %s %s: invalid JSON response", method, path)
	}
	return respBody, nil
}
