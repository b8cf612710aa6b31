package commerce

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"PulseBoard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *ShopifyClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewShopifyClient(srv.URL+"/admin/api/2023-10", "shpat_test", "")
}

func TestListOrders(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/2023-10/orders.json", r.URL.Path)
		assert.Equal(t, "any", r.URL.Query().Get("status"))
		assert.Equal(t, "250", r.URL.Query().Get("limit"))
		assert.Equal(t, "shpat_test", r.Header.Get("X-Shopify-Access-Token"))
		_, _ = w.Write([]byte(`{"orders":[{"id":1,"total_price":"10.50"},{"id":2,"total_price_usd":"4.50","total_price":"99"}]}`))
	})

	orders, err := c.ListOrders(context.Background(), "any", 250)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, int64(1), gjson.GetBytes(orders[0], "id").Int())
	assert.Equal(t, 15.0, SumOrderTotals(orders))
}

func TestListCustomersAndProducts(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		switch r.URL.Path {
		case "/admin/api/2023-10/customers.json":
			_, _ = w.Write([]byte(`{"customers":[{"id":1},{"id":2},{"id":3}]}`))
		case "/admin/api/2023-10/products.json":
			_, _ = w.Write([]byte(`{"products":[]}`))
		default:
			http.NotFound(w, r)
		}
	})

	customers, err := c.ListCustomers(context.Background(), 50)
	require.NoError(t, err)
	assert.Len(t, customers, 3)

	products, err := c.ListProducts(context.Background(), 50)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NotNil(t, products)
}

func TestList_Errors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"errors":"[API] Invalid API key"}`, http.StatusUnauthorized)
		})
		_, err := c.ListProducts(context.Background(), 50)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
	})

	t.Run("missing key", func(t *testing.T) {
		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"shop":{}}`))
		})
		_, err := c.ListOrders(context.Background(), "any", 100)
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		})
		_, err := c.ListCustomers(context.Background(), 50)
		assert.Error(t, err)
	})

	t.Run("not configured", func(t *testing.T) {
		c := NewShopifyClient("", "", "")
		_, err := c.ListCustomers(context.Background(), 50)
		assert.True(t, errors.Is(err, ErrNotConfigured))
	})
}

func TestCreateProduct(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/api/2023-10/products.json", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "Gaming Mouse Pro X1", gjson.GetBytes(body, "product.title").String())
		assert.Equal(t, "draft", gjson.GetBytes(body, "product.status").String())
		assert.Equal(t, "129.90", gjson.GetBytes(body, "product.variants.0.price").String())
		assert.Equal(t, int64(10), gjson.GetBytes(body, "product.variants.0.inventory_quantity").Int())
		assert.Equal(t, "shopify", gjson.GetBytes(body, "product.variants.0.inventory_management").String())
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"product":{"id":42,"title":"Gaming Mouse Pro X1"}}`))
	})

	created, err := c.CreateProduct(context.Background(), model.ProductDraft{
		Title:             "Gaming Mouse Pro X1",
		Status:            "draft",
		Price:             129.9,
		InventoryQuantity: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), gjson.GetBytes(created, "id").Int())
}

func TestOrderTotal(t *testing.T) {
	cases := []struct {
		name  string
		order string
		want  float64
	}{
		{"usd preferred", `{"total_price_usd":"12.00","total_price":"11.00"}`, 12},
		{"falls back", `{"total_price":"11.25"}`, 11.25},
		{"null usd falls back", `{"total_price_usd":null,"total_price":"3"}`, 3},
		{"empty usd falls back", `{"total_price_usd":"","total_price":"3"}`, 3},
		{"numeric", `{"total_price":7.5}`, 7.5},
		{"zero usd falls back", `{"total_price_usd":0,"total_price":"5.5"}`, 5.5},
		{"false usd falls back", `{"total_price_usd":false,"total_price":"2"}`, 2},
		{"zero string usd is kept", `{"total_price_usd":"0.00","total_price":"4"}`, 0},
		{"absent", `{"id":1}`, 0},
		{"garbage", `{"total_price":"n/a"}`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, OrderTotal(json.RawMessage(tc.order)))
		})
	}
}
