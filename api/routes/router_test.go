package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/storefrontlabs/widget/internal/catalog"
	"github.com/storefrontlabs/widget/internal/storefront"
	"github.com/storefrontlabs/widget/pkg/config"
	"github.com/storefrontlabs/widget/pkg/storage"
)

type staticSource struct {
	products []catalog.Product
}

func (s *staticSource) Fetch(ctx context.Context) ([]catalog.Product, error) {
	return s.products, nil
}

func testProducts() []catalog.Product {
	return []catalog.Product{
		{
			ID:           1,
			Title:        "Classic Tee",
			BasePrice:    decimal.NewFromInt(20),
			VariantLabel: "Size",
			Variants: []catalog.Variant{
				{ID: "s", Name: "Small", Stock: 3, Price: decimal.NewFromInt(20), SKU: "TEE-S"},
				{ID: "m", Name: "Medium", Stock: 0, Price: decimal.NewFromInt(20), SKU: "TEE-M"},
			},
		},
		{
			ID:           2,
			Title:        "Hoodie",
			BasePrice:    decimal.NewFromInt(45),
			VariantLabel: "Size",
			Variants: []catalog.Variant{
				{ID: "l", Name: "Large", Stock: 9, Price: decimal.NewFromInt(45), SKU: "HOOD-L"},
			},
		},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	widget, err := storefront.NewWidget(storefront.Params{
		Source:     &staticSource{products: testProducts()},
		Storage:    storage.NewMemoryStore(),
		StorageKey: "shopping-cart",
	})
	require.NoError(t, err)
	require.NoError(t, widget.Init(context.Background(), 0))

	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	server := httptest.NewServer(New(Params{Config: cfg, Widget: widget}))
	t.Cleanup(server.Close)
	return server
}

type envelope struct {
	Data json.RawMessage `json:"data"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

type actionBody struct {
	Rejected bool   `json:"rejected"`
	Reason   string `json:"reason"`
	Outcome  string `json:"outcome"`
	Snapshot struct {
		Selection struct {
			VariantID string `json:"variantId"`
			Quantity  int    `json:"quantity"`
		} `json:"selection"`
		Cart struct {
			ItemCount    int    `json:"itemCount"`
			TotalDisplay string `json:"totalDisplay"`
			IsEmpty      bool   `json:"isEmpty"`
		} `json:"cart"`
	} `json:"snapshot"`
}

func decodeAction(t *testing.T, env envelope) actionBody {
	t.Helper()
	var action actionBody
	require.NoError(t, json.Unmarshal(env.Data, &action))
	return action
}

func TestHealthLive(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health/live")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "test", resp.Header.Get("X-Storefront-Env"))
}

func TestStateReturnsInitialSnapshot(t *testing.T) {
	server := newTestServer(t)

	resp, env := doJSON(t, http.MethodGet, server.URL+"/widget/state", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap struct {
		SessionID string `json:"sessionId"`
		Selection struct {
			Product *struct {
				ID int64 `json:"id"`
			} `json:"product"`
		} `json:"selection"`
		Related []struct {
			ID int64 `json:"id"`
		} `json:"relatedProducts"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	require.NotEmpty(t, snap.SessionID)
	require.NotNil(t, snap.Selection.Product)
	require.Equal(t, int64(1), snap.Selection.Product.ID)
	require.Len(t, snap.Related, 1)
}

func TestAddToCartFlow(t *testing.T) {
	server := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, server.URL+"/widget/selection/variant",
		map[string]string{"variantId": "s"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	action := decodeAction(t, env)
	require.Equal(t, "s", action.Snapshot.Selection.VariantID)

	resp, env = doJSON(t, http.MethodPost, server.URL+"/widget/selection/quantity",
		map[string]int{"delta": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 2, decodeAction(t, env).Snapshot.Selection.Quantity)

	resp, env = doJSON(t, http.MethodPost, server.URL+"/widget/cart/items", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	action = decodeAction(t, env)
	require.Equal(t, "added", action.Outcome)
	require.Equal(t, 2, action.Snapshot.Cart.ItemCount)
	require.Equal(t, "$40.00", action.Snapshot.Cart.TotalDisplay)
}

func TestAddToCartWithoutVariantIsFlaggedNotFailed(t *testing.T) {
	server := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, server.URL+"/widget/cart/items", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	action := decodeAction(t, env)
	require.True(t, action.Rejected)
	require.NotEmpty(t, action.Reason)
	require.True(t, action.Snapshot.Cart.IsEmpty)
}

func TestRemoveCartItemOutOfRange(t *testing.T) {
	server := newTestServer(t)

	resp, env := doJSON(t, http.MethodDelete, server.URL+"/widget/cart/items/5", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, decodeAction(t, env).Rejected)
}

func TestRemoveCartItemBadIndex(t *testing.T) {
	server := newTestServer(t)

	resp, env := doJSON(t, http.MethodDelete, server.URL+"/widget/cart/items/abc", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestSelectProductRejectsUnknownFields(t *testing.T) {
	server := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, server.URL+"/widget/selection/product",
		map[string]any{"id": 2, "bogus": true})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestQuantityDeltaRejectsOutOfRange(t *testing.T) {
	server := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, server.URL+"/widget/selection/quantity",
		map[string]int{"delta": 5})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}
