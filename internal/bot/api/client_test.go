package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *Session) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	sess := NewSession()
	return NewClient(srv.URL, sess, testLogger()), sess
}

func TestSearch_WrappedEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/search", r.URL.Path)
		assert.Equal(t, "laptop", r.URL.Query().Get("query"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"count":2,"data":[
			{"id":"a","name":"Gaming Laptop","price":1299.99},
			{"id":"b","name":"Ultrabook"}
		]}`))
	}))

	products, err := client.Search(context.Background(), "laptop", 5)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Gaming Laptop", products[0].Name)
	assert.Equal(t, 1299.99, products[0].Price)
	assert.Equal(t, "No description available", products[1].Description)
}

func TestSearch_BareArray(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"a","name":"Mouse"}]`))
	}))

	products, err := client.Search(context.Background(), "mouse", 0)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Mouse", products[0].Name)
}

func TestSearch_NonArrayDataIsEmpty(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"unexpected":"shape"}}`))
	}))

	products, err := client.Search(context.Background(), "anything", 0)
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestSearch_OmitsLimitWhenUnset(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("limit"))
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))

	_, err := client.Search(context.Background(), "q", 0)
	require.NoError(t, err)
}

func TestSearch_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(srv.URL, NewSession(), testLogger())

	_, err := client.Search(context.Background(), "laptop", 0)
	require.Error(t, err)

	var callErr *CallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, FailureNetwork, callErr.Kind)
	assert.Equal(t, MsgNetwork, callErr.Message)
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    FailureKind
		wantMessage string
	}{
		{"not found", 404, `{"success":false,"message":"Product not found"}`, FailureServiceMissing, MsgServiceMissing},
		{"unauthenticated", 401, `{"success":false,"message":"No token provided"}`, FailureUnauthenticated, MsgUnauthenticated},
		{"server fault", 500, `{"success":false}`, FailureServerFault, MsgServerFault},
		{"bad gateway", 502, ``, FailureServerFault, MsgServerFault},
		{"domain message", 400, `{"success":false,"message":"Quantity must be at least 1"}`, FailureDomain, "Quantity must be at least 1"},
		{"unknown", 418, `not json`, FailureUnknown, MsgUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))

			_, err := client.Search(context.Background(), "q", 0)
			require.Error(t, err)

			var callErr *CallError
			require.ErrorAs(t, err, &callErr)
			assert.Equal(t, tt.wantKind, callErr.Kind)
			assert.Equal(t, tt.wantMessage, callErr.Message)
			assert.Equal(t, tt.status, callErr.Status)
		})
	}
}

func TestAddToCart_SendsTokenAndPayload(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/cart/add", r.URL.Path)
		w.Write([]byte(`{"message":"Item added to cart successfully","cart":{}}`))
	}))
	sess.SetToken("tok-123")

	err := client.AddToCart(context.Background(), "p-1", 1)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "p-1", gotBody["productId"])
	assert.Equal(t, float64(1), gotBody["quantity"])
}

func TestSaveChat(t *testing.T) {
	var gotBody map[string]string
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		assert.Equal(t, "/api/chat", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	sess.SetToken("tok-123")

	err := client.SaveChat(context.Background(), "laptop", "Found 2 products")
	require.NoError(t, err)
	assert.Equal(t, "laptop", gotBody["message"])
	assert.Equal(t, "Found 2 products", gotBody["response"])
}

func TestLogin_StoresToken(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		w.Write([]byte(`{"success":true,"token":"issued-token","user":{"id":"u-1"}}`))
	}))

	require.False(t, sess.Authenticated())
	require.NoError(t, client.Login(context.Background(), "a@b.com", "secret123"))
	assert.True(t, sess.Authenticated())
	assert.Equal(t, "issued-token", sess.Token())
}

func TestLogin_BadCredentials(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	}))

	err := client.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	assert.False(t, sess.Authenticated())
}

func TestGetProduct(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/p-9", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"id":"p-9","name":"Webcam"}}`))
	}))

	p, err := client.GetProduct(context.Background(), "p-9")
	require.NoError(t, err)
	assert.Equal(t, "Webcam", p.Name)
	assert.True(t, p.InStock)
}

func TestUnauthenticatedRequestOmitsHeader(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))

	_, err := client.Search(context.Background(), "laptop", 0)
	require.NoError(t, err)
}
