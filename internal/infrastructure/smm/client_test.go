package smm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/provider"
)

func testProvider(t *testing.T, apiURL string) *provider.Provider {
	t.Helper()
	p, err := provider.NewProvider("TestPanel", apiURL, "test-key", "USD")
	require.NoError(t, err)
	return p
}

func TestClient_FetchCatalog(t *testing.T) {
	t.Run("parses catalog with mixed field types", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "test-key", r.PostFormValue("key"))
			assert.Equal(t, "services", r.PostFormValue("action"))
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"service": "55", "name": "Instagram Followers [Start: 0-1 Hour][HQ]", "category": "IG", "rate": "1.20000", "min": "100", "max": 10000},
				{"service": 56, "name": "TikTok Likes", "category": "TikTok", "rate": 0.5, "min": 10, "max": "50000", "average_time": "2 Hours", "desc": "Real likes"}
			]`))
		}))
		defer server.Close()

		client := NewClient(5*time.Second, nil)
		services, err := client.FetchCatalog(context.Background(), testProvider(t, server.URL))
		require.NoError(t, err)
		require.Len(t, services, 2)

		assert.Equal(t, "55", services[0].ExternalID)
		assert.Equal(t, "Instagram Followers [Start: 0-1 Hour][HQ]", services[0].Name)
		assert.Equal(t, "IG", services[0].Category)
		assert.Equal(t, "1.2", services[0].Rate.String())
		assert.Equal(t, 100, services[0].Min)
		assert.Equal(t, 10000, services[0].Max)
		assert.Empty(t, services[0].AverageTime)

		assert.Equal(t, "56", services[1].ExternalID)
		assert.Equal(t, "0.5", services[1].Rate.String())
		assert.Equal(t, "2 Hours", services[1].AverageTime)
		assert.Equal(t, "Real likes", services[1].Description)
	})

	t.Run("non-2xx maps to unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(5*time.Second, nil)
		_, err := client.FetchCatalog(context.Background(), testProvider(t, server.URL))
		assert.ErrorIs(t, err, provider.ErrProviderUnreachable)
	})

	t.Run("connection failure maps to unreachable", func(t *testing.T) {
		client := NewClient(time.Second, nil)
		_, err := client.FetchCatalog(context.Background(), testProvider(t, "http://127.0.0.1:1"))
		assert.ErrorIs(t, err, provider.ErrProviderUnreachable)
	})

	t.Run("2xx non-array maps to invalid response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error": "Invalid API key"}`))
		}))
		defer server.Close()

		client := NewClient(5*time.Second, nil)
		_, err := client.FetchCatalog(context.Background(), testProvider(t, server.URL))
		assert.ErrorIs(t, err, provider.ErrProviderInvalidResponse)
	})
}

func TestClient_GetOrder(t *testing.T) {
	t.Run("parses order state", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "status", r.PostFormValue("action"))
			assert.Equal(t, "X9", r.PostFormValue("order"))

			_, _ = w.Write([]byte(`{"status": "Partial", "charge": "0.27819", "start_count": "3572", "remains": 12, "currency": "USD", "refill": "1"}`))
		}))
		defer server.Close()

		client := NewClient(5*time.Second, nil)
		remote, err := client.GetOrder(context.Background(), testProvider(t, server.URL), "X9")
		require.NoError(t, err)

		assert.Equal(t, "Partial", remote.Status)
		assert.Equal(t, "0.27819", remote.Charge.String())
		require.NotNil(t, remote.Remains)
		assert.Equal(t, 12, *remote.Remains)
		require.NotNil(t, remote.StartCount)
		assert.Equal(t, 3572, *remote.StartCount)
		assert.True(t, remote.RefillEligible)
	})

	t.Run("provider error body maps to invalid response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error": "Incorrect order ID"}`))
		}))
		defer server.Close()

		client := NewClient(5*time.Second, nil)
		_, err := client.GetOrder(context.Background(), testProvider(t, server.URL), "nope")
		assert.ErrorIs(t, err, provider.ErrProviderInvalidResponse)
		assert.Contains(t, err.Error(), "Incorrect order ID")
	})
}

func TestClient_RequestCancel(t *testing.T) {
	t.Run("accepts upstream confirmation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "cancel", r.PostFormValue("action"))
			_, _ = w.Write([]byte(`{"cancel": "1"}`))
		}))
		defer server.Close()

		client := NewClient(5*time.Second, nil)
		err := client.RequestCancel(context.Background(), testProvider(t, server.URL), "X9")
		assert.NoError(t, err)
	})

	t.Run("surfaces upstream rejection message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error": "Order cannot be canceled"}`))
		}))
		defer server.Close()

		client := NewClient(5*time.Second, nil)
		err := client.RequestCancel(context.Background(), testProvider(t, server.URL), "X9")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Order cannot be canceled")
	})
}

func TestClient_RequestRefill(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refill", r.PostFormValue("action"))
		_, _ = w.Write([]byte(`{"refill": "445"}`))
	}))
	defer server.Close()

	client := NewClient(5*time.Second, nil)
	err := client.RequestRefill(context.Background(), testProvider(t, server.URL), "X9")
	assert.NoError(t, err)
}
