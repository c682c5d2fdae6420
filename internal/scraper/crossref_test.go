package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func testClient(srv *httptest.Server) *RateLimitedClient {
	return &RateLimitedClient{
		httpClient: srv.Client(),
		limiter:    rate.NewLimiter(rate.Inf, 1),
		userAgent:  "test-agent",
	}
}

func withCrossrefServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	original := crossrefAPIBase
	crossrefAPIBase = srv.URL
	t.Cleanup(func() { crossrefAPIBase = original })
	return srv
}

func TestFetchAbstractByDOINotFound(t *testing.T) {
	srv := withCrossrefServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Resource not found."))
	})

	c := testClient(srv)
	abstract, err := FetchAbstractByDOI(context.Background(), c, "10.1/x", "")
	require.NoError(t, err)
	assert.Equal(t, "", abstract)
}

func TestFetchAbstractByDOISuccess(t *testing.T) {
	srv := withCrossrefServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":{"abstract":"<jats:p>An abstract.</jats:p>"}}`))
	})

	c := testClient(srv)
	abstract, err := FetchAbstractByDOI(context.Background(), c, "10.1/x", "")
	require.NoError(t, err)
	assert.Equal(t, "<p>An abstract.</p>", abstract)
}

func TestRateLimitedClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewRateLimitedClient(time.Millisecond, "test-agent")
	body, status, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.Equal(t, "ok", string(body))
}
