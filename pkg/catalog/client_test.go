package catalog

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"favorites-api/internal/customer/domain"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/api/", time.Second, quietLogger())
}

func TestGetProductByID_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/product/p-1/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"p-1","title":"Kettle","brand":"acme","image":"http://img/p-1.jpg","price":129.9,"reviewScore":4.5}`))
	})

	product, err := client.GetProductByID(context.Background(), "p-1")

	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, domain.Product{
		ID:          "p-1",
		Title:       "Kettle",
		Brand:       "acme",
		Image:       "http://img/p-1.jpg",
		Price:       129.9,
		ReviewScore: 4.5,
	}, *product)
}

func TestGetProductByID_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	product, err := client.GetProductByID(context.Background(), "missing")

	assert.NoError(t, err)
	assert.Nil(t, product)
}

func TestGetProductByID_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	product, err := client.GetProductByID(context.Background(), "p-1")

	assert.Nil(t, product)
	assert.Equal(t, domain.KindCatalogFailure, domain.KindOf(err))
}

func TestGetProductByID_InvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := client.GetProductByID(context.Background(), "p-1")

	assert.Equal(t, domain.KindCatalogFailure, domain.KindOf(err))
}

func TestGetProductByID_BreakerOpensAfterFailures(t *testing.T) {
	var hits int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	for i := 0; i < 8; i++ {
		_, err := client.GetProductByID(context.Background(), "p-1")
		assert.Equal(t, domain.KindCatalogFailure, domain.KindOf(err))
	}

	assert.Equal(t, int32(5), atomic.LoadInt32(&hits))
}

func TestGetProductByID_NotFoundDoesNotTripBreaker(t *testing.T) {
	var hits int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
	})

	for i := 0; i < 8; i++ {
		product, err := client.GetProductByID(context.Background(), "missing")
		require.NoError(t, err)
		assert.Nil(t, product)
	}

	assert.Equal(t, int32(8), atomic.LoadInt32(&hits))
}

func TestListProducts_DataShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/product/", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{"data":[{"id":"a","title":"A","price":1},{"id":"b","title":"B","price":2}],"page":2,"size":2}`))
	})

	page, err := client.ListProducts(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.Size)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "a", page.Items[0].ID)
	assert.Equal(t, "b", page.Items[1].ID)
}

func TestListProducts_MetaShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meta":{"page_number":3,"page_size":100},"products":[{"id":"c","reviewScore":3}]}`))
	})

	page, err := client.ListProducts(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 100, page.Size)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 3.0, page.Items[0].ReviewScore)
}

func TestListProducts_NotFoundIsEmptyPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	page, err := client.ListProducts(context.Background(), 99)

	require.NoError(t, err)
	assert.Equal(t, 99, page.Page)
	assert.Empty(t, page.Items)
}

func TestListProducts_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	client := NewClient(server.URL, 200*time.Millisecond, quietLogger())

	_, err := client.ListProducts(context.Background(), 1)

	assert.Equal(t, domain.KindCatalogFailure, domain.KindOf(err))
}
