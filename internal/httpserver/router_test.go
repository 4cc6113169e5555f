package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vibecommerce/internal/domain"
	cartrepo "vibecommerce/internal/repository/cart"
	cartsvc "vibecommerce/internal/service/cart"
	catalogsvc "vibecommerce/internal/service/catalog"
	checkoutsvc "vibecommerce/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

// memCartRepo is an in-memory stand-in for the Redis cart store.
type memCartRepo struct {
	carts   map[string]*domain.Cart
	deleted []string
	failAll bool
}

var errStoreDown = errors.New("cart store unavailable")

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: map[string]*domain.Cart{}}
}

func (m *memCartRepo) Find(_ context.Context, sessionID string) (*domain.Cart, error) {
	if m.failAll {
		return nil, errStoreDown
	}
	cart, ok := m.carts[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cart, nil
}

func (m *memCartRepo) Upsert(_ context.Context, cart *domain.Cart) error {
	if m.failAll {
		return errStoreDown
	}
	m.carts[cart.SessionID] = cart
	return nil
}

func (m *memCartRepo) Delete(_ context.Context, sessionID string) error {
	if m.failAll {
		return errStoreDown
	}
	delete(m.carts, sessionID)
	m.deleted = append(m.deleted, sessionID)
	return nil
}

func (m *memCartRepo) Mutate(ctx context.Context, sessionID string, fn cartrepo.MutateFunc) (*domain.Cart, error) {
	if m.failAll {
		return nil, errStoreDown
	}
	current := m.carts[sessionID]
	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	if next == nil {
		delete(m.carts, sessionID)
		return nil, nil
	}
	m.carts[sessionID] = next
	return next, nil
}

func (m *memCartRepo) Sweep(context.Context) (int, error) {
	return 0, nil
}

type stubProductRepo struct {
	products []domain.Product
	listErr  error
}

func (s *stubProductRepo) List(context.Context) ([]domain.Product, error) {
	return s.products, s.listErr
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubProductRepo) Count(context.Context) (int, error) {
	return len(s.products), nil
}

func (s *stubProductRepo) Insert(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.products = append(s.products, p)
	return &p, nil
}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Coffee Mug", PriceCents: 1499, Category: "Home", CreatedAt: time.Now()},
		{ID: "p2", Name: "Smart Watch", PriceCents: 19999, Category: "Electronics", CreatedAt: time.Now()},
	}
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestRouter(t *testing.T, products *stubProductRepo, carts *memCartRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return buildRouter(testLogger(), nil, nil, Deps{
		CatalogSvc:  catalogsvc.New(products),
		CartSvc:     cartsvc.New(carts, products),
		CheckoutSvc: checkoutsvc.New(carts),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestRootBanner(t *testing.T) {
	router := newTestRouter(t, &stubProductRepo{}, newMemCartRepo())
	rec := doJSON(t, router, http.MethodGet, "/", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if body["message"] == "" {
		t.Fatalf("expected banner message, got %v", body)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, &stubProductRepo{}, newMemCartRepo())
	rec := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyzWithoutBackends(t *testing.T) {
	router := newTestRouter(t, &stubProductRepo{}, newMemCartRepo())
	rec := doJSON(t, router, http.MethodGet, "/readyz", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without backends, got %d", rec.Code)
	}
}
