// Package demoapi is a local implementation of the storefront service used by
// `storefront serve` and by tests.
package demoapi

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jask/storefront/internal/api"
	"github.com/jask/storefront/internal/model"
)

// Order is an accepted order kept in memory.
type Order struct {
	ID        string
	Request   api.OrderRequest
	Total     decimal.Decimal
	CreatedAt time.Time
}

// Server serves the product list and accepts orders.
type Server struct {
	mu       sync.Mutex
	products []model.Product
	orders   []Order
	log      *zap.Logger
}

func New(products []model.Product, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{products: products, log: log}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/product", s.listProducts)
	r.Post("/order", s.createOrder)
	return r
}

// Orders returns the accepted orders.
func (s *Server) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Order(nil), s.orders...)
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	items := make([]api.ProductDTO, 0, len(s.products))
	for _, p := range s.products {
		items = append(items, api.FromProduct(p))
	}
	writeJSON(w, http.StatusOK, api.ProductList{Total: len(items), Items: items})
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req api.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	total, msg := s.check(req)
	if msg != "" {
		s.log.Info("order rejected", zap.String("reason", msg), zap.String("request_id", middleware.GetReqID(r.Context())))
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	o := Order{ID: uuid.NewString(), Request: req, Total: total, CreatedAt: time.Now().UTC()}
	s.mu.Lock()
	s.orders = append(s.orders, o)
	s.mu.Unlock()

	s.log.Info("order accepted", zap.String("order_id", o.ID), zap.String("total", total.String()))
	writeJSON(w, http.StatusOK, api.OrderResponse{ID: o.ID, Total: json.Number(total.String())})
}

// check validates an order against the catalog and returns the computed total
// or a rejection message.
func (s *Server) check(req api.OrderRequest) (decimal.Decimal, string) {
	if !model.Payment(req.Payment).Valid() {
		return decimal.Zero, "unknown payment method"
	}
	for _, v := range []string{req.Email, req.Phone, req.Address} {
		if model.Blank(v) {
			return decimal.Zero, "buyer contact fields are required"
		}
	}
	if len(req.Items) == 0 {
		return decimal.Zero, "no items in order"
	}
	byID := make(map[string]model.Product, len(s.products))
	for _, p := range s.products {
		byID[p.ID] = p
	}
	total := decimal.Zero
	for _, id := range req.Items {
		p, ok := byID[id]
		if !ok {
			return decimal.Zero, "product " + id + " not found"
		}
		if !p.Priced() {
			return decimal.Zero, "product " + id + " is not for sale"
		}
		total = total.Add(p.PriceOrZero())
	}
	claimed, err := decimal.NewFromString(req.Total.String())
	if err != nil || !claimed.Equal(total) {
		return decimal.Zero, "wrong order total"
	}
	return total, ""
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.ErrorResponse{Error: msg})
}
