package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"inventory/m/domain"
	"inventory/m/internal/metrics"
	"inventory/m/internal/service"
)

// Options tunes the router.
type Options struct {
	RequestTimeout time.Duration
	CORSOrigins    []string
}

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	svc     *service.Service
	log     *zap.Logger
	metrics *metrics.Metrics
	opts    Options
}

// New constructs a Handler.
func New(svc *service.Service, log *zap.Logger, m *metrics.Metrics, opts Options) *Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	return &Handler{svc: svc, log: log, metrics: m, opts: opts}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(h.requestID)
	r.Use(h.requestLogger)
	r.Use(h.recordMetrics)
	r.Use(h.recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", h.health)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(h.deadline)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.signup)
			r.Post("/login", h.login)
			r.Group(func(protected chi.Router) {
				protected.Use(h.authMiddleware)
				protected.Post("/reset-password", h.resetPassword)
			})
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.authMiddleware)

			pr.Route("/categories", func(r chi.Router) {
				r.Get("/", h.listCategories)
				r.Post("/", h.createCategory)
				r.Post("/create", h.createCategory)
				r.Get("/{id}", h.getCategory)
				r.Put("/{id}", h.updateCategory)
				r.Delete("/{id}", h.deleteCategory)
			})

			pr.Route("/products", func(r chi.Router) {
				r.Get("/", h.listProducts)
				r.Post("/", h.createProduct)
				r.Post("/create", h.createProduct)
				r.Get("/{id}", h.getProduct)
				r.Put("/{id}", h.updateProduct)
				r.Delete("/{id}", h.deleteProduct)
			})

			pr.Route("/budgets", func(r chi.Router) {
				r.Get("/", h.listBudgets)
				r.Post("/", h.createBudget)
				r.Post("/create", h.createBudget)
				r.Get("/{id}", h.getBudget)
				r.Put("/{id}", h.updateBudget)
				r.Delete("/{id}", h.deleteBudget)
			})

			pr.Route("/purchases", func(r chi.Router) {
				r.Get("/", h.listPurchases)
				r.Post("/", h.createPurchase)
				r.Post("/create", h.createPurchase)
				r.Get("/{id}", h.getPurchase)
				r.Put("/{id}", h.updatePurchase)
				r.Delete("/{id}", h.deletePurchase)
			})

			pr.Route("/sales", func(r chi.Router) {
				r.Get("/", h.listSales)
				r.Post("/", h.createSale)
				r.Post("/create", h.createSale)
				r.Get("/{id}", h.getSale)
			})

			pr.Route("/revenue", func(r chi.Router) {
				r.Get("/", h.listRevenue)
				r.Get("/summary", h.revenueSummary)
				r.Get("/trends", h.revenueTrends)
				r.Get("/{id}", h.getRevenue)
			})
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validationf("invalid id")
	}
	return id, nil
}

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return domain.Validationf("invalid request body: %v", err)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondDeleted(w http.ResponseWriter, what string) {
	respondJSON(w, http.StatusOK, map[string]string{"message": what + " deleted successfully"})
}
