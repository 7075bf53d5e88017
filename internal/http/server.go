// Package http exposes the procurement API over chi. Handlers decode
// requests, delegate to the service layer and translate errors to
// status codes; no business rules live here.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"procure/internal/cache"
	"procure/internal/middleware/ratelimit"
	"procure/internal/middleware/security"
	"procure/internal/middleware/trace"
	"procure/internal/ports"
	"procure/internal/services"
)

const (
	analyticsCacheSize = 16
	analyticsCacheTTL  = 30 * time.Second
)

// Config holds the server's transport settings
type Config struct {
	Addr      string
	RateLimit ratelimit.Config
}

type Server struct {
	http.Server

	vendors    *services.VendorService
	analytics  *services.AnalyticsService
	advisor    *services.AdvisorService
	categories ports.CategoryStore

	// analyticsCache memoizes the computed analytics views per path.
	// Vendor writes purge it so reads never serve pre-write figures.
	analyticsCache *cache.LRUCache[any]
	cacheManager   *cache.Manager
	rateLimiter    *ratelimit.Limiter
	traceMW        *trace.Middleware
	ipExtractor    *security.IPExtractor

	started time.Time
}

// NewServer wires the services over the given store and builds the
// route tree. The publisher may be nil; vendor events are then skipped.
func NewServer(cfg Config, store ports.Store, publisher services.EventPublisher) *Server {
	s := &Server{
		vendors:        services.NewVendorService(store, publisher),
		analytics:      services.NewAnalyticsService(store, store, store),
		advisor:        services.NewAdvisorService(store, store, store, store),
		categories:     store,
		analyticsCache: cache.NewLRUCache[any](analyticsCacheSize, analyticsCacheTTL),
		cacheManager:   cache.NewManager(),
		rateLimiter:    ratelimit.NewLimiter(cfg.RateLimit),
		ipExtractor:    security.NewIPExtractor(),
		started:        time.Now(),
	}

	s.traceMW = trace.NewMiddleware(s.ipExtractor.ExtractClientIP)
	s.cacheManager.Register(s.analyticsCache)
	s.cacheManager.StartCleanup(time.Minute)

	s.Addr = cfg.Addr
	s.Handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limit := s.rateLimiter.Middleware(s.ipExtractor.ExtractClientIP, nil)

	r := chi.NewRouter()
	r.Use(headers.Middleware)
	r.Use(s.traceMW.Middleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(api chi.Router) {
		api.Use(limit)

		api.Get("/", s.handleAPIIndex)

		api.Route("/vendors", func(v chi.Router) {
			v.Get("/", s.handleListVendors)
			v.Post("/", s.handleCreateVendor)
			v.Get("/{id}", s.handleGetVendor)
			v.Put("/{id}", s.handleUpdateVendor)
			v.Delete("/{id}", s.handleDeleteVendor)
		})

		api.Route("/categories", func(c chi.Router) {
			c.Get("/", s.handleListCategories)
			c.Get("/{name}", s.handleGetCategory)
			c.Get("/{name}/vendors", s.handleCategoryVendors)
		})

		api.Route("/analytics", func(a chi.Router) {
			a.Get("/dashboard-metrics", s.handleDashboardMetrics)
			a.Get("/spending-trends", s.handleSpendingTrends)
			a.Get("/category-performance", s.handleCategoryPerformance)
			a.Get("/vendor-distribution", s.handleVendorDistribution)
			a.Get("/geographic-distribution", s.handleGeographicDistribution)
		})

		api.Route("/ai", func(ai chi.Router) {
			ai.Get("/recommendations", s.handleRecommendations)
			ai.Post("/chat", s.handleChat)
			ai.Get("/insights", s.handleInsights)
			ai.Post("/recommendations/feedback", s.handleFeedback)
		})
	})

	return r
}

// Close stops the background helpers. The embedded http.Server is shut
// down separately by the caller.
func (s *Server) Close() {
	s.rateLimiter.Stop()
	s.cacheManager.Stop()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"message":   "California DGS Procurement API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   "1.0.0",
		"uptime":    time.Since(s.started).String(),
	})
}

func (s *Server) handleAPIIndex(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]any{
		"message": "California DGS Small Business Procurement API",
		"version": "1.0.0",
		"documentation": map[string]any{
			"endpoints": map[string]string{
				"GET /health":                                "Health check",
				"GET /api":                                   "API documentation",
				"GET /api/vendors":                           "Get all vendors",
				"GET /api/vendors/:id":                       "Get vendor by ID",
				"POST /api/vendors":                          "Create new vendor",
				"PUT /api/vendors/:id":                       "Update vendor",
				"DELETE /api/vendors/:id":                    "Delete vendor",
				"GET /api/categories":                        "Get all categories with spending data",
				"GET /api/categories/:name":                  "Get category by name",
				"GET /api/categories/:name/vendors":          "Get vendors in category",
				"GET /api/analytics/dashboard-metrics":       "Get dashboard metrics",
				"GET /api/analytics/spending-trends":         "Get spending trends data",
				"GET /api/analytics/category-performance":    "Get category performance",
				"GET /api/analytics/vendor-distribution":     "Get vendor distribution",
				"GET /api/analytics/geographic-distribution": "Get geographic distribution",
				"GET /api/ai/recommendations":                "Get AI recommendations",
				"POST /api/ai/chat":                          "AI chat endpoint",
				"GET /api/ai/insights":                       "Get AI insights",
				"POST /api/ai/recommendations/feedback":      "Record recommendation feedback",
			},
		},
	})
}
