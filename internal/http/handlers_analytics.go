package http

import (
	"context"
	"net/http"
)

// serveCached answers from the analytics cache when the view was
// computed recently, otherwise recomputes and stores it.
func serveCached[T any](s *Server, w http.ResponseWriter, r *http.Request, key string, fetch func(ctx context.Context) (T, error), internalMsg string) {
	if cached, ok := s.analyticsCache.Get(key); ok {
		respond(w, http.StatusOK, cached)
		return
	}

	result, err := fetch(r.Context())
	if err != nil {
		respondServiceError(r.Context(), w, err, "Not found", internalMsg)
		return
	}

	s.analyticsCache.Set(key, result)
	respond(w, http.StatusOK, result)
}

func (s *Server) handleDashboardMetrics(w http.ResponseWriter, r *http.Request) {
	serveCached(s, w, r, "dashboard-metrics", s.analytics.Dashboard, "Failed to fetch dashboard metrics")
}

func (s *Server) handleSpendingTrends(w http.ResponseWriter, r *http.Request) {
	serveCached(s, w, r, "spending-trends", s.analytics.SpendingTrends, "Database error")
}

func (s *Server) handleCategoryPerformance(w http.ResponseWriter, r *http.Request) {
	serveCached(s, w, r, "category-performance", s.analytics.CategoryPerformance, "Database error")
}

func (s *Server) handleVendorDistribution(w http.ResponseWriter, r *http.Request) {
	serveCached(s, w, r, "vendor-distribution", s.analytics.VendorDistribution, "Database error")
}

func (s *Server) handleGeographicDistribution(w http.ResponseWriter, r *http.Request) {
	serveCached(s, w, r, "geographic-distribution", s.analytics.GeographicDistribution, "Database error")
}
