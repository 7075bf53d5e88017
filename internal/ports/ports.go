// Package ports declares the outbound store interfaces consumed by the
// service layer. The SQLite and memory stores implement all of them;
// tests substitute narrow fakes.
package ports

import (
	"context"

	"procure/internal/core"
)

// VendorFilter carries the optional listing predicates. Zero values
// mean "no constraint"; present predicates combine with logical AND.
// Search is a case-insensitive substring match against the name, the
// location, and the raw encoded specialties blob.
type VendorFilter struct {
	Category     string
	BusinessType string
	Search       string
}

type (
	// VendorStore is the vendor collection boundary. QueryVendors
	// returns rows ordered by rating descending then name ascending,
	// with specialties/certifications already decoded to list form,
	// plus the total count matching the filter (ignoring the window).
	VendorStore interface {
		QueryVendors(ctx context.Context, f VendorFilter, limit, offset int) ([]core.Vendor, int, error)
		GetVendor(ctx context.Context, uuid string) (*core.Vendor, error)
		InsertVendor(ctx context.Context, v core.Vendor) (string, error)
		UpdateVendor(ctx context.Context, uuid string, u core.VendorUpdate) error
		DeleteVendor(ctx context.Context, uuid string) error
		CountVendors(ctx context.Context) (int64, error)
		CountContractVendors(ctx context.Context) (int64, error)
	}

	// CategoryStore reads the seeded category cache rows.
	CategoryStore interface {
		ListCategories(ctx context.Context) ([]core.Category, error)
		GetCategory(ctx context.Context, name string) (*core.Category, error)
		ListVendorsByCategory(ctx context.Context, name string) ([]core.Vendor, error)
		UnderperformingCategories(ctx context.Context, threshold float64) ([]core.CategoryShare, error)
	}

	// MetricsStore provides the aggregations the dashboard derives its
	// figures from.
	MetricsStore interface {
		AggregateCategorySums(ctx context.Context) (core.CategorySums, error)
		GroupVendorsByType(ctx context.Context) ([]core.TypeDistribution, error)
		GroupVendorsByLocation(ctx context.Context, limit int) ([]core.LocationDistribution, error)
		CategoryPerformance(ctx context.Context) ([]core.CategoryPerformance, error)
	}

	// TrendStore lists spending history rows in insertion order.
	TrendStore interface {
		ListTrends(ctx context.Context) ([]core.TrendPoint, error)
	}

	// RecommendationStore lists active advisory records ordered by
	// confidence descending, then savings descending.
	RecommendationStore interface {
		ListRecommendations(ctx context.Context) ([]core.Recommendation, error)
	}
)

// Store is the full boundary a backend must satisfy.
type Store interface {
	VendorStore
	CategoryStore
	MetricsStore
	TrendStore
	RecommendationStore
}
