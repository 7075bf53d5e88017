package services

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"procure/internal/core"
	"procure/internal/ports"
)

// AB 2019 participation goals (percent).
const (
	smbGoal  = 25.0
	dvbeGoal = 3.0
)

// DashboardMetrics is the headline figure set for the dashboard.
type DashboardMetrics struct {
	TotalVendors   int64      `json:"totalVendors"`
	SMBSpending    int64      `json:"smbSpending"`
	TotalSpending  int64      `json:"totalSpending"`
	DVBESpending   int64      `json:"dvbeSpending"`
	SMBPercentage  float64    `json:"smbPercentage"`
	DVBEPercentage float64    `json:"dvbePercentage"`
	DGSContracts   int64      `json:"dgsContracts"`
	MonthlySavings int64      `json:"monthlySavings"`
	Compliance     Compliance `json:"ab2019Compliance"`
}

// Compliance reports progress against the AB 2019 participation goals.
type Compliance struct {
	SMBGoal    float64 `json:"smbGoal"`
	DVBEGoal   float64 `json:"dvbeGoal"`
	SMBStatus  string  `json:"smbStatus"`
	DVBEStatus string  `json:"dvbeStatus"`
}

// AnalyticsService computes derived dashboard figures on read. It never
// writes, and every aggregate is zero-valued (not missing) against an
// empty store.
type AnalyticsService struct {
	vendors ports.VendorStore
	metrics ports.MetricsStore
	trends  ports.TrendStore
}

func NewAnalyticsService(vendors ports.VendorStore, metrics ports.MetricsStore, trends ports.TrendStore) *AnalyticsService {
	return &AnalyticsService{vendors: vendors, metrics: metrics, trends: trends}
}

// Dashboard assembles the headline metrics. The independent aggregate
// reads run concurrently; any failure fails the whole request.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*DashboardMetrics, error) {
	var (
		totalVendors int64
		sums         core.CategorySums
		dgsContracts int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totalVendors, err = s.vendors.CountVendors(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		sums, err = s.metrics.AggregateCategorySums(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		dgsContracts, err = s.vendors.CountContractVendors(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregate dashboard metrics: %w", err)
	}

	smbPct := percentage(sums.SMBSpend, sums.TotalSpend)
	dvbePct := percentage(sums.DVBESpend, sums.TotalSpend)

	return &DashboardMetrics{
		TotalVendors:   totalVendors,
		SMBSpending:    sums.SMBSpend,
		TotalSpending:  sums.TotalSpend,
		DVBESpending:   sums.DVBESpend,
		SMBPercentage:  round1(smbPct),
		DVBEPercentage: round1(dvbePct),
		DGSContracts:   dgsContracts,
		MonthlySavings: 142000,
		Compliance: Compliance{
			SMBGoal:    smbGoal,
			DVBEGoal:   dvbeGoal,
			SMBStatus:  goalStatus(smbPct, smbGoal),
			DVBEStatus: goalStatus(dvbePct, dvbeGoal),
		},
	}, nil
}

// SpendingTrends lists the monthly history rows in insertion order.
func (s *AnalyticsService) SpendingTrends(ctx context.Context) ([]core.TrendPoint, error) {
	trends, err := s.trends.ListTrends(ctx)
	if err != nil {
		return nil, fmt.Errorf("list spending trends: %w", err)
	}
	if trends == nil {
		trends = []core.TrendPoint{}
	}
	return trends, nil
}

// VendorDistribution groups the vendor population by business type.
func (s *AnalyticsService) VendorDistribution(ctx context.Context) ([]core.TypeDistribution, error) {
	dist, err := s.metrics.GroupVendorsByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("group vendors by type: %w", err)
	}
	if dist == nil {
		dist = []core.TypeDistribution{}
	}
	return dist, nil
}

// GeographicDistribution groups the vendor population by location,
// capped to the 20 largest groups by count.
func (s *AnalyticsService) GeographicDistribution(ctx context.Context) ([]core.LocationDistribution, error) {
	dist, err := s.metrics.GroupVendorsByLocation(ctx, 20)
	if err != nil {
		return nil, fmt.Errorf("group vendors by location: %w", err)
	}
	if dist == nil {
		dist = []core.LocationDistribution{}
	}
	return dist, nil
}

// CategoryPerformance exposes the stored category cache and the freshly
// computed vendor statistics side by side. The stored SMB percentage is
// never reconciled with the vendor-derived numbers here.
func (s *AnalyticsService) CategoryPerformance(ctx context.Context) ([]core.CategoryPerformance, error) {
	perf, err := s.metrics.CategoryPerformance(ctx)
	if err != nil {
		return nil, fmt.Errorf("category performance: %w", err)
	}

	for i := range perf {
		perf[i].DVBEPercentage = percentage(perf[i].DVBESpend, perf[i].TotalSpend)
		perf[i].AvgRating = round1(perf[i].AvgRating)
		perf[i].AvgOnTimeRate = round1(perf[i].AvgOnTimeRate)
	}
	if perf == nil {
		perf = []core.CategoryPerformance{}
	}
	return perf, nil
}

// percentage returns part/whole as a percent, defined as 0 when the
// whole is 0.
func percentage(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func goalStatus(actual, goal float64) string {
	if actual >= goal {
		return "met"
	}
	return "in-progress"
}
