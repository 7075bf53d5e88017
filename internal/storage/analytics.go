package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"procure/internal/core"
)

func (s *SQLiteStore) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, total_spend, smb_spend, smb_percentage, vendor_count, avg_order, dgs_contracts, dvbe_spend
		FROM categories ORDER BY total_spend DESC`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var cats []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.TotalSpend, &c.SMBSpend, &c.SMBPercentage,
			&c.VendorCount, &c.AvgOrder, &c.DGSContracts, &c.DVBESpend); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (s *SQLiteStore) GetCategory(ctx context.Context, name string) (*core.Category, error) {
	var c core.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, total_spend, smb_spend, smb_percentage, vendor_count, avg_order, dgs_contracts, dvbe_spend
		FROM categories WHERE name = ?`, name).
		Scan(&c.ID, &c.Name, &c.TotalSpend, &c.SMBSpend, &c.SMBPercentage,
			&c.VendorCount, &c.AvgOrder, &c.DGSContracts, &c.DVBESpend)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (s *SQLiteStore) ListVendorsByCategory(ctx context.Context, name string) ([]core.Vendor, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+vendorColumns+" FROM vendors WHERE category = ? ORDER BY rating DESC, name ASC", name)
	if err != nil {
		return nil, fmt.Errorf("query vendors by category: %w", err)
	}
	defer rows.Close()

	var vendors []core.Vendor
	for rows.Next() {
		v, err := scanVendor(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, *v)
	}
	return vendors, rows.Err()
}

func (s *SQLiteStore) UnderperformingCategories(ctx context.Context, threshold float64) ([]core.CategoryShare, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, smb_percentage FROM categories WHERE smb_percentage < ?", threshold)
	if err != nil {
		return nil, fmt.Errorf("query underperforming categories: %w", err)
	}
	defer rows.Close()

	var shares []core.CategoryShare
	for rows.Next() {
		var cs core.CategoryShare
		if err := rows.Scan(&cs.Name, &cs.SMBPercentage); err != nil {
			return nil, fmt.Errorf("scan category share: %w", err)
		}
		shares = append(shares, cs)
	}
	return shares, rows.Err()
}

// AggregateCategorySums sums spend columns across all category rows.
// COALESCE keeps the result zero-valued on an empty table.
func (s *SQLiteStore) AggregateCategorySums(ctx context.Context) (core.CategorySums, error) {
	var sums core.CategorySums
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_spend), 0), COALESCE(SUM(smb_spend), 0), COALESCE(SUM(dvbe_spend), 0)
		FROM categories`).
		Scan(&sums.TotalSpend, &sums.SMBSpend, &sums.DVBESpend)
	if err != nil {
		return core.CategorySums{}, fmt.Errorf("aggregate category sums: %w", err)
	}
	return sums, nil
}

func (s *SQLiteStore) GroupVendorsByType(ctx context.Context) ([]core.TypeDistribution, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			business_type,
			COUNT(*) AS count,
			COALESCE(AVG(rating), 0) AS avg_rating,
			COALESCE(SUM(total_spent), 0) AS total_spent,
			COUNT(CASE WHEN dgs_contract_id IS NOT NULL THEN 1 END) AS dgs_certified
		FROM vendors
		GROUP BY business_type
		ORDER BY count DESC`)
	if err != nil {
		return nil, fmt.Errorf("group vendors by type: %w", err)
	}
	defer rows.Close()

	var dist []core.TypeDistribution
	for rows.Next() {
		var d core.TypeDistribution
		if err := rows.Scan(&d.BusinessType, &d.Count, &d.AvgRating, &d.TotalSpent, &d.DGSCertified); err != nil {
			return nil, fmt.Errorf("scan type distribution: %w", err)
		}
		dist = append(dist, d)
	}
	return dist, rows.Err()
}

// GroupVendorsByLocation returns the largest location groups first,
// capped to limit. Ties on count keep whatever order the group-by
// yields; no secondary sort is applied.
func (s *SQLiteStore) GroupVendorsByLocation(ctx context.Context, limit int) ([]core.LocationDistribution, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			location,
			COUNT(*) AS vendor_count,
			COALESCE(AVG(rating), 0) AS avg_rating,
			COALESCE(AVG(distance), 0) AS avg_distance,
			COALESCE(SUM(total_spent), 0) AS total_spent
		FROM vendors
		GROUP BY location
		ORDER BY vendor_count DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("group vendors by location: %w", err)
	}
	defer rows.Close()

	var dist []core.LocationDistribution
	for rows.Next() {
		var d core.LocationDistribution
		if err := rows.Scan(&d.Location, &d.VendorCount, &d.AvgRating, &d.AvgDistance, &d.TotalSpent); err != nil {
			return nil, fmt.Errorf("scan location distribution: %w", err)
		}
		dist = append(dist, d)
	}
	return dist, rows.Err()
}

// CategoryPerformance left-joins the cached category rows against live
// vendor statistics grouped by category name. Stored percentages are
// returned as-is; the vendor-derived columns are recomputed on read.
func (s *SQLiteStore) CategoryPerformance(ctx context.Context) ([]core.CategoryPerformance, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			c.name,
			c.total_spend,
			c.smb_spend,
			c.smb_percentage,
			c.dvbe_spend,
			c.vendor_count,
			c.dgs_contracts,
			COUNT(v.id) AS actual_vendors,
			COALESCE(AVG(v.rating), 0) AS avg_rating,
			COALESCE(AVG(v.on_time_rate), 0) AS avg_on_time_rate
		FROM categories c
		LEFT JOIN vendors v ON c.name = v.category
		GROUP BY c.name
		ORDER BY c.total_spend DESC`)
	if err != nil {
		return nil, fmt.Errorf("query category performance: %w", err)
	}
	defer rows.Close()

	var perf []core.CategoryPerformance
	for rows.Next() {
		var p core.CategoryPerformance
		if err := rows.Scan(&p.Name, &p.TotalSpend, &p.SMBSpend, &p.SMBPercentage, &p.DVBESpend,
			&p.VendorCount, &p.DGSContracts, &p.ActualVendors, &p.AvgRating, &p.AvgOnTimeRate); err != nil {
			return nil, fmt.Errorf("scan category performance: %w", err)
		}
		perf = append(perf, p)
	}
	return perf, rows.Err()
}

func (s *SQLiteStore) ListTrends(ctx context.Context) ([]core.TrendPoint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, month, year, smb_spending, total_spending, smb_percentage,
			dvbe_spending, dvbe_percentage, dgs_contracts
		FROM spending_trends ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query spending trends: %w", err)
	}
	defer rows.Close()

	var trends []core.TrendPoint
	for rows.Next() {
		var t core.TrendPoint
		if err := rows.Scan(&t.ID, &t.Month, &t.Year, &t.SMBSpending, &t.TotalSpending,
			&t.SMBPercentage, &t.DVBESpending, &t.DVBEPercentage, &t.DGSContracts); err != nil {
			return nil, fmt.Errorf("scan trend point: %w", err)
		}
		trends = append(trends, t)
	}
	return trends, rows.Err()
}

func (s *SQLiteStore) ListRecommendations(ctx context.Context) ([]core.Recommendation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, title, content, confidence, action, savings, category, is_active
		FROM ai_recommendations
		WHERE is_active = 1
		ORDER BY confidence DESC, savings DESC`)
	if err != nil {
		return nil, fmt.Errorf("query recommendations: %w", err)
	}
	defer rows.Close()

	var recs []core.Recommendation
	for rows.Next() {
		var r core.Recommendation
		if err := rows.Scan(&r.ID, &r.Type, &r.Title, &r.Content, &r.Confidence,
			&r.Action, &r.Savings, &r.Category, &r.IsActive); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
