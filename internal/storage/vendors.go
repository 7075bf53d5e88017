package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"procure/internal/core"
	"procure/internal/ports"

	"github.com/google/uuid"
)

const vendorColumns = `id, uuid, name, category, business_type, location, distance, rating, review_count,
	phone, email, website, specialties, certifications, employee_count, annual_revenue,
	delivery_radius, minimum_order, avg_order_value, on_time_rate, quality_score,
	last_order, total_orders, total_spent, dgs_contract_id, created_at, updated_at`

// buildVendorWhere translates the optional filter predicates into a
// WHERE clause with positional parameters. The same clause backs both
// the page query and the total count so they can never disagree.
func buildVendorWhere(f ports.VendorFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any

	if f.Category != "" {
		where += " AND category = ?"
		args = append(args, f.Category)
	}
	if f.BusinessType != "" {
		where += " AND business_type = ?"
		args = append(args, f.BusinessType)
	}
	if f.Search != "" {
		// Coarse match: the specialties column holds the raw encoded
		// blob, so a term can hit inside adjacent tag text. LIKE is
		// case-insensitive for ASCII, which is the contract here.
		where += " AND (name LIKE ? OR location LIKE ? OR specialties LIKE ?)"
		term := "%" + f.Search + "%"
		args = append(args, term, term, term)
	}

	return where, args
}

func (s *SQLiteStore) QueryVendors(ctx context.Context, f ports.VendorFilter, limit, offset int) ([]core.Vendor, int, error) {
	where, args := buildVendorWhere(f)

	query := "SELECT " + vendorColumns + " FROM vendors" + where +
		" ORDER BY rating DESC, name ASC LIMIT ? OFFSET ?"
	rows, err := s.db.QueryContext(ctx, query, append(append([]any{}, args...), limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("query vendors: %w", err)
	}
	defer rows.Close()

	var vendors []core.Vendor
	for rows.Next() {
		v, err := scanVendor(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate vendors: %w", err)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM vendors" + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count vendors: %w", err)
	}

	return vendors, total, nil
}

func (s *SQLiteStore) GetVendor(ctx context.Context, id string) (*core.Vendor, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+vendorColumns+" FROM vendors WHERE uuid = ?", id)
	v, err := scanVendor(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get vendor by uuid: %w", err)
	}
	return v, nil
}

func (s *SQLiteStore) InsertVendor(ctx context.Context, v core.Vendor) (string, error) {
	id := uuid.NewString()
	now := core.Timestamp(time.Now())

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vendors (
			uuid, name, category, business_type, location, distance, rating, review_count,
			phone, email, website, specialties, certifications, employee_count, annual_revenue,
			delivery_radius, minimum_order, avg_order_value, on_time_rate, quality_score,
			last_order, total_orders, total_spent, dgs_contract_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, v.Name, v.Category, v.BusinessType, v.Location, v.Distance, v.Rating, v.ReviewCount,
		nullString(v.Phone), nullString(v.Email), nullString(v.Website),
		core.EncodeTags(v.Specialties), core.EncodeTags(v.Certifications),
		v.EmployeeCount, v.AnnualRevenue, v.DeliveryRadius, v.MinimumOrder, v.AvgOrderValue,
		v.OnTimeRate, v.QualityScore, nullString(v.LastOrder), v.TotalOrders, v.TotalSpent,
		v.ContractID, now, now)
	if err != nil {
		return "", fmt.Errorf("insert vendor: %w", err)
	}

	slog.InfoContext(ctx, "Vendor saved to SQLite",
		"uuid", id,
		"name", v.Name,
		"category", v.Category,
		"business_type", v.BusinessType)

	return id, nil
}

func (s *SQLiteStore) UpdateVendor(ctx context.Context, id string, u core.VendorUpdate) error {
	set := []string{"updated_at = ?"}
	args := []any{core.Timestamp(time.Now())}

	add := func(column string, value any) {
		set = append(set, column+" = ?")
		args = append(args, value)
	}
	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Category != nil {
		add("category", *u.Category)
	}
	if u.BusinessType != nil {
		add("business_type", *u.BusinessType)
	}
	if u.Location != nil {
		add("location", *u.Location)
	}
	if u.Distance != nil {
		add("distance", *u.Distance)
	}
	if u.Rating != nil {
		add("rating", *u.Rating)
	}
	if u.ReviewCount != nil {
		add("review_count", *u.ReviewCount)
	}
	if u.Phone != nil {
		add("phone", *u.Phone)
	}
	if u.Email != nil {
		add("email", *u.Email)
	}
	if u.Website != nil {
		add("website", *u.Website)
	}
	if u.Specialties != nil {
		add("specialties", core.EncodeTags(*u.Specialties))
	}
	if u.Certifications != nil {
		add("certifications", core.EncodeTags(*u.Certifications))
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE vendors SET "+strings.Join(set, ", ")+" WHERE uuid = ?",
		append(args, id)...)
	if err != nil {
		return fmt.Errorf("update vendor: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update vendor rows affected: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Vendor updated", "uuid", id, "fields", len(set)-1)
	return nil
}

func (s *SQLiteStore) DeleteVendor(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM vendors WHERE uuid = ?", id)
	if err != nil {
		return fmt.Errorf("delete vendor: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete vendor rows affected: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Vendor deleted", "uuid", id)
	return nil
}

func (s *SQLiteStore) CountVendors(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vendors").Scan(&count); err != nil {
		return 0, fmt.Errorf("count vendors: %w", err)
	}
	return count, nil
}

func (s *SQLiteStore) CountContractVendors(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM vendors WHERE dgs_contract_id IS NOT NULL").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count contract vendors: %w", err)
	}
	return count, nil
}

func scanVendor(scan func(...any) error) (*core.Vendor, error) {
	var (
		v                     core.Vendor
		phone, email, website sql.NullString
		specialties, certs    sql.NullString
		lastOrder, contractID sql.NullString
		createdAt, updatedAt  sql.NullString
		employeeCount         sql.NullInt64
		annualRevenue         sql.NullInt64
		deliveryRadius        sql.NullInt64
		minimumOrder          sql.NullInt64
		avgOrderValue         sql.NullInt64
		onTimeRate            sql.NullInt64
		totalOrders           sql.NullInt64
		totalSpent            sql.NullInt64
		qualityScore          sql.NullFloat64
	)

	err := scan(&v.ID, &v.UUID, &v.Name, &v.Category, &v.BusinessType, &v.Location,
		&v.Distance, &v.Rating, &v.ReviewCount,
		&phone, &email, &website, &specialties, &certs,
		&employeeCount, &annualRevenue, &deliveryRadius, &minimumOrder, &avgOrderValue,
		&onTimeRate, &qualityScore, &lastOrder, &totalOrders, &totalSpent,
		&contractID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	v.Phone = phone.String
	v.Email = email.String
	v.Website = website.String
	v.Specialties = core.DecodeTags(specialties.String)
	v.Certifications = core.DecodeTags(certs.String)
	v.EmployeeCount = employeeCount.Int64
	v.AnnualRevenue = annualRevenue.Int64
	v.DeliveryRadius = deliveryRadius.Int64
	v.MinimumOrder = minimumOrder.Int64
	v.AvgOrderValue = avgOrderValue.Int64
	v.OnTimeRate = onTimeRate.Int64
	v.QualityScore = qualityScore.Float64
	v.LastOrder = lastOrder.String
	v.TotalOrders = totalOrders.Int64
	v.TotalSpent = totalSpent.Int64
	if contractID.Valid {
		v.ContractID = &contractID.String
	}
	v.CreatedAt = createdAt.String
	v.UpdatedAt = updatedAt.String

	return &v, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
