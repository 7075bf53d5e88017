package core

import (
	"net/mail"
	"net/url"
	"strings"
	"time"
)

// Business type classifications used for diversity-spend tracking.
const (
	SmallBusiness   = "Small Business"
	MediumBusiness  = "Medium Business"
	DisabledVeteran = "Disabled Veteran Business"
	LargeBusiness   = "Large Business"
)

type (
	// Vendor is a supplier record. UUID is the stable caller-visible
	// identifier; ID is the internal row id and never leaves the store.
	Vendor struct {
		ID             int64    `json:"id"`
		UUID           string   `json:"uuid"`
		Name           string   `json:"name"`
		Category       string   `json:"category"`
		BusinessType   string   `json:"business_type"`
		Location       string   `json:"location"`
		Distance       float64  `json:"distance"`
		Rating         float64  `json:"rating"`
		ReviewCount    int64    `json:"review_count"`
		Phone          string   `json:"phone,omitempty"`
		Email          string   `json:"email,omitempty"`
		Website        string   `json:"website,omitempty"`
		Specialties    []string `json:"specialties"`
		Certifications []string `json:"certifications"`
		EmployeeCount  int64    `json:"employee_count"`
		AnnualRevenue  int64    `json:"annual_revenue"`
		DeliveryRadius int64    `json:"delivery_radius"`
		MinimumOrder   int64    `json:"minimum_order"`
		AvgOrderValue  int64    `json:"avg_order_value"`
		OnTimeRate     int64    `json:"on_time_rate"`
		QualityScore   float64  `json:"quality_score"`
		LastOrder      string   `json:"last_order,omitempty"`
		TotalOrders    int64    `json:"total_orders"`
		TotalSpent     int64    `json:"total_spent"`
		ContractID     *string  `json:"dgs_contract_id"`
		CreatedAt      string   `json:"created_at,omitempty"`
		UpdatedAt      string   `json:"updated_at,omitempty"`
	}

	// Category is a seeded spend bucket. SMBPercentage is a cached value
	// written at seed time; it is not recomputed when vendors change, so
	// it can drift from the vendor-derived figure. Both are exposed by
	// the category performance view.
	Category struct {
		ID            int64   `json:"id"`
		Name          string  `json:"name"`
		TotalSpend    int64   `json:"total_spend"`
		SMBSpend      int64   `json:"smb_spend"`
		SMBPercentage float64 `json:"smb_percentage"`
		VendorCount   int64   `json:"vendor_count"`
		AvgOrder      int64   `json:"avg_order"`
		DGSContracts  int64   `json:"dgs_contracts"`
		DVBESpend     int64   `json:"dvbe_spend"`
	}

	// TrendPoint is one month of spending history. Rows are append-only
	// and listed in insertion order.
	TrendPoint struct {
		ID             int64   `json:"id"`
		Month          string  `json:"month"`
		Year           int64   `json:"year"`
		SMBSpending    int64   `json:"smb_spending"`
		TotalSpending  int64   `json:"total_spending"`
		SMBPercentage  float64 `json:"smb_percentage"`
		DVBESpending   int64   `json:"dvbe_spending"`
		DVBEPercentage float64 `json:"dvbe_percentage"`
		DGSContracts   int64   `json:"dgs_contracts"`
	}

	// Recommendation is a seeded advisory record.
	Recommendation struct {
		ID         int64   `json:"id"`
		Type       string  `json:"type"`
		Title      string  `json:"title"`
		Content    string  `json:"content"`
		Confidence float64 `json:"confidence"`
		Action     string  `json:"action"`
		Savings    int64   `json:"savings"`
		Category   string  `json:"category"`
		IsActive   bool    `json:"is_active"`
	}
)

// Timestamp formats a time the way the API exposes created_at and
// updated_at values.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Validate checks the required-field and range rules for a full vendor
// record, as applied on create.
func (v Vendor) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return ValidationError{Field: "name", Message: "must not be empty"}
	}
	if strings.TrimSpace(v.Category) == "" {
		return ValidationError{Field: "category", Message: "must not be empty"}
	}
	if strings.TrimSpace(v.BusinessType) == "" {
		return ValidationError{Field: "businessType", Message: "must not be empty"}
	}
	if strings.TrimSpace(v.Location) == "" {
		return ValidationError{Field: "location", Message: "must not be empty"}
	}
	if v.Distance < 0 {
		return ValidationError{Field: "distance", Message: "must be >= 0"}
	}
	if v.Rating < 0 || v.Rating > 5 {
		return ValidationError{Field: "rating", Message: "must be between 0 and 5"}
	}
	if v.ReviewCount < 0 {
		return ValidationError{Field: "reviewCount", Message: "must be >= 0"}
	}
	if v.EmployeeCount < 0 {
		return ValidationError{Field: "employeeCount", Message: "must be >= 0"}
	}
	if v.AnnualRevenue < 0 {
		return ValidationError{Field: "annualRevenue", Message: "must be >= 0"}
	}
	if v.Email != "" {
		if err := ValidateEmail(v.Email); err != nil {
			return err
		}
	}
	if v.Website != "" {
		if err := ValidateWebsite(v.Website); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEmail checks syntactic validity of an optional email field.
func ValidateEmail(s string) error {
	if _, err := mail.ParseAddress(s); err != nil {
		return ValidationError{Field: "email", Message: "must be a valid email address"}
	}
	return nil
}

// ValidateWebsite checks syntactic validity of an optional website field.
// Bare hosts like "www.example.com" are accepted, matching the loose
// validation the dashboard applies.
func ValidateWebsite(s string) error {
	candidate := s
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Host == "" || !strings.Contains(u.Host, ".") {
		return ValidationError{Field: "website", Message: "must be a valid URL"}
	}
	return nil
}
