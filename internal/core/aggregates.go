package core

// CategorySums are the spend totals summed across all category rows.
type CategorySums struct {
	TotalSpend int64
	SMBSpend   int64
	DVBESpend  int64
}

// TypeDistribution is one business-type group of the vendor population.
type TypeDistribution struct {
	BusinessType string  `json:"business_type"`
	Count        int64   `json:"count"`
	AvgRating    float64 `json:"avg_rating"`
	TotalSpent   int64   `json:"total_spent"`
	DGSCertified int64   `json:"dgs_certified"`
}

// LocationDistribution is one location group of the vendor population.
type LocationDistribution struct {
	Location    string  `json:"location"`
	VendorCount int64   `json:"vendor_count"`
	AvgRating   float64 `json:"avg_rating"`
	AvgDistance float64 `json:"avg_distance"`
	TotalSpent  int64   `json:"total_spent"`
}

// CategoryPerformance joins a category's cached spend figures with
// statistics recomputed from the live vendor rows. SMBPercentage is the
// stored cache value and ActualVendors/AvgRating/AvgOnTimeRate are
// vendor-derived; the two can legitimately disagree.
type CategoryPerformance struct {
	Name           string  `json:"name"`
	TotalSpend     int64   `json:"total_spend"`
	SMBSpend       int64   `json:"smb_spend"`
	SMBPercentage  float64 `json:"smb_percentage"`
	DVBESpend      int64   `json:"dvbe_spend"`
	DVBEPercentage float64 `json:"dvbe_percentage"`
	VendorCount    int64   `json:"vendor_count"`
	DGSContracts   int64   `json:"dgs_contracts"`
	ActualVendors  int64   `json:"actual_vendors"`
	AvgRating      float64 `json:"avg_rating"`
	AvgOnTimeRate  float64 `json:"avg_on_time_rate"`
}

// CategoryShare names a category together with its cached SMB share,
// used by the insight generator to flag underperforming categories.
type CategoryShare struct {
	Name          string
	SMBPercentage float64
}

// VendorUpdate is a partial vendor change set. A nil field was absent
// from the request and is left untouched; a non-nil field is validated
// and applied. This keeps "field absent" distinct from "field present".
type VendorUpdate struct {
	Name           *string
	Category       *string
	BusinessType   *string
	Location       *string
	Distance       *float64
	Rating         *float64
	ReviewCount    *int64
	Phone          *string
	Email          *string
	Website        *string
	Specialties    *[]string
	Certifications *[]string
}

// Validate checks only the fields present in the update.
func (u VendorUpdate) Validate() error {
	if u.Name != nil && *u.Name == "" {
		return ValidationError{Field: "name", Message: "must not be empty"}
	}
	if u.Category != nil && *u.Category == "" {
		return ValidationError{Field: "category", Message: "must not be empty"}
	}
	if u.BusinessType != nil && *u.BusinessType == "" {
		return ValidationError{Field: "businessType", Message: "must not be empty"}
	}
	if u.Location != nil && *u.Location == "" {
		return ValidationError{Field: "location", Message: "must not be empty"}
	}
	if u.Distance != nil && *u.Distance < 0 {
		return ValidationError{Field: "distance", Message: "must be >= 0"}
	}
	if u.Rating != nil && (*u.Rating < 0 || *u.Rating > 5) {
		return ValidationError{Field: "rating", Message: "must be between 0 and 5"}
	}
	if u.ReviewCount != nil && *u.ReviewCount < 0 {
		return ValidationError{Field: "reviewCount", Message: "must be >= 0"}
	}
	if u.Email != nil && *u.Email != "" {
		if err := ValidateEmail(*u.Email); err != nil {
			return err
		}
	}
	if u.Website != nil && *u.Website != "" {
		if err := ValidateWebsite(*u.Website); err != nil {
			return err
		}
	}
	return nil
}
