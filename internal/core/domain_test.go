package core

import (
	"errors"
	"testing"
)

func validVendor() Vendor {
	return Vendor{
		Name:         "Test Vendor",
		Category:     "Office Supplies",
		BusinessType: SmallBusiness,
		Location:     "Sacramento, CA",
		Distance:     4.2,
		Rating:       4.5,
		ReviewCount:  10,
	}
}

func TestVendor_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Vendor)
		wantField string
	}{
		{
			name:   "valid vendor",
			mutate: func(v *Vendor) {},
		},
		{
			name:      "empty name",
			mutate:    func(v *Vendor) { v.Name = "   " },
			wantField: "name",
		},
		{
			name:      "empty category",
			mutate:    func(v *Vendor) { v.Category = "" },
			wantField: "category",
		},
		{
			name:      "empty business type",
			mutate:    func(v *Vendor) { v.BusinessType = "" },
			wantField: "businessType",
		},
		{
			name:      "empty location",
			mutate:    func(v *Vendor) { v.Location = "" },
			wantField: "location",
		},
		{
			name:      "negative distance",
			mutate:    func(v *Vendor) { v.Distance = -1 },
			wantField: "distance",
		},
		{
			name:      "rating above range",
			mutate:    func(v *Vendor) { v.Rating = 5.1 },
			wantField: "rating",
		},
		{
			name:      "rating below range",
			mutate:    func(v *Vendor) { v.Rating = -0.1 },
			wantField: "rating",
		},
		{
			name:      "negative review count",
			mutate:    func(v *Vendor) { v.ReviewCount = -1 },
			wantField: "reviewCount",
		},
		{
			name:      "malformed email",
			mutate:    func(v *Vendor) { v.Email = "not-an-email" },
			wantField: "email",
		},
		{
			name:   "valid email",
			mutate: func(v *Vendor) { v.Email = "orders@vendor.example.com" },
		},
		{
			name:      "malformed website",
			mutate:    func(v *Vendor) { v.Website = "not a url" },
			wantField: "website",
		},
		{
			name:   "website without scheme",
			mutate: func(v *Vendor) { v.Website = "vendor.example.com" },
		},
		{
			name:   "boundary rating zero",
			mutate: func(v *Vendor) { v.Rating = 0 },
		},
		{
			name:   "boundary rating five",
			mutate: func(v *Vendor) { v.Rating = 5 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validVendor()
			tt.mutate(&v)

			err := v.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}

			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Validate() field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestVendorUpdate_Validate(t *testing.T) {
	strp := func(s string) *string { return &s }
	f64p := func(f float64) *float64 { return &f }
	i64p := func(i int64) *int64 { return &i }

	tests := []struct {
		name      string
		update    VendorUpdate
		wantField string
	}{
		{
			name:   "empty update is allowed",
			update: VendorUpdate{},
		},
		{
			name:   "valid partial update",
			update: VendorUpdate{Name: strp("New Name"), Rating: f64p(4.9)},
		},
		{
			name:      "present empty name",
			update:    VendorUpdate{Name: strp("")},
			wantField: "name",
		},
		{
			name:      "present rating out of range",
			update:    VendorUpdate{Rating: f64p(6)},
			wantField: "rating",
		},
		{
			name:      "present negative review count",
			update:    VendorUpdate{ReviewCount: i64p(-5)},
			wantField: "reviewCount",
		},
		{
			name:      "present malformed email",
			update:    VendorUpdate{Email: strp("nope")},
			wantField: "email",
		},
		{
			name:   "present empty email is cleared not validated",
			update: VendorUpdate{Email: strp("")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.update.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}

			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Validate() field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(ValidationError{Field: "name", Message: "must not be empty"}) {
		t.Error("IsValidation() = false for ValidationError")
	}
	if IsValidation(ErrNotFound) {
		t.Error("IsValidation() = true for ErrNotFound")
	}
	if IsValidation(nil) {
		t.Error("IsValidation() = true for nil")
	}
}
