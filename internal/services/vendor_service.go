// Package services implements the query, mutation, and aggregation
// operations behind the API handlers. Services hold no state of their
// own beyond the injected store ports.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"procure/internal/core"
	"procure/internal/ports"
)

// Listing bounds. Explicit out-of-range values are rejected before any
// store access; absent values receive the defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// EventPublisher is the optional outbound notification hook for vendor
// writes. A nil publisher disables events.
type EventPublisher interface {
	PublishVendorEvent(ctx context.Context, event, vendorID string) error
}

// ListRequest carries the listing filters and window of a vendor query.
type ListRequest struct {
	Category     string
	BusinessType string
	Search       string
	Page         int
	Limit        int
}

// Pagination describes the window of a result page.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// VendorPage is one page of a vendor listing.
type VendorPage struct {
	Vendors    []core.Vendor `json:"vendors"`
	Pagination Pagination    `json:"pagination"`
}

// VendorService implements the vendor query/filter engine and the
// single-record mutations. Writes never touch category aggregates;
// those stay a separately maintained cache.
type VendorService struct {
	store  ports.VendorStore
	events EventPublisher
}

func NewVendorService(store ports.VendorStore, events EventPublisher) *VendorService {
	return &VendorService{store: store, events: events}
}

// List returns the vendors matching the request filters, ordered by
// rating descending then name ascending, with pagination metadata.
func (s *VendorService) List(ctx context.Context, req ListRequest) (*VendorPage, error) {
	if req.Page < 1 {
		return nil, core.ValidationError{Field: "page", Message: "must be >= 1"}
	}
	if req.Limit < 1 || req.Limit > MaxLimit {
		return nil, core.ValidationError{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", MaxLimit)}
	}

	filter := ports.VendorFilter{
		Category:     req.Category,
		BusinessType: req.BusinessType,
		Search:       req.Search,
	}
	offset := (req.Page - 1) * req.Limit

	vendors, total, err := s.store.QueryVendors(ctx, filter, req.Limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query vendors: %w", err)
	}
	if vendors == nil {
		vendors = []core.Vendor{}
	}

	return &VendorPage{
		Vendors: vendors,
		Pagination: Pagination{
			Page:  req.Page,
			Limit: req.Limit,
			Total: total,
			Pages: (total + req.Limit - 1) / req.Limit,
		},
	}, nil
}

// Get fetches a single vendor by its external identifier.
func (s *VendorService) Get(ctx context.Context, id string) (*core.Vendor, error) {
	v, err := s.store.GetVendor(ctx, id)
	if err == core.ErrNotFound {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return v, nil
}

// Create validates and persists a new vendor, returning the minted
// external identifier. Each call mints a fresh identifier; create is
// deliberately not idempotent.
func (s *VendorService) Create(ctx context.Context, v core.Vendor) (string, error) {
	if err := v.Validate(); err != nil {
		return "", err
	}

	id, err := s.store.InsertVendor(ctx, v)
	if err != nil {
		return "", fmt.Errorf("insert vendor: %w", err)
	}

	s.publish(ctx, "vendor.created", id)
	return id, nil
}

// Update applies a partial change set to the vendor with the given
// external identifier. Only fields present in the update are validated
// and written.
func (s *VendorService) Update(ctx context.Context, id string, u core.VendorUpdate) error {
	if err := u.Validate(); err != nil {
		return err
	}

	err := s.store.UpdateVendor(ctx, id, u)
	if err == core.ErrNotFound {
		return err
	}
	if err != nil {
		return fmt.Errorf("update vendor: %w", err)
	}

	s.publish(ctx, "vendor.updated", id)
	return nil
}

// Delete removes the vendor with the given external identifier.
func (s *VendorService) Delete(ctx context.Context, id string) error {
	err := s.store.DeleteVendor(ctx, id)
	if err == core.ErrNotFound {
		return err
	}
	if err != nil {
		return fmt.Errorf("delete vendor: %w", err)
	}

	s.publish(ctx, "vendor.deleted", id)
	return nil
}

// publish emits a vendor change event when a publisher is configured.
// The write already succeeded; a failed publish is logged, not returned.
func (s *VendorService) publish(ctx context.Context, event, id string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishVendorEvent(ctx, event, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish vendor event",
			"event", event, "vendor_uuid", id, "error", err)
	}
}
