package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"procure/internal/core"
	"procure/internal/services"
)

// createVendorRequest is the create payload. Request bodies use
// camelCase keys while responses expose the snake_case row form.
type createVendorRequest struct {
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	BusinessType   string   `json:"businessType"`
	Location       string   `json:"location"`
	Distance       float64  `json:"distance"`
	Rating         float64  `json:"rating"`
	ReviewCount    int64    `json:"reviewCount"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	Website        string   `json:"website"`
	Specialties    []string `json:"specialties"`
	Certifications []string `json:"certifications"`
	EmployeeCount  int64    `json:"employeeCount"`
	AnnualRevenue  int64    `json:"annualRevenue"`
	DeliveryRadius int64    `json:"deliveryRadius"`
	MinimumOrder   int64    `json:"minimumOrder"`
	AvgOrderValue  int64    `json:"avgOrderValue"`
	OnTimeRate     int64    `json:"onTimeRate"`
	QualityScore   float64  `json:"qualityScore"`
	LastOrder      string   `json:"lastOrder"`
	TotalOrders    int64    `json:"totalOrders"`
	TotalSpent     int64    `json:"totalSpent"`
	ContractID     *string  `json:"dgsContractId"`
}

func (req createVendorRequest) toVendor() core.Vendor {
	return core.Vendor{
		Name:           req.Name,
		Category:       req.Category,
		BusinessType:   req.BusinessType,
		Location:       req.Location,
		Distance:       req.Distance,
		Rating:         req.Rating,
		ReviewCount:    req.ReviewCount,
		Phone:          req.Phone,
		Email:          req.Email,
		Website:        req.Website,
		Specialties:    req.Specialties,
		Certifications: req.Certifications,
		EmployeeCount:  req.EmployeeCount,
		AnnualRevenue:  req.AnnualRevenue,
		DeliveryRadius: req.DeliveryRadius,
		MinimumOrder:   req.MinimumOrder,
		AvgOrderValue:  req.AvgOrderValue,
		OnTimeRate:     req.OnTimeRate,
		QualityScore:   req.QualityScore,
		LastOrder:      req.LastOrder,
		TotalOrders:    req.TotalOrders,
		TotalSpent:     req.TotalSpent,
		ContractID:     req.ContractID,
	}
}

// updateVendorRequest is the partial update payload. Pointer fields
// keep "absent" distinct from "present but zero".
type updateVendorRequest struct {
	Name           *string   `json:"name"`
	Category       *string   `json:"category"`
	BusinessType   *string   `json:"businessType"`
	Location       *string   `json:"location"`
	Distance       *float64  `json:"distance"`
	Rating         *float64  `json:"rating"`
	ReviewCount    *int64    `json:"reviewCount"`
	Phone          *string   `json:"phone"`
	Email          *string   `json:"email"`
	Website        *string   `json:"website"`
	Specialties    *[]string `json:"specialties"`
	Certifications *[]string `json:"certifications"`
}

func (req updateVendorRequest) toUpdate() core.VendorUpdate {
	return core.VendorUpdate{
		Name:           req.Name,
		Category:       req.Category,
		BusinessType:   req.BusinessType,
		Location:       req.Location,
		Distance:       req.Distance,
		Rating:         req.Rating,
		ReviewCount:    req.ReviewCount,
		Phone:          req.Phone,
		Email:          req.Email,
		Website:        req.Website,
		Specialties:    req.Specialties,
		Certifications: req.Certifications,
	}
}

func (s *Server) handleListVendors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := services.ListRequest{
		Category:     q.Get("category"),
		BusinessType: q.Get("businessType"),
		Search:       q.Get("search"),
		Page:         services.DefaultPage,
		Limit:        services.DefaultLimit,
	}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "page: must be a number")
			return
		}
		req.Page = page
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "limit: must be a number")
			return
		}
		req.Limit = limit
	}

	page, err := s.vendors.List(r.Context(), req)
	if err != nil {
		respondServiceError(r.Context(), w, err, "Vendor not found", "Database error")
		return
	}

	respond(w, http.StatusOK, page)
}

func (s *Server) handleGetVendor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	vendor, err := s.vendors.Get(r.Context(), id)
	if err != nil {
		respondServiceError(r.Context(), w, err, "Vendor not found", "Database error")
		return
	}

	respond(w, http.StatusOK, vendor)
}

func (s *Server) handleCreateVendor(w http.ResponseWriter, r *http.Request) {
	var req createVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	uuid, err := s.vendors.Create(r.Context(), req.toVendor())
	if err != nil {
		respondServiceError(r.Context(), w, err, "Vendor not found", "Failed to create vendor")
		return
	}

	s.analyticsCache.Purge()

	respond(w, http.StatusCreated, map[string]any{
		"message": "Vendor created successfully",
		"vendor":  map[string]string{"uuid": uuid},
	})
}

func (s *Server) handleUpdateVendor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if err := s.vendors.Update(r.Context(), id, req.toUpdate()); err != nil {
		respondServiceError(r.Context(), w, err, "Vendor not found", "Failed to update vendor")
		return
	}

	s.analyticsCache.Purge()

	respond(w, http.StatusOK, map[string]string{"message": "Vendor updated successfully"})
}

func (s *Server) handleDeleteVendor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.vendors.Delete(r.Context(), id); err != nil {
		respondServiceError(r.Context(), w, err, "Vendor not found", "Failed to delete vendor")
		return
	}

	s.analyticsCache.Purge()

	respond(w, http.StatusOK, map[string]string{"message": "Vendor deleted successfully"})
}
