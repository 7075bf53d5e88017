// Package memory provides an in-memory store implementing the same
// ports as the SQLite store, with matching filter, ordering, and
// aggregation semantics. It backs tests and the DATA_BACKEND=memory
// mode.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"procure/internal/core"
	"procure/internal/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu      sync.Mutex
	nextID  int64
	vendors []core.Vendor
	cats    []core.Category
	trends  []core.TrendPoint
	recs    []core.Recommendation
}

func New() *Store {
	return &Store{nextID: 1}
}

// NewSeeded returns a store holding the same seed content the SQLite
// migrations install.
func NewSeeded() *Store {
	s := New()
	ctx := context.Background()
	for _, v := range seedVendors() {
		_, _ = s.InsertVendor(ctx, v)
	}
	s.cats = seedCategories()
	s.trends = seedTrends()
	s.recs = seedRecommendations()
	return s
}

func matches(v core.Vendor, f ports.VendorFilter) bool {
	if f.Category != "" && v.Category != f.Category {
		return false
	}
	if f.BusinessType != "" && v.BusinessType != f.BusinessType {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		// Same coarse policy as the SQL LIKE: the raw encoded
		// specialties blob is searched, not individual tags.
		blob := strings.ToLower(core.EncodeTags(v.Specialties))
		if !strings.Contains(strings.ToLower(v.Name), term) &&
			!strings.Contains(strings.ToLower(v.Location), term) &&
			!strings.Contains(blob, term) {
			return false
		}
	}
	return true
}

func sortVendors(vendors []core.Vendor) {
	sort.SliceStable(vendors, func(i, j int) bool {
		if vendors[i].Rating != vendors[j].Rating {
			return vendors[i].Rating > vendors[j].Rating
		}
		return vendors[i].Name < vendors[j].Name
	})
}

func (s *Store) QueryVendors(_ context.Context, f ports.VendorFilter, limit, offset int) ([]core.Vendor, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []core.Vendor
	for _, v := range s.vendors {
		if matches(v, f) {
			matched = append(matched, cloneVendor(v))
		}
	}
	sortVendors(matched)

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (s *Store) GetVendor(_ context.Context, id string) (*core.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.vendors {
		if v.UUID == id {
			c := cloneVendor(v)
			return &c, nil
		}
	}
	return nil, core.ErrNotFound
}

func (s *Store) InsertVendor(_ context.Context, v core.Vendor) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v.ID = s.nextID
	s.nextID++
	v.UUID = uuid.NewString()
	now := core.Timestamp(time.Now())
	v.CreatedAt = now
	v.UpdatedAt = now
	// Round-trip through the codec so stored shape matches SQLite rows.
	v.Specialties = core.DecodeTags(core.EncodeTags(v.Specialties))
	v.Certifications = core.DecodeTags(core.EncodeTags(v.Certifications))

	s.vendors = append(s.vendors, v)
	return v.UUID, nil
}

func (s *Store) UpdateVendor(_ context.Context, id string, u core.VendorUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.vendors {
		if s.vendors[i].UUID != id {
			continue
		}
		v := &s.vendors[i]
		if u.Name != nil {
			v.Name = *u.Name
		}
		if u.Category != nil {
			v.Category = *u.Category
		}
		if u.BusinessType != nil {
			v.BusinessType = *u.BusinessType
		}
		if u.Location != nil {
			v.Location = *u.Location
		}
		if u.Distance != nil {
			v.Distance = *u.Distance
		}
		if u.Rating != nil {
			v.Rating = *u.Rating
		}
		if u.ReviewCount != nil {
			v.ReviewCount = *u.ReviewCount
		}
		if u.Phone != nil {
			v.Phone = *u.Phone
		}
		if u.Email != nil {
			v.Email = *u.Email
		}
		if u.Website != nil {
			v.Website = *u.Website
		}
		if u.Specialties != nil {
			v.Specialties = core.DecodeTags(core.EncodeTags(*u.Specialties))
		}
		if u.Certifications != nil {
			v.Certifications = core.DecodeTags(core.EncodeTags(*u.Certifications))
		}
		v.UpdatedAt = core.Timestamp(time.Now())
		return nil
	}
	return core.ErrNotFound
}

func (s *Store) DeleteVendor(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.vendors {
		if s.vendors[i].UUID == id {
			s.vendors = append(s.vendors[:i], s.vendors[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) CountVendors(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.vendors)), nil
}

func (s *Store) CountContractVendors(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, v := range s.vendors {
		if v.ContractID != nil {
			count++
		}
	}
	return count, nil
}

func (s *Store) ListCategories(_ context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cats := append([]core.Category(nil), s.cats...)
	sort.SliceStable(cats, func(i, j int) bool {
		return cats[i].TotalSpend > cats[j].TotalSpend
	})
	return cats, nil
}

func (s *Store) GetCategory(_ context.Context, name string) (*core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cats {
		if c.Name == name {
			out := c
			return &out, nil
		}
	}
	return nil, core.ErrNotFound
}

func (s *Store) ListVendorsByCategory(_ context.Context, name string) ([]core.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []core.Vendor
	for _, v := range s.vendors {
		if v.Category == name {
			matched = append(matched, cloneVendor(v))
		}
	}
	sortVendors(matched)
	return matched, nil
}

func (s *Store) UnderperformingCategories(_ context.Context, threshold float64) ([]core.CategoryShare, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var shares []core.CategoryShare
	for _, c := range s.cats {
		if c.SMBPercentage < threshold {
			shares = append(shares, core.CategoryShare{Name: c.Name, SMBPercentage: c.SMBPercentage})
		}
	}
	return shares, nil
}

func (s *Store) AggregateCategorySums(_ context.Context) (core.CategorySums, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sums core.CategorySums
	for _, c := range s.cats {
		sums.TotalSpend += c.TotalSpend
		sums.SMBSpend += c.SMBSpend
		sums.DVBESpend += c.DVBESpend
	}
	return sums, nil
}

func (s *Store) GroupVendorsByType(_ context.Context) ([]core.TypeDistribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := make([]string, 0)
	groups := make(map[string]*core.TypeDistribution)
	ratings := make(map[string]float64)
	for _, v := range s.vendors {
		g, ok := groups[v.BusinessType]
		if !ok {
			g = &core.TypeDistribution{BusinessType: v.BusinessType}
			groups[v.BusinessType] = g
			order = append(order, v.BusinessType)
		}
		g.Count++
		ratings[v.BusinessType] += v.Rating
		g.TotalSpent += v.TotalSpent
		if v.ContractID != nil {
			g.DGSCertified++
		}
	}

	dist := make([]core.TypeDistribution, 0, len(order))
	for _, key := range order {
		g := *groups[key]
		if g.Count > 0 {
			g.AvgRating = ratings[key] / float64(g.Count)
		}
		dist = append(dist, g)
	}
	sort.SliceStable(dist, func(i, j int) bool { return dist[i].Count > dist[j].Count })
	return dist, nil
}

func (s *Store) GroupVendorsByLocation(_ context.Context, limit int) ([]core.LocationDistribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := make([]string, 0)
	groups := make(map[string]*core.LocationDistribution)
	ratings := make(map[string]float64)
	distances := make(map[string]float64)
	for _, v := range s.vendors {
		g, ok := groups[v.Location]
		if !ok {
			g = &core.LocationDistribution{Location: v.Location}
			groups[v.Location] = g
			order = append(order, v.Location)
		}
		g.VendorCount++
		ratings[v.Location] += v.Rating
		distances[v.Location] += v.Distance
		g.TotalSpent += v.TotalSpent
	}

	dist := make([]core.LocationDistribution, 0, len(order))
	for _, key := range order {
		g := *groups[key]
		if g.VendorCount > 0 {
			g.AvgRating = ratings[key] / float64(g.VendorCount)
			g.AvgDistance = distances[key] / float64(g.VendorCount)
		}
		dist = append(dist, g)
	}
	sort.SliceStable(dist, func(i, j int) bool { return dist[i].VendorCount > dist[j].VendorCount })
	if len(dist) > limit {
		dist = dist[:limit]
	}
	return dist, nil
}

func (s *Store) CategoryPerformance(_ context.Context) ([]core.CategoryPerformance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cats := append([]core.Category(nil), s.cats...)
	sort.SliceStable(cats, func(i, j int) bool { return cats[i].TotalSpend > cats[j].TotalSpend })

	perf := make([]core.CategoryPerformance, 0, len(cats))
	for _, c := range cats {
		p := core.CategoryPerformance{
			Name:          c.Name,
			TotalSpend:    c.TotalSpend,
			SMBSpend:      c.SMBSpend,
			SMBPercentage: c.SMBPercentage,
			DVBESpend:     c.DVBESpend,
			VendorCount:   c.VendorCount,
			DGSContracts:  c.DGSContracts,
		}
		var ratingSum, onTimeSum float64
		for _, v := range s.vendors {
			if v.Category != c.Name {
				continue
			}
			p.ActualVendors++
			ratingSum += v.Rating
			onTimeSum += float64(v.OnTimeRate)
		}
		if p.ActualVendors > 0 {
			p.AvgRating = ratingSum / float64(p.ActualVendors)
			p.AvgOnTimeRate = onTimeSum / float64(p.ActualVendors)
		}
		perf = append(perf, p)
	}
	return perf, nil
}

func (s *Store) ListTrends(_ context.Context) ([]core.TrendPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.TrendPoint(nil), s.trends...), nil
}

func (s *Store) ListRecommendations(_ context.Context) ([]core.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var recs []core.Recommendation
	for _, r := range s.recs {
		if r.IsActive {
			recs = append(recs, r)
		}
	}
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Confidence != recs[j].Confidence {
			return recs[i].Confidence > recs[j].Confidence
		}
		return recs[i].Savings > recs[j].Savings
	})
	return recs, nil
}

func cloneVendor(v core.Vendor) core.Vendor {
	out := v
	out.Specialties = append([]string(nil), v.Specialties...)
	out.Certifications = append([]string(nil), v.Certifications...)
	if v.ContractID != nil {
		id := *v.ContractID
		out.ContractID = &id
	}
	return out
}
