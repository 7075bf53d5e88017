package services

import (
	"context"
	"strings"
	"testing"

	"procure/internal/core"
)

type fakeRecommendationStore struct {
	recs []core.Recommendation
	err  error
}

func (f *fakeRecommendationStore) ListRecommendations(_ context.Context) ([]core.Recommendation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.recs, nil
}

type fakeCategoryStore struct {
	categories      []core.Category
	underperforming []core.CategoryShare
	lastThreshold   float64
}

func (f *fakeCategoryStore) ListCategories(_ context.Context) ([]core.Category, error) {
	return f.categories, nil
}

func (f *fakeCategoryStore) GetCategory(_ context.Context, name string) (*core.Category, error) {
	for i := range f.categories {
		if f.categories[i].Name == name {
			return &f.categories[i], nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeCategoryStore) ListVendorsByCategory(_ context.Context, name string) ([]core.Vendor, error) {
	return nil, nil
}

func (f *fakeCategoryStore) UnderperformingCategories(_ context.Context, threshold float64) ([]core.CategoryShare, error) {
	f.lastThreshold = threshold
	return f.underperforming, nil
}

func newTestAdvisor(recs *fakeRecommendationStore, vendors *fakeCountStore, categories *fakeCategoryStore, metrics *fakeMetricsStore) *AdvisorService {
	if recs == nil {
		recs = &fakeRecommendationStore{}
	}
	if vendors == nil {
		vendors = &fakeCountStore{}
	}
	if categories == nil {
		categories = &fakeCategoryStore{}
	}
	if metrics == nil {
		metrics = &fakeMetricsStore{}
	}
	return NewAdvisorService(recs, vendors, categories, metrics)
}

func TestAdvisorService_Chat_KeywordRouting(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		wantPart string
	}{
		{
			name:     "dgs keyword",
			message:  "Show me DGS certified vendors",
			wantPart: "DGS certified vendors",
		},
		{
			name:     "dvbe keyword",
			message:  "How many DVBE vendors do we have?",
			wantPart: "Disabled Veteran Business Enterprises",
		},
		{
			name:     "veteran keyword",
			message:  "find veteran owned businesses",
			wantPart: "Disabled Veteran Business Enterprises",
		},
		{
			name:     "compliance keyword",
			message:  "what is our AB 2019 compliance status",
			wantPart: "AB 2019 requires 25% Small Business",
		},
		{
			name:     "sacramento keyword",
			message:  "construction vendors near Sacramento please",
			wantPart: "Golden State Construction Services",
		},
		{
			name:     "savings keyword",
			message:  "calculate potential cost savings",
			wantPart: "12-15% cost savings",
		},
		{
			name:     "technology keyword",
			message:  "need IT and cybersecurity support",
			wantPart: "VetTech Solutions LLC",
		},
		{
			name:     "case insensitive",
			message:  "CYBER security",
			wantPart: "VetTech Solutions LLC",
		},
		{
			name:     "fallback for unknown intent",
			message:  "hello there",
			wantPart: "procurement assistant",
		},
	}

	svc := newTestAdvisor(nil, nil, nil, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := svc.Chat(context.Background(), tt.message, "")
			if err != nil {
				t.Fatalf("Chat() unexpected error: %v", err)
			}
			if !strings.Contains(reply.Response, tt.wantPart) {
				t.Errorf("Chat() response %q does not contain %q", reply.Response, tt.wantPart)
			}
			if reply.Confidence != 0.85 {
				t.Errorf("Confidence = %v, want 0.85", reply.Confidence)
			}
			if reply.SessionID == "" {
				t.Error("SessionID is empty, want generated id")
			}
			if len(reply.RelatedActions) == 0 {
				t.Error("RelatedActions is empty")
			}
		})
	}
}

func TestAdvisorService_Chat_Validation(t *testing.T) {
	svc := newTestAdvisor(nil, nil, nil, nil)

	if _, err := svc.Chat(context.Background(), "   ", ""); !core.IsValidation(err) {
		t.Errorf("Chat(blank) error = %v, want validation error", err)
	}

	long := strings.Repeat("x", 1001)
	if _, err := svc.Chat(context.Background(), long, ""); !core.IsValidation(err) {
		t.Errorf("Chat(too long) error = %v, want validation error", err)
	}
}

func TestAdvisorService_Chat_KeepsSessionID(t *testing.T) {
	svc := newTestAdvisor(nil, nil, nil, nil)

	reply, err := svc.Chat(context.Background(), "hello", "session-42")
	if err != nil {
		t.Fatalf("Chat() unexpected error: %v", err)
	}
	if reply.SessionID != "session-42" {
		t.Errorf("SessionID = %q, want session-42", reply.SessionID)
	}
}

func TestAdvisorService_Insights(t *testing.T) {
	vendors := &fakeCountStore{contractCount: 3}
	categories := &fakeCategoryStore{underperforming: []core.CategoryShare{
		{Name: "Office Supplies", SMBPercentage: 17.3},
		{Name: "Food Services", SMBPercentage: 24.0},
	}}
	metrics := &fakeMetricsStore{sums: core.CategorySums{TotalSpend: 2800000, SMBSpend: 485000}}

	svc := newTestAdvisor(nil, vendors, categories, metrics)

	insights, err := svc.Insights(context.Background())
	if err != nil {
		t.Fatalf("Insights() unexpected error: %v", err)
	}

	if len(insights) != 3 {
		t.Fatalf("len(insights) = %d, want 3", len(insights))
	}
	if categories.lastThreshold != 25 {
		t.Errorf("threshold = %v, want 25", categories.lastThreshold)
	}

	perf := insights[0]
	if perf.Type != "performance" || perf.Priority != "high" || !perf.Actionable {
		t.Errorf("performance insight = %+v, want high priority actionable", perf)
	}
	if !strings.Contains(perf.Content, "17.3%") {
		t.Errorf("performance content %q missing participation figure", perf.Content)
	}

	if !strings.Contains(insights[1].Content, "3 vendors have active DGS contracts") {
		t.Errorf("certification content = %q", insights[1].Content)
	}

	opp := insights[2]
	if opp.Type != "opportunity" {
		t.Errorf("opportunity type = %q", opp.Type)
	}
	if !strings.Contains(opp.Content, "Office Supplies, Food Services") {
		t.Errorf("opportunity content %q missing category names", opp.Content)
	}
}

func TestAdvisorService_Insights_GoalMet(t *testing.T) {
	metrics := &fakeMetricsStore{sums: core.CategorySums{TotalSpend: 1000, SMBSpend: 300}}
	svc := newTestAdvisor(nil, &fakeCountStore{}, &fakeCategoryStore{}, metrics)

	insights, err := svc.Insights(context.Background())
	if err != nil {
		t.Fatalf("Insights() unexpected error: %v", err)
	}

	if len(insights) != 2 {
		t.Fatalf("len(insights) = %d, want 2 without underperformers", len(insights))
	}
	perf := insights[0]
	if perf.Priority != "low" || perf.Actionable {
		t.Errorf("performance insight = %+v, want low priority non-actionable", perf)
	}
	if !strings.Contains(perf.Content, "Congratulations") {
		t.Errorf("performance content = %q, want congratulation", perf.Content)
	}
}

func TestAdvisorService_Feedback(t *testing.T) {
	svc := newTestAdvisor(nil, nil, nil, nil)

	tests := []struct {
		name     string
		id       int64
		feedback string
		notes    string
		wantErr  bool
	}{
		{name: "helpful", id: 1, feedback: "helpful"},
		{name: "not helpful", id: 2, feedback: "not-helpful"},
		{name: "implemented", id: 3, feedback: "implemented", notes: "saved two weeks"},
		{name: "zero id", id: 0, feedback: "helpful", wantErr: true},
		{name: "negative id", id: -1, feedback: "helpful", wantErr: true},
		{name: "unknown feedback", id: 1, feedback: "meh", wantErr: true},
		{name: "notes too long", id: 1, feedback: "helpful", notes: strings.Repeat("n", 501), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ack, err := svc.Feedback(context.Background(), tt.id, tt.feedback, tt.notes)
			if tt.wantErr {
				if !core.IsValidation(err) {
					t.Fatalf("Feedback() error = %v, want validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Feedback() unexpected error: %v", err)
			}
			if ack.RecommendationID != tt.id || ack.Feedback != tt.feedback {
				t.Errorf("ack = %+v", ack)
			}
			if ack.Message != "Feedback recorded successfully" {
				t.Errorf("message = %q", ack.Message)
			}
		})
	}
}

func TestAdvisorService_Recommendations_EmptyIsNotNil(t *testing.T) {
	svc := newTestAdvisor(&fakeRecommendationStore{}, nil, nil, nil)

	recs, err := svc.Recommendations(context.Background())
	if err != nil {
		t.Fatalf("Recommendations() unexpected error: %v", err)
	}
	if recs == nil {
		t.Error("recommendations is nil, want empty slice")
	}
}
