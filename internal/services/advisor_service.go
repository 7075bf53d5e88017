package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"procure/internal/core"
	"procure/internal/ports"
)

// ChatReply is the assistant's answer to one chat message.
type ChatReply struct {
	Response       string   `json:"response"`
	SessionID      string   `json:"sessionId"`
	Timestamp      string   `json:"timestamp"`
	Confidence     float64  `json:"confidence"`
	RelatedActions []string `json:"relatedActions"`
}

// Insight is a data-driven observation generated on read.
type Insight struct {
	Type       string `json:"type"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Priority   string `json:"priority"`
	Actionable bool   `json:"actionable"`
}

// FeedbackAck acknowledges recorded recommendation feedback.
type FeedbackAck struct {
	Message          string `json:"message"`
	RecommendationID int64  `json:"recommendationId"`
	Feedback         string `json:"feedback"`
	Timestamp        string `json:"timestamp"`
}

// chatRule maps a classified intent to its canned response. There is no
// inference here: the first rule whose keywords hit the lowercased
// message wins, and the fallback template answers everything else.
type chatRule struct {
	keywords []string
	response string
}

var chatRules = []chatRule{
	{
		keywords: []string{"dgs", "certified"},
		response: "I can help you find DGS certified vendors! Currently, we have 3 vendors with active DGS contracts including Golden State Construction (SB-PW certified) and VetTech Solutions (DVBE certified). Would you like me to show you more details about their certifications?",
	},
	{
		keywords: []string{"dvbe", "veteran"},
		response: "Great question about DVBE vendors! We currently have 2 Disabled Veteran Business Enterprises in our system. VetTech Solutions leads in Technology Services with $1.26M in contracts, and Veteran Logistics Solutions provides secure transportation services. The state goal is 3% DVBE participation - would you like to see opportunities to increase this?",
	},
	{
		keywords: []string{"ab 2019", "25%", "compliance"},
		response: "AB 2019 requires 25% Small Business and 3% DVBE participation. Based on current data: SMB participation varies by category (17-52%), with Construction & Public Works at 30% and Food Services meeting the 25% goal. I can help identify strategies to improve compliance in underperforming categories.",
	},
	{
		keywords: []string{"sacramento", "construction"},
		response: "For Sacramento-area construction vendors, I recommend Golden State Construction Services. They're CA DGS SB-PW certified with a 4.8 rating, specialize in public works and ADA compliance, and have an active DGS contract (DGS-2024-001). Would you like me to provide their contact information or find similar vendors?",
	},
	{
		keywords: []string{"cost", "savings", "calculate"},
		response: "Based on current spending patterns, utilizing DGS certified small businesses can provide 12-15% cost savings while meeting AB 2019 compliance goals. Cal eProcure integration could reduce administrative costs by an additional 15%. Would you like me to calculate savings for a specific category or contract amount?",
	},
	{
		keywords: []string{"technology", "cyber", "it"},
		response: "For technology services, I recommend VetTech Solutions LLC - they're DVBE certified with expertise in cybersecurity, cloud services, and IT infrastructure. They have a 4.9 rating and $1.26M in active contracts. Technology Services currently shows 37.1% SMB participation. Would you like me to find additional tech vendors to improve distribution?",
	},
}

const chatFallback = "I'm your California DGS procurement assistant! I can help you with: • Finding SB/DVBE certified vendors • AB 2019 compliance guidance • DGS certification processes • Cost optimization strategies • Cal eProcure best practices. What specific area would you like to explore?"

var relatedActions = []string{
	"View DGS certified vendors",
	"Check AB 2019 compliance status",
	"Calculate procurement savings",
	"Find vendors by category",
}

var validFeedback = map[string]bool{
	"helpful":     true,
	"not-helpful": true,
	"implemented": true,
}

// AdvisorService serves the advisory surface: seeded recommendations,
// the canned chat assistant, and read-time insights.
type AdvisorService struct {
	recs       ports.RecommendationStore
	vendors    ports.VendorStore
	categories ports.CategoryStore
	metrics    ports.MetricsStore
}

func NewAdvisorService(recs ports.RecommendationStore, vendors ports.VendorStore, categories ports.CategoryStore, metrics ports.MetricsStore) *AdvisorService {
	return &AdvisorService{recs: recs, vendors: vendors, categories: categories, metrics: metrics}
}

// Recommendations lists active advisory records, highest confidence
// first, ties broken by estimated savings.
func (s *AdvisorService) Recommendations(ctx context.Context) ([]core.Recommendation, error) {
	recs, err := s.recs.ListRecommendations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	if recs == nil {
		recs = []core.Recommendation{}
	}
	return recs, nil
}

// Chat answers a message with the canned template matching its intent.
// Messages must be 1 to 1000 characters after trimming.
func (s *AdvisorService) Chat(ctx context.Context, message, sessionID string) (*ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, core.ValidationError{Field: "message", Message: "must not be empty"}
	}
	if len(message) > 1000 {
		return nil, core.ValidationError{Field: "message", Message: "must be at most 1000 characters"}
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	lower := strings.ToLower(message)
	response := chatFallback
	for _, rule := range chatRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				response = rule.response
				break
			}
		}
		if response != chatFallback {
			break
		}
	}

	slog.InfoContext(ctx, "Chat message answered", "session_id", sessionID, "message_len", len(message))

	return &ChatReply{
		Response:       response,
		SessionID:      sessionID,
		Timestamp:      core.Timestamp(time.Now()),
		Confidence:     0.85,
		RelatedActions: relatedActions,
	}, nil
}

// Insights generates observations from the current spend and vendor
// figures.
func (s *AdvisorService) Insights(ctx context.Context) ([]Insight, error) {
	sums, err := s.metrics.AggregateCategorySums(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate category sums: %w", err)
	}
	dgsContracts, err := s.vendors.CountContractVendors(ctx)
	if err != nil {
		return nil, fmt.Errorf("count contract vendors: %w", err)
	}
	underperforming, err := s.categories.UnderperformingCategories(ctx, smbGoal)
	if err != nil {
		return nil, fmt.Errorf("underperforming categories: %w", err)
	}

	smbPct := percentage(sums.SMBSpend, sums.TotalSpend)

	goalContent := fmt.Sprintf("Current SMB participation is %.1f%%. Focus needed to reach the 25%% AB 2019 goal.", smbPct)
	goalPriority := "high"
	if smbPct >= smbGoal {
		goalContent = fmt.Sprintf("Current SMB participation is %.1f%%. Congratulations on meeting the AB 2019 goal!", smbPct)
		goalPriority = "low"
	}

	insights := []Insight{
		{
			Type:       "performance",
			Title:      "SMB Goal Performance",
			Content:    goalContent,
			Priority:   goalPriority,
			Actionable: smbPct < smbGoal,
		},
		{
			Type:       "certification",
			Title:      "DGS Contract Utilization",
			Content:    fmt.Sprintf("%d vendors have active DGS contracts. Consider expanding DGS certification outreach to increase vendor participation.", dgsContracts),
			Priority:   "medium",
			Actionable: true,
		},
	}

	if len(underperforming) > 0 {
		names := make([]string, len(underperforming))
		for i, c := range underperforming {
			names[i] = c.Name
		}
		insights = append(insights, Insight{
			Type:       "opportunity",
			Title:      "Category Improvement Opportunities",
			Content:    fmt.Sprintf("%d categories below 25%% SMB participation: %s. These represent growth opportunities.", len(underperforming), strings.Join(names, ", ")),
			Priority:   "high",
			Actionable: true,
		})
	}

	return insights, nil
}

// Feedback records recommendation feedback. It is acknowledged and
// logged; nothing is persisted.
func (s *AdvisorService) Feedback(ctx context.Context, recommendationID int64, feedback, notes string) (*FeedbackAck, error) {
	if recommendationID < 1 {
		return nil, core.ValidationError{Field: "recommendationId", Message: "must be >= 1"}
	}
	if !validFeedback[feedback] {
		return nil, core.ValidationError{Field: "feedback", Message: "must be one of helpful, not-helpful, implemented"}
	}
	if len(notes) > 500 {
		return nil, core.ValidationError{Field: "notes", Message: "must be at most 500 characters"}
	}

	slog.InfoContext(ctx, "Recommendation feedback recorded",
		"recommendation_id", recommendationID,
		"feedback", feedback,
		"has_notes", notes != "")

	return &FeedbackAck{
		Message:          "Feedback recorded successfully",
		RecommendationID: recommendationID,
		Feedback:         feedback,
		Timestamp:        core.Timestamp(time.Now()),
	}, nil
}
