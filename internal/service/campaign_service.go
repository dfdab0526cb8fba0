package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jordibrook/marketing-api/internal/transfer"
	"github.com/jordibrook/marketing-api/pkg/validate"
)

// Generator produces a campaign plan from a validated gate request.
// Implementations may call out to an external model; the stub below is
// the default.
type Generator interface {
	Generate(ctx context.Context, req *transfer.CampaignGateRequest) (*transfer.CampaignPlan, error)
}

type CampaignService interface {
	GeneratePlan(ctx context.Context, userID int64, req *transfer.CampaignGateRequest) (*transfer.CampaignPlan, error)
}

type campaignService struct {
	generator Generator
}

func NewCampaignService(generator Generator) CampaignService {
	return &campaignService{generator: generator}
}

func (c *campaignService) GeneratePlan(ctx context.Context, userID int64, req *transfer.CampaignGateRequest) (*transfer.CampaignPlan, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user not found")
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	return c.generator.Generate(ctx, req)
}

// StubGenerator returns a canned plan after a short delay. It stands in
// for a model-backed generator and honors context cancellation so a
// disconnected client does not leave work running.
type StubGenerator struct {
	Delay time.Duration
}

func NewStubGenerator() *StubGenerator {
	return &StubGenerator{Delay: 2 * time.Second}
}

func (g *StubGenerator) Generate(ctx context.Context, req *transfer.CampaignGateRequest) (*transfer.CampaignPlan, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(g.Delay):
	}

	return &transfer.CampaignPlan{
		Name:      fmt.Sprintf("%s campaign", req.Objective),
		Objective: req.Objective,
		Platforms: req.Platforms,
		Phases: []transfer.CampaignPhase{
			{
				Name:       "Launch",
				Duration:   "2 weeks",
				Objectives: []string{"Introduce the brand", "Build initial reach"},
				Cadence:    "1 post per day",
				KPIs:       []string{"impressions", "follower growth"},
			},
			{
				Name:       "Engage",
				Duration:   "4 weeks",
				Objectives: []string{"Grow engagement", "Collect audience feedback"},
				Cadence:    "4 posts per week",
				KPIs:       []string{"engagement rate", "comments"},
			},
			{
				Name:       "Convert",
				Duration:   "2 weeks",
				Objectives: []string{"Drive conversions"},
				Cadence:    "3 posts per week",
				KPIs:       []string{"clicks", "conversions"},
			},
		},
		Budget: []transfer.ChannelBudget{
			{Channel: "paid social", Percent: 50},
			{Channel: "content production", Percent: 30},
			{Channel: "influencer", Percent: 20},
		},
		Audience: transfer.CampaignAudience{
			Primary:   "Core followers of the connected accounts",
			Secondary: "Lookalike audiences on the selected platforms",
		},
		ContentMix: []transfer.ContentFormat{
			{Format: "image", Share: 40},
			{Format: "carousel", Share: 35},
			{Format: "video", Share: 25},
		},
		Timeline: []transfer.Milestone{
			{Week: 1, Label: "Campaign kickoff"},
			{Week: 3, Label: "Mid-flight review"},
			{Week: 6, Label: "Conversion push"},
			{Week: 8, Label: "Wrap-up and reporting"},
		},
		Metrics: []transfer.PerformanceMetric{
			{Name: "Engagement rate", Current: 2.1, Target: 4.0, Trend: "up"},
			{Name: "Follower growth", Current: 120, Target: 400, Trend: "up"},
			{Name: "Click-through rate", Current: 0.8, Target: 1.5, Trend: "flat"},
		},
	}, nil
}
