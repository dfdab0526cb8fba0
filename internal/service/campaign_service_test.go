package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordibrook/marketing-api/internal/transfer"
	"github.com/jordibrook/marketing-api/pkg/validate"
)

func TestGeneratePlan(t *testing.T) {
	gen := &StubGenerator{Delay: time.Millisecond}
	s := NewCampaignService(gen)

	plan, err := s.GeneratePlan(context.Background(), 1, &transfer.CampaignGateRequest{
		Objective: "brand awareness",
		Platforms: []string{"instagram"},
	})
	require.NoError(t, err)

	assert.Equal(t, "brand awareness", plan.Objective)
	assert.Equal(t, []string{"instagram"}, plan.Platforms)
	assert.NotEmpty(t, plan.Phases)
	assert.NotEmpty(t, plan.Budget)
	assert.NotEmpty(t, plan.ContentMix)
	assert.NotEmpty(t, plan.Timeline)
	assert.NotEmpty(t, plan.Metrics)

	total := 0
	for _, b := range plan.Budget {
		total += b.Percent
	}
	assert.Equal(t, 100, total)
}

func TestGeneratePlanGate(t *testing.T) {
	s := NewCampaignService(&StubGenerator{Delay: time.Millisecond})

	_, err := s.GeneratePlan(context.Background(), 1, &transfer.CampaignGateRequest{})
	var fieldErrs validate.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "objective")
	assert.Contains(t, fieldErrs, "platforms")

	_, err = s.GeneratePlan(context.Background(), 0, &transfer.CampaignGateRequest{
		Objective: "x",
		Platforms: []string{"instagram"},
	})
	assert.Error(t, err)
}

func TestStubGeneratorHonorsCancellation(t *testing.T) {
	gen := &StubGenerator{Delay: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Generate(ctx, &transfer.CampaignGateRequest{
		Objective: "x",
		Platforms: []string{"instagram"},
	})
	assert.ErrorIs(t, err, context.Canceled)
}
