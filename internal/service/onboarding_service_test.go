package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordibrook/marketing-api/internal/models"
	"github.com/jordibrook/marketing-api/internal/transfer"
)

func strPtr(s string) *string { return &s }

func TestOnboardingSave(t *testing.T) {
	repo := &fakeOnboardingRepo{}
	s := NewOnboardingService(repo)

	sub := &transfer.OnboardingSubmission{
		CompanyProfile: &transfer.CompanyProfileInput{
			CompanyName: strPtr("Acme"),
			Industry:    strPtr("retail"),
		},
	}

	require.NoError(t, s.Save(context.Background(), 1, sub))
	require.NotNil(t, repo.saved)
	assert.Equal(t, "Acme", *repo.saved.CompanyProfile.CompanyName)
}

func TestOnboardingSaveRejectsBadInput(t *testing.T) {
	repo := &fakeOnboardingRepo{}
	s := NewOnboardingService(repo)

	assert.Error(t, s.Save(context.Background(), 0, &transfer.OnboardingSubmission{}))
	assert.Error(t, s.Save(context.Background(), 1, nil))
	assert.Nil(t, repo.saved)
}

func TestOnboardingSaveHidesRepositoryError(t *testing.T) {
	repo := &fakeOnboardingRepo{saveErr: errors.New("pq: deadlock detected")}
	s := NewOnboardingService(repo)

	err := s.Save(context.Background(), 1, &transfer.OnboardingSubmission{})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "pq:")
}

func TestOnboardingGet(t *testing.T) {
	t.Run("never submitted yields empty aggregate", func(t *testing.T) {
		s := NewOnboardingService(&fakeOnboardingRepo{})

		agg, err := s.Get(context.Background(), 1)
		require.NoError(t, err)
		require.NotNil(t, agg)
		assert.Nil(t, agg.CompanyProfile)
		assert.Nil(t, agg.MarketingGoals)
	})

	t.Run("returns stored sections", func(t *testing.T) {
		repo := &fakeOnboardingRepo{
			aggregate: &transfer.OnboardingAggregate{
				Completed: true,
				CompanyProfile: &models.CompanyProfile{
					CompanyName: "Acme",
				},
			},
		}
		s := NewOnboardingService(repo)

		agg, err := s.Get(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, agg.Completed)
		require.NotNil(t, agg.CompanyProfile)
		assert.Equal(t, "Acme", agg.CompanyProfile.CompanyName)
	})
}
