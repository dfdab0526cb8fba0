package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jordibrook/marketing-api/internal/repository"
	"github.com/jordibrook/marketing-api/internal/transfer"
)

type OnboardingService interface {
	Save(ctx context.Context, userID int64, sub *transfer.OnboardingSubmission) error
	Get(ctx context.Context, userID int64) (*transfer.OnboardingAggregate, error)
}

type onboardingService struct {
	or repository.OnboardingRepository
}

func NewOnboardingService(or repository.OnboardingRepository) OnboardingService {
	return &onboardingService{
		or: or,
	}
}

func (s *onboardingService) Save(ctx context.Context, userID int64, sub *transfer.OnboardingSubmission) error {
	var err error

	if userID == 0 {
		err = errors.New("user is not valid")
		slog.Info(err.Error())
		return err
	}

	if sub == nil {
		err = errors.New("submission is nil")
		slog.Info(err.Error())
		return err
	}

	if err = s.or.SaveSubmission(ctx, userID, sub); err != nil {
		return errors.New("failed to save onboarding data")
	}
	return nil
}

func (s *onboardingService) Get(ctx context.Context, userID int64) (*transfer.OnboardingAggregate, error) {
	agg, isExist, err := s.or.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.New("failed to get onboarding data")
	}

	// never submitted: an empty aggregate with all sections null
	if !isExist {
		return &transfer.OnboardingAggregate{}, nil
	}
	return agg, nil
}
