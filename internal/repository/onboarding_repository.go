package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/jordibrook/marketing-api/internal/models"
	"github.com/jordibrook/marketing-api/internal/transfer"
	"github.com/lib/pq"
)

type OnboardingRepository interface {
	// SaveSubmission applies one composite submission in a single
	// transaction: parent upsert, one upsert per present section, then
	// the completed flags. Absent sections are left untouched; absent
	// fields inside a present section keep their stored value.
	SaveSubmission(ctx context.Context, userID int64, sub *transfer.OnboardingSubmission) error
	GetByUserID(ctx context.Context, userID int64) (*transfer.OnboardingAggregate, bool, error)
}

type onboardingRepository struct {
	db *sqlx.DB
}

func NewOnboardingRepository(db *sqlx.DB) OnboardingRepository {
	return &onboardingRepository{db: db}
}

func (r *onboardingRepository) SaveSubmission(ctx context.Context, userID int64, sub *transfer.OnboardingSubmission) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	defer tx.Rollback()

	var onboardingID int64
	parentQuery := `
		INSERT INTO onboarding_data (user_id, completed)
		VALUES ($1, TRUE)
		ON CONFLICT (user_id) DO UPDATE SET
			completed = TRUE,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, parentQuery, userID).Scan(&onboardingID); err != nil {
		slog.Info(err.Error())
		return err
	}

	if sub.CompanyProfile != nil {
		if err := upsertCompanyProfile(ctx, tx, onboardingID, sub.CompanyProfile); err != nil {
			return err
		}
	}
	if sub.TargetAudience != nil {
		if err := upsertTargetAudience(ctx, tx, onboardingID, sub.TargetAudience); err != nil {
			return err
		}
	}
	if sub.ContentPreferences != nil {
		if err := upsertContentPreferences(ctx, tx, onboardingID, sub.ContentPreferences); err != nil {
			return err
		}
	}
	if sub.BrandVoice != nil {
		if err := upsertBrandVoice(ctx, tx, onboardingID, sub.BrandVoice); err != nil {
			return err
		}
	}
	if sub.MarketingGoals != nil {
		if err := upsertMarketingGoals(ctx, tx, onboardingID, sub.MarketingGoals); err != nil {
			return err
		}
	}
	if sub.AdditionalInfo != nil {
		if err := upsertAdditionalInfo(ctx, tx, onboardingID, sub.AdditionalInfo); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET onboarding_completed = TRUE, updated_at = CURRENT_TIMESTAMP WHERE id = $1`,
		userID); err != nil {
		slog.Info(err.Error())
		return err
	}

	if err := tx.Commit(); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// Each section upsert coalesces NULL inputs to the stored column on
// conflict, and to the column default on first insert, so a partial
// payload never clears previously saved fields.

func upsertCompanyProfile(ctx context.Context, tx *sqlx.Tx, onboardingID int64, in *transfer.CompanyProfileInput) error {
	query := `
		INSERT INTO company_profiles (onboarding_id, company_name, industry, company_size, website, description)
		VALUES ($1, COALESCE($2, ''), COALESCE($3, ''), COALESCE($4, ''), COALESCE($5, ''), COALESCE($6, ''))
		ON CONFLICT (onboarding_id) DO UPDATE SET
			company_name = COALESCE($2, company_profiles.company_name),
			industry = COALESCE($3, company_profiles.industry),
			company_size = COALESCE($4, company_profiles.company_size),
			website = COALESCE($5, company_profiles.website),
			description = COALESCE($6, company_profiles.description),
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := tx.ExecContext(ctx, query, onboardingID,
		in.CompanyName, in.Industry, in.CompanySize, in.Website, in.Description)
	if err != nil {
		slog.Info(err.Error())
	}
	return err
}

func upsertTargetAudience(ctx context.Context, tx *sqlx.Tx, onboardingID int64, in *transfer.TargetAudienceInput) error {
	query := `
		INSERT INTO target_audiences (onboarding_id, age_range, gender, location, interests, pain_points)
		VALUES ($1, COALESCE($2, ''), COALESCE($3, ''), COALESCE($4, ''), COALESCE($5, '{}'), COALESCE($6, ''))
		ON CONFLICT (onboarding_id) DO UPDATE SET
			age_range = COALESCE($2, target_audiences.age_range),
			gender = COALESCE($3, target_audiences.gender),
			location = COALESCE($4, target_audiences.location),
			interests = COALESCE($5, target_audiences.interests),
			pain_points = COALESCE($6, target_audiences.pain_points),
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := tx.ExecContext(ctx, query, onboardingID,
		in.AgeRange, in.Gender, in.Location, pq.Array(in.Interests), in.PainPoints)
	if err != nil {
		slog.Info(err.Error())
	}
	return err
}

func upsertContentPreferences(ctx context.Context, tx *sqlx.Tx, onboardingID int64, in *transfer.ContentPreferencesInput) error {
	query := `
		INSERT INTO content_preferences (onboarding_id, content_types, posting_frequency, preferred_platforms, content_themes)
		VALUES ($1, COALESCE($2, '{}'), COALESCE($3, ''), COALESCE($4, '{}'), COALESCE($5, ''))
		ON CONFLICT (onboarding_id) DO UPDATE SET
			content_types = COALESCE($2, content_preferences.content_types),
			posting_frequency = COALESCE($3, content_preferences.posting_frequency),
			preferred_platforms = COALESCE($4, content_preferences.preferred_platforms),
			content_themes = COALESCE($5, content_preferences.content_themes),
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := tx.ExecContext(ctx, query, onboardingID,
		pq.Array(in.ContentTypes), in.PostingFrequency, pq.Array(in.PreferredPlatforms), in.ContentThemes)
	if err != nil {
		slog.Info(err.Error())
	}
	return err
}

func upsertBrandVoice(ctx context.Context, tx *sqlx.Tx, onboardingID int64, in *transfer.BrandVoiceInput) error {
	query := `
		INSERT INTO brand_voices (onboarding_id, tone, personality, keywords, avoid_words)
		VALUES ($1, COALESCE($2, ''), COALESCE($3, ''), COALESCE($4, '{}'), COALESCE($5, '{}'))
		ON CONFLICT (onboarding_id) DO UPDATE SET
			tone = COALESCE($2, brand_voices.tone),
			personality = COALESCE($3, brand_voices.personality),
			keywords = COALESCE($4, brand_voices.keywords),
			avoid_words = COALESCE($5, brand_voices.avoid_words),
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := tx.ExecContext(ctx, query, onboardingID,
		in.Tone, in.Personality, pq.Array(in.Keywords), pq.Array(in.AvoidWords))
	if err != nil {
		slog.Info(err.Error())
	}
	return err
}

func upsertMarketingGoals(ctx context.Context, tx *sqlx.Tx, onboardingID int64, in *transfer.MarketingGoalsInput) error {
	query := `
		INSERT INTO marketing_goals (onboarding_id, primary_goal, secondary_goals, monthly_budget, success_metrics)
		VALUES ($1, COALESCE($2, ''), COALESCE($3, '{}'), COALESCE($4, ''), COALESCE($5, '{}'))
		ON CONFLICT (onboarding_id) DO UPDATE SET
			primary_goal = COALESCE($2, marketing_goals.primary_goal),
			secondary_goals = COALESCE($3, marketing_goals.secondary_goals),
			monthly_budget = COALESCE($4, marketing_goals.monthly_budget),
			success_metrics = COALESCE($5, marketing_goals.success_metrics),
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := tx.ExecContext(ctx, query, onboardingID,
		in.PrimaryGoal, pq.Array(in.SecondaryGoals), in.MonthlyBudget, pq.Array(in.SuccessMetrics))
	if err != nil {
		slog.Info(err.Error())
	}
	return err
}

func upsertAdditionalInfo(ctx context.Context, tx *sqlx.Tx, onboardingID int64, in *transfer.AdditionalInfoInput) error {
	query := `
		INSERT INTO additional_infos (onboarding_id, competitors, unique_selling_points, past_experience, additional_notes)
		VALUES ($1, COALESCE($2, ''), COALESCE($3, ''), COALESCE($4, ''), COALESCE($5, ''))
		ON CONFLICT (onboarding_id) DO UPDATE SET
			competitors = COALESCE($2, additional_infos.competitors),
			unique_selling_points = COALESCE($3, additional_infos.unique_selling_points),
			past_experience = COALESCE($4, additional_infos.past_experience),
			additional_notes = COALESCE($5, additional_infos.additional_notes),
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := tx.ExecContext(ctx, query, onboardingID,
		in.Competitors, in.UniqueSellingPoints, in.PastExperience, in.AdditionalNotes)
	if err != nil {
		slog.Info(err.Error())
	}
	return err
}

func (r *onboardingRepository) GetByUserID(ctx context.Context, userID int64) (*transfer.OnboardingAggregate, bool, error) {
	var parent models.OnboardingData
	err := r.db.GetContext(ctx, &parent,
		`SELECT id, user_id, completed, created_at, updated_at FROM onboarding_data WHERE user_id = $1`, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	agg := &transfer.OnboardingAggregate{Completed: parent.Completed}

	var cp models.CompanyProfile
	if ok, err := r.getSection(ctx, &cp, "company_profiles", parent.ID); err != nil {
		return nil, false, err
	} else if ok {
		agg.CompanyProfile = &cp
	}

	var ta models.TargetAudience
	if ok, err := r.getSection(ctx, &ta, "target_audiences", parent.ID); err != nil {
		return nil, false, err
	} else if ok {
		agg.TargetAudience = &ta
	}

	var cpref models.ContentPreferences
	if ok, err := r.getSection(ctx, &cpref, "content_preferences", parent.ID); err != nil {
		return nil, false, err
	} else if ok {
		agg.ContentPreferences = &cpref
	}

	var bv models.BrandVoice
	if ok, err := r.getSection(ctx, &bv, "brand_voices", parent.ID); err != nil {
		return nil, false, err
	} else if ok {
		agg.BrandVoice = &bv
	}

	var mg models.MarketingGoals
	if ok, err := r.getSection(ctx, &mg, "marketing_goals", parent.ID); err != nil {
		return nil, false, err
	} else if ok {
		agg.MarketingGoals = &mg
	}

	var ai models.AdditionalInfo
	if ok, err := r.getSection(ctx, &ai, "additional_infos", parent.ID); err != nil {
		return nil, false, err
	} else if ok {
		agg.AdditionalInfo = &ai
	}

	return agg, true, nil
}

func (r *onboardingRepository) getSection(ctx context.Context, dest interface{}, table string, onboardingID int64) (bool, error) {
	err := r.db.GetContext(ctx, dest, `SELECT * FROM `+table+` WHERE onboarding_id = $1`, onboardingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return true, nil
}
