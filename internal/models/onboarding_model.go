package models

import (
	"time"

	"github.com/lib/pq"
)

// OnboardingData is the parent record, one row per user. The six section
// rows below hang off it 1:1 and are each independently optional.
type OnboardingData struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Completed bool      `db:"completed" json:"completed"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CompanyProfile struct {
	ID           int64     `db:"id" json:"id"`
	OnboardingID int64     `db:"onboarding_id" json:"-"`
	CompanyName  string    `db:"company_name" json:"company_name"`
	Industry     string    `db:"industry" json:"industry"`
	CompanySize  string    `db:"company_size" json:"company_size"`
	Website      string    `db:"website" json:"website"`
	Description  string    `db:"description" json:"description"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type TargetAudience struct {
	ID           int64          `db:"id" json:"id"`
	OnboardingID int64          `db:"onboarding_id" json:"-"`
	AgeRange     string         `db:"age_range" json:"age_range"`
	Gender       string         `db:"gender" json:"gender"`
	Location     string         `db:"location" json:"location"`
	Interests    pq.StringArray `db:"interests" json:"interests"`
	PainPoints   string         `db:"pain_points" json:"pain_points"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

type ContentPreferences struct {
	ID                 int64          `db:"id" json:"id"`
	OnboardingID       int64          `db:"onboarding_id" json:"-"`
	ContentTypes       pq.StringArray `db:"content_types" json:"content_types"`
	PostingFrequency   string         `db:"posting_frequency" json:"posting_frequency"`
	PreferredPlatforms pq.StringArray `db:"preferred_platforms" json:"preferred_platforms"`
	ContentThemes      string         `db:"content_themes" json:"content_themes"`
	CreatedAt          time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at" json:"updated_at"`
}

type BrandVoice struct {
	ID           int64          `db:"id" json:"id"`
	OnboardingID int64          `db:"onboarding_id" json:"-"`
	Tone         string         `db:"tone" json:"tone"`
	Personality  string         `db:"personality" json:"personality"`
	Keywords     pq.StringArray `db:"keywords" json:"keywords"`
	AvoidWords   pq.StringArray `db:"avoid_words" json:"avoid_words"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

type MarketingGoals struct {
	ID             int64          `db:"id" json:"id"`
	OnboardingID   int64          `db:"onboarding_id" json:"-"`
	PrimaryGoal    string         `db:"primary_goal" json:"primary_goal"`
	SecondaryGoals pq.StringArray `db:"secondary_goals" json:"secondary_goals"`
	MonthlyBudget  string         `db:"monthly_budget" json:"monthly_budget"`
	SuccessMetrics pq.StringArray `db:"success_metrics" json:"success_metrics"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

type AdditionalInfo struct {
	ID              int64     `db:"id" json:"id"`
	OnboardingID    int64     `db:"onboarding_id" json:"-"`
	Competitors     string    `db:"competitors" json:"competitors"`
	UniqueSelling   string    `db:"unique_selling_points" json:"unique_selling_points"`
	PastExperience  string    `db:"past_experience" json:"past_experience"`
	AdditionalNotes string    `db:"additional_notes" json:"additional_notes"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
