package transfer

import "github.com/jordibrook/marketing-api/internal/models"

// OnboardingSubmission carries up to six optional sections. A nil section
// leaves the stored section untouched; a nil field inside a present
// section leaves that column untouched on resubmission.
type OnboardingSubmission struct {
	CompanyProfile     *CompanyProfileInput     `json:"companyProfile"`
	TargetAudience     *TargetAudienceInput     `json:"targetAudience"`
	ContentPreferences *ContentPreferencesInput `json:"contentPreferences"`
	BrandVoice         *BrandVoiceInput         `json:"brandVoice"`
	MarketingGoals     *MarketingGoalsInput     `json:"marketingGoals"`
	AdditionalInfo     *AdditionalInfoInput     `json:"additionalInfo"`
}

type CompanyProfileInput struct {
	CompanyName *string `json:"companyName"`
	Industry    *string `json:"industry"`
	CompanySize *string `json:"companySize"`
	Website     *string `json:"website"`
	Description *string `json:"description"`
}

type TargetAudienceInput struct {
	AgeRange   *string  `json:"ageRange"`
	Gender     *string  `json:"gender"`
	Location   *string  `json:"location"`
	Interests  []string `json:"interests"`
	PainPoints *string  `json:"painPoints"`
}

type ContentPreferencesInput struct {
	ContentTypes       []string `json:"contentTypes"`
	PostingFrequency   *string  `json:"postingFrequency"`
	PreferredPlatforms []string `json:"preferredPlatforms"`
	ContentThemes      *string  `json:"contentThemes"`
}

type BrandVoiceInput struct {
	Tone        *string  `json:"tone"`
	Personality *string  `json:"personality"`
	Keywords    []string `json:"keywords"`
	AvoidWords  []string `json:"avoidWords"`
}

type MarketingGoalsInput struct {
	PrimaryGoal    *string  `json:"primaryGoal"`
	SecondaryGoals []string `json:"secondaryGoals"`
	MonthlyBudget  *string  `json:"monthlyBudget"`
	SuccessMetrics []string `json:"successMetrics"`
}

type AdditionalInfoInput struct {
	Competitors         *string `json:"competitors"`
	UniqueSellingPoints *string `json:"uniqueSellingPoints"`
	PastExperience      *string `json:"pastExperience"`
	AdditionalNotes     *string `json:"additionalNotes"`
}

// OnboardingAggregate is the read shape: the parent flag plus all six
// sections, absent ones rendered as JSON null.
type OnboardingAggregate struct {
	Completed          bool                       `json:"completed"`
	CompanyProfile     *models.CompanyProfile     `json:"companyProfile"`
	TargetAudience     *models.TargetAudience     `json:"targetAudience"`
	ContentPreferences *models.ContentPreferences `json:"contentPreferences"`
	BrandVoice         *models.BrandVoice         `json:"brandVoice"`
	MarketingGoals     *models.MarketingGoals     `json:"marketingGoals"`
	AdditionalInfo     *models.AdditionalInfo     `json:"additionalInfo"`
}
