// Package wizard implements the campaign authoring flow: a mode choice
// followed by a linear sequence of data-entry steps accumulating one
// shared draft. Each step owns a disjoint slice of the draft and may
// not touch another step's slice.
package wizard

import (
	"errors"
	"fmt"
	"time"
)

type Mode string

const (
	ModeChoosing Mode = "choosing-mode"
	ModeAI       Mode = "ai"
	ModeManual   Mode = "manual"
)

type Step string

const (
	StepBasics   Step = "basics"
	StepAudience Step = "audience"
	StepBudget   Step = "budget"
	StepSchedule Step = "schedule"
	StepType     Step = "type"
	StepAssets   Step = "assets"
	StepPreview  Step = "preview"
)

// steps in navigation order.
var steps = []Step{
	StepBasics, StepAudience, StepBudget, StepSchedule,
	StepType, StepAssets, StepPreview,
}

var (
	ErrModeNotChosen   = errors.New("campaign mode has not been chosen")
	ErrAlreadyChosen   = errors.New("campaign mode is already chosen")
	ErrUnknownMode     = errors.New("unknown campaign mode")
	ErrStepMismatch    = errors.New("payload does not belong to the current step")
	ErrAlreadyDone     = errors.New("wizard session is already submitted")
	ErrIncompleteDraft = errors.New("draft is missing required basics")
)

type Basics struct {
	Name      string   `json:"name"`
	Objective string   `json:"objective"`
	Platforms []string `json:"platforms"`
}

type Audience struct {
	AgeRange  string   `json:"age_range"`
	Locations []string `json:"locations"`
	Interests []string `json:"interests"`
}

type Budget struct {
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
	DailyCap float64 `json:"daily_cap"`
}

type Schedule struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Frequency string `json:"frequency"`
}

type CampaignType struct {
	Kind    string   `json:"kind"`
	Formats []string `json:"formats"`
}

type Assets struct {
	AssetURLs []string `json:"asset_urls"`
	Notes     string   `json:"notes"`
}

// Draft is the shared accumulator. Sections map one-to-one onto steps;
// the preview step contributes nothing and only reads.
type Draft struct {
	Basics   Basics       `json:"basics"`
	Audience Audience     `json:"audience"`
	Budget   Budget       `json:"budget"`
	Schedule Schedule     `json:"schedule"`
	Type     CampaignType `json:"type"`
	Assets   Assets       `json:"assets"`
}

// StepInput carries at most one section. Which one must match the
// session's current step.
type StepInput struct {
	Basics   *Basics       `json:"basics,omitempty"`
	Audience *Audience     `json:"audience,omitempty"`
	Budget   *Budget       `json:"budget,omitempty"`
	Schedule *Schedule     `json:"schedule,omitempty"`
	Type     *CampaignType `json:"type,omitempty"`
	Assets   *Assets       `json:"assets,omitempty"`
}

// Session is one user's in-flight wizard run. Abandonment is handled by
// storage expiry; there is no resume after expiry.
type Session struct {
	ID        string              `json:"id"`
	UserID    int64               `json:"user_id"`
	Mode      Mode                `json:"mode"`
	Step      Step                `json:"step"`
	Draft     Draft               `json:"draft"`
	Warnings  map[string][]string `json:"warnings"`
	Submitted bool                `json:"submitted"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func NewSession(id string, userID int64) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		UserID:    userID,
		Mode:      ModeChoosing,
		Warnings:  make(map[string][]string),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) ChooseMode(mode Mode) error {
	if s.Mode != ModeChoosing {
		return ErrAlreadyChosen
	}
	switch mode {
	case ModeAI:
		s.Mode = ModeAI
	case ModeManual:
		s.Mode = ModeManual
		s.Step = StepBasics
	default:
		return ErrUnknownMode
	}
	s.UpdatedAt = time.Now()
	return nil
}

// Next applies the payload to the current step's slice of the draft and
// advances one step. At the preview step it submits instead: the
// assembled draft is returned and the session is sealed. Validation
// findings are recorded as warnings and never block navigation; only
// the final submit gates on required basics.
func (s *Session) Next(input *StepInput) (*Draft, error) {
	if s.Submitted {
		return nil, ErrAlreadyDone
	}
	if s.Mode != ModeManual {
		return nil, ErrModeNotChosen
	}

	if s.Step == StepPreview {
		if missing := s.missingBasics(); len(missing) > 0 {
			return nil, fmt.Errorf("%w: %v", ErrIncompleteDraft, missing)
		}
		s.Submitted = true
		s.UpdatedAt = time.Now()
		draft := s.Draft
		return &draft, nil
	}

	if input != nil {
		if err := s.apply(input); err != nil {
			return nil, err
		}
	}
	s.Warnings[string(s.Step)] = s.validateStep()

	s.Step = steps[s.stepIndex()+1]
	s.UpdatedAt = time.Now()
	return nil, nil
}

// Back retreats one step. From the first step it returns to mode
// selection and discards everything entered so far.
func (s *Session) Back() error {
	if s.Submitted {
		return ErrAlreadyDone
	}
	if s.Mode != ModeManual {
		return ErrModeNotChosen
	}

	if s.Step == StepBasics {
		s.Mode = ModeChoosing
		s.Step = ""
		s.Draft = Draft{}
		s.Warnings = make(map[string][]string)
	} else {
		s.Step = steps[s.stepIndex()-1]
	}
	s.UpdatedAt = time.Now()
	return nil
}

func (s *Session) stepIndex() int {
	for i, step := range steps {
		if step == s.Step {
			return i
		}
	}
	return 0
}

// apply copies the input section into the draft. A payload carrying a
// section other than the current step's is rejected whole, so no step
// can overwrite another step's slice.
func (s *Session) apply(input *StepInput) error {
	sections := map[Step]bool{
		StepBasics:   input.Basics != nil,
		StepAudience: input.Audience != nil,
		StepBudget:   input.Budget != nil,
		StepSchedule: input.Schedule != nil,
		StepType:     input.Type != nil,
		StepAssets:   input.Assets != nil,
	}
	for step, present := range sections {
		if present && step != s.Step {
			return fmt.Errorf("%w: got %s while on %s", ErrStepMismatch, step, s.Step)
		}
	}

	switch s.Step {
	case StepBasics:
		if input.Basics != nil {
			s.Draft.Basics = *input.Basics
		}
	case StepAudience:
		if input.Audience != nil {
			s.Draft.Audience = *input.Audience
		}
	case StepBudget:
		if input.Budget != nil {
			s.Draft.Budget = *input.Budget
		}
	case StepSchedule:
		if input.Schedule != nil {
			s.Draft.Schedule = *input.Schedule
		}
	case StepType:
		if input.Type != nil {
			s.Draft.Type = *input.Type
		}
	case StepAssets:
		if input.Assets != nil {
			s.Draft.Assets = *input.Assets
		}
	}
	return nil
}

func (s *Session) validateStep() []string {
	var warnings []string
	switch s.Step {
	case StepBasics:
		warnings = append(warnings, s.missingBasics()...)
	case StepBudget:
		if s.Draft.Budget.Total < 0 {
			warnings = append(warnings, "budget total is negative")
		}
		if s.Draft.Budget.DailyCap > 0 && s.Draft.Budget.DailyCap > s.Draft.Budget.Total {
			warnings = append(warnings, "daily cap exceeds total budget")
		}
	case StepSchedule:
		if s.Draft.Schedule.StartDate != "" && s.Draft.Schedule.EndDate != "" &&
			s.Draft.Schedule.EndDate < s.Draft.Schedule.StartDate {
			warnings = append(warnings, "end date is before start date")
		}
	}
	return warnings
}

func (s *Session) missingBasics() []string {
	var missing []string
	if s.Draft.Basics.Name == "" {
		missing = append(missing, "name is required")
	}
	if s.Draft.Basics.Objective == "" {
		missing = append(missing, "objective is required")
	}
	if len(s.Draft.Basics.Platforms) == 0 {
		missing = append(missing, "at least one platform is required")
	}
	return missing
}
