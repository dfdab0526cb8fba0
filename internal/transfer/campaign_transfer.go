package transfer

type CampaignGateRequest struct {
	Objective string   `json:"objective" validate:"required"`
	Platforms []string `json:"platforms" validate:"required,min=1"`
}

// CampaignPlan is the structured output contract of the campaign
// generator. Any real generator substituted for the stub must keep this
// shape.
type CampaignPlan struct {
	Name       string              `json:"name"`
	Objective  string              `json:"objective"`
	Platforms  []string            `json:"platforms"`
	Phases     []CampaignPhase     `json:"phases"`
	Budget     []ChannelBudget     `json:"budget"`
	Audience   CampaignAudience    `json:"audience"`
	ContentMix []ContentFormat     `json:"content_mix"`
	Timeline   []Milestone         `json:"timeline"`
	Metrics    []PerformanceMetric `json:"metrics"`
}

type CampaignPhase struct {
	Name       string   `json:"name"`
	Duration   string   `json:"duration"`
	Objectives []string `json:"objectives"`
	Cadence    string   `json:"content_cadence"`
	KPIs       []string `json:"kpis"`
}

type ChannelBudget struct {
	Channel string `json:"channel"`
	Percent int    `json:"percent"`
}

type CampaignAudience struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

type ContentFormat struct {
	Format string `json:"format"`
	Share  int    `json:"share"`
}

type Milestone struct {
	Week  int    `json:"week"`
	Label string `json:"label"`
}

type PerformanceMetric struct {
	Name    string  `json:"name"`
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
	Trend   string  `json:"trend"`
}
