package transfer

import "time"

type AnalyticsFilter struct {
	Platform string
	From     *time.Time
	To       *time.Time
}
