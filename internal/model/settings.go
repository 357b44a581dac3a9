package model

import (
	"time"

	"github.com/Simplici0/costquote/internal/pricing"
)

// Settings are the workshop-wide defaults used when a request leaves them out.
type Settings struct {
	Currency  string                    `json:"currency"`
	Tax       pricing.TaxSetting        `json:"tax"`
	Overhead  pricing.OverheadWorksheet `json:"overhead"`
	UpdatedAt time.Time                 `json:"updated_at"`
}
