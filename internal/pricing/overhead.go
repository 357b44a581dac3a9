package pricing

import "fmt"

// OverheadWorksheet itemizes monthly indirect expenses so they can be turned
// into an hourly overhead rate.
type OverheadWorksheet struct {
	Rent         float64 `json:"rent"`
	Utilities    float64 `json:"utilities"`
	Insurance    float64 `json:"insurance"`
	Software     float64 `json:"software"`
	Marketing    float64 `json:"marketing"`
	Maintenance  float64 `json:"maintenance"`
	Other        float64 `json:"other"`
	MonthlyHours float64 `json:"monthly_hours"`
}

// Total is the sum of all monthly expense categories.
func (w OverheadWorksheet) Total() float64 {
	return w.Rent + w.Utilities + w.Insurance + w.Software + w.Marketing + w.Maintenance + w.Other
}

// HourlyRate divides the monthly total by the configured working hours.
func (w OverheadWorksheet) HourlyRate() (float64, error) {
	if !(w.MonthlyHours > 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidWorkingHours, w.MonthlyHours)
	}
	return w.Total() / w.MonthlyHours, nil
}
