package models

// SummaryStats represents the KPI totals for the active filter and range.
type SummaryStats struct {
	TotalEvents       int
	UniqueVisitors    int
	TotalDwellSeconds float64
	AvgDwellSeconds   float64
	MaleVisitors      int
	FemaleVisitors    int
	OtherVisitors     int
}

// HasData returns true if any events matched the active scope.
func (s SummaryStats) HasData() bool {
	return s.TotalEvents > 0
}

// GenderShare returns male and female visitor shares as percentages of the
// visitors with a resolved gender. Both are 0 when nothing resolved.
func (s SummaryStats) GenderShare() (male, female float64) {
	resolved := s.MaleVisitors + s.FemaleVisitors
	if resolved == 0 {
		return 0, 0
	}
	male = float64(s.MaleVisitors) / float64(resolved) * 100
	female = float64(s.FemaleVisitors) / float64(resolved) * 100
	return male, female
}
