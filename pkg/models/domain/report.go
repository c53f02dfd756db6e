package domain

// Report is a report prepared for display: every cell already rendered
// as text, columns in backend order.
type Report struct {
	Title   string
	Type    ReportType
	Period  *DateRange
	Summary string
	Columns []string
	Rows    [][]string
	Details []ReportDetail
}

// ReportDetail is one metadata entry shown under the table.
type ReportDetail struct {
	Name  string
	Value interface{}
}
