package domain

// Report is a rendered, presentation-agnostic view of a run for terminal output.
type Report struct {
	Title    string
	Subtitle string
	Sections []ReportSection
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Details []ReportDetail
}

// ReportDetail represents a single row within a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
