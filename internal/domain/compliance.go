package domain

type IssueKind string

const (
	IssueUnderstaffedDay       IssueKind = "understaffed_day"
	IssueNoWeeklyRest          IssueKind = "no_weekly_rest"
	IssueExcessConsecutiveDays IssueKind = "excess_consecutive_days"
	IssueMaxConsecutiveDays    IssueKind = "max_consecutive_days"
	IssueInsufficientRest      IssueKind = "insufficient_rest"
	IssueExcessWeeklyHours     IssueKind = "excess_weekly_hours"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ComplianceIssue is a single labor-rule finding. Issues are values created
// fresh per validation call and are never persisted by the engine.
type ComplianceIssue struct {
	Kind       IssueKind `json:"kind"`
	Severity   Severity  `json:"severity"`
	Message    string    `json:"message"`
	EmployeeID string    `json:"employeeID,omitempty"`
	Date       string    `json:"date,omitempty"`
}

// ValidationResult partitions the findings of one validation run. IsValid is
// true iff Errors is empty; warnings never affect it.
type ValidationResult struct {
	IsValid  bool              `json:"isValid"`
	Errors   []ComplianceIssue `json:"errors"`
	Warnings []ComplianceIssue `json:"warnings"`
}
