/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract: internal
  types use time.Duration and decimal values, the wire format uses
  strings and integers clients can consume directly.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Response: Complex response wrappers

FORMATTING RULES:
  - Months are "2006-01" strings
  - Clock times are "15:04:05" strings, null when absent
  - Violation percentages are fixed two-decimal strings ("40.75")
  - Timestamps are RFC 3339

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/goldenvalley/breakcheck/employee"
	"github.com/goldenvalley/breakcheck/pipeline"
	"github.com/goldenvalley/breakcheck/policy"
	"github.com/goldenvalley/breakcheck/store/sqlite"
)

// =============================================================================
// SUMMARY TYPES
// =============================================================================

// SummaryDTO represents one month's compliance summary.
type SummaryDTO struct {
	Month             string `json:"month"`
	TotalShifts       int    `json:"total_shifts"`
	Violations        int    `json:"violations"`
	ViolationPct      string `json:"violation_pct"`
	MissedLunch       int    `json:"missed_lunch"`
	LateLunchNoWaiver int    `json:"late_lunch_no_waiver"`
	LateLunchWaiver   int    `json:"late_lunch_waiver"`
	OnTime            int    `json:"on_time"`
	NotRequired       int    `json:"not_required"`
	RequiresReview    int    `json:"requires_review"`
	FiveHourNoBreak   int    `json:"five_hour_no_break"`
}

// TotalsDTO is the cumulative counterpart of SummaryDTO, without a month.
type TotalsDTO struct {
	TotalShifts       int    `json:"total_shifts"`
	Violations        int    `json:"violations"`
	ViolationPct      string `json:"violation_pct"`
	MissedLunch       int    `json:"missed_lunch"`
	LateLunchNoWaiver int    `json:"late_lunch_no_waiver"`
	LateLunchWaiver   int    `json:"late_lunch_waiver"`
	OnTime            int    `json:"on_time"`
	NotRequired       int    `json:"not_required"`
	RequiresReview    int    `json:"requires_review"`
	FiveHourNoBreak   int    `json:"five_hour_no_break"`
}

// YearToDateDTO is the cumulative view: per-month rows plus totals.
type YearToDateDTO struct {
	Months []SummaryDTO `json:"months"`
	Totals TotalsDTO    `json:"totals"`
}

// =============================================================================
// SHIFT AND REJECTION TYPES
// =============================================================================

// ShiftDTO represents one classified shift.
type ShiftDTO struct {
	EmployeeID      string  `json:"employee_id"`
	Date            string  `json:"date"`
	ClockIn         string  `json:"clock_in"`
	ClockOut        string  `json:"clock_out"`
	LunchStart      *string `json:"lunch_start"`
	DurationMinutes int     `json:"duration_minutes"`
	WaiverSigned    bool    `json:"waiver_signed"`
	LunchImputed    bool    `json:"lunch_imputed"`
	Verdict         string  `json:"verdict"`
}

// RejectedDTO represents one row excluded during normalization.
type RejectedDTO struct {
	Line       int    `json:"line"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Reason     string `json:"reason"`
}

// =============================================================================
// EMPLOYEE TYPES
// =============================================================================

// TallyDTO represents one employee's violation counts.
type TallyDTO struct {
	EmployeeID        string `json:"employee_id"`
	MissedLunch       int    `json:"missed_lunch"`
	LateLunchNoWaiver int    `json:"late_lunch_no_waiver"`
	LateLunchWaiver   int    `json:"late_lunch_waiver"`
	Total             int    `json:"total"`
}

// =============================================================================
// RUN TYPES
// =============================================================================

// RunDTO represents one processed batch in the audit trail.
type RunDTO struct {
	ID           string `json:"id"`
	Month        string `json:"month"`
	Source       string `json:"source"`
	TotalRows    int    `json:"total_rows"`
	ValidShifts  int    `json:"valid_shifts"`
	RejectedRows int    `json:"rejected_rows"`
	StartedAt    string `json:"started_at"`
	CompletedAt  string `json:"completed_at"`
}

// RunResponse is returned after a batch submission.
type RunResponse struct {
	Run      RunDTO        `json:"run"`
	Summary  SummaryDTO    `json:"summary"`
	Rejected []RejectedDTO `json:"rejected"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toSummaryDTO(s policy.MonthlySummary) SummaryDTO {
	return SummaryDTO{
		Month:             s.Month.String(),
		TotalShifts:       s.TotalShifts,
		Violations:        s.Violations(),
		ViolationPct:      s.ViolationPercentage().StringFixed(2),
		MissedLunch:       s.Missed,
		LateLunchNoWaiver: s.LateNoWaiver,
		LateLunchWaiver:   s.LateWithWaiver,
		OnTime:            s.OnTime,
		NotRequired:       s.NotRequired,
		RequiresReview:    s.RequiresReview,
		FiveHourNoBreak:   s.FiveHourNoBreak,
	}
}

func toYearToDateDTO(y policy.YearToDate) YearToDateDTO {
	dto := YearToDateDTO{
		Months: make([]SummaryDTO, len(y.Months)),
		Totals: TotalsDTO{
			TotalShifts:       y.Totals.TotalShifts,
			Violations:        y.Totals.Violations(),
			ViolationPct:      y.Totals.ViolationPercentage().StringFixed(2),
			MissedLunch:       y.Totals.Missed,
			LateLunchNoWaiver: y.Totals.LateNoWaiver,
			LateLunchWaiver:   y.Totals.LateWithWaiver,
			OnTime:            y.Totals.OnTime,
			NotRequired:       y.Totals.NotRequired,
			RequiresReview:    y.Totals.RequiresReview,
			FiveHourNoBreak:   y.Totals.FiveHourNoBreak,
		},
	}
	for i, m := range y.Months {
		dto.Months[i] = toSummaryDTO(m)
	}
	return dto
}

func toShiftDTOs(shifts []policy.ClassifiedShift) []ShiftDTO {
	dtos := make([]ShiftDTO, len(shifts))
	for i, s := range shifts {
		dto := ShiftDTO{
			EmployeeID:      string(s.EmployeeID),
			Date:            s.Date.Format("2006-01-02"),
			ClockIn:         s.ClockIn.String(),
			ClockOut:        s.ClockOut.String(),
			DurationMinutes: int(s.Duration / time.Minute),
			WaiverSigned:    s.WaiverSigned,
			LunchImputed:    s.LunchImputed,
			Verdict:         s.Verdict.String(),
		}
		if s.LunchStart != nil {
			ls := s.LunchStart.String()
			dto.LunchStart = &ls
		}
		dtos[i] = dto
	}
	return dtos
}

func toRejectedDTOs(records []sqlite.RejectedRecord) []RejectedDTO {
	dtos := make([]RejectedDTO, len(records))
	for i, r := range records {
		dtos[i] = RejectedDTO{
			Line:       r.Line,
			EmployeeID: string(r.EmployeeID),
			Date:       r.Date,
			Reason:     string(r.Reason),
		}
	}
	return dtos
}

func rejectedRowDTOs(rows []policy.RejectedRow) []RejectedDTO {
	dtos := make([]RejectedDTO, len(rows))
	for i, r := range rows {
		date := ""
		if !r.Row.Date.IsZero() {
			date = r.Row.Date.Format("2006-01-02")
		}
		dtos[i] = RejectedDTO{
			Line:       r.Row.Line,
			EmployeeID: string(r.Row.EmployeeID),
			Date:       date,
			Reason:     string(r.Reason),
		}
	}
	return dtos
}

func toTallyDTOs(tallies []employee.Tally) []TallyDTO {
	dtos := make([]TallyDTO, len(tallies))
	for i, t := range tallies {
		dtos[i] = TallyDTO{
			EmployeeID:        string(t.EmployeeID),
			MissedLunch:       t.Missed,
			LateLunchNoWaiver: t.LateNoWaiver,
			LateLunchWaiver:   t.LateWithWaiver,
			Total:             t.Total(),
		}
	}
	return dtos
}

func toRunDTO(r sqlite.Run) RunDTO {
	return RunDTO{
		ID:           r.ID.String(),
		Month:        r.Month.String(),
		Source:       r.Source,
		TotalRows:    r.TotalRows,
		ValidShifts:  r.ValidShifts,
		RejectedRows: r.RejectedRows,
		StartedAt:    r.StartedAt.Format(time.RFC3339),
		CompletedAt:  r.CompletedAt.Format(time.RFC3339),
	}
}

func runReportDTO(report pipeline.RunReport) RunResponse {
	return RunResponse{
		Run: RunDTO{
			ID:           report.RunID.String(),
			Month:        report.Month.String(),
			Source:       report.Source,
			TotalRows:    report.TotalRows,
			ValidShifts:  len(report.Shifts),
			RejectedRows: len(report.Rejected),
			StartedAt:    report.StartedAt.Format(time.RFC3339),
			CompletedAt:  report.CompletedAt.Format(time.RFC3339),
		},
		Summary:  toSummaryDTO(report.Summary),
		Rejected: rejectedRowDTOs(report.Rejected),
	}
}
