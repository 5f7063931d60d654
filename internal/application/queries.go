package application

import "github.com/bnema/halo-bridge/internal/domain"

type ValidationStatus string

const (
	ValidationValid   ValidationStatus = "valid"
	ValidationExpired ValidationStatus = "expired"
	ValidationError   ValidationStatus = "error"
)

type SessionResult struct {
	Status   string `json:"status"`
	UserID   string `json:"userId,omitempty"`
	Username string `json:"username,omitempty"`
	Expires  string `json:"expires,omitempty"`
	Cookies  int    `json:"cookies"`
	Message  string `json:"message"`
}

type RefreshResult struct {
	Status   string           `json:"status"`
	Username string           `json:"username,omitempty"`
	Expires  string           `json:"expires,omitempty"`
	Tokens   domain.TokenPair `json:"-"`
}

type TokenValidation struct {
	Status  ValidationStatus `json:"status"`
	Message string           `json:"message"`
}

type AttachedFileSummary struct {
	Name       string `json:"name"`
	ResourceID string `json:"resourceId"`
	UploadDate string `json:"uploadDate,omitempty"`
}

type AttachResult struct {
	UploadedFile       string                `json:"uploadedFile"`
	SubmissionID       string                `json:"submissionId"`
	TotalAttachedFiles int                   `json:"totalAttachedFiles"`
	Files              []AttachedFileSummary `json:"files"`
	Message            string                `json:"message"`
}

type FinalizeResult struct {
	Status          string   `json:"status"`
	SubmissionID    string   `json:"submissionId"`
	AssessmentTitle string   `json:"assessmentTitle"`
	SubmittedFiles  []string `json:"submittedFiles"`
}

type SubmissionView struct {
	AssessmentID string                `json:"assessmentId"`
	SubmissionID string                `json:"submissionId,omitempty"`
	Status       string                `json:"status,omitempty"`
	Files        []AttachedFileSummary `json:"files"`
}

type AssessmentSummary struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Type               string  `json:"type,omitempty"`
	Points             float64 `json:"points"`
	DueDate            string  `json:"dueDate,omitempty"`
	RequiresLopesWrite bool    `json:"requiresLopesWrite,omitempty"`
}

type UnitAssignments struct {
	Sequence    int                 `json:"sequence"`
	Title       string              `json:"title"`
	Current     bool                `json:"current,omitempty"`
	StartDate   string              `json:"startDate,omitempty"`
	EndDate     string              `json:"endDate,omitempty"`
	Assessments []AssessmentSummary `json:"assessments"`
}

// ClassAssignments lists a class's assessments by unit; the ids feed attach and submit.
type ClassAssignments struct {
	ClassID    string            `json:"classId"`
	Slug       string            `json:"slug"`
	Name       string            `json:"name"`
	CourseCode string            `json:"courseCode,omitempty"`
	Units      []UnitAssignments `json:"units"`
}

type FinalGrade struct {
	Value     string   `json:"value,omitempty"`
	Points    *float64 `json:"points"`
	MaxPoints *float64 `json:"maxPoints"`
	Published bool     `json:"published"`
}

type GradeEntry struct {
	AssessmentID string   `json:"assessmentId"`
	Title        string   `json:"title"`
	Type         string   `json:"type,omitempty"`
	Points       *float64 `json:"points"`
	MaxPoints    float64  `json:"maxPoints"`
	DueDate      string   `json:"dueDate,omitempty"`
	Status       string   `json:"status,omitempty"`
}

type GradeReport struct {
	ClassID     string       `json:"classId"`
	FinalGrade  *FinalGrade  `json:"finalGrade"`
	Assessments []GradeEntry `json:"assessments"`
}
