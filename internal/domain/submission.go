package domain

import (
	"mime"
	"path/filepath"
	"strings"
)

const (
	DefaultFileType          = "bin"
	DefaultContentType       = "application/octet-stream"
	DefaultSimilarityStatus  = "NOT_SUBMITTED"
	UploadStatusCompleted    = "COMPLETED"
	StorageProviderS3        = "S3"
	ResourceTypeSubmission   = "assignment_submission"
	ResourceKindFile         = "FILE"
	UnknownSubmissionOutcome = "Unknown"
)

type AttachStage string

const (
	StageNotStarted       AttachStage = "not_started"
	StagePresignRequested AttachStage = "presign_requested"
	StageUploaded         AttachStage = "uploaded"
	StageLinked           AttachStage = "linked"
	StageConfirmed        AttachStage = "confirmed"
)

type Class struct {
	ID         string
	Slug       string
	Name       string
	CourseCode string
	Stage      string
}

type Assessment struct {
	ID                 string
	Title              string
	Points             float64
	RequiresLopesWrite bool
}

type AttachedResource struct {
	// ID is the submission-resource id, distinct from the uploaded ResourceID.
	ID                     string
	ResourceID             string
	Name                   string
	UploadDate             string
	SimilarityReportStatus string
	IsFinal                bool
}

type Submission struct {
	AssessmentID string
	ID           string
	Status       string
	Resources    []AttachedResource
}

func (s Submission) FileNames() []string {
	names := make([]string, 0, len(s.Resources))
	for _, resource := range s.Resources {
		names = append(names, resource.Name)
	}
	return names
}

type UploadTicket struct {
	ResourceID  string
	UploadURL   string
	FileName    string
	FileSize    int64
	FileType    string
	ContentType string
}

// FileType returns the lower-cased extension without its dot, or DefaultFileType.
func FileType(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return DefaultFileType
	}
	return ext
}

func ContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return DefaultContentType
	}
	if known, ok := officeContentTypes[ext]; ok {
		return known
	}
	if detected := mime.TypeByExtension(ext); detected != "" {
		return detected
	}
	return DefaultContentType
}

// mime.TypeByExtension depends on the host's mime tables, which rarely carry office formats.
var officeContentTypes = map[string]string{
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".pdf":  "application/pdf",
	".zip":  "application/zip",
	".txt":  "text/plain; charset=utf-8",
	".md":   "text/markdown; charset=utf-8",
}
