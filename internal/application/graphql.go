package application

import "github.com/bnema/halo-bridge/internal/domain"

const (
	opCourseClassesForUser  = "getCourseClassesForUser"
	opCurrentClass          = "CurrentClass"
	opGradeOverview         = "GradeOverview"
	opCourseClassAssessment = "CourseClassAssessment"
	opAssignmentSubmission  = "AssignmentSubmission"
	opBulkAssignmentLink    = "BulkAssignmentResource"
	opGeneratePresignedURLs = "generate-presigned-urls"
	opFileUploadStatus      = "fileUploadStatus"
	opSubmit                = "submit"

	pathGeneratePresignedURLs = "/api/v1/orchestrate/generate-presigned-urls"
	pathFileUploadStatus      = "/api/v1/orchestrate/fileUploadStatus"
	pathSubmitFormat          = "/api/v1/orchestrate/resource/assignment_resource/%s/submit"
)

const courseClassesForUserQuery = `
query getCourseClassesForUser($pgNum: Int, $pgSize: Int) {
  getCourseClassesForUser(pgNum: $pgNum, pgSize: $pgSize) {
    courseClasses {
      id
      classCode
      slugId
      name
      courseCode
      stage
      modality
      startDate
      endDate
    }
  }
}`

const currentClassQuery = `
query CurrentClass($slugId: String!) {
  currentClass: getCourseClassBySlugId(slugId: $slugId) {
    id
    slugId
    name
    courseCode
    units {
      id
      title
      sequence
      current
      startDate
      endDate
      assessments {
        id
        title
        type
        points
        dueDate
        requiresLopesWrite
      }
    }
  }
}`

const gradeOverviewQuery = `
query GradeOverview($courseClassSlugId: String!, $courseClassUserIds: [String]) {
  gradeOverview: getAllClassGrades(
    courseClassSlugId: $courseClassSlugId
    courseClassUserIds: $courseClassUserIds
  ) {
    finalGrade {
      finalPoints
      gradeValue
      isPublished
      maxPoints
    }
    grades {
      assessment {
        id
        title
        points
        type
        dueDate
      }
      dueDate
      finalPoints
      status
    }
  }
}`

const courseClassAssessmentQuery = `
query CourseClassAssessment($assessmentId: String!) {
  assessment: getCourseClassAssessmentById(id: $assessmentId) {
    id
    title
    description
    startDate
    dueDate
    points
    requiresLopesWrite
    isGroupEnabled
    type
  }
}`

const submissionFields = `
    id
    status
    dueDate
    submissionDate
    resources {
      id
      isFinal
      similarityReportStatusEnum
      similarityScore
      uploadDate
      resource {
        id
        name
        kind
        type
      }
    }`

const assignmentSubmissionQuery = `
query AssignmentSubmission($courseClassAssessmentId: String!) {
  assignmentSubmission: getUserAssignmentSubmissionForAssessment(
    courseClassAssessmentId: $courseClassAssessmentId
  ) {` + submissionFields + `
  }
}`

const bulkAssignmentResourceMutation = `
mutation BulkAssignmentResource($courseClassAssessmentId: String!, $resourceIds: [String]!) {
  bulkAddAssignmentSubmissionResource(
    courseClassAssessmentId: $courseClassAssessmentId
    resourceIds: $resourceIds
  ) {` + submissionFields + `
  }
}`

type courseClassesData struct {
	Result struct {
		CourseClasses []courseClassDTO `json:"courseClasses"`
	} `json:"getCourseClassesForUser"`
}

type courseClassDTO struct {
	ID         string `json:"id"`
	ClassCode  string `json:"classCode"`
	SlugID     string `json:"slugId"`
	Name       string `json:"name"`
	CourseCode string `json:"courseCode"`
	Stage      string `json:"stage"`
}

func (c courseClassDTO) toDomain() domain.Class {
	return domain.Class{
		ID:         c.ID,
		Slug:       c.SlugID,
		Name:       c.Name,
		CourseCode: c.CourseCode,
		Stage:      c.Stage,
	}
}

type currentClassData struct {
	Class *currentClassDTO `json:"currentClass"`
}

type currentClassDTO struct {
	ID         string    `json:"id"`
	SlugID     string    `json:"slugId"`
	Name       string    `json:"name"`
	CourseCode string    `json:"courseCode"`
	Units      []unitDTO `json:"units"`
}

type unitDTO struct {
	Title       string              `json:"title"`
	Sequence    int                 `json:"sequence"`
	Current     bool                `json:"current"`
	StartDate   string              `json:"startDate"`
	EndDate     string              `json:"endDate"`
	Assessments []unitAssessmentDTO `json:"assessments"`
}

type unitAssessmentDTO struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Type               string   `json:"type"`
	Points             *float64 `json:"points"`
	DueDate            string   `json:"dueDate"`
	RequiresLopesWrite bool     `json:"requiresLopesWrite"`
}

func (a unitAssessmentDTO) toSummary() AssessmentSummary {
	summary := AssessmentSummary{
		ID:                 a.ID,
		Title:              a.Title,
		Type:               a.Type,
		DueDate:            shortDate(a.DueDate),
		RequiresLopesWrite: a.RequiresLopesWrite,
	}
	if a.Points != nil {
		summary.Points = *a.Points
	}
	return summary
}

type gradeOverviewData struct {
	Overviews []gradeOverviewDTO `json:"gradeOverview"`
}

type gradeOverviewDTO struct {
	FinalGrade *struct {
		FinalPoints *float64 `json:"finalPoints"`
		GradeValue  any      `json:"gradeValue"`
		IsPublished bool     `json:"isPublished"`
		MaxPoints   *float64 `json:"maxPoints"`
	} `json:"finalGrade"`
	Grades []gradeDTO `json:"grades"`
}

type gradeDTO struct {
	Assessment *struct {
		ID      string   `json:"id"`
		Title   string   `json:"title"`
		Points  *float64 `json:"points"`
		Type    string   `json:"type"`
		DueDate string   `json:"dueDate"`
	} `json:"assessment"`
	DueDate     string   `json:"dueDate"`
	FinalPoints *float64 `json:"finalPoints"`
	Status      string   `json:"status"`
}

func (g gradeDTO) toEntry() GradeEntry {
	entry := GradeEntry{
		Points:  g.FinalPoints,
		DueDate: shortDate(g.DueDate),
		Status:  g.Status,
	}
	if g.Assessment != nil {
		entry.AssessmentID = g.Assessment.ID
		entry.Title = g.Assessment.Title
		entry.Type = g.Assessment.Type
		if g.Assessment.Points != nil {
			entry.MaxPoints = *g.Assessment.Points
		}
		if entry.DueDate == "" {
			entry.DueDate = shortDate(g.Assessment.DueDate)
		}
	}
	return entry
}

// shortDate trims an ISO timestamp to YYYY-MM-DD.
func shortDate(value string) string {
	if len(value) < len("2006-01-02") {
		return value
	}
	return value[:len("2006-01-02")]
}

type assessmentData struct {
	Assessment *assessmentDTO `json:"assessment"`
}

type assessmentDTO struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Points             *float64 `json:"points"`
	RequiresLopesWrite *bool    `json:"requiresLopesWrite"`
}

func (a assessmentDTO) toDomain() domain.Assessment {
	assessment := domain.Assessment{ID: a.ID, Title: a.Title}
	if a.Points != nil {
		assessment.Points = *a.Points
	}
	if a.RequiresLopesWrite != nil {
		assessment.RequiresLopesWrite = *a.RequiresLopesWrite
	}
	return assessment
}

type submissionData struct {
	Submission *submissionDTO `json:"assignmentSubmission"`
}

type bulkLinkData struct {
	Submission *submissionDTO `json:"bulkAddAssignmentSubmissionResource"`
}

type submissionDTO struct {
	ID        string                  `json:"id"`
	Status    string                  `json:"status"`
	Resources []submissionResourceDTO `json:"resources"`
}

type submissionResourceDTO struct {
	ID                         string  `json:"id"`
	IsFinal                    bool    `json:"isFinal"`
	SimilarityReportStatusEnum *string `json:"similarityReportStatusEnum"`
	UploadDate                 string  `json:"uploadDate"`
	Resource                   struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"resource"`
}

func (s submissionDTO) toDomain(assessmentID string) domain.Submission {
	submission := domain.Submission{
		AssessmentID: assessmentID,
		ID:           s.ID,
		Status:       s.Status,
		Resources:    make([]domain.AttachedResource, 0, len(s.Resources)),
	}
	for _, resource := range s.Resources {
		status := domain.DefaultSimilarityStatus
		if resource.SimilarityReportStatusEnum != nil && *resource.SimilarityReportStatusEnum != "" {
			status = *resource.SimilarityReportStatusEnum
		}
		submission.Resources = append(submission.Resources, domain.AttachedResource{
			ID:                     resource.ID,
			ResourceID:             resource.Resource.ID,
			Name:                   resource.Resource.Name,
			UploadDate:             resource.UploadDate,
			SimilarityReportStatus: status,
			IsFinal:                resource.IsFinal,
		})
	}
	return submission
}

type presignEntry struct {
	Type                string            `json:"type"`
	Kind                string            `json:"kind"`
	Description         string            `json:"description"`
	FileName            string            `json:"fileName"`
	FileSize            int64             `json:"fileSize"`
	FileType            string            `json:"fileType"`
	StorageProviderEnum []string          `json:"storageProviderEnum"`
	ResourceSignature   resourceSignature `json:"resourceSignature"`
}

type resourceSignature struct {
	CourseClassID                string  `json:"courseClassId"`
	CourseClassAssessmentID      string  `json:"courseClassAssessmentId"`
	CourseClassAssessmentGroupID *string `json:"courseClassAssessmentGroupId"`
}

type presignResponseEntry struct {
	ResourceID  string `json:"resourceId"`
	S3UploadURL string `json:"s3UploadUrl"`
}

type uploadStatusEntry struct {
	ResourceID          string   `json:"resourceId"`
	Status              string   `json:"status"`
	StorageProviderEnum []string `json:"storageProviderEnum"`
}

type submitRequest struct {
	ClassID            string               `json:"classId"`
	ClassName          string               `json:"className"`
	AssessmentID       string               `json:"assessmentId"`
	AssessmentTitle    string               `json:"assessmentTitle"`
	RequiresLopeswrite bool                 `json:"requiresLopeswrite"`
	ResourceInfo       []submitResourceInfo `json:"resourceInfo"`
}

type submitResourceInfo struct {
	AssignmentSubmissionResourceID string `json:"assignmentSubmissionResourceId"`
	ResourceID                     string `json:"resourceId"`
	FileName                       string `json:"fileName"`
	SimilarityReportStatus         string `json:"similarityReportStatus"`
}

type submitResponse struct {
	Status *string `json:"status"`
}
