package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/halo-bridge/internal/domain"
	"github.com/bnema/halo-bridge/internal/logging"
	"github.com/bnema/halo-bridge/internal/ports"
	"go.uber.org/zap"
)

const (
	stageOutcomeOK    = "ok"
	stageOutcomeError = "error"

	finalizeOutcomeSubmitted = "submitted"
	finalizeOutcomeRejected  = "rejected"
	finalizeOutcomeFailed    = "failed"
)

var errAssessmentMissing = errors.New("assessment not found")

// SubmissionService runs the two-phase flow. Attach is repeatable; Finalize is irreversible.
// Callers serialize calls for one assessment.
type SubmissionService struct {
	gateway  ports.Gateway
	uploader ports.ObjectUploader
	metrics  ports.Metrics
	logger   *zap.Logger
}

func NewSubmissionService(gateway ports.Gateway, uploader ports.ObjectUploader, metrics ports.Metrics, logger *zap.Logger) *SubmissionService {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	logger = logging.OrNop(logger)

	return &SubmissionService{gateway: gateway, uploader: uploader, metrics: metrics, logger: logger}
}

func (s *SubmissionService) AttachFile(ctx context.Context, cmd AttachCommand) (AttachResult, error) {
	if err := validateTarget(cmd.Class, cmd.AssessmentID); err != nil {
		return AttachResult{}, err
	}

	path, data, err := readSubmissionFile(cmd.FilePath)
	if err != nil {
		return AttachResult{}, err
	}

	fileName := filepath.Base(path)
	scope := scopeFor(cmd.Class)
	logger := s.logger.With(
		zap.String("assessment_id", cmd.AssessmentID),
		zap.String("file", fileName),
		zap.Int("bytes", len(data)),
	)
	logger.Debug("attach stage", zap.String("stage", string(domain.StageNotStarted)))

	ticket, err := s.requestTicket(ctx, cmd, fileName, int64(len(data)), scope)
	if err != nil {
		return AttachResult{}, s.attachFailed(logger, fileName, domain.StagePresignRequested, err)
	}
	s.attachAdvanced(logger, domain.StagePresignRequested, 0)

	if err := s.uploader.Put(ctx, ticket.UploadURL, ticket.ContentType, data); err != nil {
		return AttachResult{}, s.attachFailed(logger, fileName, domain.StageUploaded, err)
	}
	s.attachAdvanced(logger, domain.StageUploaded, ticket.FileSize)

	submission, err := s.link(ctx, cmd, ticket.ResourceID, scope)
	if err != nil {
		return AttachResult{}, s.attachFailed(logger, fileName, domain.StageLinked, err)
	}
	s.attachAdvanced(logger, domain.StageLinked, 0)

	err = s.gateway.REST(ctx, ports.RESTRequest{
		Operation: opFileUploadStatus,
		Path:      pathFileUploadStatus,
		Body: []uploadStatusEntry{{
			ResourceID:          ticket.ResourceID,
			Status:              domain.UploadStatusCompleted,
			StorageProviderEnum: []string{domain.StorageProviderS3},
		}},
		Scope: scope,
	}, nil)
	if err != nil {
		return AttachResult{}, s.attachFailed(logger, fileName, domain.StageConfirmed, err)
	}
	s.attachAdvanced(logger, domain.StageConfirmed, 0)

	files := summarize(submission.Resources)
	logger.Info("file attached", zap.String("submission_id", submission.ID), zap.Int("attached", len(files)))

	return AttachResult{
		UploadedFile:       fileName,
		SubmissionID:       submission.ID,
		TotalAttachedFiles: len(files),
		Files:              files,
		Message: fmt.Sprintf(
			"Attached %q. %d file(s) are attached but NOT submitted; run submit to finalize.",
			fileName, len(files),
		),
	}, nil
}

func (s *SubmissionService) requestTicket(ctx context.Context, cmd AttachCommand, fileName string, size int64, scope ports.Scope) (domain.UploadTicket, error) {
	var tickets []presignResponseEntry
	err := s.gateway.REST(ctx, ports.RESTRequest{
		Operation: opGeneratePresignedURLs,
		Path:      pathGeneratePresignedURLs,
		Body: []presignEntry{{
			Type:                domain.ResourceTypeSubmission,
			Kind:                domain.ResourceKindFile,
			Description:         "",
			FileName:            fileName,
			FileSize:            size,
			FileType:            domain.FileType(fileName),
			StorageProviderEnum: []string{domain.StorageProviderS3},
			ResourceSignature: resourceSignature{
				CourseClassID:           cmd.Class.ID,
				CourseClassAssessmentID: cmd.AssessmentID,
			},
		}},
		Scope: scope,
	}, &tickets)
	if err != nil {
		return domain.UploadTicket{}, err
	}

	if len(tickets) == 0 {
		return domain.UploadTicket{}, domain.ErrNoUploadTicket
	}
	if strings.TrimSpace(tickets[0].ResourceID) == "" {
		return domain.UploadTicket{}, fmt.Errorf("%w: missing resourceId", domain.ErrNoUploadTicket)
	}
	if strings.TrimSpace(tickets[0].S3UploadURL) == "" {
		return domain.UploadTicket{}, fmt.Errorf("%w: missing s3UploadUrl", domain.ErrNoUploadTicket)
	}

	return domain.UploadTicket{
		ResourceID:  tickets[0].ResourceID,
		UploadURL:   tickets[0].S3UploadURL,
		FileName:    fileName,
		FileSize:    size,
		FileType:    domain.FileType(fileName),
		ContentType: domain.ContentType(fileName),
	}, nil
}

func (s *SubmissionService) link(ctx context.Context, cmd AttachCommand, resourceID string, scope ports.Scope) (domain.Submission, error) {
	var data bulkLinkData
	err := s.gateway.GraphQL(ctx, ports.GraphQLRequest{
		Operation: opBulkAssignmentLink,
		Query:     bulkAssignmentResourceMutation,
		Variables: map[string]any{
			"courseClassAssessmentId": cmd.AssessmentID,
			"resourceIds":             []string{resourceID},
		},
		Scope: scope,
	}, &data)
	if err != nil {
		return domain.Submission{}, err
	}
	if data.Submission == nil {
		return domain.Submission{}, errors.New("link response has no submission")
	}

	return data.Submission.toDomain(cmd.AssessmentID), nil
}

func (s *SubmissionService) attachAdvanced(logger *zap.Logger, stage domain.AttachStage, bytes int64) {
	s.metrics.ObserveAttach(stage, stageOutcomeOK, bytes)
	logger.Debug("attach stage", zap.String("stage", string(stage)))
}

func (s *SubmissionService) attachFailed(logger *zap.Logger, fileName string, stage domain.AttachStage, err error) error {
	s.metrics.ObserveAttach(stage, stageOutcomeError, 0)
	logger.Warn("attach failed", zap.String("stage", string(stage)), zap.Error(err))
	return &domain.UploadError{FileName: fileName, Stage: stage, Err: err}
}

// Finalize submits every file currently attached on the server. It never runs without attached files.
func (s *SubmissionService) Finalize(ctx context.Context, cmd FinalizeCommand) (FinalizeResult, error) {
	if err := validateTarget(cmd.Class, cmd.AssessmentID); err != nil {
		return FinalizeResult{}, err
	}

	result, err := s.finalize(ctx, cmd)
	if err != nil {
		outcome := finalizeOutcomeFailed
		if errors.Is(err, domain.ErrNothingAttached) {
			outcome = finalizeOutcomeRejected
		}
		s.metrics.ObserveFinalize(outcome)
		s.logger.Warn("finalize failed", zap.String("assessment_id", cmd.AssessmentID), zap.Error(err))
		return FinalizeResult{}, &domain.SubmissionError{AssessmentID: cmd.AssessmentID, Err: err}
	}

	s.metrics.ObserveFinalize(finalizeOutcomeSubmitted)
	s.logger.Info("assignment submitted",
		zap.String("assessment_id", cmd.AssessmentID),
		zap.String("submission_id", result.SubmissionID),
		zap.String("status", result.Status),
	)
	return result, nil
}

func (s *SubmissionService) finalize(ctx context.Context, cmd FinalizeCommand) (FinalizeResult, error) {
	scope := scopeFor(cmd.Class)

	assessment, err := s.assessment(ctx, cmd.AssessmentID, scope)
	if err != nil {
		return FinalizeResult{}, err
	}

	submission, err := s.Submission(ctx, cmd.Class, cmd.AssessmentID)
	if err != nil {
		return FinalizeResult{}, err
	}
	if len(submission.Resources) == 0 || submission.ID == "" {
		return FinalizeResult{}, fmt.Errorf("%w: upload at least one file before submitting", domain.ErrNothingAttached)
	}

	resourceInfo := make([]submitResourceInfo, 0, len(submission.Resources))
	for _, resource := range submission.Resources {
		resourceInfo = append(resourceInfo, submitResourceInfo{
			AssignmentSubmissionResourceID: resource.ID,
			ResourceID:                     resource.ResourceID,
			FileName:                       resource.Name,
			SimilarityReportStatus:         resource.SimilarityReportStatus,
		})
	}

	var response submitResponse
	err = s.gateway.REST(ctx, ports.RESTRequest{
		Operation: opSubmit,
		Path:      fmt.Sprintf(pathSubmitFormat, submission.ID),
		Body: submitRequest{
			ClassID:            cmd.Class.ID,
			ClassName:          cmd.Class.Name,
			AssessmentID:       cmd.AssessmentID,
			AssessmentTitle:    assessment.Title,
			RequiresLopeswrite: assessment.RequiresLopesWrite,
			ResourceInfo:       resourceInfo,
		},
		Scope: scope,
	}, &response)
	if err != nil {
		return FinalizeResult{}, fmt.Errorf("submit: %w", err)
	}

	status := domain.UnknownSubmissionOutcome
	if response.Status != nil && *response.Status != "" {
		status = *response.Status
	}

	return FinalizeResult{
		Status:          status,
		SubmissionID:    submission.ID,
		AssessmentTitle: assessment.Title,
		SubmittedFiles:  submission.FileNames(),
	}, nil
}

func (s *SubmissionService) assessment(ctx context.Context, assessmentID string, scope ports.Scope) (domain.Assessment, error) {
	var data assessmentData
	err := s.gateway.GraphQL(ctx, ports.GraphQLRequest{
		Operation: opCourseClassAssessment,
		Query:     courseClassAssessmentQuery,
		Variables: map[string]any{"assessmentId": assessmentID},
		Scope:     scope,
	}, &data)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("fetch assessment: %w", err)
	}
	if data.Assessment == nil {
		return domain.Assessment{}, errAssessmentMissing
	}

	return data.Assessment.toDomain(), nil
}

// Submission reads the server-side submission. A submission the server has not created yet has no id and no resources.
func (s *SubmissionService) Submission(ctx context.Context, class domain.Class, assessmentID string) (domain.Submission, error) {
	if err := validateTarget(class, assessmentID); err != nil {
		return domain.Submission{}, err
	}

	var data submissionData
	err := s.gateway.GraphQL(ctx, ports.GraphQLRequest{
		Operation: opAssignmentSubmission,
		Query:     assignmentSubmissionQuery,
		Variables: map[string]any{"courseClassAssessmentId": assessmentID},
		Scope:     scopeFor(class),
	}, &data)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("fetch submission: %w", err)
	}
	if data.Submission == nil {
		return domain.Submission{AssessmentID: assessmentID}, nil
	}

	return data.Submission.toDomain(assessmentID), nil
}

func (s *SubmissionService) View(ctx context.Context, class domain.Class, assessmentID string) (SubmissionView, error) {
	submission, err := s.Submission(ctx, class, assessmentID)
	if err != nil {
		return SubmissionView{}, err
	}

	return SubmissionView{
		AssessmentID: submission.AssessmentID,
		SubmissionID: submission.ID,
		Status:       submission.Status,
		Files:        summarize(submission.Resources),
	}, nil
}

func readSubmissionFile(raw string) (string, []byte, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil, &domain.LocalIOError{Path: raw, Err: errors.New("file path is required")}
	}

	path, err := expandPath(raw)
	if err != nil {
		return "", nil, &domain.LocalIOError{Path: raw, Err: err}
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", nil, &domain.LocalIOError{Path: path, Err: err}
	}
	if info.IsDir() {
		return "", nil, &domain.LocalIOError{Path: path, Err: errors.New("path is a directory")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, &domain.LocalIOError{Path: path, Err: err}
	}

	return path, data, nil
}

func expandPath(raw string) (string, error) {
	path := strings.TrimSpace(raw)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	return filepath.Abs(path)
}

func validateTarget(class domain.Class, assessmentID string) error {
	if strings.TrimSpace(class.ID) == "" {
		return fmt.Errorf("%w: class id is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(assessmentID) == "" {
		return fmt.Errorf("%w: assessment id is required", domain.ErrInvalidInput)
	}
	return nil
}

func scopeFor(class domain.Class) ports.Scope {
	return ports.Scope{ClassSlug: class.Slug, CourseClassID: class.ID}
}

func summarize(resources []domain.AttachedResource) []AttachedFileSummary {
	files := make([]AttachedFileSummary, 0, len(resources))
	for _, resource := range resources {
		files = append(files, AttachedFileSummary{
			Name:       resource.Name,
			ResourceID: resource.ResourceID,
			UploadDate: resource.UploadDate,
		})
	}
	return files
}
