package tools

import (
	"errors"

	"github.com/bnema/halo-bridge/internal/domain"
)

// toolErrorFrom categorizes err. Authentication problems win over the stage that hit them.
func toolErrorFrom(tool string, err error) *ToolError {
	toolErr := &ToolError{Tool: tool, Message: err.Error(), Code: CodeExecutionError}

	var (
		authFailure   *domain.AuthFailure
		localErr      *domain.LocalIOError
		uploadErr     *domain.UploadError
		submissionErr *domain.SubmissionError
		apiErr        *domain.APIError
	)

	switch {
	case errors.As(err, &authFailure):
		toolErr.Code = CodeAuthExpired
		toolErr.Remediation = authFailure.Remediation
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrNoTokensConfigured):
		toolErr.Code = CodeAuthExpired
		toolErr.Remediation = domain.RemediationUnauthorized
	case errors.As(err, &localErr):
		toolErr.Code = CodeLocalIOError
		toolErr.Details = map[string]any{"path": localErr.Path}
	case errors.As(err, &uploadErr):
		toolErr.Code = CodeUploadError
		toolErr.Details = map[string]any{"file": uploadErr.FileName, "stage": string(uploadErr.Stage)}
	case errors.As(err, &submissionErr):
		toolErr.Code = CodeSubmissionError
		toolErr.Details = map[string]any{"assessmentId": submissionErr.AssessmentID}
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrClassNotFound):
		toolErr.Code = CodeValidationError
	case errors.As(err, &apiErr):
		toolErr.Code = CodeAPIError
		toolErr.Details = map[string]any{"operation": apiErr.Operation}
	}

	if toolErr.Remediation == "" && domain.Classify(err) == domain.RemedyRetry {
		toolErr.Remediation = "transient failure; retry the call"
	}

	return toolErr
}
