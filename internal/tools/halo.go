package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/halo-bridge/internal/application"
	"github.com/bnema/halo-bridge/internal/domain"
	"github.com/bnema/halo-bridge/internal/logging"
	"go.uber.org/zap"
)

const (
	argClassRef     = "class_ref"
	argAssessmentID = "assessment_id"
	argFilePath     = "file_path"
	argConfirm      = "confirm"
)

type SessionOperations interface {
	SetupSession(ctx context.Context) (application.SessionResult, error)
	RefreshTokens(ctx context.Context) (application.RefreshResult, error)
	ValidateTokens(ctx context.Context) application.TokenValidation
	ReloadTokens(ctx context.Context) application.TokenValidation
}

type ClassOperations interface {
	ListClasses(ctx context.Context) ([]domain.Class, error)
	Resolve(ctx context.Context, ref string) (domain.Class, error)
	Assignments(ctx context.Context, class domain.Class) (application.ClassAssignments, error)
	Grades(ctx context.Context, class domain.Class) (application.GradeReport, error)
}

type SubmissionOperations interface {
	View(ctx context.Context, class domain.Class, assessmentID string) (application.SubmissionView, error)
	AttachFile(ctx context.Context, cmd application.AttachCommand) (application.AttachResult, error)
	Finalize(ctx context.Context, cmd application.FinalizeCommand) (application.FinalizeResult, error)
}

type Services struct {
	Sessions    SessionOperations
	Classes     ClassOperations
	Submissions SubmissionOperations
}

// ClassSummary is the tool and JSON view of a directory entry.
type ClassSummary struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	CourseCode string `json:"courseCode"`
	Stage      string `json:"stage,omitempty"`
}

func SummarizeClasses(classes []domain.Class) []ClassSummary {
	summaries := make([]ClassSummary, 0, len(classes))
	for _, class := range classes {
		summaries = append(summaries, ClassSummary{
			ID:         class.ID,
			Slug:       class.Slug,
			Name:       class.Name,
			CourseCode: class.CourseCode,
			Stage:      class.Stage,
		})
	}
	return summaries
}

// StatusResult is returned by session tools that report failures in-band.
type StatusResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewHaloRegistry builds the registry of every bridge tool.
func NewHaloRegistry(services Services, logger *zap.Logger) *Registry {
	logger = logging.OrNop(logger)

	classRef := stringProperty("Course code (e.g. 'CST-321'), class name, slug or id")
	assessmentID := stringProperty("UUID of the assignment (course class assessment); get it from view_assignments")

	return NewRegistry(
		NewFunctionTool(
			"list_classes",
			"List all enrolled course classes and refresh the local class directory. Call this first so classes can be referenced by course code.",
			objectSchema(map[string]any{}),
			func(ctx context.Context, _ map[string]any) (any, error) {
				classes, err := services.Classes.ListClasses(ctx)
				if err != nil {
					return nil, err
				}
				return map[string]any{"classes": SummarizeClasses(classes)}, nil
			},
			logger,
		),
		NewFunctionTool(
			"view_assignments",
			"List a class's assignments by unit with their ids, types, points and due dates. Use the id as assessment_id for upload_assignment_file and submit_assignment.",
			objectSchema(map[string]any{argClassRef: classRef}, argClassRef),
			func(ctx context.Context, args map[string]any) (any, error) {
				class, err := resolveClass(ctx, services.Classes, args)
				if err != nil {
					return nil, err
				}
				return services.Classes.Assignments(ctx, class)
			},
			logger,
		),
		NewFunctionTool(
			"grades",
			"Show the final grade and per-assignment scores and statuses for a class.",
			objectSchema(map[string]any{argClassRef: classRef}, argClassRef),
			func(ctx context.Context, args map[string]any) (any, error) {
				class, err := resolveClass(ctx, services.Classes, args)
				if err != nil {
					return nil, err
				}
				return services.Classes.Grades(ctx, class)
			},
			logger,
		),
		NewFunctionTool(
			"view_submission",
			"Show the files currently attached to an assignment submission and its status.",
			objectSchema(map[string]any{argClassRef: classRef, argAssessmentID: assessmentID}, argClassRef, argAssessmentID),
			func(ctx context.Context, args map[string]any) (any, error) {
				class, err := resolveClass(ctx, services.Classes, args)
				if err != nil {
					return nil, err
				}
				return services.Submissions.View(ctx, class, stringArg(args, argAssessmentID))
			},
			logger,
		),
		NewFunctionTool(
			"upload_assignment_file",
			"Upload a local file and attach it to an assignment submission. Can be called several times; the assignment is NOT submitted until submit_assignment is called.",
			objectSchema(map[string]any{
				argClassRef:     classRef,
				argAssessmentID: assessmentID,
				argFilePath:     stringProperty("Absolute path to a local file"),
			}, argClassRef, argAssessmentID, argFilePath),
			func(ctx context.Context, args map[string]any) (any, error) {
				class, err := resolveClass(ctx, services.Classes, args)
				if err != nil {
					return nil, err
				}
				return services.Submissions.AttachFile(ctx, application.AttachCommand{
					Class:        class,
					AssessmentID: stringArg(args, argAssessmentID),
					FilePath:     stringArg(args, argFilePath),
				})
			},
			logger,
		),
		NewFunctionTool(
			"submit_assignment",
			"Finalize and submit an assignment for grading. Submits ALL files currently attached. Requires confirm=true.",
			objectSchema(map[string]any{
				argClassRef:     classRef,
				argAssessmentID: assessmentID,
				argConfirm:      booleanProperty("Must be true; submission cannot be undone"),
			}, argClassRef, argAssessmentID, argConfirm),
			func(ctx context.Context, args map[string]any) (any, error) {
				if confirmed, _ := args[argConfirm].(bool); !confirmed {
					return nil, fmt.Errorf("%w: submit_assignment requires confirm=true", domain.ErrInvalidInput)
				}
				class, err := resolveClass(ctx, services.Classes, args)
				if err != nil {
					return nil, err
				}
				return services.Submissions.Finalize(ctx, application.FinalizeCommand{
					Class:        class,
					AssessmentID: stringArg(args, argAssessmentID),
				})
			},
			logger,
		),
		NewFunctionTool(
			"check_tokens",
			"Check whether the current auth tokens are valid with a lightweight API call.",
			objectSchema(map[string]any{}),
			func(ctx context.Context, _ map[string]any) (any, error) {
				return services.Sessions.ValidateTokens(ctx), nil
			},
			logger,
		),
		NewFunctionTool(
			"reload_tokens",
			"Reload tokens from the credential file and environment, then validate them.",
			objectSchema(map[string]any{}),
			func(ctx context.Context, _ map[string]any) (any, error) {
				return services.Sessions.ReloadTokens(ctx), nil
			},
			logger,
		),
		NewFunctionTool(
			"setup_session",
			"Create a long-lived session from the current tokens so expired tokens are refreshed automatically. Call once, and again when the session expires.",
			objectSchema(map[string]any{}),
			func(ctx context.Context, _ map[string]any) (any, error) {
				result, err := services.Sessions.SetupSession(ctx)
				if err != nil {
					return StatusResult{Status: "error", Message: err.Error()}, nil
				}
				return result, nil
			},
			logger,
		),
		NewFunctionTool(
			"refresh_tokens",
			"Refresh the auth tokens using the stored session. Happens automatically on expiry; requires setup_session first.",
			objectSchema(map[string]any{}),
			func(ctx context.Context, _ map[string]any) (any, error) {
				result, err := services.Sessions.RefreshTokens(ctx)
				if err != nil {
					return StatusResult{Status: "error", Message: err.Error()}, nil
				}
				return result, nil
			},
			logger,
		),
	)
}

func resolveClass(ctx context.Context, classes ClassOperations, args map[string]any) (domain.Class, error) {
	return classes.Resolve(ctx, stringArg(args, argClassRef))
}

func stringArg(args map[string]any, name string) string {
	value, _ := args[name].(string)
	return strings.TrimSpace(value)
}
