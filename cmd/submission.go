package cmd

import (
	"errors"

	"github.com/bnema/halo-bridge/internal/adapters/render/summary"
	"github.com/bnema/halo-bridge/internal/application"
	"github.com/spf13/cobra"
)

var errSubmitNotConfirmed = errors.New("submitting is final and sends every attached file for grading; re-run with --confirm")

type submissionTarget struct {
	classRef     string
	assessmentID string
	asJSON       bool
}

func (t *submissionTarget) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&t.classRef, "class", "", "Course code, class name, slug or id")
	cmd.Flags().StringVar(&t.assessmentID, "assessment", "", "Assessment (assignment) id")
	cmd.Flags().BoolVar(&t.asJSON, "json", false, "Render JSON output")
	_ = cmd.MarkFlagRequired("class")
	_ = cmd.MarkFlagRequired("assessment")
}

func newSubmissionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submission",
		Short: "Attach files to assignments and submit them for grading",
	}

	cmd.AddCommand(
		newSubmissionShowCmd(app),
		newSubmissionAttachCmd(app),
		newSubmissionSubmitCmd(app),
	)
	return cmd
}

func newSubmissionShowCmd(app *app) *cobra.Command {
	var target submissionTarget

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the files attached to an assignment submission",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			class, err := app.classes.Resolve(cmd.Context(), target.classRef)
			if err != nil {
				return err
			}
			view, err := app.submissions.View(cmd.Context(), class, target.assessmentID)
			if err != nil {
				return err
			}
			return writeOutput(cmd, view, target.asJSON, summary.Submission)
		},
	}

	target.bind(cmd)
	return cmd
}

func newSubmissionAttachCmd(app *app) *cobra.Command {
	var target submissionTarget
	var filePath string

	cmd := &cobra.Command{
		Use:   "attach",
		Short: "Upload a file and attach it to an assignment without submitting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			class, err := app.classes.Resolve(cmd.Context(), target.classRef)
			if err != nil {
				return err
			}

			command := application.AttachCommand{
				Class:        class,
				AssessmentID: target.assessmentID,
				FilePath:     filePath,
			}

			var result application.AttachResult
			if target.asJSON {
				result, err = app.submissions.AttachFile(cmd.Context(), command)
			} else {
				result, err = runAttachProgress(cmd.Context(), cmd.ErrOrStderr(), command, app.submissions.AttachFile)
			}
			if err != nil {
				return err
			}

			return writeOutput(cmd, result, target.asJSON, summary.Attach)
		},
	}

	target.bind(cmd)
	cmd.Flags().StringVar(&filePath, "file", "", "Path to the local file to attach")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newSubmissionSubmitCmd(app *app) *cobra.Command {
	var target submissionTarget
	var confirm bool

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit every attached file for grading",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirm {
				return errSubmitNotConfirmed
			}

			class, err := app.classes.Resolve(cmd.Context(), target.classRef)
			if err != nil {
				return err
			}
			result, err := app.submissions.Finalize(cmd.Context(), application.FinalizeCommand{
				Class:        class,
				AssessmentID: target.assessmentID,
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd, result, target.asJSON, summary.Finalize)
		},
	}

	target.bind(cmd)
	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm the final submission")
	return cmd
}
