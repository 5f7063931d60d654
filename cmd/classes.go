package cmd

import (
	"context"

	"github.com/bnema/halo-bridge/internal/adapters/render/summary"
	"github.com/bnema/halo-bridge/internal/domain"
	"github.com/bnema/halo-bridge/internal/tools"
	"github.com/spf13/cobra"
)

func newClassesCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "List enrolled classes and inspect their assignments",
	}

	cmd.AddCommand(newClassesListCmd(app))
	cmd.AddCommand(newClassQueryCmd(app, "assignments", "List a class's assignments by unit", app.classes.Assignments, summary.Assignments))
	cmd.AddCommand(newClassQueryCmd(app, "grades", "Show the final grade and per-assignment grades of a class", app.classes.Grades, summary.Grades))
	return cmd
}

func newClassesListCmd(app *app) *cobra.Command {
	var asJSON bool
	var cached bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch enrolled classes and refresh the local class directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				classes []domain.Class
				err     error
			)
			if cached {
				classes, err = app.classes.Cached(cmd.Context())
			} else {
				classes, err = app.classes.ListClasses(cmd.Context())
			}
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, tools.SummarizeClasses(classes))
			}
			return writeOutput(cmd, classes, false, summary.Classes)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&cached, "cached", false, "Show the local class directory without calling Halo")
	return cmd
}

func newClassQueryCmd[T any](
	app *app,
	use, short string,
	query func(context.Context, domain.Class) (T, error),
	render func(T) (string, error),
) *cobra.Command {
	var classRef string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			class, err := app.classes.Resolve(cmd.Context(), classRef)
			if err != nil {
				return err
			}
			result, err := query(cmd.Context(), class)
			if err != nil {
				return err
			}
			return writeOutput(cmd, result, asJSON, render)
		},
	}

	cmd.Flags().StringVar(&classRef, "class", "", "Course code, class name, slug or id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	_ = cmd.MarkFlagRequired("class")
	return cmd
}
