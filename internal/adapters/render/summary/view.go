package summary

import (
	"fmt"
	"strings"

	"github.com/bnema/halo-bridge/internal/application"
	"github.com/bnema/halo-bridge/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const notSubmittedWarning = "NOT submitted for grading. Run `halo submission submit --confirm` when every file is attached."

func Classes(classes []domain.Class) (string, error) {
	return render(func(s styles) string { return classesView(classes, s) })
}

func Assignments(assignments application.ClassAssignments) (string, error) {
	return render(func(s styles) string { return assignmentsView(assignments, s) })
}

func Grades(report application.GradeReport) (string, error) {
	return render(func(s styles) string { return gradesView(report, s) })
}

func Submission(view application.SubmissionView) (string, error) {
	return render(func(s styles) string { return submissionView(view, s) })
}

func Attach(result application.AttachResult) (string, error) {
	return render(func(s styles) string { return attachView(result, s) })
}

func Finalize(result application.FinalizeResult) (string, error) {
	return render(func(s styles) string { return finalizeView(result, s) })
}

func Validation(validation application.TokenValidation) (string, error) {
	return render(func(s styles) string { return validationView(validation, s) })
}

func classesView(classes []domain.Class, s styles) string {
	lines := []string{
		s.title.Render("Enrolled Classes"),
		s.header.Render(fmt.Sprintf("classes: %d", len(classes))),
	}

	if len(classes) == 0 {
		lines = append(lines, s.empty.Render("No classes found."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, class := range classes {
		title := class.Name
		if class.CourseCode != "" {
			title = fmt.Sprintf("%s  %s", class.CourseCode, class.Name)
		}
		meta := fmt.Sprintf("slug: %s  id: %s", class.Slug, class.ID)
		if class.Stage != "" {
			meta += "  stage: " + strings.ToLower(class.Stage)
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left,
			s.item.Render(title),
			s.meta.Render(meta),
		)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func assignmentsView(assignments application.ClassAssignments, s styles) string {
	title := assignments.Name
	if assignments.CourseCode != "" {
		title = fmt.Sprintf("%s  %s", assignments.CourseCode, assignments.Name)
	}
	lines := []string{
		s.title.Render(title),
		s.header.Render(fmt.Sprintf("slug: %s  units: %d", assignments.Slug, len(assignments.Units))),
	}

	if len(assignments.Units) == 0 {
		lines = append(lines, s.empty.Render("No units published."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, unit := range assignments.Units {
		heading := fmt.Sprintf("%d. %s", unit.Sequence, unit.Title)
		if unit.Current {
			heading += " (current)"
		}
		unitLines := []string{s.item.Render(heading)}
		if len(unit.Assessments) == 0 {
			unitLines = append(unitLines, s.empty.Render("  No assignments."))
		}
		for _, assessment := range unit.Assessments {
			unitLines = append(unitLines,
				s.detail.Render("  "+assessment.Title),
				s.meta.Render(fmt.Sprintf("    id: %s  points: %g  due: %s", assessment.ID, assessment.Points, orDash(assessment.DueDate))),
			)
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, unitLines...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func gradesView(report application.GradeReport, s styles) string {
	final := "final grade: -"
	if grade := report.FinalGrade; grade != nil {
		final = fmt.Sprintf("final grade: %s  %s/%s", orDash(grade.Value), points(grade.Points), points(grade.MaxPoints))
		if !grade.Published {
			final += "  (unpublished)"
		}
	}
	lines := []string{
		s.title.Render("Grades"),
		s.header.Render(final),
	}

	if len(report.Assessments) == 0 {
		lines = append(lines, s.empty.Render("No grades yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, entry := range report.Assessments {
		lines = append(lines,
			s.detail.Render(fmt.Sprintf("  %s  %s/%g", entry.Title, points(entry.Points), entry.MaxPoints)),
			s.meta.Render(fmt.Sprintf("    status: %s  due: %s", strings.ToLower(orDash(entry.Status)), orDash(entry.DueDate))),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func points(value *float64) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *value)
}

func submissionView(view application.SubmissionView, s styles) string {
	lines := []string{
		s.title.Render("Submission " + view.AssessmentID),
		s.header.Render(fmt.Sprintf("status: %s  files: %d", orDash(view.Status), len(view.Files))),
	}
	lines = append(lines, fileLines(view.Files, s)...)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func attachView(result application.AttachResult, s styles) string {
	lines := []string{
		s.ok.Render(fmt.Sprintf("Attached %s", result.UploadedFile)),
		s.header.Render(fmt.Sprintf("submission: %s  attached files: %d", orDash(result.SubmissionID), result.TotalAttachedFiles)),
	}
	lines = append(lines, fileLines(result.Files, s)...)
	lines = append(lines, s.section.Render(s.warning.Render(notSubmittedWarning)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func finalizeView(result application.FinalizeResult, s styles) string {
	lines := []string{
		s.ok.Render(fmt.Sprintf("Submitted %s", orDash(result.AssessmentTitle))),
		s.header.Render(fmt.Sprintf("status: %s  submission: %s", result.Status, orDash(result.SubmissionID))),
	}
	for _, name := range result.SubmittedFiles {
		lines = append(lines, s.detail.Render("  "+name))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func validationView(validation application.TokenValidation, s styles) string {
	label := s.warning
	if validation.Status == application.ValidationValid {
		label = s.ok
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		label.Render("tokens: "+string(validation.Status)),
		s.detail.Render(validation.Message),
	)
}

func fileLines(files []application.AttachedFileSummary, s styles) []string {
	if len(files) == 0 {
		return []string{s.empty.Render("No files attached.")}
	}

	lines := make([]string, 0, len(files))
	for _, file := range files {
		line := s.detail.Render("  " + file.Name)
		if file.UploadDate != "" {
			line += " " + s.meta.Render("("+file.UploadDate+")")
		}
		lines = append(lines, line)
	}
	return lines
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
