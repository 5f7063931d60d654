package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/halo-bridge/internal/domain"
	"github.com/bnema/halo-bridge/internal/logging"
	"github.com/bnema/halo-bridge/internal/ports"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const (
	classPageSize       = 50
	classIndexCacheSize = 128
)

// ClassService keeps the local class directory and resolves loose class references against it.
type ClassService struct {
	gateway ports.Gateway
	repo    ports.ClassRepository
	logger  *zap.Logger
	index   *lru.Cache[string, domain.Class]
}

func NewClassService(gateway ports.Gateway, repo ports.ClassRepository, logger *zap.Logger) *ClassService {
	logger = logging.OrNop(logger)

	// lru.New only fails for a non-positive size.
	index, _ := lru.New[string, domain.Class](classIndexCacheSize)

	return &ClassService{gateway: gateway, repo: repo, logger: logger, index: index}
}

// ListClasses fetches the enrolled classes and replaces the local directory with them.
func (s *ClassService) ListClasses(ctx context.Context) ([]domain.Class, error) {
	var data courseClassesData
	err := s.gateway.GraphQL(ctx, ports.GraphQLRequest{
		Operation: opCourseClassesForUser,
		Query:     courseClassesForUserQuery,
		Variables: map[string]any{"pgNum": 1, "pgSize": classPageSize},
	}, &data)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	classes := make([]domain.Class, 0, len(data.Result.CourseClasses))
	for _, dto := range data.Result.CourseClasses {
		classes = append(classes, dto.toDomain())
	}

	if err := s.repo.ReplaceAll(ctx, classes); err != nil {
		return nil, fmt.Errorf("save class directory: %w", err)
	}
	s.index.Purge()

	s.logger.Debug("class directory refreshed", zap.Int("classes", len(classes)))
	return classes, nil
}

func (s *ClassService) Cached(ctx context.Context) ([]domain.Class, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("read class directory: %w", err)
	}
	return classes, nil
}

// Resolve matches ref against slug, id or course code, then a name substring.
// An unknown ref triggers one directory refresh before failing with domain.ErrClassNotFound.
func (s *ClassService) Resolve(ctx context.Context, ref string) (domain.Class, error) {
	key := strings.ToLower(strings.TrimSpace(ref))
	if key == "" {
		return domain.Class{}, fmt.Errorf("%w: class reference is required", domain.ErrInvalidInput)
	}
	if class, ok := s.index.Get(key); ok {
		return class, nil
	}

	classes, err := s.Cached(ctx)
	if err != nil {
		return domain.Class{}, err
	}
	if class, ok := matchClass(classes, key); ok {
		s.index.Add(key, class)
		return class, nil
	}

	s.logger.Debug("class reference not in directory, refreshing", zap.String("ref", ref))
	classes, err = s.ListClasses(ctx)
	if err != nil {
		return domain.Class{}, err
	}
	if class, ok := matchClass(classes, key); ok {
		s.index.Add(key, class)
		return class, nil
	}

	return domain.Class{}, fmt.Errorf("%w: %q; run `halo classes list` to see enrolled classes", domain.ErrClassNotFound, ref)
}

// Assignments lists the class's assessments grouped by unit, in server order.
func (s *ClassService) Assignments(ctx context.Context, class domain.Class) (ClassAssignments, error) {
	var data currentClassData
	err := s.gateway.GraphQL(ctx, ports.GraphQLRequest{
		Operation: opCurrentClass,
		Query:     currentClassQuery,
		Variables: map[string]any{"slugId": class.Slug},
		Scope:     ports.Scope{ClassSlug: class.Slug},
	}, &data)
	if err != nil {
		return ClassAssignments{}, fmt.Errorf("view assignments: %w", err)
	}
	if data.Class == nil {
		return ClassAssignments{}, fmt.Errorf("%w: no class data for %q", domain.ErrClassNotFound, class.Slug)
	}

	result := ClassAssignments{
		ClassID:    data.Class.ID,
		Slug:       data.Class.SlugID,
		Name:       data.Class.Name,
		CourseCode: data.Class.CourseCode,
		Units:      make([]UnitAssignments, 0, len(data.Class.Units)),
	}
	total := 0
	for _, unit := range data.Class.Units {
		assessments := make([]AssessmentSummary, 0, len(unit.Assessments))
		for _, assessment := range unit.Assessments {
			assessments = append(assessments, assessment.toSummary())
		}
		total += len(assessments)
		result.Units = append(result.Units, UnitAssignments{
			Sequence:    unit.Sequence,
			Title:       unit.Title,
			Current:     unit.Current,
			StartDate:   shortDate(unit.StartDate),
			EndDate:     shortDate(unit.EndDate),
			Assessments: assessments,
		})
	}

	s.logger.Debug("assignments listed", zap.String("class", class.Slug), zap.Int("units", len(result.Units)), zap.Int("assessments", total))
	return result, nil
}

// Grades returns the final grade and per-assessment scores. A class without grades yet yields an empty report.
func (s *ClassService) Grades(ctx context.Context, class domain.Class) (GradeReport, error) {
	var data gradeOverviewData
	err := s.gateway.GraphQL(ctx, ports.GraphQLRequest{
		Operation: opGradeOverview,
		Query:     gradeOverviewQuery,
		Variables: map[string]any{"courseClassSlugId": class.Slug, "courseClassUserIds": ""},
		Scope:     ports.Scope{ClassSlug: class.Slug},
	}, &data)
	if err != nil {
		return GradeReport{}, fmt.Errorf("view grades: %w", err)
	}

	report := GradeReport{ClassID: class.ID, Assessments: []GradeEntry{}}
	if len(data.Overviews) == 0 {
		return report, nil
	}

	overview := data.Overviews[0]
	if final := overview.FinalGrade; final != nil {
		report.FinalGrade = &FinalGrade{
			Points:    final.FinalPoints,
			MaxPoints: final.MaxPoints,
			Published: final.IsPublished,
		}
		if final.GradeValue != nil {
			report.FinalGrade.Value = fmt.Sprint(final.GradeValue)
		}
	}
	for _, grade := range overview.Grades {
		report.Assessments = append(report.Assessments, grade.toEntry())
	}

	return report, nil
}

func matchClass(classes []domain.Class, key string) (domain.Class, bool) {
	for _, class := range classes {
		if key == strings.ToLower(class.Slug) || key == strings.ToLower(class.ID) || key == strings.ToLower(class.CourseCode) {
			return class, true
		}
	}
	for _, class := range classes {
		if strings.Contains(strings.ToLower(class.Name), key) {
			return class, true
		}
	}
	return domain.Class{}, false
}
