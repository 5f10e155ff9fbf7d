package service

import (
	"context"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/cgpa-api/internal/dto"
	"github.com/noah-isme/cgpa-api/internal/gpa"
	appErrors "github.com/noah-isme/cgpa-api/pkg/errors"
)

// CalculatorService answers one-shot GPA/CGPA questions without a session.
type CalculatorService struct {
	scales    scaleResolver
	metrics   *MetricsService
	validator *validator.Validate
}

// NewCalculatorService constructs the stateless calculator.
func NewCalculatorService(scales scaleResolver, metrics *MetricsService, validate *validator.Validate) *CalculatorService {
	if validate == nil {
		validate = validator.New()
	}
	return &CalculatorService{scales: scales, metrics: metrics, validator: validate}
}

// Compute returns the GPA of req.Courses and the CGPA of req.Semesters, whichever are present.
func (s *CalculatorService) Compute(ctx context.Context, req dto.ComputeRequest) (*dto.ComputeResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid computation payload")
	}
	if req.Courses == nil && req.Semesters == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "courses or semesters are required")
	}
	scale, err := s.scales.Resolve(ctx, req.ScaleCode)
	if err != nil {
		return nil, err
	}

	resp := &dto.ComputeResponse{ScaleCode: scale.Code}
	if req.Courses != nil {
		value := gpa.ComputeGPA(buildCourses(req.Courses, scale.Table))
		standing := gpa.Classify(value)
		resp.GPA = &value
		resp.Standing = &standing
		s.metrics.RecordComputation("gpa", 1)
	}
	if req.Semesters != nil {
		semesters := make([]gpa.Semester, 0, len(req.Semesters))
		resp.Semesters = make([]dto.ComputeSemesterResult, 0, len(req.Semesters))
		for i, in := range req.Semesters {
			semester := gpa.Semester{Number: i + 1, Courses: buildCourses(in.Courses, scale.Table)}
			summary := semester.Summary()
			resp.Semesters = append(resp.Semesters, dto.ComputeSemesterResult{
				Number:   summary.Number,
				GPA:      summary.GPA,
				Credits:  summary.Credits,
				Standing: summary.Standing,
			})
			semesters = append(semesters, semester)
		}
		value := gpa.ComputeCGPA(semesters)
		standing := gpa.Classify(value)
		resp.CGPA = &value
		resp.CGPAStanding = &standing
		s.metrics.RecordComputation("gpa", len(semesters))
		s.metrics.RecordComputation("cgpa", 1)
	}
	return resp, nil
}

// Classify maps a GPA to its standing.
func (s *CalculatorService) Classify(value float64) (*dto.ClassificationResponse, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "gpa must be a finite number")
	}
	return &dto.ClassificationResponse{GPA: value, Standing: gpa.Classify(value)}, nil
}

func buildCourses(inputs []dto.ComputeCourse, table *gpa.GradeTable) []gpa.Course {
	courses := make([]gpa.Course, 0, len(inputs))
	for _, in := range inputs {
		course := gpa.NewCourse()
		course.SetCredits(int(in.Credits))
		course.SetGrade(table, in.Grade)
		courses = append(courses, course)
	}
	return courses
}
