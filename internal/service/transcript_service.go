package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/cgpa-api/internal/dto"
	"github.com/noah-isme/cgpa-api/internal/gpa"
	"github.com/noah-isme/cgpa-api/internal/models"
	appErrors "github.com/noah-isme/cgpa-api/pkg/errors"
)

// maxMutateAttempts bounds how often a mutation is replayed after losing a save race.
const maxMutateAttempts = 20

type sessionStore interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type scaleResolver interface {
	Resolve(ctx context.Context, code string) (*GradeScale, error)
}

// TranscriptService drives the calculator session: semesters, courses and the derived GPA/CGPA.
type TranscriptService struct {
	sessions  sessionStore
	scales    scaleResolver
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	ttl       time.Duration
	now       func() time.Time
	locks     *sessionLocks
}

// NewTranscriptService constructs the service. Sessions idle longer than ttl expire.
func NewTranscriptService(sessions sessionStore, scales scaleResolver, metrics *MetricsService, validate *validator.Validate, ttl time.Duration, logger *zap.Logger) *TranscriptService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &TranscriptService{
		sessions:  sessions,
		scales:    scales,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		ttl:       ttl,
		now:       time.Now,
		locks:     newSessionLocks(),
	}
}

// CreateSession opens an empty transcript bound to a grade scale.
func (s *TranscriptService) CreateSession(ctx context.Context, req dto.CreateSessionRequest) (*dto.TranscriptResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	scale, err := s.scales.Resolve(ctx, req.ScaleCode)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	session := &models.Session{
		ID:         uuid.NewString(),
		ScaleCode:  scale.Code,
		Transcript: gpa.TranscriptSnapshot{Semesters: []gpa.SemesterSnapshot{}},
		CreatedAt:  now,
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	s.refreshActiveSessions(ctx)
	s.logger.Info("calculator session opened", zap.String("session_id", session.ID), zap.String("scale", scale.Code))

	return s.transcriptResponse(session, gpa.Restore(session.Transcript, scale.Table)), nil
}

// GetSession returns the full transcript with every derived value recomputed.
func (s *TranscriptService) GetSession(ctx context.Context, sessionID string) (*dto.TranscriptResponse, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	scale, err := s.scales.Resolve(ctx, session.ScaleCode)
	if err != nil {
		return nil, err
	}
	transcript := gpa.Restore(session.Transcript, scale.Table)
	s.metrics.RecordComputation("cgpa", 1)
	return s.transcriptResponse(session, transcript), nil
}

// EndSession discards the transcript.
func (s *TranscriptService) EndSession(ctx context.Context, sessionID string) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if _, err := s.load(ctx, sessionID); err != nil {
		return err
	}
	start := time.Now()
	err := s.sessions.Delete(ctx, sessionID)
	s.metrics.ObserveStoreOperation("delete", time.Since(start), err)
	if err != nil {
		return s.storeError(err, "failed to end session")
	}
	s.refreshActiveSessions(ctx)
	s.logger.Info("calculator session ended", zap.String("session_id", sessionID))
	return nil
}

// AddSemester appends an empty semester numbered after the existing ones.
func (s *TranscriptService) AddSemester(ctx context.Context, sessionID string) (*dto.SemesterResponse, error) {
	var semesterID string
	_, transcript, err := s.mutate(ctx, sessionID, func(t *gpa.Transcript, _ *gpa.GradeTable) error {
		semesterID = t.AddSemester().ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	semester, _ := transcript.Semester(semesterID)
	resp := s.semesterResponse(*semester)
	return &resp, nil
}

// GetSemester returns one semester with its GPA.
func (s *TranscriptService) GetSemester(ctx context.Context, sessionID, semesterID string) (*dto.SemesterResponse, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	scale, err := s.scales.Resolve(ctx, session.ScaleCode)
	if err != nil {
		return nil, err
	}
	transcript := gpa.Restore(session.Transcript, scale.Table)
	semester, ok := transcript.Semester(semesterID)
	if !ok {
		return nil, semesterNotFound(semesterID)
	}
	resp := s.semesterResponse(*semester)
	return &resp, nil
}

// RemoveSemester drops a semester with its courses. Remaining semesters are renumbered 1..N.
func (s *TranscriptService) RemoveSemester(ctx context.Context, sessionID, semesterID string) (*dto.TranscriptResponse, error) {
	session, transcript, err := s.mutate(ctx, sessionID, func(t *gpa.Transcript, _ *gpa.GradeTable) error {
		if !t.RemoveSemester(semesterID) {
			return semesterNotFound(semesterID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.transcriptResponse(session, transcript), nil
}

// AddCourse appends a course to a semester. Fields left nil start empty.
func (s *TranscriptService) AddCourse(ctx context.Context, sessionID, semesterID string, input dto.CourseInput) (*dto.SemesterResponse, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	_, transcript, err := s.mutate(ctx, sessionID, func(t *gpa.Transcript, table *gpa.GradeTable) error {
		semester, ok := t.Semester(semesterID)
		if !ok {
			return semesterNotFound(semesterID)
		}
		added := semester.AddCourse()
		course, _ := semester.Course(added.ID)
		applyCourseInput(course, input, table)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.semesterOf(transcript, semesterID), nil
}

// UpdateCourse edits the given fields of a course.
func (s *TranscriptService) UpdateCourse(ctx context.Context, sessionID, semesterID, courseID string, input dto.CourseInput) (*dto.SemesterResponse, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	_, transcript, err := s.mutate(ctx, sessionID, func(t *gpa.Transcript, table *gpa.GradeTable) error {
		semester, ok := t.Semester(semesterID)
		if !ok {
			return semesterNotFound(semesterID)
		}
		course, ok := semester.Course(courseID)
		if !ok {
			return courseNotFound(courseID)
		}
		applyCourseInput(course, input, table)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.semesterOf(transcript, semesterID), nil
}

// RemoveCourse drops a course from a semester.
func (s *TranscriptService) RemoveCourse(ctx context.Context, sessionID, semesterID, courseID string) (*dto.SemesterResponse, error) {
	_, transcript, err := s.mutate(ctx, sessionID, func(t *gpa.Transcript, _ *gpa.GradeTable) error {
		semester, ok := t.Semester(semesterID)
		if !ok {
			return semesterNotFound(semesterID)
		}
		if !semester.RemoveCourse(courseID) {
			return courseNotFound(courseID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.semesterOf(transcript, semesterID), nil
}

func applyCourseInput(course *gpa.Course, input dto.CourseInput, table *gpa.GradeTable) {
	if input.Name != nil {
		course.Name = *input.Name
	}
	if input.Credits != nil {
		course.SetCredits(int(*input.Credits))
	}
	if input.Grade != nil {
		course.SetGrade(table, *input.Grade)
	}
}

// mutate runs fn against the restored transcript under the session lock and persists the result.
// The lock only covers this process; when another replica saves first the store rejects the
// write and fn is replayed on the fresh state.
func (s *TranscriptService) mutate(ctx context.Context, sessionID string, fn func(*gpa.Transcript, *gpa.GradeTable) error) (*models.Session, *gpa.Transcript, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	for attempt := 1; ; attempt++ {
		session, transcript, err := s.mutateOnce(ctx, sessionID, fn)
		if !errors.Is(err, appErrors.ErrStoreConflict) {
			return session, transcript, err
		}
		if attempt >= maxMutateAttempts {
			s.logger.Warn("session mutation kept conflicting", zap.String("session_id", sessionID), zap.Int("attempts", attempt))
			return nil, nil, appErrors.ErrSessionConflict
		}
		backoff := time.Duration(rand.Int64N(int64(attempt) * int64(time.Millisecond)))
		select {
		case <-ctx.Done():
			return nil, nil, appErrors.Wrap(ctx.Err(), appErrors.ErrSessionConflict.Code, appErrors.ErrSessionConflict.Status, appErrors.ErrSessionConflict.Message)
		case <-time.After(backoff):
		}
	}
}

func (s *TranscriptService) mutateOnce(ctx context.Context, sessionID string, fn func(*gpa.Transcript, *gpa.GradeTable) error) (*models.Session, *gpa.Transcript, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	scale, err := s.scales.Resolve(ctx, session.ScaleCode)
	if err != nil {
		return nil, nil, err
	}
	transcript := gpa.Restore(session.Transcript, scale.Table)
	if err := fn(transcript, scale.Table); err != nil {
		return nil, nil, err
	}
	session.Transcript = transcript.Snapshot()
	if err := s.save(ctx, session); err != nil {
		return nil, nil, err
	}
	s.metrics.RecordComputation("gpa", len(transcript.Semesters))
	s.metrics.RecordComputation("cgpa", 1)
	return session, transcript, nil
}

func (s *TranscriptService) load(ctx context.Context, sessionID string) (*models.Session, error) {
	start := time.Now()
	session, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, appErrors.ErrStoreMiss) {
		s.metrics.ObserveStoreOperation("get", time.Since(start), nil)
		return nil, appErrors.ErrSessionNotFound
	}
	s.metrics.ObserveStoreOperation("get", time.Since(start), err)
	if err != nil {
		return nil, s.storeError(err, "failed to load session")
	}
	return session, nil
}

func (s *TranscriptService) save(ctx context.Context, session *models.Session) error {
	now := s.now().UTC()
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(s.ttl)

	start := time.Now()
	err := s.sessions.Save(ctx, session, s.ttl)
	if errors.Is(err, appErrors.ErrStoreConflict) {
		s.metrics.ObserveStoreOperation("save", time.Since(start), nil)
		return err
	}
	s.metrics.ObserveStoreOperation("save", time.Since(start), err)
	if err != nil {
		return s.storeError(err, "failed to save session")
	}
	return nil
}

func (s *TranscriptService) storeError(err error, message string) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	s.logger.Error(message, zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func (s *TranscriptService) refreshActiveSessions(ctx context.Context) {
	n, err := s.sessions.Count(ctx)
	if err != nil {
		s.logger.Debug("session count unavailable", zap.Error(err))
		return
	}
	s.metrics.SetActiveSessions(n)
}

func (s *TranscriptService) semesterOf(t *gpa.Transcript, semesterID string) *dto.SemesterResponse {
	semester, _ := t.Semester(semesterID)
	resp := s.semesterResponse(*semester)
	return &resp
}

func (s *TranscriptService) semesterResponse(semester gpa.Semester) dto.SemesterResponse {
	summary := semester.Summary()
	courses := make([]dto.CourseResponse, 0, len(semester.Courses))
	for _, c := range semester.Courses {
		courses = append(courses, dto.CourseResponse{
			ID:         c.ID,
			Name:       c.Name,
			Credits:    c.Credits(),
			Grade:      c.Grade(),
			GradePoint: c.GradePoint(),
			Complete:   c.Complete(),
		})
	}
	return dto.SemesterResponse{
		ID:               summary.ID,
		Number:           summary.Number,
		Courses:          courses,
		CourseCount:      summary.CourseCount,
		CompletedCourses: summary.CompletedCourses,
		Credits:          summary.Credits,
		GPA:              summary.GPA,
		GPADisplay:       formatGPA(summary.GPA),
		Standing:         summary.Standing,
	}
}

func (s *TranscriptService) transcriptResponse(session *models.Session, t *gpa.Transcript) *dto.TranscriptResponse {
	semesters := make([]dto.SemesterResponse, 0, len(t.Semesters))
	for _, semester := range t.Semesters {
		semesters = append(semesters, s.semesterResponse(semester))
	}
	cgpa := t.CGPA()
	return &dto.TranscriptResponse{
		SessionID:        session.ID,
		ScaleCode:        session.ScaleCode,
		Semesters:        semesters,
		CGPA:             cgpa,
		CGPADisplay:      formatGPA(cgpa),
		Standing:         gpa.Classify(cgpa),
		TotalCredits:     t.TotalCredits(),
		CompletedCourses: t.CompletedCourses(),
		ExpiresAt:        session.ExpiresAt,
	}
}

func formatGPA(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func semesterNotFound(id string) error {
	return appErrors.Clone(appErrors.ErrNotFound, "semester "+id+" not found")
}

func courseNotFound(id string) error {
	return appErrors.Clone(appErrors.ErrNotFound, "course "+id+" not found")
}
