package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cgpa-api/internal/dto"
	appErrors "github.com/noah-isme/cgpa-api/pkg/errors"
	"github.com/noah-isme/cgpa-api/pkg/response"
)

type transcriptService interface {
	CreateSession(ctx context.Context, req dto.CreateSessionRequest) (*dto.TranscriptResponse, error)
	GetSession(ctx context.Context, sessionID string) (*dto.TranscriptResponse, error)
	EndSession(ctx context.Context, sessionID string) error
	AddSemester(ctx context.Context, sessionID string) (*dto.SemesterResponse, error)
	GetSemester(ctx context.Context, sessionID, semesterID string) (*dto.SemesterResponse, error)
	RemoveSemester(ctx context.Context, sessionID, semesterID string) (*dto.TranscriptResponse, error)
	AddCourse(ctx context.Context, sessionID, semesterID string, input dto.CourseInput) (*dto.SemesterResponse, error)
	UpdateCourse(ctx context.Context, sessionID, semesterID, courseID string, input dto.CourseInput) (*dto.SemesterResponse, error)
	RemoveCourse(ctx context.Context, sessionID, semesterID, courseID string) (*dto.SemesterResponse, error)
}

// TranscriptHandler exposes the calculator session endpoints.
type TranscriptHandler struct {
	transcripts transcriptService
}

// NewTranscriptHandler constructs handler.
func NewTranscriptHandler(transcripts transcriptService) *TranscriptHandler {
	return &TranscriptHandler{transcripts: transcripts}
}

// CreateSession godoc
// @Summary Open a calculator session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body dto.CreateSessionRequest false "Grade scale selection"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sessions [post]
func (h *TranscriptHandler) CreateSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	session, err := h.transcripts.CreateSession(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// GetSession godoc
// @Summary Get the transcript of a session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sessions/{id} [get]
func (h *TranscriptHandler) GetSession(c *gin.Context) {
	session, err := h.transcripts.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, session)
}

// EndSession godoc
// @Summary End a session and discard its transcript
// @Tags Sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /sessions/{id} [delete]
func (h *TranscriptHandler) EndSession(c *gin.Context) {
	if err := h.transcripts.EndSession(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddSemester godoc
// @Summary Append an empty semester
// @Tags Semesters
// @Produce json
// @Param id path string true "Session ID"
// @Success 201 {object} response.Envelope
// @Router /sessions/{id}/semesters [post]
func (h *TranscriptHandler) AddSemester(c *gin.Context) {
	semester, err := h.transcripts.AddSemester(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, semester)
}

// GetSemester godoc
// @Summary Get a semester with its GPA
// @Tags Semesters
// @Produce json
// @Param id path string true "Session ID"
// @Param semesterId path string true "Semester ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/semesters/{semesterId} [get]
func (h *TranscriptHandler) GetSemester(c *gin.Context) {
	semester, err := h.transcripts.GetSemester(c.Request.Context(), c.Param("id"), c.Param("semesterId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, semester)
}

// RemoveSemester godoc
// @Summary Remove a semester and renumber the rest
// @Tags Semesters
// @Produce json
// @Param id path string true "Session ID"
// @Param semesterId path string true "Semester ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/semesters/{semesterId} [delete]
func (h *TranscriptHandler) RemoveSemester(c *gin.Context) {
	transcript, err := h.transcripts.RemoveSemester(c.Request.Context(), c.Param("id"), c.Param("semesterId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, transcript)
}

// AddCourse godoc
// @Summary Add a course to a semester
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param semesterId path string true "Semester ID"
// @Param payload body dto.CourseInput false "Initial course fields"
// @Success 201 {object} response.Envelope
// @Router /sessions/{id}/semesters/{semesterId}/courses [post]
func (h *TranscriptHandler) AddCourse(c *gin.Context) {
	var input dto.CourseInput
	if err := bindOptionalJSON(c, &input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	semester, err := h.transcripts.AddCourse(c.Request.Context(), c.Param("id"), c.Param("semesterId"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, semester)
}

// UpdateCourse godoc
// @Summary Edit course name, credits or grade
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param semesterId path string true "Semester ID"
// @Param courseId path string true "Course ID"
// @Param payload body dto.CourseInput true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/semesters/{semesterId}/courses/{courseId} [patch]
func (h *TranscriptHandler) UpdateCourse(c *gin.Context) {
	var input dto.CourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	semester, err := h.transcripts.UpdateCourse(c.Request.Context(), c.Param("id"), c.Param("semesterId"), c.Param("courseId"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, semester)
}

// RemoveCourse godoc
// @Summary Remove a course from a semester
// @Tags Courses
// @Produce json
// @Param id path string true "Session ID"
// @Param semesterId path string true "Semester ID"
// @Param courseId path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/semesters/{semesterId}/courses/{courseId} [delete]
func (h *TranscriptHandler) RemoveCourse(c *gin.Context) {
	semester, err := h.transcripts.RemoveCourse(c.Request.Context(), c.Param("id"), c.Param("semesterId"), c.Param("courseId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, semester)
}

// bindOptionalJSON binds a JSON body when one is sent. An absent or empty body,
// chunked ones included, leaves obj at its zero value.
func bindOptionalJSON(c *gin.Context, obj interface{}) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Register mounts the session routes on group.
func (h *TranscriptHandler) Register(group *gin.RouterGroup) {
	sessions := group.Group("/sessions")
	sessions.POST("", h.CreateSession)
	sessions.GET("/:id", h.GetSession)
	sessions.DELETE("/:id", h.EndSession)
	sessions.POST("/:id/semesters", h.AddSemester)
	sessions.GET("/:id/semesters/:semesterId", h.GetSemester)
	sessions.DELETE("/:id/semesters/:semesterId", h.RemoveSemester)
	sessions.POST("/:id/semesters/:semesterId/courses", h.AddCourse)
	sessions.PATCH("/:id/semesters/:semesterId/courses/:courseId", h.UpdateCourse)
	sessions.DELETE("/:id/semesters/:semesterId/courses/:courseId", h.RemoveCourse)
}
