package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/noah-isme/cgpa-api/internal/gpa"
)

// Credits accepts any JSON value for a credit load. Numbers and numeric strings are
// parsed leniently; anything else, including negatives, becomes 0. It never fails.
type Credits int

// UnmarshalJSON implements json.Unmarshaler.
func (c *Credits) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*c = 0
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			*c = 0
			return nil
		}
		*c = Credits(gpa.ParseCredits(s))
		return nil
	}
	if (raw[0] >= '0' && raw[0] <= '9') || raw[0] == '-' {
		*c = Credits(gpa.ParseCredits(string(raw)))
		return nil
	}
	*c = 0
	return nil
}

// CreateSessionRequest opens a calculator session.
type CreateSessionRequest struct {
	ScaleCode string `json:"scale_code" validate:"omitempty,max=32"`
}

// CourseInput carries the editable fields of a course. Nil fields are left unchanged.
type CourseInput struct {
	Name    *string  `json:"name" validate:"omitempty,max=120"`
	Credits *Credits `json:"credits"`
	Grade   *string  `json:"grade" validate:"omitempty,max=8"`
}

// CourseResponse is the read model of a course.
type CourseResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Credits    int     `json:"credits"`
	Grade      string  `json:"grade"`
	GradePoint float64 `json:"grade_point"`
	Complete   bool    `json:"complete"`
}

// SemesterResponse is the read model of a semester with its computed GPA.
type SemesterResponse struct {
	ID               string           `json:"id"`
	Number           int              `json:"number"`
	Courses          []CourseResponse `json:"courses"`
	CourseCount      int              `json:"course_count"`
	CompletedCourses int              `json:"completed_courses"`
	Credits          int              `json:"credits"`
	GPA              float64          `json:"gpa"`
	GPADisplay       string           `json:"gpa_display"`
	Standing         gpa.Standing     `json:"standing"`
}

// TranscriptResponse is the full session view recomputed on every read.
type TranscriptResponse struct {
	SessionID        string             `json:"session_id"`
	ScaleCode        string             `json:"scale_code"`
	Semesters        []SemesterResponse `json:"semesters"`
	CGPA             float64            `json:"cgpa"`
	CGPADisplay      string             `json:"cgpa_display"`
	Standing         gpa.Standing       `json:"standing"`
	TotalCredits     int                `json:"total_credits"`
	CompletedCourses int                `json:"completed_courses"`
	ExpiresAt        time.Time          `json:"expires_at"`
}

// ComputeCourse is a course in a stateless computation.
type ComputeCourse struct {
	Credits Credits `json:"credits"`
	Grade   string  `json:"grade" validate:"max=8"`
}

// ComputeSemester groups courses in a stateless computation.
type ComputeSemester struct {
	Courses []ComputeCourse `json:"courses" validate:"dive"`
}

// ComputeRequest asks for GPA over Courses and/or CGPA over Semesters.
type ComputeRequest struct {
	ScaleCode string            `json:"scale_code" validate:"omitempty,max=32"`
	Courses   []ComputeCourse   `json:"courses" validate:"dive"`
	Semesters []ComputeSemester `json:"semesters" validate:"dive"`
}

// ComputeSemesterResult is the per-semester part of a stateless computation.
type ComputeSemesterResult struct {
	Number   int          `json:"number"`
	GPA      float64      `json:"gpa"`
	Credits  int          `json:"credits"`
	Standing gpa.Standing `json:"standing"`
}

// ComputeResponse is the result of a stateless computation.
type ComputeResponse struct {
	ScaleCode    string                  `json:"scale_code"`
	GPA          *float64                `json:"gpa,omitempty"`
	Standing     *gpa.Standing           `json:"standing,omitempty"`
	Semesters    []ComputeSemesterResult `json:"semesters,omitempty"`
	CGPA         *float64                `json:"cgpa,omitempty"`
	CGPAStanding *gpa.Standing           `json:"cgpa_standing,omitempty"`
}

// ClassificationResponse describes a classified GPA.
type ClassificationResponse struct {
	GPA      float64      `json:"gpa"`
	Standing gpa.Standing `json:"standing"`
}
