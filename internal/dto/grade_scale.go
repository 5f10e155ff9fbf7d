package dto

import (
	"github.com/noah-isme/cgpa-api/internal/gpa"
	"github.com/noah-isme/cgpa-api/internal/models"
)

// GradeScaleResponse describes a grade table available to sessions.
type GradeScaleResponse struct {
	Code    string                  `json:"code"`
	Name    string                  `json:"name"`
	Source  models.GradeScaleSource `json:"source"`
	Default bool                    `json:"default"`
	Entries []gpa.GradeEntry        `json:"entries"`
}
