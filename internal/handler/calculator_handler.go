package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cgpa-api/internal/dto"
	appErrors "github.com/noah-isme/cgpa-api/pkg/errors"
	"github.com/noah-isme/cgpa-api/pkg/response"
)

type calculatorService interface {
	Compute(ctx context.Context, req dto.ComputeRequest) (*dto.ComputeResponse, error)
	Classify(value float64) (*dto.ClassificationResponse, error)
}

// CalculatorHandler serves one-shot computations.
type CalculatorHandler struct {
	calculator calculatorService
}

// NewCalculatorHandler constructs handler.
func NewCalculatorHandler(calculator calculatorService) *CalculatorHandler {
	return &CalculatorHandler{calculator: calculator}
}

// Compute godoc
// @Summary Compute GPA and/or CGPA without a session
// @Tags Calculator
// @Accept json
// @Produce json
// @Param payload body dto.ComputeRequest true "Courses or semesters"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /gpa/compute [post]
func (h *CalculatorHandler) Compute(c *gin.Context) {
	var req dto.ComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.calculator.Compute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Classify godoc
// @Summary Classify a GPA
// @Tags Calculator
// @Produce json
// @Param gpa query number true "GPA value"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /gpa/classify [get]
func (h *CalculatorHandler) Classify(c *gin.Context) {
	value, err := strconv.ParseFloat(c.Query("gpa"), 64)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "gpa must be a number"))
		return
	}
	result, err := h.calculator.Classify(value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Register mounts the calculator routes on group.
func (h *CalculatorHandler) Register(group *gin.RouterGroup) {
	group.POST("/gpa/compute", h.Compute)
	group.GET("/gpa/classify", h.Classify)
}
