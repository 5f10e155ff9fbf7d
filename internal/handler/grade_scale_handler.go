package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cgpa-api/internal/dto"
	"github.com/noah-isme/cgpa-api/internal/service"
	appErrors "github.com/noah-isme/cgpa-api/pkg/errors"
	"github.com/noah-isme/cgpa-api/pkg/export"
	"github.com/noah-isme/cgpa-api/pkg/response"
)

type gradeScaleService interface {
	List(ctx context.Context) ([]dto.GradeScaleResponse, error)
	Describe(ctx context.Context, code string) (*dto.GradeScaleResponse, error)
	Resolve(ctx context.Context, code string) (*service.GradeScale, error)
}

// SheetOptions configures the printable grade sheet.
type SheetOptions struct {
	Enabled bool
	Title   string
}

// GradeScaleHandler exposes grade scales and their reference sheet.
type GradeScaleHandler struct {
	scales gradeScaleService
	sheet  SheetOptions
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
}

// NewGradeScaleHandler constructs handler.
func NewGradeScaleHandler(scales gradeScaleService, sheet SheetOptions) *GradeScaleHandler {
	return &GradeScaleHandler{
		scales: scales,
		sheet:  sheet,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
	}
}

// List godoc
// @Summary List grade scales
// @Tags GradeScales
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /grade-scales [get]
func (h *GradeScaleHandler) List(c *gin.Context) {
	scales, err := h.scales.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, scales, map[string]interface{}{"total": len(scales)})
}

// Get godoc
// @Summary Get a grade scale
// @Tags GradeScales
// @Produce json
// @Param code path string true "Scale code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /grade-scales/{code} [get]
func (h *GradeScaleHandler) Get(c *gin.Context) {
	scale, err := h.scales.Describe(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, scale)
}

// Sheet godoc
// @Summary Download the grade reference sheet
// @Tags GradeScales
// @Produce text/csv
// @Produce application/pdf
// @Param code path string true "Scale code"
// @Param format query string false "csv or pdf" default(pdf)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /grade-scales/{code}/sheet [get]
func (h *GradeScaleHandler) Sheet(c *gin.Context) {
	if !h.sheet.Enabled {
		response.Error(c, appErrors.Clone(appErrors.ErrFeatureDisabled, "grade sheet is disabled"))
		return
	}
	format := strings.ToLower(c.DefaultQuery("format", "pdf"))
	if format != "csv" && format != "pdf" {
		response.Error(c, appErrors.Clone(appErrors.ErrUnsupportedMedia, "format must be csv or pdf"))
		return
	}
	scale, err := h.scales.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}

	sheet := export.NewSheet(h.sheet.Title, scale.Code, scale.Name, scale.Table)
	var (
		body        []byte
		contentType string
	)
	if format == "csv" {
		body, err = h.csv.Render(sheet)
		contentType = "text/csv"
	} else {
		body, err = h.pdf.Render(sheet)
		contentType = "application/pdf"
	}
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render grade sheet"))
		return
	}

	filename := fmt.Sprintf("grades-%s.%s", strings.ToLower(scale.Code), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, body)
}

// Register mounts the grade scale routes on group.
func (h *GradeScaleHandler) Register(group *gin.RouterGroup) {
	scales := group.Group("/grade-scales")
	scales.GET("", h.List)
	scales.GET("/:code", h.Get)
	scales.GET("/:code/sheet", h.Sheet)
}
