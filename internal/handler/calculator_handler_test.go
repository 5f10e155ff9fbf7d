package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cgpa-api/internal/dto"
	"github.com/noah-isme/cgpa-api/internal/service"
)

func newCalculatorRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	scales := service.NewGradeScaleService(nil, "DEFAULT", nil)
	r := gin.New()
	NewCalculatorHandler(service.NewCalculatorService(scales, nil, nil)).Register(r.Group("/api/v1"))
	return r
}

func TestCalculatorHandlerCompute(t *testing.T) {
	r := newCalculatorRouter()

	w, env := do(t, r, http.MethodPost, "/api/v1/gpa/compute", `{"courses":[{"credits":4,"grade":"O"},{"credits":"x","grade":"A"},{"credits":2,"grade":"B"}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result dto.ComputeResponse
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.NotNil(t, result.GPA)
	assert.InDelta(t, 52.0/6.0, *result.GPA, 1e-9)
	assert.Equal(t, "Excellent", result.Standing.Label)
}

func TestCalculatorHandlerComputeRequiresCourses(t *testing.T) {
	r := newCalculatorRouter()

	w, env := do(t, r, http.MethodPost, "/api/v1/gpa/compute", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestCalculatorHandlerClassify(t *testing.T) {
	r := newCalculatorRouter()

	w, env := do(t, r, http.MethodGet, "/api/v1/gpa/classify?gpa=9", "")
	require.Equal(t, http.StatusOK, w.Code)
	var result dto.ClassificationResponse
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "Outstanding", result.Standing.Label)
	assert.Equal(t, "success", string(result.Standing.Band))

	w, _ = do(t, r, http.MethodGet, "/api/v1/gpa/classify?gpa=high", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
