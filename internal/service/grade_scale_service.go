package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/cgpa-api/internal/dto"
	"github.com/noah-isme/cgpa-api/internal/gpa"
	"github.com/noah-isme/cgpa-api/internal/models"
	appErrors "github.com/noah-isme/cgpa-api/pkg/errors"
	"github.com/noah-isme/cgpa-api/pkg/scalefile"
)

// BuiltinScaleCode names the compiled-in ten-point table.
const BuiltinScaleCode = "DEFAULT"

type gradeScaleCatalog interface {
	List(ctx context.Context) ([]models.GradeScale, error)
	FindByCode(ctx context.Context, code string) (*models.GradeScale, error)
	Entries(ctx context.Context, scaleID string) ([]models.GradeScaleEntry, error)
	EntriesByScales(ctx context.Context, scaleIDs []string) (map[string][]models.GradeScaleEntry, error)
}

// GradeScale is a resolved grade table ready for lookups.
type GradeScale struct {
	Code   string
	Name   string
	Source models.GradeScaleSource
	Table  *gpa.GradeTable
}

// GradeScaleService resolves scale codes against the builtin table, the scale file and the catalogue.
// Local scales win over catalogue rows with the same code.
type GradeScaleService struct {
	mu          sync.RWMutex
	local       map[string]GradeScale
	catalog     gradeScaleCatalog
	defaultCode string
	logger      *zap.Logger

	cacheMu  sync.Mutex
	cache    map[string]cachedScale
	cacheTTL time.Duration
	metrics  *MetricsService
	now      func() time.Time
}

type cachedScale struct {
	scale     GradeScale
	expiresAt time.Time
}

// NewGradeScaleService constructs the registry. catalog may be nil when the catalogue is disabled.
func NewGradeScaleService(catalog gradeScaleCatalog, defaultCode string, logger *zap.Logger) *GradeScaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	defaultCode = normalizeScaleCode(defaultCode)
	if defaultCode == "" {
		defaultCode = BuiltinScaleCode
	}
	s := &GradeScaleService{
		catalog:     catalog,
		defaultCode: defaultCode,
		logger:      logger,
		cache:       make(map[string]cachedScale),
		now:         time.Now,
	}
	s.local = s.withBuiltin(nil)
	return s
}

func (s *GradeScaleService) withBuiltin(tables []scalefile.Table) map[string]GradeScale {
	local := map[string]GradeScale{
		BuiltinScaleCode: {
			Code:   BuiltinScaleCode,
			Name:   "Ten-point scale",
			Source: models.GradeScaleBuiltin,
			Table:  gpa.DefaultGradeTable(),
		},
	}
	for _, t := range tables {
		local[t.Code] = GradeScale{Code: t.Code, Name: t.Name, Source: models.GradeScaleFile, Table: t.Table}
	}
	return local
}

// EnableCatalogCache keeps resolved catalogue scales in memory for ttl. A non-positive ttl disables it.
func (s *GradeScaleService) EnableCatalogCache(ttl time.Duration, metrics *MetricsService) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.cacheTTL = ttl
	s.metrics = metrics
	s.cache = make(map[string]cachedScale)
}

func (s *GradeScaleService) cached(code string) (*GradeScale, bool) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.cacheTTL <= 0 {
		return nil, false
	}
	entry, ok := s.cache[code]
	if ok && s.now().Before(entry.expiresAt) {
		s.metrics.RecordScaleCacheLookup(true)
		scale := entry.scale
		return &scale, true
	}
	if ok {
		delete(s.cache, code)
	}
	s.metrics.RecordScaleCacheLookup(false)
	return nil, false
}

func (s *GradeScaleService) remember(scale GradeScale) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.cacheTTL <= 0 {
		return
	}
	s.cache[scale.Code] = cachedScale{scale: scale, expiresAt: s.now().Add(s.cacheTTL)}
}

// ReplaceFileScales swaps every file-sourced scale for tables. It is the scale file watcher callback.
func (s *GradeScaleService) ReplaceFileScales(tables []scalefile.Table) {
	local := s.withBuiltin(tables)
	s.mu.Lock()
	s.local = local
	s.mu.Unlock()
	s.logger.Info("grade scales reloaded", zap.Int("file_scales", len(tables)))
}

// DefaultCode returns the code used when a request names no scale.
func (s *GradeScaleService) DefaultCode() string {
	return s.defaultCode
}

// Resolve returns the scale for code, falling back to the default scale when code is blank.
func (s *GradeScaleService) Resolve(ctx context.Context, code string) (*GradeScale, error) {
	code = normalizeScaleCode(code)
	if code == "" {
		code = s.defaultCode
	}

	s.mu.RLock()
	scale, ok := s.local[code]
	s.mu.RUnlock()
	if ok {
		return &scale, nil
	}

	if s.catalog == nil {
		return nil, appErrors.Clone(appErrors.ErrScaleNotFound, "grade scale "+code+" not found")
	}

	if scale, ok := s.cached(code); ok {
		return scale, nil
	}

	row, err := s.catalog.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrScaleNotFound, "grade scale "+code+" not found")
		}
		s.logger.Error("catalog lookup failed", zap.String("code", code), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade scale")
	}
	entries, err := s.catalog.Entries(ctx, row.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade scale entries")
	}
	resolved, err := catalogScale(*row, entries)
	if err != nil {
		s.logger.Warn("catalogued scale is invalid", zap.String("code", code), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "grade scale "+code+" is misconfigured")
	}
	s.remember(*resolved)
	return resolved, nil
}

// List returns every available scale ordered by code.
func (s *GradeScaleService) List(ctx context.Context) ([]dto.GradeScaleResponse, error) {
	s.mu.RLock()
	scales := make([]GradeScale, 0, len(s.local))
	for _, scale := range s.local {
		scales = append(scales, scale)
	}
	s.mu.RUnlock()

	if s.catalog != nil {
		rows, err := s.catalog.List(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grade scales")
		}
		ids := make([]string, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.ID)
		}
		entries, err := s.catalog.EntriesByScales(ctx, ids)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grade scale entries")
		}
		for _, row := range rows {
			if s.isLocal(normalizeScaleCode(row.Code)) {
				continue
			}
			scale, err := catalogScale(row, entries[row.ID])
			if err != nil {
				s.logger.Warn("skipping invalid catalogued scale", zap.String("code", row.Code), zap.Error(err))
				continue
			}
			scales = append(scales, *scale)
		}
	}

	sort.Slice(scales, func(i, j int) bool { return scales[i].Code < scales[j].Code })

	result := make([]dto.GradeScaleResponse, 0, len(scales))
	for _, scale := range scales {
		result = append(result, s.toResponse(scale))
	}
	return result, nil
}

// Describe resolves code and renders it for clients.
func (s *GradeScaleService) Describe(ctx context.Context, code string) (*dto.GradeScaleResponse, error) {
	scale, err := s.Resolve(ctx, code)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(*scale)
	return &resp, nil
}

func (s *GradeScaleService) isLocal(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.local[code]
	return ok
}

func (s *GradeScaleService) toResponse(scale GradeScale) dto.GradeScaleResponse {
	return dto.GradeScaleResponse{
		Code:    scale.Code,
		Name:    scale.Name,
		Source:  scale.Source,
		Default: scale.Code == s.defaultCode,
		Entries: scale.Table.Entries(),
	}
}

func catalogScale(row models.GradeScale, rows []models.GradeScaleEntry) (*GradeScale, error) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })
	entries := make([]gpa.GradeEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, gpa.GradeEntry{Symbol: r.Symbol, Points: r.Points, Description: r.Description})
	}
	table, err := gpa.NewGradeTable(entries)
	if err != nil {
		return nil, err
	}
	return &GradeScale{
		Code:   normalizeScaleCode(row.Code),
		Name:   row.Name,
		Source: models.GradeScaleCatalog,
		Table:  table,
	}, nil
}

func normalizeScaleCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
