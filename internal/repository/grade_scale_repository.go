package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/cgpa-api/internal/models"
)

// GradeScaleRepository reads the institutional grade scale catalogue.
type GradeScaleRepository struct {
	db *sqlx.DB
}

// NewGradeScaleRepository instantiates a grade scale repository.
func NewGradeScaleRepository(db *sqlx.DB) *GradeScaleRepository {
	return &GradeScaleRepository{db: db}
}

// List returns every catalogued scale ordered by code.
func (r *GradeScaleRepository) List(ctx context.Context) ([]models.GradeScale, error) {
	const query = `SELECT id, code, name, created_at, updated_at FROM grade_scales ORDER BY code ASC`
	var scales []models.GradeScale
	if err := r.db.SelectContext(ctx, &scales, query); err != nil {
		return nil, fmt.Errorf("list grade scales: %w", err)
	}
	for i := range scales {
		scales[i].Source = models.GradeScaleCatalog
	}
	return scales, nil
}

// FindByCode loads a scale by its code. sql.ErrNoRows is returned unwrapped when absent.
func (r *GradeScaleRepository) FindByCode(ctx context.Context, code string) (*models.GradeScale, error) {
	const query = `SELECT id, code, name, created_at, updated_at FROM grade_scales WHERE UPPER(code) = $1`
	var scale models.GradeScale
	if err := r.db.GetContext(ctx, &scale, query, strings.ToUpper(strings.TrimSpace(code))); err != nil {
		return nil, err
	}
	scale.Source = models.GradeScaleCatalog
	return &scale, nil
}

// Entries returns the symbols of a scale in their declared order.
func (r *GradeScaleRepository) Entries(ctx context.Context, scaleID string) ([]models.GradeScaleEntry, error) {
	const query = `SELECT scale_id, symbol, points, COALESCE(description, '') AS description, position FROM grade_scale_entries WHERE scale_id = $1 ORDER BY position ASC`
	var entries []models.GradeScaleEntry
	if err := r.db.SelectContext(ctx, &entries, query, scaleID); err != nil {
		return nil, fmt.Errorf("list grade scale entries: %w", err)
	}
	return entries, nil
}

// EntriesByScales returns entries for many scales keyed by scale id.
func (r *GradeScaleRepository) EntriesByScales(ctx context.Context, scaleIDs []string) (map[string][]models.GradeScaleEntry, error) {
	result := make(map[string][]models.GradeScaleEntry, len(scaleIDs))
	if len(scaleIDs) == 0 {
		return result, nil
	}
	query, args, err := sqlx.In(`SELECT scale_id, symbol, points, COALESCE(description, '') AS description, position FROM grade_scale_entries WHERE scale_id IN (?) ORDER BY scale_id ASC, position ASC`, scaleIDs)
	if err != nil {
		return nil, fmt.Errorf("build grade scale entries query: %w", err)
	}
	query = r.db.Rebind(query)
	var entries []models.GradeScaleEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list grade scale entries: %w", err)
	}
	for _, entry := range entries {
		result[entry.ScaleID] = append(result[entry.ScaleID], entry)
	}
	return result, nil
}
