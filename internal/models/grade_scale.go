package models

import "time"

// GradeScaleSource records where a grade scale was loaded from.
type GradeScaleSource string

const (
	// GradeScaleBuiltin is the compiled-in ten-point table.
	GradeScaleBuiltin GradeScaleSource = "BUILTIN"
	// GradeScaleFile comes from the YAML scale file.
	GradeScaleFile GradeScaleSource = "FILE"
	// GradeScaleCatalog comes from the Postgres catalogue.
	GradeScaleCatalog GradeScaleSource = "CATALOG"
)

// GradeScale is a named grade table row.
type GradeScale struct {
	ID        string           `db:"id" json:"id"`
	Code      string           `db:"code" json:"code"`
	Name      string           `db:"name" json:"name"`
	Source    GradeScaleSource `db:"-" json:"source"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt time.Time        `db:"updated_at" json:"updated_at"`
}

// GradeScaleEntry is one symbol of a catalogued grade scale.
type GradeScaleEntry struct {
	ScaleID     string  `db:"scale_id" json:"-"`
	Symbol      string  `db:"symbol" json:"symbol"`
	Points      float64 `db:"points" json:"points"`
	Description string  `db:"description" json:"description,omitempty"`
	Position    int     `db:"position" json:"position"`
}
