package gpa

// Band is the severity band attached to a standing label.
type Band string

const (
	BandSuccess     Band = "success"
	BandPrimary     Band = "primary"
	BandWarning     Band = "warning"
	BandAccent      Band = "accent"
	BandMuted       Band = "muted"
	BandDestructive Band = "destructive"
)

// Standing labels.
const (
	LabelOutstanding = "Outstanding"
	LabelExcellent   = "Excellent"
	LabelVeryGood    = "Very Good"
	LabelGood        = "Good"
	LabelAverage     = "Average"
	LabelPoor        = "Poor"
)

// Standing is the qualitative classification of a GPA.
type Standing struct {
	Label string `json:"label"`
	Band  Band   `json:"band"`
}

var thresholds = []struct {
	min      float64
	standing Standing
}{
	{9, Standing{Label: LabelOutstanding, Band: BandSuccess}},
	{8, Standing{Label: LabelExcellent, Band: BandPrimary}},
	{7, Standing{Label: LabelVeryGood, Band: BandWarning}},
	{6, Standing{Label: LabelGood, Band: BandAccent}},
	{5, Standing{Label: LabelAverage, Band: BandMuted}},
}

// Classify maps any GPA to a standing. Lower bounds are inclusive; anything
// below 5, including negative values and NaN, is Poor.
func Classify(gpa float64) Standing {
	for _, t := range thresholds {
		if gpa >= t.min {
			return t.standing
		}
	}
	return Standing{Label: LabelPoor, Band: BandDestructive}
}

// StandingRange is one row of the classification ladder. Min is inclusive.
type StandingRange struct {
	Min      float64  `json:"min"`
	Standing Standing `json:"standing"`
}

// StandingRanges lists the classification ladder from the highest band down, ending with Poor at 0.
func StandingRanges() []StandingRange {
	out := make([]StandingRange, 0, len(thresholds)+1)
	for _, t := range thresholds {
		out = append(out, StandingRange{Min: t.min, Standing: t.standing})
	}
	return append(out, StandingRange{Min: 0, Standing: Standing{Label: LabelPoor, Band: BandDestructive}})
}
