package gpa

// Totals holds the weighted sums over complete courses.
type Totals struct {
	Points  float64
	Credits int
	Courses int
}

// Mean returns Points/Credits, or 0 when nothing was accumulated.
func (t Totals) Mean() float64 {
	if t.Credits <= 0 {
		return 0
	}
	return t.Points / float64(t.Credits)
}

func (t *Totals) add(courses []Course) {
	for _, course := range courses {
		if !course.Complete() {
			continue
		}
		t.Points += float64(course.credits) * course.gradePoint
		t.Credits += course.credits
		t.Courses++
	}
}

// ComputeGPA returns the credit-weighted mean grade point of the complete courses.
// Courses without a grade or without credits are ignored entirely; the result is
// unrounded and 0 when no course qualifies.
func ComputeGPA(courses []Course) float64 {
	var totals Totals
	totals.add(courses)
	return totals.Mean()
}

// ComputeCGPA applies the ComputeGPA weighting across the courses of every semester.
// Semester boundaries do not affect the weighting.
func ComputeCGPA(semesters []Semester) float64 {
	return transcriptTotals(semesters).Mean()
}

func transcriptTotals(semesters []Semester) Totals {
	var totals Totals
	for _, semester := range semesters {
		totals.add(semester.Courses)
	}
	return totals
}
