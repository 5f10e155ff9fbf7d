package gpa

// Transcript is the ordered list of semesters of one session.
type Transcript struct {
	Semesters []Semester
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// AddSemester appends a semester numbered after the existing ones.
func (t *Transcript) AddSemester() *Semester {
	t.Semesters = append(t.Semesters, Semester{ID: NewID(), Number: len(t.Semesters) + 1})
	return &t.Semesters[len(t.Semesters)-1]
}

// Semester returns a pointer to the semester with id, valid until the next structural change.
func (t *Transcript) Semester(id string) (*Semester, bool) {
	for i := range t.Semesters {
		if t.Semesters[i].ID == id {
			return &t.Semesters[i], true
		}
	}
	return nil, false
}

// RemoveSemester drops the semester with id together with its courses and
// renumbers the remaining semesters 1..N in their current order.
func (t *Transcript) RemoveSemester(id string) bool {
	kept := t.Semesters[:0]
	removed := false
	for _, semester := range t.Semesters {
		if semester.ID == id {
			removed = true
			continue
		}
		kept = append(kept, semester)
	}
	if !removed {
		return false
	}
	t.Semesters = kept
	t.renumber()
	return true
}

func (t *Transcript) renumber() {
	for i := range t.Semesters {
		t.Semesters[i].Number = i + 1
	}
}

// CGPA computes the cumulative GPA across all semesters.
func (t *Transcript) CGPA() float64 {
	return ComputeCGPA(t.Semesters)
}

// TotalCredits sums the credits of complete courses across all semesters.
func (t *Transcript) TotalCredits() int {
	return transcriptTotals(t.Semesters).Credits
}

// CompletedCourses counts complete courses across all semesters.
func (t *Transcript) CompletedCourses() int {
	return transcriptTotals(t.Semesters).Courses
}
