package gpa

// TranscriptSnapshot is the serialisable form of a transcript. Semester numbers
// and grade points are not stored; they are derived again on Restore.
type TranscriptSnapshot struct {
	Semesters []SemesterSnapshot `json:"semesters"`
}

// SemesterSnapshot is the serialisable form of a semester.
type SemesterSnapshot struct {
	ID      string           `json:"id"`
	Courses []CourseSnapshot `json:"courses"`
}

// CourseSnapshot is the serialisable form of a course.
type CourseSnapshot struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Credits int    `json:"credits"`
	Grade   string `json:"grade"`
}

// Snapshot captures the transcript state.
func (t *Transcript) Snapshot() TranscriptSnapshot {
	snap := TranscriptSnapshot{Semesters: make([]SemesterSnapshot, 0, len(t.Semesters))}
	for _, semester := range t.Semesters {
		s := SemesterSnapshot{ID: semester.ID, Courses: make([]CourseSnapshot, 0, len(semester.Courses))}
		for _, course := range semester.Courses {
			s.Courses = append(s.Courses, CourseSnapshot{
				ID:      course.ID,
				Name:    course.Name,
				Credits: course.credits,
				Grade:   course.grade,
			})
		}
		snap.Semesters = append(snap.Semesters, s)
	}
	return snap
}

// Restore rebuilds a transcript from snap, resolving grade points against table.
func Restore(snap TranscriptSnapshot, table *GradeTable) *Transcript {
	t := &Transcript{Semesters: make([]Semester, 0, len(snap.Semesters))}
	for _, s := range snap.Semesters {
		semester := Semester{ID: s.ID, Courses: make([]Course, 0, len(s.Courses))}
		if semester.ID == "" {
			semester.ID = NewID()
		}
		for _, c := range s.Courses {
			course := Course{ID: c.ID, Name: c.Name}
			if course.ID == "" {
				course.ID = NewID()
			}
			course.SetCredits(c.Credits)
			course.SetGrade(table, c.Grade)
			semester.Courses = append(semester.Courses, course)
		}
		t.Semesters = append(t.Semesters, semester)
	}
	t.renumber()
	return t
}
