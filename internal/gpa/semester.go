package gpa

// Semester is a numbered, ordered collection of courses.
type Semester struct {
	ID      string
	Number  int
	Courses []Course
}

// SemesterSummary is the read model shown for a semester.
type SemesterSummary struct {
	ID               string
	Number           int
	CourseCount      int
	CompletedCourses int
	Credits          int
	GPA              float64
	Standing         Standing
}

// AddCourse appends an empty course and returns a copy of it.
func (s *Semester) AddCourse() Course {
	course := NewCourse()
	s.Courses = append(s.Courses, course)
	return course
}

// Course returns a pointer to the course with id, valid until the next structural change.
func (s *Semester) Course(id string) (*Course, bool) {
	for i := range s.Courses {
		if s.Courses[i].ID == id {
			return &s.Courses[i], true
		}
	}
	return nil, false
}

// RemoveCourse drops the course with id. It reports whether a course was removed.
func (s *Semester) RemoveCourse(id string) bool {
	for i := range s.Courses {
		if s.Courses[i].ID == id {
			s.Courses = append(s.Courses[:i], s.Courses[i+1:]...)
			return true
		}
	}
	return false
}

// GPA computes the semester GPA.
func (s Semester) GPA() float64 {
	return ComputeGPA(s.Courses)
}

// Summary aggregates the semester for display.
func (s Semester) Summary() SemesterSummary {
	var totals Totals
	totals.add(s.Courses)
	gpa := totals.Mean()
	return SemesterSummary{
		ID:               s.ID,
		Number:           s.Number,
		CourseCount:      len(s.Courses),
		CompletedCourses: totals.Courses,
		Credits:          totals.Credits,
		GPA:              gpa,
		Standing:         Classify(gpa),
	}
}
