package gpa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbers(t *Transcript) []int {
	out := make([]int, 0, len(t.Semesters))
	for _, s := range t.Semesters {
		out = append(out, s.Number)
	}
	return out
}

func ids(t *Transcript) []string {
	out := make([]string, 0, len(t.Semesters))
	for _, s := range t.Semesters {
		out = append(out, s.ID)
	}
	return out
}

func TestAddSemesterNumbersSequentially(t *testing.T) {
	tr := NewTranscript()
	first := tr.AddSemester()
	assert.Equal(t, 1, first.Number)
	tr.AddSemester()
	tr.AddSemester()

	assert.Equal(t, []int{1, 2, 3}, numbers(tr))
}

func TestRemoveSemesterRenumbers(t *testing.T) {
	for removeAt := 0; removeAt < 4; removeAt++ {
		tr := NewTranscript()
		for i := 0; i < 4; i++ {
			tr.AddSemester()
		}
		original := ids(tr)

		require.True(t, tr.RemoveSemester(original[removeAt]))

		expected := append(append([]string{}, original[:removeAt]...), original[removeAt+1:]...)
		assert.Equal(t, expected, ids(tr))
		assert.Equal(t, []int{1, 2, 3}, numbers(tr))
	}
}

func TestRemoveSemesterUnknownIsNoop(t *testing.T) {
	tr := NewTranscript()
	tr.AddSemester()
	tr.AddSemester()

	assert.False(t, tr.RemoveSemester("missing"))
	assert.Equal(t, []int{1, 2}, numbers(tr))
}

func TestRemoveSemesterDropsItsCourses(t *testing.T) {
	table := DefaultGradeTable()
	tr := NewTranscript()
	s1 := tr.AddSemester()
	c := s1.AddCourse()
	course, _ := s1.Course(c.ID)
	course.SetCredits(4)
	course.SetGrade(table, "U")
	s2 := tr.AddSemester()
	c2 := s2.AddCourse()
	course2, _ := s2.Course(c2.ID)
	course2.SetCredits(4)
	course2.SetGrade(table, "O")

	assert.InDelta(t, 5.0, tr.CGPA(), 1e-9)
	require.True(t, tr.RemoveSemester(tr.Semesters[0].ID))
	assert.InDelta(t, 10.0, tr.CGPA(), 1e-9)
	assert.Equal(t, 4, tr.TotalCredits())
	assert.Equal(t, 1, tr.CompletedCourses())
}

func TestSemesterCourseLifecycle(t *testing.T) {
	table := DefaultGradeTable()
	s := Semester{ID: "s", Number: 1}

	a := s.AddCourse()
	b := s.AddCourse()
	assert.NotEqual(t, a.ID, b.ID)

	ca, ok := s.Course(a.ID)
	require.True(t, ok)
	ca.Name = "Mathematics"
	ca.SetCredits(3)
	ca.SetGrade(table, "A+")

	summary := s.Summary()
	assert.Equal(t, 2, summary.CourseCount)
	assert.Equal(t, 1, summary.CompletedCourses)
	assert.Equal(t, 3, summary.Credits)
	assert.InDelta(t, 9.0, summary.GPA, 1e-9)
	assert.Equal(t, LabelOutstanding, summary.Standing.Label)

	assert.True(t, s.RemoveCourse(b.ID))
	assert.False(t, s.RemoveCourse(b.ID))
	assert.Len(t, s.Courses, 1)
	_, ok = s.Course(b.ID)
	assert.False(t, ok)
}

func TestSnapshotRestoreRederivesState(t *testing.T) {
	table := DefaultGradeTable()
	tr := NewTranscript()
	s := tr.AddSemester()
	c := s.AddCourse()
	course, _ := s.Course(c.ID)
	course.Name = "Physics"
	course.SetCredits(4)
	course.SetGrade(table, "B+")
	tr.AddSemester()

	snap := tr.Snapshot()
	restored := Restore(snap, table)
	assert.Equal(t, ids(tr), ids(restored))
	assert.Equal(t, []int{1, 2}, numbers(restored))
	assert.InDelta(t, tr.CGPA(), restored.CGPA(), 1e-9)

	strict, err := NewGradeTable([]GradeEntry{{Symbol: "B+", Points: 3}})
	require.NoError(t, err)
	rescored := Restore(snap, strict)
	assert.Equal(t, 3.0, rescored.Semesters[0].Courses[0].GradePoint())
}

func TestRestoreCoercesBadSnapshotData(t *testing.T) {
	snap := TranscriptSnapshot{Semesters: []SemesterSnapshot{{Courses: []CourseSnapshot{{Name: "x", Credits: -3, Grade: "O"}}}}}

	tr := Restore(snap, DefaultGradeTable())
	require.Len(t, tr.Semesters, 1)
	assert.NotEmpty(t, tr.Semesters[0].ID)
	assert.Equal(t, 1, tr.Semesters[0].Number)
	assert.NotEmpty(t, tr.Semesters[0].Courses[0].ID)
	assert.Zero(t, tr.Semesters[0].Courses[0].Credits())
	assert.Zero(t, tr.CGPA())
}
