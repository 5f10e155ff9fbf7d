// Package gpa holds the grade-point calculation core: the grade table, course,
// semester and transcript records, GPA/CGPA aggregation and GPA classification.
//
// Everything here is synchronous and allocation-light; callers recompute on every
// read instead of caching aggregates.
package gpa
