package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentSemesterAt(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "Semester 1"},
		{time.February, "Semester 2"},
		{time.May, "Semester 2"},
		{time.July, "Semester 2"},
		{time.August, "Semester 1"},
		{time.November, "Semester 1"},
		{time.December, "Semester 1"},
	}
	for _, tt := range tests {
		at := time.Date(2025, tt.month, 15, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, tt.want, CurrentSemesterAt(at), "month %s", tt.month)
	}
}

func TestCurrentAcademicYearAt(t *testing.T) {
	tests := []struct {
		month time.Month
		year  int
		want  string
	}{
		{time.September, 2025, "2025/2026"},
		{time.August, 2025, "2025/2026"},
		{time.January, 2026, "2025/2026"},
		{time.July, 2026, "2025/2026"},
		{time.August, 2026, "2026/2027"},
	}
	for _, tt := range tests {
		at := time.Date(tt.year, tt.month, 10, 9, 0, 0, 0, time.UTC)
		assert.Equal(t, tt.want, CurrentAcademicYearAt(at), "%d-%s", tt.year, tt.month)
	}
}
