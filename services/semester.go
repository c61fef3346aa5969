package services

import (
	"fmt"
	"time"
)

// The academic calendar is a pure month rule: August through January is
// Semester 1, everything else Semester 2. The academic year rolls over in
// August.

func CurrentSemesterAt(t time.Time) string {
	month := int(t.Month())
	if month >= 8 || month <= 1 {
		return "Semester 1"
	}
	return "Semester 2"
}

func CurrentAcademicYearAt(t time.Time) string {
	year := t.Year()
	if int(t.Month()) >= 8 {
		return fmt.Sprintf("%d/%d", year, year+1)
	}
	return fmt.Sprintf("%d/%d", year-1, year)
}

func CurrentSemester() string {
	return CurrentSemesterAt(time.Now())
}

func CurrentAcademicYear() string {
	return CurrentAcademicYearAt(time.Now())
}
