package dateutil

import (
	"time"
)

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// YearEnd returns December 31 of the given year in UTC. Projection
// records are stamped at year end.
func YearEnd(year int) time.Time {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// FullRetirementAge calculates the Social Security Full Retirement Age based on birth year
func FullRetirementAge(birthDate time.Time) int {
	birthYear := birthDate.Year()

	switch {
	case birthYear <= 1937:
		return 65
	case birthYear <= 1942:
		return 65 // 65 plus some months, rounded down
	case birthYear <= 1954:
		return 66
	case birthYear <= 1959:
		return 66 // 66 plus some months, rounded down
	default: // 1960 and later
		return 67
	}
}
