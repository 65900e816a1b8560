package helper

import (
	"errors"
	"fmt"
)

// Accepted year range for user input. The formulas below work for any year,
// the range is only an input policy.
const (
	MinYear = 1900
	MaxYear = 2100
)

var ErrInvalidArgument = errors.New("invalid argument")

var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func IsLeapYear(year int) bool {
	return year%400 == 0 || (year%4 == 0 && year%100 != 0)
}

// DaysInMonth returns the length of month in year. A month outside [1,12]
// yields ErrInvalidArgument.
func DaysInMonth(month, year int) (int, error) {
	if err := validateMonth(month); err != nil {
		return 0, err
	}
	if month == 2 && IsLeapYear(year) {
		return 29, nil
	}
	return monthDays[month-1], nil
}

// FirstWeekdayOfMonth returns the weekday of the first day of month,
// 0 being Sunday and 6 Saturday.
func FirstWeekdayOfMonth(month, year int) (int, error) {
	return DayOfWeek(1, month, year)
}

// DayOfWeek computes the weekday of a date with Zeller's congruence,
// 0 being Sunday and 6 Saturday. January and February count as months 13
// and 14 of the previous year. day is not checked against the month length.
func DayOfWeek(day, month, year int) (int, error) {
	if err := validateMonth(month); err != nil {
		return 0, err
	}
	if month < 3 {
		month += 12
		year--
	}
	k := floorMod(year, 100)
	j := floorDiv(year, 100)
	// h: 0 = Saturday
	h := floorMod(day+(13*(month+1))/5+k+k/4+floorDiv(j, 4)+5*j, 7)
	return (h + 6) % 7, nil
}

func IsWeekend(weekday int) bool {
	return weekday == 0 || weekday == 6
}

// IsValidDateInput reports whether month and year are accepted as input.
func IsValidDateInput(month, year int) bool {
	return month >= 1 && month <= 12 && year >= MinYear && year <= MaxYear
}

func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("year %d outside [%d, %d]: %w", year, MinYear, MaxYear, ErrInvalidArgument)
	}
	return nil
}

func validateMonth(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d outside [1, 12]: %w", month, ErrInvalidArgument)
	}
	return nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
