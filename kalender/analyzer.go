package kalender

import (
	"fmt"
	"slices"

	"github.com/thansetan/kalender/helper"
	"github.com/thansetan/kalender/model"
)

// AnalyzeYear computes the day statistics of a year in [helper.MinYear,
// helper.MaxYear]. It either returns complete statistics or an error.
func AnalyzeYear(year int) (model.YearStatistics, error) {
	var stats model.YearStatistics
	if err := helper.ValidateYear(year); err != nil {
		return stats, err
	}

	months := make([]model.MonthInfo, 0, 12)
	for month := 1; month <= 12; month++ {
		info, err := AnalyzeMonth(month, year)
		if err != nil {
			return model.YearStatistics{}, fmt.Errorf("analyze month %d: %w", month, err)
		}
		stats.MonthLengths[month-1] = info.DayCount
		stats.TotalDays += info.DayCount
		stats.WeekendDays += info.WeekendDays
		months = append(months, info)
	}

	sorted := slices.Sorted(slices.Values(stats.MonthLengths[:]))
	stats.Year = year
	stats.Leap = helper.IsLeapYear(year)
	stats.WeekdayDays = stats.TotalDays - stats.WeekendDays
	stats.MinMonthLength = sorted[0]
	stats.MaxMonthLength = sorted[len(sorted)-1]
	stats.AverageMonthLength = float64(stats.TotalDays) / 12.0
	stats.WeekendPercentage = 100 * float64(stats.WeekendDays) / float64(stats.TotalDays)
	stats.Months = months

	return stats, nil
}

// AnalyzeMonth returns the length, first weekday and weekend count of a
// month. The year is not range checked.
func AnalyzeMonth(month, year int) (model.MonthInfo, error) {
	dayCount, err := helper.DaysInMonth(month, year)
	if err != nil {
		return model.MonthInfo{}, err
	}
	start, err := helper.FirstWeekdayOfMonth(month, year)
	if err != nil {
		return model.MonthInfo{}, err
	}

	info := model.MonthInfo{
		Year:         year,
		Month:        month,
		DayCount:     dayCount,
		StartWeekday: start,
	}
	for day := 1; day <= dayCount; day++ {
		if helper.IsWeekend(info.WeekdayOf(day)) {
			info.WeekendDays++
		}
	}
	return info, nil
}

// DayOfYear returns the ordinal of day within year. day is not checked
// against the length of month, so out of range days give out of range
// ordinals.
func DayOfYear(day, month, year int) (int, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("month %d outside [1, 12]: %w", month, helper.ErrInvalidArgument)
	}
	n := day
	for m := 1; m < month; m++ {
		days, err := helper.DaysInMonth(m, year)
		if err != nil {
			return 0, err
		}
		n += days
	}
	return n, nil
}
