package kalender

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/thansetan/kalender/helper"
	"github.com/thansetan/kalender/model"
)

// Service is the entry point of the presentation layers. Every call goes
// through helper.IsValidDateInput first.
type Service struct {
	years *lru.Cache[int, model.YearStatistics]
}

func NewService(cacheSize int) (*Service, error) {
	cache, err := lru.New[int, model.YearStatistics](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create year cache: %w", err)
	}
	return &Service{years: cache}, nil
}

func (s *Service) Year(ctx context.Context, year int) (model.YearStatistics, error) {
	if err := ctx.Err(); err != nil {
		return model.YearStatistics{}, err
	}
	if !helper.IsValidDateInput(1, year) {
		return model.YearStatistics{}, fmt.Errorf("year %d: %w", year, helper.ErrInvalidArgument)
	}
	if stats, ok := s.years.Get(year); ok {
		return stats, nil
	}
	stats, err := AnalyzeYear(year)
	if err != nil {
		return stats, fmt.Errorf("analyze year %d: %w", year, err)
	}
	s.years.Add(year, stats)
	return stats, nil
}

func (s *Service) Month(ctx context.Context, month, year int) (model.MonthInfo, error) {
	if !helper.IsValidDateInput(month, year) {
		return model.MonthInfo{}, fmt.Errorf("month %d of year %d: %w", month, year, helper.ErrInvalidArgument)
	}
	stats, err := s.Year(ctx, year)
	if err != nil {
		return model.MonthInfo{}, err
	}
	return stats.Months[month-1], nil
}

// DayOfYear rejects days outside the month, unlike the package level
// DayOfYear which only sums.
func (s *Service) DayOfYear(ctx context.Context, day, month, year int) (model.DayOfYear, error) {
	info, err := s.Month(ctx, month, year)
	if err != nil {
		return model.DayOfYear{}, err
	}
	if day < 1 || day > info.DayCount {
		return model.DayOfYear{}, fmt.Errorf("day %d outside [1, %d]: %w", day, info.DayCount, helper.ErrInvalidArgument)
	}
	n, err := DayOfYear(day, month, year)
	if err != nil {
		return model.DayOfYear{}, fmt.Errorf("day of year: %w", err)
	}
	return model.DayOfYear{
		Year:      year,
		Month:     month,
		Day:       day,
		DayOfYear: n,
		Weekday:   info.WeekdayOf(day),
		LeapYear:  helper.IsLeapYear(year),
	}, nil
}
