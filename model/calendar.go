package model

type MonthInfo struct {
	Year         int `json:"year" yaml:"year"`
	Month        int `json:"month" yaml:"month"`
	DayCount     int `json:"day_count" yaml:"day_count"`
	StartWeekday int `json:"start_weekday" yaml:"start_weekday"`
	WeekendDays  int `json:"weekend_days" yaml:"weekend_days"`
}

func (m MonthInfo) WeekdayOf(day int) int {
	return (m.StartWeekday + day - 1) % 7
}

// Weeks lays the month out in rows of seven cells, Sunday first. Cells
// outside the month are 0.
func (m MonthInfo) Weeks() [][7]int {
	var (
		weeks [][7]int
		week  [7]int
	)
	col := m.StartWeekday
	for day := 1; day <= m.DayCount; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			col = 0
		}
	}
	if col != 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

type YearStatistics struct {
	Year               int         `json:"year" yaml:"year"`
	Leap               bool        `json:"leap_year" yaml:"leap_year"`
	TotalDays          int         `json:"total_days" yaml:"total_days"`
	WeekendDays        int         `json:"weekend_days" yaml:"weekend_days"`
	WeekdayDays        int         `json:"weekday_days" yaml:"weekday_days"`
	MonthLengths       [12]int     `json:"month_lengths" yaml:"month_lengths,flow"`
	MinMonthLength     int         `json:"min_month_length" yaml:"min_month_length"`
	MaxMonthLength     int         `json:"max_month_length" yaml:"max_month_length"`
	AverageMonthLength float64     `json:"average_month_length" yaml:"average_month_length"`
	WeekendPercentage  float64     `json:"weekend_percentage" yaml:"weekend_percentage"`
	Months             []MonthInfo `json:"months" yaml:"months"`
}

type DayOfYear struct {
	Year      int  `json:"year" yaml:"year"`
	Month     int  `json:"month" yaml:"month"`
	Day       int  `json:"day" yaml:"day"`
	DayOfYear int  `json:"day_of_year" yaml:"day_of_year"`
	Weekday   int  `json:"weekday" yaml:"weekday"`
	LeapYear  bool `json:"leap_year" yaml:"leap_year"`
}

// Data is what the year and month pages render.
type Data struct {
	Year       int
	Month      int
	Statistics YearStatistics
	MonthInfo  MonthInfo
	PrevYear   int
	NextYear   int
}
