// Package report renders calendar facts as terminal text.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/thansetan/kalender/model"
)

func rule(w io.Writer, c byte, n int) {
	fmt.Fprintln(w, strings.Repeat(string(c), n))
}

func Header(w io.Writer) {
	rule(w, '=', 60)
	fmt.Fprintln(w, "GREGORIAN CALENDAR GENERATOR")
	fmt.Fprintln(w, "Leap years, month layouts and weekend statistics")
	rule(w, '=', 60)
}

// MonthGrid prints the month as a Sunday-first grid with three character
// cells.
func MonthGrid(w io.Writer, info model.MonthInfo) {
	fmt.Fprintf(w, "\n%20s %d\n", MonthName(info.Month), info.Year)
	rule(w, '-', 28)
	for wd := 0; wd < 7; wd++ {
		fmt.Fprintf(w, " %s", WeekdayShort(wd))
	}
	fmt.Fprintln(w)

	col := 0
	for ; col < info.StartWeekday; col++ {
		fmt.Fprint(w, "   ")
	}
	for day := 1; day <= info.DayCount; day++ {
		fmt.Fprintf(w, "%3d", day)
		col++
		if col%7 == 0 {
			fmt.Fprintln(w)
		}
	}
	if col%7 != 0 {
		fmt.Fprintln(w)
	}
}

func MonthAnalysis(w io.Writer, info model.MonthInfo) {
	fmt.Fprintln(w, "\nMonth Analysis:")
	fmt.Fprintf(w, "  Total Days: %d\n", info.DayCount)
	fmt.Fprintf(w, "  Starting Day: %d (%s)\n", info.StartWeekday, WeekdayName(info.StartWeekday))
	fmt.Fprintf(w, "  Calendar Weeks: %d\n", len(info.Weeks()))
	fmt.Fprintf(w, "  Weekend Days: %d\n", info.WeekendDays)
}

func Statistics(w io.Writer, stats model.YearStatistics) {
	fmt.Fprintln(w, "ANNUAL CALENDAR STATISTICS REPORT")
	rule(w, '-', 40)
	fmt.Fprintf(w, "Target Year: %d\n", stats.Year)
	fmt.Fprintf(w, "Leap Year Status: %s\n", yesNo(stats.Leap))
	fmt.Fprintf(w, "Total Days: %d\n", stats.TotalDays)
	fmt.Fprintf(w, "Weekend Days: %d\n", stats.WeekendDays)
	fmt.Fprintf(w, "Weekday Count: %d\n", stats.WeekdayDays)
	fmt.Fprintf(w, "Weekend Percentage: %.1f%%\n", stats.WeekendPercentage)

	fmt.Fprintln(w, "\nMonth Length Distribution:")
	fmt.Fprintf(w, "  Shortest Month: %d days\n", stats.MinMonthLength)
	fmt.Fprintf(w, "  Longest Month: %d days\n", stats.MaxMonthLength)
	fmt.Fprintf(w, "  Average Month Length: %.1f days\n", stats.AverageMonthLength)
}

// MonthTable lists every month of the year on one line each.
func MonthTable(w io.Writer, stats model.YearStatistics) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MONTH\tDAYS\tSTARTS\tWEEKENDS")
	for _, m := range stats.Months {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\n", MonthName(m.Month), m.DayCount, WeekdayName(m.StartWeekday), m.WeekendDays)
	}
	_ = tw.Flush()
}

func DayOfYear(w io.Writer, d model.DayOfYear) {
	fmt.Fprintf(w, "%s %d %s %d is the %s day of the year (%s).\n",
		WeekdayName(d.Weekday), d.Day, MonthName(d.Month), d.Year,
		humanize.Ordinal(d.DayOfYear), yearLength(d.LeapYear))
}

func LeapYear(w io.Writer, year int, leap bool) {
	if leap {
		fmt.Fprintf(w, "%d is a leap year (%s).\n", year, yearLength(true))
		return
	}
	fmt.Fprintf(w, "%d is not a leap year (%s).\n", year, yearLength(false))
}

func Summary(w io.Writer, stats model.YearStatistics) {
	fmt.Fprintln(w)
	rule(w, '=', 60)
	fmt.Fprintln(w, "CALENDAR GENERATION COMPLETED")
	fmt.Fprintf(w, "Year Processed: %d\n", stats.Year)
	fmt.Fprintf(w, "Months Generated: %d\n", len(stats.Months))
	fmt.Fprintf(w, "Leap Year Status: %s\n", yesNo(stats.Leap))
	rule(w, '=', 60)
}

func yesNo(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func yearLength(leap bool) string {
	if leap {
		return "366 days"
	}
	return "365 days"
}
