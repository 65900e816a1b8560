package kalender

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/thansetan/kalender/model"
	"github.com/thansetan/kalender/report"
)

// WriteICal exports one all-day event per month, placed on its first day.
// DTSTAMP is fixed to the start of the year so the output only depends on
// the statistics.
func WriteICal(w io.Writer, stats model.YearStatistics) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//thansetan//kalender//EN")
	cal.SetName(fmt.Sprintf("Kalender %d", stats.Year))

	stamp := time.Date(stats.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, m := range stats.Months {
		start := time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC)
		event := cal.AddEvent(fmt.Sprintf("%04d-%02d@kalender", m.Year, m.Month))
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(start)
		event.SetAllDayEndAt(start.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("%s %d: %d days", report.MonthName(m.Month), m.Year, m.DayCount))
		event.SetDescription(fmt.Sprintf("Starts on %s, %d weekend days, %d weekdays.",
			report.WeekdayName(m.StartWeekday), m.WeekendDays, m.DayCount-m.WeekendDays))
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("serialize calendar: %w", err)
	}
	return nil
}
