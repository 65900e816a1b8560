package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/thansetan/kalender/model"
)

func TestMonthGrid(t *testing.T) {
	var buf bytes.Buffer
	MonthGrid(&buf, model.MonthInfo{Year: 2024, Month: 3, DayCount: 31, StartWeekday: 5})

	out := buf.String()
	if !strings.Contains(out, "March 2024") {
		t.Fatalf("missing title, got:\n%s", out)
	}
	if !strings.Contains(out, " Su Mo Tu We Th Fr Sa\n") {
		t.Fatalf("missing weekday header, got:\n%s", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	first := lines[4]
	if first != strings.Repeat(" ", 15)+"  1  2" {
		t.Fatalf("first week = %q", first)
	}
	if last := lines[len(lines)-1]; last != " 31" {
		t.Fatalf("last week = %q", last)
	}
}

func TestMonthGridEndsOnSaturday(t *testing.T) {
	var buf bytes.Buffer
	// February 2015: Sunday to Saturday, four full rows.
	MonthGrid(&buf, model.MonthInfo{Year: 2015, Month: 2, DayCount: 28, StartWeekday: 0})
	if strings.HasSuffix(buf.String(), "\n\n") {
		t.Fatalf("grid ends with an empty line:\n%s", buf.String())
	}
	if !strings.HasSuffix(buf.String(), " 22 23 24 25 26 27 28\n") {
		t.Fatalf("unexpected last row:\n%s", buf.String())
	}
}

func TestStatistics(t *testing.T) {
	var buf bytes.Buffer
	Statistics(&buf, model.YearStatistics{
		Year:               2024,
		Leap:               true,
		TotalDays:          366,
		WeekendDays:        104,
		WeekdayDays:        262,
		MinMonthLength:     29,
		MaxMonthLength:     31,
		AverageMonthLength: 30.5,
		WeekendPercentage:  100 * 104.0 / 366.0,
	})
	out := buf.String()
	for _, want := range []string{
		"Leap Year Status: TRUE",
		"Total Days: 366",
		"Weekend Percentage: 28.4%",
		"Shortest Month: 29 days",
		"Average Month Length: 30.5 days",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestMonthTable(t *testing.T) {
	var buf bytes.Buffer
	MonthTable(&buf, model.YearStatistics{Months: []model.MonthInfo{
		{Year: 2000, Month: 1, DayCount: 31, StartWeekday: 6, WeekendDays: 10},
	}})
	out := buf.String()
	if !strings.HasPrefix(out, "MONTH") || !strings.Contains(out, "January") || !strings.Contains(out, "Saturday") {
		t.Fatalf("unexpected table:\n%s", out)
	}
}

func TestDayOfYear(t *testing.T) {
	var buf bytes.Buffer
	DayOfYear(&buf, model.DayOfYear{Year: 2024, Month: 2, Day: 29, DayOfYear: 60, Weekday: 4, LeapYear: true})
	want := "Thursday 29 February 2024 is the 60th day of the year (366 days).\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestLeapYear(t *testing.T) {
	var buf bytes.Buffer
	LeapYear(&buf, 1900, false)
	if buf.String() != "1900 is not a leap year (365 days).\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestNames(t *testing.T) {
	if MonthName(1) != "January" || MonthName(12) != "December" {
		t.Fatal("wrong month names")
	}
	if MonthName(0) != "" || MonthName(13) != "" {
		t.Fatal("out of range months should be empty")
	}
	if WeekdayShort(0) != "Su" || WeekdayShort(6) != "Sa" {
		t.Fatal("wrong short weekday names")
	}
	if WeekdayName(7) != "" {
		t.Fatal("out of range weekday should be empty")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEncode(t *testing.T) {
	info := model.MonthInfo{Year: 2024, Month: 3, DayCount: 31, StartWeekday: 5, WeekendDays: 10}

	var buf bytes.Buffer
	if err := Encode(&buf, FormatJSON, info); err != nil {
		t.Fatal(err)
	}
	var fromJSON model.MonthInfo
	if err := json.Unmarshal(buf.Bytes(), &fromJSON); err != nil {
		t.Fatal(err)
	}
	if fromJSON != info {
		t.Fatalf("json: got %+v, want %+v", fromJSON, info)
	}

	buf.Reset()
	if err := Encode(&buf, FormatYAML, info); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "start_weekday: 5") {
		t.Fatalf("yaml output missing field:\n%s", buf.String())
	}
	var fromYAML model.MonthInfo
	if err := yaml.Unmarshal(buf.Bytes(), &fromYAML); err != nil {
		t.Fatal(err)
	}
	if fromYAML != info {
		t.Fatalf("yaml: got %+v, want %+v", fromYAML, info)
	}

	if err := Encode(&buf, FormatText, info); err == nil {
		t.Fatal("expected error encoding text")
	}
}

func TestLineProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 12, false)
	for i := 0; i < 12; i++ {
		if err := p.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if err := p.Finish(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Generation Progress: 6/12 (50%)") {
		t.Fatalf("missing halfway line:\n%s", out)
	}
	if !strings.Contains(out, "Progress Bar: ["+strings.Repeat("=", 30)+"]") {
		t.Fatalf("missing full bar:\n%s", out)
	}
	if strings.Count(out, "Generation Progress") != 12 {
		t.Fatalf("expected 12 progress lines:\n%s", out)
	}
}
