// Package cli implements the kalender command line.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/thansetan/kalender/config"
	"github.com/thansetan/kalender/helper"
	"github.com/thansetan/kalender/kalender"
	"github.com/thansetan/kalender/report"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type app struct {
	stdout, stderr io.Writer
	version        string
}

// Run dispatches the command and returns an exit code.
func Run(args []string, stdout, stderr io.Writer, version string) int {
	a := &app{stdout: stdout, stderr: stderr, version: version}
	if len(args) == 0 {
		a.usage(stdout)
		return exitOK
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "serve":
		return a.cmdServe(rest)
	case "year":
		return a.cmdYear(rest)
	case "month":
		return a.cmdMonth(rest)
	case "day":
		return a.cmdDay(rest)
	case "leap":
		return a.cmdLeap(rest)
	case "version":
		fmt.Fprintf(stdout, "kalender %s\n", version)
		return exitOK
	case "help", "--help", "-h":
		a.usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "kalender: unknown command %q\n", cmd)
		a.usage(stderr)
		return exitUsage
	}
}

func (a *app) usage(w io.Writer) {
	fmt.Fprintf(w, `kalender: Gregorian calendar facts for the years %d to %d

  kalender year [--format text|json|yaml] [--grid] [--months] [year]
                                      statistics for a year (default: this year)
  kalender month [--format f] <month> <year>
                                      month grid and analysis
  kalender day [--format f] <day> <month> <year>
                                      day of year and weekday
  kalender leap [--proleptic] <year>  leap year check
  kalender serve                      start the HTTP server
  kalender version                    show version
  kalender help                       this message

Configuration is read from .env and the environment: PORT, KALENDER_YEAR,
KALENDER_TEMPLATES_DIR, KALENDER_RATE_LIMIT, KALENDER_CACHE_SIZE.
`, helper.MinYear, helper.MaxYear)
}

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("kalender "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// ints parses every positional argument as an integer.
func ints(args []string) ([]int, error) {
	out := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", arg)
		}
		out = append(out, n)
	}
	return out, nil
}

func (a *app) fail(cmd string, err error) int {
	fmt.Fprintf(a.stderr, "kalender %s: %v\n", cmd, err)
	if errors.Is(err, helper.ErrInvalidArgument) {
		fmt.Fprintf(a.stderr, "months go from 1 to 12, years from %d to %d\n", helper.MinYear, helper.MaxYear)
	}
	return exitError
}

func (a *app) service() (*kalender.Service, config.Config, error) {
	cfg, err := config.Load(".env")
	if err != nil {
		return nil, cfg, err
	}
	svc, err := kalender.NewService(cfg.CacheSize)
	return svc, cfg, err
}

func (a *app) interactive() bool {
	f, ok := a.stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (a *app) cmdYear(args []string) int {
	fs := a.newFlagSet("year")
	formatFlag := fs.String("format", "text", "output format: text, json or yaml")
	grid := fs.Bool("grid", false, "print the grid and analysis of every month")
	months := fs.Bool("months", false, "print a per-month table")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	format, err := report.ParseFormat(*formatFlag)
	if err != nil {
		return a.fail("year", err)
	}
	nums, err := ints(fs.Args())
	if err != nil || len(nums) > 1 {
		fmt.Fprintln(a.stderr, "usage: kalender year [--format f] [--grid] [--months] [year]")
		return exitUsage
	}

	svc, cfg, err := a.service()
	if err != nil {
		return a.fail("year", err)
	}
	year := cfg.DefaultYear
	if len(nums) == 1 {
		year = nums[0]
	}
	if !helper.IsValidDateInput(1, year) {
		return a.fail("year", fmt.Errorf("year %d: %w", year, helper.ErrInvalidArgument))
	}
	stats, err := svc.Year(context.Background(), year)
	if err != nil {
		return a.fail("year", err)
	}

	if format != report.FormatText {
		if err := report.Encode(a.stdout, format, stats); err != nil {
			return a.fail("year", err)
		}
		return exitOK
	}

	report.Header(a.stdout)
	if *grid {
		progress := report.NewProgress(a.stdout, len(stats.Months), a.interactive())
		for _, m := range stats.Months {
			report.MonthGrid(a.stdout, m)
			report.MonthAnalysis(a.stdout, m)
			if err := progress.Step(); err != nil {
				return a.fail("year", err)
			}
		}
		if err := progress.Finish(); err != nil {
			return a.fail("year", err)
		}
		fmt.Fprintln(a.stdout)
	}
	report.Statistics(a.stdout, stats)
	if *months {
		fmt.Fprintln(a.stdout)
		report.MonthTable(a.stdout, stats)
	}
	report.Summary(a.stdout, stats)
	return exitOK
}

func (a *app) cmdMonth(args []string) int {
	fs := a.newFlagSet("month")
	formatFlag := fs.String("format", "text", "output format: text, json or yaml")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	format, err := report.ParseFormat(*formatFlag)
	if err != nil {
		return a.fail("month", err)
	}
	nums, err := ints(fs.Args())
	if err != nil || len(nums) != 2 {
		fmt.Fprintln(a.stderr, "usage: kalender month [--format f] <month> <year>")
		return exitUsage
	}
	month, year := nums[0], nums[1]
	if !helper.IsValidDateInput(month, year) {
		return a.fail("month", fmt.Errorf("month %d of year %d: %w", month, year, helper.ErrInvalidArgument))
	}

	svc, _, err := a.service()
	if err != nil {
		return a.fail("month", err)
	}
	info, err := svc.Month(context.Background(), month, year)
	if err != nil {
		return a.fail("month", err)
	}

	if format != report.FormatText {
		if err := report.Encode(a.stdout, format, info); err != nil {
			return a.fail("month", err)
		}
		return exitOK
	}
	report.MonthGrid(a.stdout, info)
	report.MonthAnalysis(a.stdout, info)
	return exitOK
}

func (a *app) cmdDay(args []string) int {
	fs := a.newFlagSet("day")
	formatFlag := fs.String("format", "text", "output format: text, json or yaml")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	format, err := report.ParseFormat(*formatFlag)
	if err != nil {
		return a.fail("day", err)
	}
	nums, err := ints(fs.Args())
	if err != nil || len(nums) != 3 {
		fmt.Fprintln(a.stderr, "usage: kalender day [--format f] <day> <month> <year>")
		return exitUsage
	}
	day, month, year := nums[0], nums[1], nums[2]
	if !helper.IsValidDateInput(month, year) {
		return a.fail("day", fmt.Errorf("month %d of year %d: %w", month, year, helper.ErrInvalidArgument))
	}

	svc, _, err := a.service()
	if err != nil {
		return a.fail("day", err)
	}
	d, err := svc.DayOfYear(context.Background(), day, month, year)
	if err != nil {
		return a.fail("day", err)
	}

	if format != report.FormatText {
		if err := report.Encode(a.stdout, format, d); err != nil {
			return a.fail("day", err)
		}
		return exitOK
	}
	report.DayOfYear(a.stdout, d)
	return exitOK
}

// cmdLeap gates the year like every other command unless --proleptic is
// given, in which case the rule is applied to any year.
func (a *app) cmdLeap(args []string) int {
	fs := a.newFlagSet("leap")
	proleptic := fs.Bool("proleptic", false, "accept years outside the supported range")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	nums, err := ints(fs.Args())
	if err != nil || len(nums) != 1 {
		fmt.Fprintln(a.stderr, "usage: kalender leap [--proleptic] <year>")
		return exitUsage
	}
	year := nums[0]
	if !*proleptic && !helper.IsValidDateInput(1, year) {
		return a.fail("leap", fmt.Errorf("year %d: %w", year, helper.ErrInvalidArgument))
	}
	report.LeapYear(a.stdout, year, helper.IsLeapYear(year))
	return exitOK
}
