package kalender

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/thansetan/kalender/helper"
	"github.com/thansetan/kalender/model"
)

type Renderer interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

type controller struct {
	tmpl   Renderer
	logger *slog.Logger
	svc    *Service
}

func NewController(svc *Service, tmpl Renderer, logger *slog.Logger) *controller {
	return &controller{tmpl, logger, svc}
}

func intVar(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(mux.Vars(r)[name])
	return n, err == nil
}

func (c *controller) GetYear(w http.ResponseWriter, r *http.Request) {
	year, ok := intVar(r, "year")
	if !ok {
		c.FourOFour(w, r)
		return
	}
	stats, err := c.svc.Year(r.Context(), year)
	if errors.Is(err, helper.ErrInvalidArgument) {
		c.FourOFour(w, r)
		return
	}
	if err != nil {
		c.logger.ErrorContext(r.Context(), "failed to get year statistics!", "error", err, "year", year)
		helper.OurFault(w)
		return
	}

	data := model.Data{Year: year, Statistics: stats}
	if helper.ValidateYear(year-1) == nil {
		data.PrevYear = year - 1
	}
	if helper.ValidateYear(year+1) == nil {
		data.NextYear = year + 1
	}
	c.render(w, r, "year", data)
}

func (c *controller) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, ok := intVar(r, "year")
	if !ok {
		c.FourOFour(w, r)
		return
	}
	month, ok := intVar(r, "month")
	if !ok {
		c.FourOFour(w, r)
		return
	}
	info, err := c.svc.Month(r.Context(), month, year)
	if errors.Is(err, helper.ErrInvalidArgument) {
		c.FourOFour(w, r)
		return
	}
	if err != nil {
		c.logger.ErrorContext(r.Context(), "failed to get month!", "error", err, "year", year, "month", month)
		helper.OurFault(w)
		return
	}
	c.render(w, r, "month", model.Data{Year: year, Month: month, MonthInfo: info})
}

func (c *controller) GetYearJSON(w http.ResponseWriter, r *http.Request) {
	year, _ := intVar(r, "year")
	stats, err := c.svc.Year(r.Context(), year)
	c.writeJSON(w, r, stats, err)
}

func (c *controller) GetMonthJSON(w http.ResponseWriter, r *http.Request) {
	year, _ := intVar(r, "year")
	month, _ := intVar(r, "month")
	info, err := c.svc.Month(r.Context(), month, year)
	c.writeJSON(w, r, info, err)
}

func (c *controller) GetDayJSON(w http.ResponseWriter, r *http.Request) {
	year, _ := intVar(r, "year")
	month, _ := intVar(r, "month")
	day, _ := intVar(r, "day")
	d, err := c.svc.DayOfYear(r.Context(), day, month, year)
	c.writeJSON(w, r, d, err)
}

func (c *controller) GetICal(w http.ResponseWriter, r *http.Request) {
	year, ok := intVar(r, "year")
	if !ok {
		c.FourOFour(w, r)
		return
	}
	stats, err := c.svc.Year(r.Context(), year)
	if errors.Is(err, helper.ErrInvalidArgument) {
		c.FourOFour(w, r)
		return
	}
	if err != nil {
		c.logger.ErrorContext(r.Context(), "failed to get year statistics!", "error", err, "year", year)
		helper.OurFault(w)
		return
	}

	var buf bytes.Buffer
	if err := WriteICal(&buf, stats); err != nil {
		c.logger.ErrorContext(r.Context(), "failed to write iCalendar", "error", err, "year", year)
		helper.OurFault(w)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=kalender-"+strconv.Itoa(year)+".ics")
	_, _ = w.Write(buf.Bytes())
}

func (c *controller) writeJSON(w http.ResponseWriter, r *http.Request, data any, err error) {
	if errors.Is(err, helper.ErrInvalidArgument) {
		helper.WriteMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		c.logger.ErrorContext(r.Context(), "failed to compute calendar data", "error", err, "remote_addr", r.RemoteAddr)
		helper.OurFault(w)
		return
	}
	if err := helper.WriteJSONWithETag(w, r, data); err != nil {
		c.logger.ErrorContext(r.Context(), "failed to write response", "error", err, "remote_addr", r.RemoteAddr)
	}
}

// render executes into a buffer first so a template error can still turn
// into a 500.
func (c *controller) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := c.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		c.logger.ErrorContext(r.Context(), "failed to execute template", "template", name, "error", err.Error(), "remote_addr", r.RemoteAddr)
		helper.OurFault(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (c controller) FourOFour(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	err := c.tmpl.ExecuteTemplate(w, "404", nil)
	if err != nil {
		c.logger.ErrorContext(r.Context(), "failed to execute 404 template", "error", err.Error(), "remote_addr", r.RemoteAddr)
	}
}
