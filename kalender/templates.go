package kalender

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
	"github.com/thansetan/kalender/helper"
	"github.com/thansetan/kalender/model"
	"github.com/thansetan/kalender/report"
)

var funcs = template.FuncMap{
	"monthName":    report.MonthName,
	"weekdayName":  report.WeekdayName,
	"weekdayShort": report.WeekdayShort,
	"isWeekend":    helper.IsWeekend,
	"weekdays": func() []int {
		return []int{0, 1, 2, 3, 4, 5, 6}
	},
	"ordinal": humanize.Ordinal,
	"percent": func(f float64) string {
		return fmt.Sprintf("%.1f%%", f)
	},
	"firstDayOfYear": func(m model.MonthInfo) int {
		n, _ := DayOfYear(1, m.Month, m.Year)
		return n
	},
	"minYear": func() int { return helper.MinYear },
	"maxYear": func() int { return helper.MaxYear },
}

// Templates is a reloadable template set.
type Templates struct {
	mu   sync.RWMutex
	fsys fs.FS
	tmpl *template.Template
}

func NewTemplates(fsys fs.FS) (*Templates, error) {
	t := &Templates{fsys: fsys}
	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Templates) Reload() error {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(t.fsys, "*.html")
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	t.mu.Lock()
	t.tmpl = tmpl
	t.mu.Unlock()
	return nil
}

func (t *Templates) ExecuteTemplate(w io.Writer, name string, data any) error {
	t.mu.RLock()
	tmpl := t.tmpl
	t.mu.RUnlock()
	return tmpl.ExecuteTemplate(w, name, data)
}

// Watch reparses the templates whenever a file in dir changes, until ctx is
// done. A failed reparse keeps the previous templates.
func (t *Templates) Watch(ctx context.Context, dir string, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.InfoContext(ctx, "watching templates", "dir", dir)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := t.Reload(); err != nil {
				logger.ErrorContext(ctx, "failed to reload templates!", "error", err, "file", event.Name)
				continue
			}
			logger.InfoContext(ctx, "templates reloaded", "file", event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.ErrorContext(ctx, "template watcher error", "error", err)
		case <-ctx.Done():
			return nil
		}
	}
}

// LoadTemplates uses the templates in dir when set, the embedded ones
// otherwise.
func LoadTemplates(dir string, embedded fs.FS) (*Templates, error) {
	if dir == "" {
		return NewTemplates(embedded)
	}
	return NewTemplates(os.DirFS(dir))
}
