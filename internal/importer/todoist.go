package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"productivelife/internal/model"
	"productivelife/internal/storage"
)

// Todoist reads Todoist CSV backups.
type Todoist struct{}

// Name returns the importer name.
func (t *Todoist) Name() string {
	return "todoist"
}

// Parse reads task rows from a Todoist CSV. Notes and sections are counted
// as skipped.
func (t *Todoist) Parse(reader io.Reader) ([]Item, int, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		cols[strings.ToUpper(strings.TrimSpace(col))] = i
	}
	for _, col := range []string{"TYPE", "CONTENT"} {
		if _, ok := cols[col]; !ok {
			return nil, 0, fmt.Errorf("missing required column: %s", col)
		}
	}

	field := func(record []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var (
		items   []Item
		skipped int
	)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		if !strings.EqualFold(field(record, "TYPE"), "task") {
			skipped++
			continue
		}
		text := field(record, "CONTENT")
		if text == "" {
			skipped++
			continue
		}

		item := Item{Task: storage.NewTask{
			Text:     text,
			Priority: mapTodoistPriority(field(record, "PRIORITY")),
		}}
		date := field(record, "DATE")
		if due := parseTodoistDate(date); due != nil {
			item.Task.DueDate = model.Date(*due)
		}
		item.Task.IsRepeating = isDailyRecurrence(date)
		items = append(items, item)
	}
	return items, skipped, nil
}

// mapTodoistPriority converts Todoist's 1 (urgent) to 4 (normal) scale.
// Anything else is left empty so the store default applies.
func mapTodoistPriority(priority string) model.Priority {
	switch strings.TrimSpace(priority) {
	case "1", "2":
		return model.PriorityHigh
	case "3":
		return model.PriorityMedium
	case "4":
		return model.PriorityLow
	default:
		return ""
	}
}

var todoistDateLayouts = []string{
	"2006-01-02",
	"Jan 2 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"01/02/2006",
}

func parseTodoistDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range todoistDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t
		}
	}
	return nil
}

// isDailyRecurrence recognizes Todoist's "every day" style due strings.
func isDailyRecurrence(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "every day", "everyday", "daily", "every 1 day":
		return true
	}
	return false
}
