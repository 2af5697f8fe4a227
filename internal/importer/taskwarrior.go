package importer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"productivelife/internal/model"
	"productivelife/internal/storage"
)

// Taskwarrior reads `task export` output, either a JSON array or one object
// per line.
type Taskwarrior struct{}

type taskwarriorTask struct {
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Due         string `json:"due"`
	Recur       string `json:"recur"`
	UUID        string `json:"uuid"`
}

const maxNDJSONLineBytes = 4 << 20

var errEmptyInput = errors.New("empty input")

// Name returns the importer name.
func (t *Taskwarrior) Name() string {
	return "taskwarrior"
}

// Parse reads tasks, skipping deleted ones and recurrence templates.
func (t *Taskwarrior) Parse(reader io.Reader) ([]Item, int, error) {
	br := bufio.NewReader(reader)
	prefix, first, err := readFirstNonSpace(br)
	if err != nil {
		if err == io.EOF {
			return nil, 0, errEmptyInput
		}
		return nil, 0, fmt.Errorf("failed to read input: %w", err)
	}

	var raw []taskwarriorTask
	r := io.MultiReader(bytes.NewReader(prefix), br)
	if first == '[' {
		raw, err = decodeJSONArray(r)
	} else {
		raw, err = decodeNDJSON(r)
	}
	if err != nil {
		return nil, 0, err
	}

	var (
		items   []Item
		skipped int
	)
	for _, tw := range raw {
		item, ok := itemFromTaskwarrior(tw)
		if !ok {
			skipped++
			continue
		}
		items = append(items, item)
	}
	return items, skipped, nil
}

func readFirstNonSpace(r *bufio.Reader) ([]byte, byte, error) {
	var prefix []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			return prefix, 0, err
		}
		prefix = append(prefix, b)
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return prefix, b, nil
	}
}

func decodeJSONArray(r io.Reader) ([]taskwarriorTask, error) {
	dec := json.NewDecoder(r)
	if tok, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to parse JSON array: %w", err)
	} else if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, errors.New("failed to parse JSON array: expected '['")
	}

	var tasks []taskwarriorTask
	for n := 1; dec.More(); n++ {
		var tw taskwarriorTask
		if err := dec.Decode(&tw); err != nil {
			return nil, fmt.Errorf("failed to decode task %d: %w", n, err)
		}
		tasks = append(tasks, tw)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to parse JSON array: %w", err)
	}
	return tasks, nil
}

func decodeNDJSON(r io.Reader) ([]taskwarriorTask, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxNDJSONLineBytes)

	var (
		tasks  []taskwarriorTask
		lineNo int
		seen   bool
	)
	for sc.Scan() {
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		seen = true
		var tw taskwarriorTask
		if err := json.Unmarshal(line, &tw); err != nil {
			return nil, fmt.Errorf("invalid JSON on line %d: %w", lineNo, err)
		}
		tasks = append(tasks, tw)
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("taskwarrior NDJSON line %d exceeds %d bytes", lineNo+1, maxNDJSONLineBytes)
		}
		return nil, fmt.Errorf("failed to read NDJSON: %w", err)
	}
	if !seen {
		return nil, errEmptyInput
	}
	return tasks, nil
}

func itemFromTaskwarrior(tw taskwarriorTask) (Item, bool) {
	// "recurring" rows are templates; their pending children carry the work.
	if tw.Status == "deleted" || tw.Status == "recurring" {
		return Item{}, false
	}
	text := strings.TrimSpace(tw.Description)
	if text == "" {
		return Item{}, false
	}

	item := Item{
		Task: storage.NewTask{
			Text:        text,
			Priority:    mapTaskwarriorPriority(tw.Priority),
			IsRepeating: strings.EqualFold(strings.TrimSpace(tw.Recur), "daily"),
		},
		Done: tw.Status == "completed",
	}
	if due := parseTaskwarriorDate(tw.Due); due != nil {
		item.Task.DueDate = model.Date(*due)
	}
	return item, true
}

// mapTaskwarriorPriority maps H/M/L; no priority falls back to the store default.
func mapTaskwarriorPriority(priority string) model.Priority {
	switch strings.ToUpper(strings.TrimSpace(priority)) {
	case "H":
		return model.PriorityHigh
	case "M":
		return model.PriorityMedium
	case "L":
		return model.PriorityLow
	default:
		return ""
	}
}

var taskwarriorDateLayouts = []string{
	"20060102T150405Z",
	"20060102T150405",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTaskwarriorDate parses ISO 8601 basic format (20140928T211124Z) and a
// few extended variants, returning local time.
func parseTaskwarriorDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range taskwarriorDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			local := t.Local()
			return &local
		}
	}
	return nil
}
