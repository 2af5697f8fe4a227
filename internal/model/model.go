package model

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used for completion dates, due dates
// and the rollover marker.
const DateLayout = "2006-01-02"

// Priority represents task and goal priority levels
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Value returns the fixed sort rank: Low=1, Medium=2, High=3. Unknown values rank 0.
func (p Priority) Value() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p.Value() > 0
}

// ParsePriority accepts any casing of low/medium/high and the l/m/h shorthands.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "Low", "low", "LOW", "l", "L":
		return PriorityLow, nil
	case "Medium", "medium", "MEDIUM", "m", "M", "med":
		return PriorityMedium, nil
	case "High", "high", "HIGH", "h", "H":
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("unknown priority %q (want Low, Medium or High)", s)
}

// Frequency represents how often a habit should be done
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// Valid reports whether f is daily or weekly.
func (f Frequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

// Category is an optional habit grouping.
type Category string

const (
	CategoryNone         Category = ""
	CategoryHealth       Category = "health"
	CategoryMindfulness  Category = "mindfulness"
	CategoryProductivity Category = "productivity"
	CategoryLearning     Category = "learning"
	CategorySocial       Category = "social"
	CategoryOther        Category = "other"
)

// Categories lists the selectable habit categories in display order.
var Categories = []Category{
	CategoryHealth,
	CategoryMindfulness,
	CategoryProductivity,
	CategoryLearning,
	CategorySocial,
	CategoryOther,
}

// Valid reports whether c is empty or a known category.
func (c Category) Valid() bool {
	if c == CategoryNone {
		return true
	}
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// GoalType distinguishes goals cleared by daily rollover from those kept across it.
type GoalType string

const (
	GoalDaily  GoalType = "daily"
	GoalWeekly GoalType = "weekly"
)

// Valid reports whether t is daily or weekly.
func (t GoalType) Valid() bool {
	return t == GoalDaily || t == GoalWeekly
}

// Habit represents a trackable habit.
//
// CompletedToday implies today's date is in CompletedDates, and CompletedDates
// never holds the same date twice.
type Habit struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Frequency      Frequency `json:"frequency"`
	Streak         int       `json:"streak"`
	CompletedToday bool      `json:"completedToday"`
	CompletedDates []string  `json:"completedDates"`
	LastCompleted  string    `json:"lastCompleted,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	Category       Category  `json:"category,omitempty"`
}

// Clone returns a copy of h that shares no slices with it.
func (h Habit) Clone() Habit {
	out := h
	out.CompletedDates = append([]string{}, h.CompletedDates...)
	return out
}

// HasDate reports whether date is recorded as a completion.
func (h Habit) HasDate(date string) bool {
	for _, d := range h.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}

// Task represents a single todo item
type Task struct {
	ID             string   `json:"id"`
	Text           string   `json:"text"`
	Completed      bool     `json:"completed"`
	Priority       Priority `json:"priority"`
	DueDate        string   `json:"dueDate,omitempty"`
	IsRepeating    bool     `json:"isRepeating"`
	CompletedToday bool     `json:"completedToday,omitempty"`
}

// Goal is a daily or weekly objective.
type Goal struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        GoalType   `json:"type"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Priority    Priority   `json:"priority"`
}

// Clone returns a copy of g with its own CompletedAt.
func (g Goal) Clone() Goal {
	out := g
	if g.CompletedAt != nil {
		t := *g.CompletedAt
		out.CompletedAt = &t
	}
	return out
}

// JournalEntry is a dated free-text note.
type JournalEntry struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Affirmation is a short phrase shown at random.
type Affirmation struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Settings holds the scalar records: the dark-mode flag and the rollover marker.
type Settings struct {
	DarkMode  *bool  `json:"darkMode,omitempty"`
	LastReset string `json:"lastReset,omitempty"`
}

// Date formats t as a calendar date in t's location.
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, s, loc)
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
