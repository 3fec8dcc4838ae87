package roadmap

import (
	"math"
	"strings"
)

// Status tracks how far along a roadmap item is.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// ParseStatus normalizes value and reports whether it is a known status.
func ParseStatus(value string) (Status, bool) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	switch status {
	case StatusTodo, StatusInProgress, StatusDone:
		return status, true
	default:
		return status, false
	}
}

// Next cycles todo -> in_progress -> done -> todo. Unknown statuses restart at todo.
func (s Status) Next() Status {
	switch s {
	case StatusTodo:
		return StatusInProgress
	case StatusInProgress:
		return StatusDone
	default:
		return StatusTodo
	}
}

func (s Status) String() string {
	return string(s)
}

// Progress returns the completion percentage of items in [0,100]. Done items
// count fully and in-progress items count half. Rounding is half away from
// zero (math.Round), which is half-up for the non-negative values seen here.
// An empty collection is 0.
func Progress(items []*Item) int {
	total := 0
	var score float64
	for _, item := range items {
		if item == nil {
			continue
		}
		total++
		switch item.Status {
		case StatusDone:
			score++
		case StatusInProgress:
			score += 0.5
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(score / float64(total) * 100))
}

// DeriveStatus maps a completion percentage to the container status.
func DeriveStatus(percent int) Status {
	switch {
	case percent >= 100:
		return StatusDone
	case percent > 0:
		return StatusInProgress
	default:
		return StatusTodo
	}
}

// CurrentItem returns the first in-progress item in the given order, or nil.
func CurrentItem(items []*Item) *Item {
	for _, item := range items {
		if item != nil && item.Status == StatusInProgress {
			return item
		}
	}
	return nil
}
