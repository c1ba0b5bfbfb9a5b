package tasklist

import (
	"fmt"

	"taskman/internal/service"
)

// Filter restricts the visible subset of the collection. It never
// alters the underlying collection or its order.
type Filter int

const (
	// FilterAll shows every task.
	FilterAll Filter = iota

	// FilterCompleted shows only completed tasks.
	FilterCompleted

	// FilterPending shows only tasks not yet completed.
	FilterPending
)

// ParseFilter parses a filter name. Valid names are "all", "completed"
// and "pending"; the empty string means FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch s {
	case "", "all":
		return FilterAll, nil
	case "completed":
		return FilterCompleted, nil
	case "pending":
		return FilterPending, nil
	default:
		return FilterAll, fmt.Errorf("invalid filter: %s", s)
	}
}

func (f Filter) String() string {
	switch f {
	case FilterCompleted:
		return "completed"
	case FilterPending:
		return "pending"
	default:
		return "all"
	}
}

// Match reports whether a task is visible under the filter.
func (f Filter) Match(t service.Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterPending:
		return !t.Completed
	default:
		return true
	}
}

// Next cycles to the next filter, wrapping back to FilterAll.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterCompleted
	case FilterCompleted:
		return FilterPending
	default:
		return FilterAll
	}
}
