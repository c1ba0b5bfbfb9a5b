package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"taskman/internal/service"
	"taskman/internal/tasklist"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// resolveTask resolves a task reference against a loaded collection.
// An all-digit reference is a 1-based position in list order, as
// printed by the list command; anything else is taken as a raw task id.
func resolveTask(mgr *tasklist.Manager, ref string) (service.Task, error) {
	if ref == "" {
		return service.Task{}, ErrTaskRefRequired
	}

	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err != nil || num < 1 {
			return service.Task{}, fmt.Errorf("task number out of range: %s", ref)
		}
		tasks := mgr.Tasks()
		if num > len(tasks) {
			return service.Task{}, fmt.Errorf("task number out of range: %d", num)
		}
		return tasks[num-1], nil
	}

	if t, ok := mgr.Get(ref); ok {
		return t, nil
	}
	return service.Task{}, fmt.Errorf("task not found: %s", ref)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
