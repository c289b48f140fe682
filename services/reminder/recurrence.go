package reminder

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// NextOccurrence computes the first occurrence of pattern strictly after
// the given time. Patterns are either one of the shorthand tokens
// (hourly, daily, weekly, monthly) or a standard five-field cron spec.
func NextOccurrence(pattern string, after time.Time) (time.Time, error) {
	switch pattern {
	case "hourly":
		return after.Add(time.Hour), nil
	case "daily":
		return after.AddDate(0, 0, 1), nil
	case "weekly":
		return after.AddDate(0, 0, 7), nil
	case "monthly":
		return after.AddDate(0, 1, 0), nil
	}

	sched, err := cron.ParseStandard(pattern)
	if err != nil {
		return time.Time{}, fmt.Errorf("unsupported recurrence pattern %q: %w", pattern, err)
	}
	return sched.Next(after), nil
}
