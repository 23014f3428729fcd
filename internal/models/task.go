package models

import "time"

type TaskInput struct {
	ID              string     `json:"id"`
	DurationMinutes int        `json:"durationMinutes"`
	Priority        int        `json:"priority"` // 1 = highest, 3 = lowest
	DueDate         *time.Time `json:"dueDate,omitempty"`
}

// Duration returns the task length as a time.Duration.
func (t TaskInput) Duration() time.Duration {
	return time.Duration(t.DurationMinutes) * time.Minute
}

// ScheduledBlock is the placement of a single task.
type ScheduledBlock struct {
	TaskID             string    `json:"taskId"`
	Start              time.Time `json:"start"`
	End                time.Time `json:"end"`
	OverflowedDeadline bool      `json:"overflowedDeadline"`
}

func (b ScheduledBlock) Interval() TimeInterval {
	return TimeInterval{Start: b.Start, End: b.End}
}
