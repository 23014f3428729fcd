// Package config loads planning request files for the command line.
//
// A request file holds the preferences, the planning range, calendar events and
// the tasks or habits to place. Times are plain strings resolved in the
// request's time zone, so the same file can be written by hand or by a
// calendar export.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/daylit-engine/internal/constants"
	"github.com/julianstephens/daylit-engine/internal/models"
	"github.com/julianstephens/daylit-engine/internal/utils"
	"github.com/julianstephens/daylit-engine/internal/validation"
)

// File is the on-disk request layout.
type File struct {
	Preferences models.UserPreferences `json:"preferences"`
	RangeStart  string                 `json:"rangeStart"`
	RangeEnd    string                 `json:"rangeEnd"`
	Events      []models.CalendarEvent `json:"events,omitempty"`
	Tasks       []TaskEntry            `json:"tasks,omitempty"`
	Habits      []models.HabitInput    `json:"habits,omitempty"`
}

// TaskEntry is a task as written in a request file. DueDate may be RFC3339, a
// zone-less datetime or a bare date.
type TaskEntry struct {
	ID              string `json:"id"`
	DurationMinutes int    `json:"durationMinutes"`
	Priority        int    `json:"priority,omitempty"`
	DueDate         string `json:"dueDate,omitempty"`
}

// Input is a resolved request ready for the scheduler.
type Input struct {
	Request models.ScheduleRequest
	Tasks   []models.TaskInput
	Habits  []models.HabitInput
}

// Load reads and resolves the request file at path. The format is chosen by
// extension: .yaml and .yml are YAML, anything else is JSON.
func Load(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}
	f, err := Parse(path, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return f.Resolve()
}

// Parse decodes data strictly. Unknown fields and trailing documents are errors.
func Parse(path string, data []byte) (*File, error) {
	jb, err := toJSON(path, data)
	if err != nil {
		return nil, err
	}

	var f File
	dec := json.NewDecoder(bytes.NewReader(jb))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, errors.New("trailing data after request")
		}
		return nil, err
	}
	return &f, nil
}

// ApplyDefaults fills in missing preferences and task priorities.
func (f *File) ApplyDefaults() {
	if f.Preferences.TimeZone == "" {
		f.Preferences.TimeZone = constants.DefaultTimezone
	}
	if f.Preferences.WakeTime == "" {
		f.Preferences.WakeTime = constants.DefaultWakeTime
	}
	if f.Preferences.SleepTime == "" {
		f.Preferences.SleepTime = constants.DefaultSleepTime
	}
	for i := range f.Tasks {
		if f.Tasks[i].Priority == 0 {
			f.Tasks[i].Priority = constants.DefaultPriority
		}
	}
}

// Resolve applies defaults and parses every time string in the request zone.
// A bare date as range end or due date means the end of that day. All parse
// failures are reported together as validation errors.
func (f *File) Resolve() (*Input, error) {
	f.ApplyDefaults()

	loc, err := utils.LoadLocation(f.Preferences.TimeZone)
	if err != nil {
		return nil, &validation.Error{Field: "preferences.timeZone", Value: f.Preferences.TimeZone, Err: validation.ErrInvalidTimezone}
	}

	var errs []error
	in := &Input{
		Request: models.ScheduleRequest{
			Preferences: f.Preferences,
			Events:      f.Events,
		},
		Habits: f.Habits,
	}

	if in.Request.RangeStart, err = utils.ParseInstant(f.RangeStart, loc); err != nil {
		errs = append(errs, &validation.Error{Field: "rangeStart", Value: f.RangeStart, Err: validation.ErrInvalidDate})
	}
	if in.Request.RangeEnd, err = utils.ParseInstantOrEndOfDay(f.RangeEnd, loc); err != nil {
		errs = append(errs, &validation.Error{Field: "rangeEnd", Value: f.RangeEnd, Err: validation.ErrInvalidDate})
	}

	in.Tasks = make([]models.TaskInput, 0, len(f.Tasks))
	for i, entry := range f.Tasks {
		task := models.TaskInput{
			ID:              entry.ID,
			DurationMinutes: entry.DurationMinutes,
			Priority:        entry.Priority,
		}
		if entry.DueDate != "" {
			due, err := utils.ParseInstantOrEndOfDay(entry.DueDate, loc)
			if err != nil {
				errs = append(errs, &validation.Error{Field: fmt.Sprintf("tasks[%d].dueDate", i), Value: entry.DueDate, Err: validation.ErrInvalidDate})
			} else {
				task.DueDate = &due
			}
		}
		in.Tasks = append(in.Tasks, task)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return in, nil
}
