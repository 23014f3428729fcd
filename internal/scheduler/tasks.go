package scheduler

import (
	"errors"
	"fmt"
	"sort"

	"github.com/julianstephens/daylit-engine/internal/availability"
	"github.com/julianstephens/daylit-engine/internal/constants"
	"github.com/julianstephens/daylit-engine/internal/logger"
	"github.com/julianstephens/daylit-engine/internal/models"
	"github.com/julianstephens/daylit-engine/internal/validation"
)

// ErrNoRoomForTask is returned when busy time leaves no span long enough for a
// task anywhere in the range or the overflow horizon after it. Tasks longer
// than every working window are rejected earlier by validation.
var ErrNoRoomForTask = errors.New("no room for task")

// ScheduleTasks produces one block per task, returned in input order.
//
// Tasks with a due date claim slots first (earliest due date, then priority,
// then input order); tasks without one follow by priority, then input order.
// Each task takes the earliest span that ends by its due date. When none
// exists it takes the earliest span anywhere, continuing past the range end
// for up to constants.OverflowHorizonDays days, and the block is flagged
// OverflowedDeadline if it ends after the due date.
func (s *Scheduler) ScheduleTasks(req models.ScheduleRequest, tasks []models.TaskInput) ([]models.ScheduledBlock, error) {
	if err := validation.ValidateTasks(tasks); err != nil {
		return nil, err
	}
	snap, err := prepare(req)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateTaskFit(snap, tasks); err != nil {
		return nil, err
	}

	free := snap.Free()
	var overflow []models.TimeInterval
	overflowLoaded := false

	blocks := make([]models.ScheduledBlock, len(tasks))
	for _, idx := range placementOrder(tasks) {
		task := tasks[idx]
		d := task.Duration()

		var slot models.TimeInterval
		found := false
		if task.DueDate != nil {
			slot, found = availability.EarliestFitBefore(free, d, *task.DueDate)
		}
		if !found {
			slot, found = availability.EarliestFit(free, d)
		}

		if found {
			free = availability.SubtractIntervals(free, []models.TimeInterval{slot})
		} else {
			if !overflowLoaded {
				overflow = snap.FreeAfterRange(constants.OverflowHorizonDays)
				overflowLoaded = true
			}
			slot, found = availability.EarliestFit(overflow, d)
			if !found {
				return nil, fmt.Errorf("%w %q (%d minutes)", ErrNoRoomForTask, task.ID, task.DurationMinutes)
			}
			overflow = availability.SubtractIntervals(overflow, []models.TimeInterval{slot})
			logger.Debug("Task pushed past the requested range", "task", task.ID, "start", slot.Start)
		}

		overflowed := task.DueDate != nil && slot.End.After(*task.DueDate)
		if overflowed {
			logger.Debug("Task placed after its due date", "task", task.ID, "due", *task.DueDate, "end", slot.End)
		}

		blocks[idx] = models.ScheduledBlock{
			TaskID:             task.ID,
			Start:              slot.Start.In(snap.Location),
			End:                slot.End.In(snap.Location),
			OverflowedDeadline: overflowed,
		}
	}

	return blocks, nil
}

// placementOrder returns task indices in the order tasks claim slots.
func placementOrder(tasks []models.TaskInput) []int {
	order := make([]int, len(tasks))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		ta, tb := tasks[order[a]], tasks[order[b]]
		if (ta.DueDate != nil) != (tb.DueDate != nil) {
			return ta.DueDate != nil
		}
		if ta.DueDate != nil && !ta.DueDate.Equal(*tb.DueDate) {
			return ta.DueDate.Before(*tb.DueDate)
		}
		if ta.Priority != tb.Priority {
			return ta.Priority < tb.Priority
		}
		return order[a] < order[b]
	})

	return order
}
