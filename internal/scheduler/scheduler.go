// Package scheduler places tasks and habit occurrences into a user's free time.
//
// Both placement operations are pure functions of their inputs: a Scheduler
// holds no state and may be shared between goroutines.
package scheduler

import (
	"github.com/julianstephens/daylit-engine/internal/availability"
	"github.com/julianstephens/daylit-engine/internal/models"
	"github.com/julianstephens/daylit-engine/internal/validation"
)

type Scheduler struct{}

func New() *Scheduler {
	return &Scheduler{}
}

// FreeSlots returns the request's free time (working windows minus busy events).
func (s *Scheduler) FreeSlots(req models.ScheduleRequest) ([]models.TimeInterval, error) {
	snap, err := prepare(req)
	if err != nil {
		return nil, err
	}
	free := snap.Free()
	for i := range free {
		free[i] = free[i].In(snap.Location)
	}
	return free, nil
}

func prepare(req models.ScheduleRequest) (*availability.Snapshot, error) {
	if err := validation.ValidateRequest(req); err != nil {
		return nil, err
	}
	return availability.NewSnapshot(req)
}
