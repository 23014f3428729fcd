package validation

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/daylit-engine/internal/availability"
	"github.com/julianstephens/daylit-engine/internal/constants"
	"github.com/julianstephens/daylit-engine/internal/models"
)

// ConflictType represents the type of output conflict
type ConflictType string

const (
	ConflictOverlappingBlocks   ConflictType = "overlapping_blocks"
	ConflictOverlapsBusyTime    ConflictType = "overlaps_busy_time"
	ConflictExceedsWakingWindow ConflictType = "exceeds_waking_window"
	ConflictDurationMismatch    ConflictType = "duration_mismatch"
	ConflictMissingBlock        ConflictType = "missing_block"
	ConflictUnknownEntity       ConflictType = "unknown_entity"
)

// Conflict represents a detected conflict in engine output
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // Task/habit IDs involved
	TimeRange   string   // Human-readable time range (if applicable)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator audits placements produced by the engine (or edited by a caller)
// against the request they were computed from.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

type placed struct {
	id       string
	interval models.TimeInterval
}

// AuditTaskBlocks checks that every task has exactly one block of the right
// length, inside a working window, clear of busy time and of other blocks.
func (v *Validator) AuditTaskBlocks(req models.ScheduleRequest, tasks []models.TaskInput, blocks []models.ScheduledBlock) (ValidationResult, error) {
	snap, err := availability.NewSnapshot(req)
	if err != nil {
		return ValidationResult{}, err
	}
	result := ValidationResult{Conflicts: []Conflict{}}

	byID := make(map[string]models.TaskInput, len(tasks))
	for _, task := range tasks {
		byID[task.ID] = task
	}

	seen := make(map[string]bool, len(blocks))
	items := make([]placed, 0, len(blocks))
	for _, block := range blocks {
		iv := block.Interval()
		task, ok := byID[block.TaskID]
		if !ok {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownEntity,
				Description: fmt.Sprintf("Block %s references unknown task %q", formatRange(iv, snap.Location), block.TaskID),
				Items:       []string{block.TaskID},
				TimeRange:   formatRange(iv, snap.Location),
			})
			continue
		}
		seen[block.TaskID] = true
		if iv.Duration() != task.Duration() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDurationMismatch,
				Description: fmt.Sprintf("Task %q is placed for %v but needs %d minutes", task.ID, iv.Duration(), task.DurationMinutes),
				Items:       []string{task.ID},
				TimeRange:   formatRange(iv, snap.Location),
			})
		}
		items = append(items, placed{id: block.TaskID, interval: iv})
	}

	for _, task := range tasks {
		if !seen[task.ID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingBlock,
				Description: fmt.Sprintf("Task %q has no scheduled block", task.ID),
				Items:       []string{task.ID},
			})
		}
	}

	result.Conflicts = append(result.Conflicts, auditPlacements(snap, items)...)
	return result, nil
}

// AuditHabitBlocks checks occurrence lengths, working windows, busy time and
// cross-habit overlap.
func (v *Validator) AuditHabitBlocks(req models.ScheduleRequest, habits []models.HabitInput, blocks []models.HabitSuggestionBlock) (ValidationResult, error) {
	snap, err := availability.NewSnapshot(req)
	if err != nil {
		return ValidationResult{}, err
	}
	result := ValidationResult{Conflicts: []Conflict{}}

	byID := make(map[string]models.HabitInput, len(habits))
	for _, habit := range habits {
		byID[habit.ID] = habit
	}

	items := make([]placed, 0, len(blocks))
	for _, block := range blocks {
		iv := block.Interval()
		habit, ok := byID[block.HabitID]
		if !ok {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownEntity,
				Description: fmt.Sprintf("Suggestion %s references unknown habit %q", formatRange(iv, snap.Location), block.HabitID),
				Items:       []string{block.HabitID},
				TimeRange:   formatRange(iv, snap.Location),
			})
			continue
		}
		if iv.Duration() != habit.Duration() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDurationMismatch,
				Description: fmt.Sprintf("Habit %q occurrence lasts %v but needs %d minutes", habit.ID, iv.Duration(), habit.DurationMinutes),
				Items:       []string{habit.ID},
				TimeRange:   formatRange(iv, snap.Location),
			})
		}
		items = append(items, placed{id: block.HabitID, interval: iv})
	}

	result.Conflicts = append(result.Conflicts, auditPlacements(snap, items)...)
	return result, nil
}

func auditPlacements(snap *availability.Snapshot, items []placed) []Conflict {
	var conflicts []Conflict

	for _, item := range items {
		window, ok := snap.Window(item.interval.Start)
		if !item.interval.Valid() || !ok || !window.Contains(item.interval) {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictExceedsWakingWindow,
				Description: fmt.Sprintf("%q at %s is outside the working window", item.id, formatRange(item.interval, snap.Location)),
				Items:       []string{item.id},
				TimeRange:   formatRange(item.interval, snap.Location),
			})
		}
		for _, busy := range snap.Busy {
			if item.interval.Overlaps(busy) {
				conflicts = append(conflicts, Conflict{
					Type:        ConflictOverlapsBusyTime,
					Description: fmt.Sprintf("%q at %s overlaps busy time %s", item.id, formatRange(item.interval, snap.Location), formatRange(busy, snap.Location)),
					Items:       []string{item.id},
					TimeRange:   formatRange(item.interval, snap.Location),
				})
			}
		}
	}

	sorted := make([]placed, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].interval.Start.Before(sorted[j].interval.Start)
	})
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted) && sorted[j].interval.Start.Before(sorted[i].interval.End); j++ {
			conflicts = append(conflicts, Conflict{
				Type: ConflictOverlappingBlocks,
				Description: fmt.Sprintf("%q (%s) overlaps %q (%s)",
					sorted[i].id, formatRange(sorted[i].interval, snap.Location),
					sorted[j].id, formatRange(sorted[j].interval, snap.Location)),
				Items:     []string{sorted[i].id, sorted[j].id},
				TimeRange: formatRange(sorted[j].interval, snap.Location),
			})
		}
	}

	return conflicts
}

func formatRange(iv models.TimeInterval, loc *time.Location) string {
	start, end := iv.Start.In(loc), iv.End.In(loc)
	return fmt.Sprintf("%s %s-%s", start.Format(constants.DateFormat), start.Format(constants.TimeFormat), end.Format(constants.TimeFormat))
}
