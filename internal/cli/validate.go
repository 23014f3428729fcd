package cli

import (
	"github.com/julianstephens/daylit-engine/internal/validation"
)

// ValidateCmd checks a request file and audits what the engine would produce
// for it.
type ValidateCmd struct {
	InputFlags
}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	in, err := cmd.load()
	if err != nil {
		return err
	}

	ctx.println("Validating request...")
	if err := validation.ValidateRequest(in.Request); err != nil {
		return err
	}
	if err := validation.ValidateTasks(in.Tasks); err != nil {
		return err
	}
	if err := validation.ValidateHabits(in.Habits); err != nil {
		return err
	}

	validator := validation.New()
	var conflicts []validation.Conflict

	if len(in.Tasks) > 0 {
		ctx.println("Auditing task placement...")
		blocks, err := ctx.Scheduler.ScheduleTasks(in.Request, in.Tasks)
		if err != nil {
			return err
		}
		result, err := validator.AuditTaskBlocks(in.Request, in.Tasks, blocks)
		if err != nil {
			return err
		}
		conflicts = append(conflicts, result.Conflicts...)
	}

	if len(in.Habits) > 0 {
		ctx.println("Auditing habit placement...")
		blocks, err := ctx.Scheduler.PlaceHabits(in.Request, in.Habits)
		if err != nil {
			return err
		}
		result, err := validator.AuditHabitBlocks(in.Request, in.Habits, blocks)
		if err != nil {
			return err
		}
		conflicts = append(conflicts, result.Conflicts...)
	}

	combined := validation.ValidationResult{Conflicts: conflicts}
	ctx.println()
	report := combined.FormatReport()
	if combined.HasConflicts() {
		report = dangerStyle.Render(report)
	} else {
		report = okStyle.Render(report)
	}
	ctx.println(report)
	return nil
}
