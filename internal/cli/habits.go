package cli

import (
	"fmt"

	"github.com/julianstephens/daylit-engine/internal/constants"
	"github.com/julianstephens/daylit-engine/internal/models"
)

type HabitsCmd struct {
	InputFlags
	JSON bool `help:"Print the suggestions as JSON."`
	Save bool `help:"Store the suggestions for later review."`
}

func (c *HabitsCmd) Run(ctx *Context) error {
	in, err := c.load()
	if err != nil {
		return err
	}

	blocks, err := ctx.Scheduler.PlaceHabits(in.Request, in.Habits)
	if err != nil {
		return err
	}

	var batchID string
	if c.Save {
		if err := ctx.Store.Open(); err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		if batchID, err = ctx.Store.SaveHabitSuggestions(blocks); err != nil {
			return fmt.Errorf("failed to save habit suggestions: %w", err)
		}
	}

	if c.JSON {
		return ctx.writeJSON(blocks)
	}

	if len(blocks) == 0 {
		ctx.println("No habit occurrences could be placed")
		return nil
	}

	ctx.println(headerStyle.Render(fmt.Sprintf("Suggested %d habit occurrence(s):", len(blocks))))
	for _, b := range blocks {
		ctx.println(habitLine(b))
	}
	if batchID != "" {
		ctx.printf("\nSaved as batch %s. Review with 'daylit-engine suggestions list'.\n", batchID)
	}
	return nil
}

func habitLine(b models.HabitSuggestionBlock) string {
	line := fmt.Sprintf("  %s %s-%s  %s",
		dateStyle.Render(b.Start.Format(constants.DateFormat+" Mon")),
		b.Start.Format(constants.TimeFormat),
		b.End.Format(constants.TimeFormat),
		b.HabitID)
	if b.Reason != "" {
		line += "  " + warningStyle.Render(b.Reason)
	}
	return line
}
