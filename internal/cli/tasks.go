package cli

import (
	"fmt"

	"github.com/julianstephens/daylit-engine/internal/constants"
	"github.com/julianstephens/daylit-engine/internal/models"
)

type TasksCmd struct {
	InputFlags
	JSON bool `help:"Print the scheduled blocks as JSON."`
	Save bool `help:"Store the scheduled blocks in the database."`
}

func (c *TasksCmd) Run(ctx *Context) error {
	in, err := c.load()
	if err != nil {
		return err
	}

	blocks, err := ctx.Scheduler.ScheduleTasks(in.Request, in.Tasks)
	if err != nil {
		return err
	}

	var batchID string
	if c.Save {
		if err := ctx.Store.Open(); err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		if batchID, err = ctx.Store.SaveScheduledBlocks(blocks); err != nil {
			return fmt.Errorf("failed to save scheduled blocks: %w", err)
		}
	}

	if c.JSON {
		return ctx.writeJSON(blocks)
	}

	printTaskBlocks(ctx, blocks)
	if batchID != "" {
		ctx.printf("\nSaved as batch %s\n", batchID)
	}
	return nil
}

func printTaskBlocks(ctx *Context, blocks []models.ScheduledBlock) {
	if len(blocks) == 0 {
		ctx.println("No tasks to schedule")
		return
	}

	ctx.println(headerStyle.Render(fmt.Sprintf("Scheduled %d task(s):", len(blocks))))
	late := 0
	for _, b := range blocks {
		line := fmt.Sprintf("  %s %s-%s  %s",
			dateStyle.Render(b.Start.Format(constants.DateFormat+" Mon")),
			b.Start.Format(constants.TimeFormat),
			b.End.Format(constants.TimeFormat),
			b.TaskID)
		if b.OverflowedDeadline {
			line += "  " + dangerStyle.Render("past due")
			late++
		}
		ctx.println(line)
	}
	if late > 0 {
		ctx.printf("\n%s\n", warningStyle.Render(fmt.Sprintf("%d task(s) end after their due date", late)))
	}
}
