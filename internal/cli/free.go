package cli

import (
	"fmt"

	"github.com/julianstephens/daylit-engine/internal/constants"
)

type FreeCmd struct {
	InputFlags
	JSON bool `help:"Print the free slots as JSON."`
}

func (c *FreeCmd) Run(ctx *Context) error {
	in, err := c.load()
	if err != nil {
		return err
	}

	free, err := ctx.Scheduler.FreeSlots(in.Request)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.writeJSON(free)
	}

	if len(free) == 0 {
		ctx.println("No free time in range")
		return nil
	}

	ctx.println(headerStyle.Render(fmt.Sprintf("Free time (%d slots):", len(free))))
	for _, slot := range free {
		ctx.printf("  %s %s-%s  %s\n",
			dateStyle.Render(slot.Start.Format(constants.DateFormat+" Mon")),
			slot.Start.Format(constants.TimeFormat),
			slot.End.Format(constants.TimeFormat),
			formatMinutes(int(slot.Duration().Minutes())))
	}
	return nil
}

// formatMinutes renders a duration as "1h30m" or "45m".
func formatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	if m%60 == 0 {
		return fmt.Sprintf("%dh", m/60)
	}
	return fmt.Sprintf("%dh%02dm", m/60, m%60)
}
