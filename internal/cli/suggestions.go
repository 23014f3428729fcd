package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daylit-engine/internal/models"
	"github.com/julianstephens/daylit-engine/internal/tui"
)

type SuggestionsListCmd struct {
	Status string `help:"Only show suggestions with this status (proposed, accepted, rejected)."`
	JSON   bool   `help:"Print the suggestions as JSON."`
}

func (c *SuggestionsListCmd) Run(ctx *Context) error {
	status := models.SuggestionStatus(c.Status)
	if status != "" && !status.Valid() {
		return fmt.Errorf("unknown status %q", c.Status)
	}
	if err := ctx.Store.Open(); err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	suggestions, err := ctx.Store.ListHabitSuggestions(status)
	if err != nil {
		return fmt.Errorf("failed to list suggestions: %w", err)
	}
	if c.JSON {
		return ctx.writeJSON(suggestions)
	}

	if len(suggestions) == 0 {
		ctx.println("No suggestions found")
		return nil
	}

	ctx.println(headerStyle.Render("Habit suggestions:"))
	for _, s := range suggestions {
		status := string(s.Status)
		ctx.printf("%s  [%s]  %s\n", habitLine(s.HabitSuggestionBlock), statusStyle(status).Render(status), s.ID)
	}
	return nil
}

type SuggestionsAcceptCmd struct {
	ID string `arg:"" optional:"" help:"Suggestion ID. Prompts for one when omitted."`
}

func (c *SuggestionsAcceptCmd) Run(ctx *Context) error {
	return decide(ctx, c.ID, models.SuggestionAccepted)
}

type SuggestionsRejectCmd struct {
	ID string `arg:"" optional:"" help:"Suggestion ID. Prompts for one when omitted."`
}

func (c *SuggestionsRejectCmd) Run(ctx *Context) error {
	return decide(ctx, c.ID, models.SuggestionRejected)
}

func decide(ctx *Context, id string, status models.SuggestionStatus) error {
	if err := ctx.Store.Open(); err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	if id == "" {
		picked, err := pickSuggestion(ctx, status)
		if err != nil {
			return err
		}
		id = picked
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.UpdateSuggestionStatus(id, status); err != nil {
		return err
	}

	s, err := ctx.Store.GetHabitSuggestion(id)
	if err != nil {
		return err
	}
	ctx.printf("%s %s\n", statusStyle(string(status)).Render("Marked "+string(status)+":"), habitLine(s.HabitSuggestionBlock))
	return nil
}

var errNothingToReview = errors.New("no proposed suggestions to review")

// pickSuggestion asks the user to choose one of the proposed suggestions.
func pickSuggestion(ctx *Context, status models.SuggestionStatus) (string, error) {
	proposed, err := ctx.Store.ListHabitSuggestions(models.SuggestionProposed)
	if err != nil {
		return "", fmt.Errorf("failed to list suggestions: %w", err)
	}
	if len(proposed) == 0 {
		return "", errNothingToReview
	}

	options := make([]huh.Option[string], len(proposed))
	for i, s := range proposed {
		options[i] = huh.NewOption(habitLine(s.HabitSuggestionBlock), s.ID)
	}

	var id string
	err = huh.NewSelect[string]().
		Title(fmt.Sprintf("Which suggestion should be %s?", status)).
		Options(options...).
		Value(&id).
		Run()
	if err != nil {
		return "", err
	}
	return id, nil
}

// SuggestionsReviewCmd opens the interactive review.
type SuggestionsReviewCmd struct{}

func (c *SuggestionsReviewCmd) Run(ctx *Context) error {
	if err := ctx.Store.Open(); err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	ctx.PerformAutomaticBackup()
	return tui.Run(ctx.Store)
}
