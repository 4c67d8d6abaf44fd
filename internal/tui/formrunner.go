package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/lifespan/internal/schema"
	"github.com/ppiankov/lifespan/internal/session"
)

// Menu actions offered between submissions.
const (
	actionEditFields  = "Edit fields"
	actionSetStatus   = "Set development status"
	actionFillExample = "Fill example data"
	actionClear       = "Clear form"
	actionSubmit      = "Submit"
	actionQuit        = "Quit"
)

var menuOptions = []string{actionEditFields, actionSetStatus, actionFillExample, actionClear, actionSubmit, actionQuit}

// Runner drives one interactive form session: a menu loop whose
// actions feed the session state machine, with outcomes rendered after
// each submission resolves.
type Runner struct {
	driver  PromptDriver
	session *session.Session
}

// NewRunner creates a form runner over the given driver and session.
func NewRunner(driver PromptDriver, sess *session.Session) *Runner {
	return &Runner{driver: driver, session: sess}
}

// Run loops until the user quits or interrupts. Each iteration shows
// the menu, applies the chosen action, and for submissions waits for
// the outcome and displays it.
func (r *Runner) Run(ctx context.Context) error {
	for {
		choice, err := r.driver.Select(ctx, SelectConfig{
			Message: "Life expectancy prediction",
			Options: menuOptions,
			Help:    "Fill the 18 indicators, pick a development status, then submit.",
		})
		if err != nil {
			if errors.Is(err, ErrInterrupted) {
				return nil
			}
			return err
		}

		switch menuOptions[choice] {
		case actionEditFields:
			if err := r.editFields(ctx); err != nil {
				if errors.Is(err, ErrInterrupted) {
					continue // Back to the menu, keep what was entered so far
				}
				return err
			}
		case actionSetStatus:
			if err := r.selectStatus(ctx); err != nil {
				if errors.Is(err, ErrInterrupted) {
					continue
				}
				return err
			}
		case actionFillExample:
			r.session.FillExample()
			_ = r.driver.Info(ctx, "Form filled with example data.")
		case actionClear:
			r.session.Clear()
			_ = r.driver.Info(ctx, "Form cleared.")
		case actionSubmit:
			if err := r.submit(ctx); err != nil {
				return err
			}
		case actionQuit:
			return nil
		}
	}
}

// editFields walks every registry field in order, prompting with the
// current value as default.
func (r *Runner) editFields(ctx context.Context) error {
	for _, field := range schema.Fields() {
		raw, err := r.driver.Input(ctx, InputConfig{
			Message: field.Label,
			Default: r.session.Field(field.Key),
			Help:    fieldHelp(field),
		})
		if err != nil {
			return err
		}
		r.session.SetField(field.Key, raw)
	}
	return nil
}

func (r *Runner) selectStatus(ctx context.Context) error {
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      "Development status",
		Options:      []string{schema.StatusDeveloping.String(), schema.StatusDeveloped.String()},
		DefaultIndex: int(r.session.Status()),
	})
	if err != nil {
		return err
	}
	r.session.SetStatus(schema.Status(idx))
	return nil
}

// submit triggers the state machine and renders the resolved outcome.
func (r *Runner) submit(ctx context.Context) error {
	if !r.session.Submit(ctx) {
		return r.driver.Info(ctx, "A submission is already in flight.")
	}

	view := r.session.View()
	if view.State == session.StateSubmitting {
		_ = r.driver.Info(ctx, "Submitting...")
		if err := r.session.Wait(ctx); err != nil {
			return err
		}
		view = r.session.View()
	}

	if view.Outcome == nil {
		// The form was cleared or refilled while the request was in
		// flight; the stale resolution was discarded.
		return nil
	}
	if view.Outcome.OK() {
		return r.driver.Info(ctx, fmt.Sprintf("Predicted life expectancy: %.2f years", view.Outcome.Value))
	}
	return r.driver.Info(ctx, "Error: "+view.Outcome.Message)
}

// fieldHelp renders the range hint shown under a field prompt.
func fieldHelp(field schema.FieldDefinition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%g to %g", field.Min, field.Max)
	if field.Unit != "" {
		b.WriteString(" (" + field.Unit + ")")
	}
	return b.String()
}
