package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/trackit/internal/client/datastore"
	"github.com/dmitrijs2005/trackit/internal/client/models"
	"github.com/dmitrijs2005/trackit/internal/client/services"
)

const (
	msgExpenseAdded   = "Expense added successfully!"
	msgAddFailed      = "Failed to add expense"
	msgExpenseUpdated = "Expense updated"
	msgExpenseDeleted = "Expense deleted"
	msgNoExpenses     = "No expenses yet. Type 'add' to create one."
	msgNoMatches      = "No expenses match your search."
)

func (a *App) printExpenses(list []models.Expense, empty string) {
	if len(list) == 0 {
		say(empty)
		return
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTITLE\tVALUE\tDESCRIPTION")
	for _, e := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Date, e.Title, services.FormatValue(e.Value), e.Description)
	}
	fmt.Fprintf(tw, "\t\tTotal\t%s\t\n", services.FormatValue(services.Total(list)))
	_ = tw.Flush()

	say(strings.TrimRight(b.String(), "\n"))
}

// list fetches and prints the expenses. Callers hold a.mu.
func (a *App) list(ctx context.Context) error {
	list, err := a.expenses.Fetch(ctx)
	if errors.Is(err, datastore.ErrUnauthorized) {
		return a.expire(ctx, err)
	}
	if err != nil {
		a.logger.Error(ctx, "fetch expenses", "error", err)
		return fmt.Errorf("could not load expenses: %w", err)
	}
	a.printExpenses(list, msgNoExpenses)
	return nil
}

func (a *App) List(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.list(ctx)
}

func (a *App) Search(ctx context.Context, term string) error {
	a.printExpenses(a.expenses.Search(term), msgNoMatches)
	return nil
}

var errValueNotNumber = &services.UserError{Message: "Value must be a number"}

func parseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errValueNotNumber
	}
	return v, nil
}

func (a *App) Add(ctx context.Context) error {
	var e models.Expense
	var err error

	if e.Title, err = a.prompt("Title"); err != nil {
		return err
	}
	if e.Date, err = a.prompt("Date (YYYY-MM-DD)"); err != nil {
		return err
	}
	raw, err := a.prompt("Value")
	if err != nil {
		return err
	}
	if e.Value, err = parseValue(raw); err != nil {
		return err
	}
	if e.Description, err = a.prompt("Description"); err != nil {
		return err
	}

	saved, err := a.expenses.Add(ctx, e)
	if err != nil {
		a.logger.Error(ctx, "add expense", "error", err)
		if errors.Is(err, datastore.ErrUnauthorized) {
			return a.expenseFailure(ctx, err)
		}
		return fmt.Errorf("%s: %w", msgAddFailed, err)
	}
	a.logger.Info(ctx, "expense added", "id", saved.ID)
	say(msgExpenseAdded)
	return nil
}

// Edit prompts for every field showing the current value; an empty answer
// keeps it.
func (a *App) Edit(ctx context.Context, id string) error {
	e, ok := a.expenses.Get(id)
	if !ok {
		return fmt.Errorf("expense %s not found", id)
	}

	ask := func(label, current string) (string, error) {
		v, err := a.prompt(fmt.Sprintf("%s [%s]", label, current))
		if err != nil || v == "" {
			return current, err
		}
		return v, nil
	}

	var err error
	if e.Title, err = ask("Title", e.Title); err != nil {
		return err
	}
	if e.Date, err = ask("Date (YYYY-MM-DD)", e.Date); err != nil {
		return err
	}
	raw, err := a.prompt(fmt.Sprintf("Value [%s]", strconv.FormatFloat(e.Value, 'f', -1, 64)))
	if err != nil {
		return err
	}
	if raw != "" {
		if e.Value, err = parseValue(raw); err != nil {
			return err
		}
	}
	if e.Description, err = ask("Description", e.Description); err != nil {
		return err
	}

	if err := a.expenses.Update(ctx, e); err != nil {
		a.logger.Error(ctx, "update expense", "id", id, "error", err)
		return a.expenseFailure(ctx, err)
	}
	say(msgExpenseUpdated)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if _, ok := a.expenses.Get(id); !ok {
		return fmt.Errorf("expense %s not found", id)
	}
	yes, err := GetConfirmation(a.reader, "Delete expense?", a.out)
	if err != nil {
		return err
	}
	if !yes {
		return nil
	}

	if err := a.expenses.Delete(ctx, id); err != nil {
		a.logger.Error(ctx, "delete expense", "id", id, "error", err)
		return a.expenseFailure(ctx, err)
	}
	say(msgExpenseDeleted)
	return nil
}
