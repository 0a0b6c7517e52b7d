package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/sealnote/internal/common"
	"github.com/dmitrijs2005/sealnote/internal/cryptox"
	"github.com/dmitrijs2005/sealnote/internal/lifecycle"
	"github.com/dmitrijs2005/sealnote/internal/notes"
)

const timeLayout = "2006-01-02 15:04 MST"

// Store prompts for the note fields and stores the encrypted note.
func (a *App) Store(ctx context.Context) error {
	text, err := GetMultiline(a.reader, "Enter note text", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(password)

	choice, err := GetSimpleText(a.reader, "Expiration "+choices()+" [never]", a.out)
	if err != nil {
		return err
	}
	exp, err := lifecycle.ParseExpiration(choice)
	if err != nil {
		fmt.Fprintln(a.out, "Unknown expiration, see 'expirations'.")
		return err
	}

	oneTime, err := GetYesNo(a.reader, "Delete after first read?", a.out)
	if err != nil {
		return err
	}

	res, err := a.notes.Store(ctx, notes.StoreInput{
		Text:      text,
		Password:  string(password),
		ExpiresAt: exp.At(a.now()),
		OneTime:   oneTime,
	})
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			fmt.Fprintln(a.out, err.Error())
		} else {
			fmt.Fprintln(a.out, "Failed to store note.")
			a.logger.Error(ctx, "store failed", "error", err)
		}
		return err
	}

	fmt.Fprintf(a.out, "Note stored: %s\n", res.ID)
	return nil
}

// Retrieve prompts for a password and prints the matching note.
func (a *App) Retrieve(ctx context.Context) error {
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(password)

	got, err := a.notes.Retrieve(ctx, string(password))
	if err != nil {
		fmt.Fprintln(a.out, notes.PublicMessage(err))
		if !errors.Is(err, common.ErrorNotFound) && !errors.Is(err, common.ErrWrongPassword) &&
			!errors.Is(err, common.ErrorValidation) {
			a.logger.Error(ctx, "retrieve failed", "error", err)
		}
		return err
	}

	fmt.Fprintln(a.out, "----")
	fmt.Fprintln(a.out, got.Plaintext)
	fmt.Fprintln(a.out, "----")
	fmt.Fprintf(a.out, "Created: %s\n", got.Meta.CreatedAt.Local().Format(timeLayout))
	if got.Meta.ExpiresAt != nil {
		fmt.Fprintf(a.out, "Expires: %s\n", got.Meta.ExpiresAt.Local().Format(timeLayout))
	}
	if got.Meta.OneTime {
		fmt.Fprintln(a.out, "This note has been deleted and cannot be read again.")
	} else {
		fmt.Fprintf(a.out, "Views: %d\n", got.Meta.ViewCount)
	}
	return nil
}

// Expirations lists the accepted expiration choices.
func (a *App) Expirations(context.Context) error {
	for _, p := range lifecycle.Presets() {
		fmt.Fprintf(a.out, "  %-8s %s\n", p.Name, p.Label)
	}
	return nil
}

func choices() string {
	s := "("
	for i, p := range lifecycle.Presets() {
		if i > 0 {
			s += ", "
		}
		s += p.Name
	}
	return s + ")"
}
