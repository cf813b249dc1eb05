package cli

import (
	"context"
	"fmt"
)

func (a *App) Notes(ctx context.Context) error {
	ns, err := a.client.ListNotes(ctx)
	if err != nil {
		return a.fail(err)
	}
	printNotes(a.out, ns)
	return nil
}

func (a *App) AddNote(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "-Enter title", a.out)
	if err != nil {
		return a.fail(err)
	}
	content, err := getMultiline(a.reader, "-Enter content", a.out)
	if err != nil {
		return a.fail(err)
	}

	n, err := a.client.CreateNote(ctx, title, content)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Saved note %s\n", n.ID)
	return nil
}

func (a *App) Transactions(ctx context.Context) error {
	ts, err := a.client.ListTransactions(ctx)
	if err != nil {
		return a.fail(err)
	}
	printTransactions(a.out, ts)
	return nil
}
