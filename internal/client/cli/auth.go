package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notemarket/internal/common"
)

var errEmptyUsername = errors.New("username must not be empty")

func (a *App) credentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "-Enter username", a.out)
	if err != nil {
		return "", nil, err
	}
	if userName == "" {
		return "", nil, errEmptyUsername
	}

	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.credentials()
	if err != nil {
		return a.fail(err)
	}
	defer common.Wipe(password)

	if _, err := a.client.Register(ctx, userName, string(password)); err != nil {
		return a.fail(err)
	}

	fmt.Fprintln(a.out, "Registered. You can log in now.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.credentials()
	if err != nil {
		return a.fail(err)
	}
	defer common.Wipe(password)

	if err := a.client.Login(ctx, userName, string(password)); err != nil {
		return a.fail(fmt.Errorf("login unsuccessful: %w", err))
	}

	a.userName = userName
	a.setMode(ModeOnline)
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
