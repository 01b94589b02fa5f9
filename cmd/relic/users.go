package main

import (
	"fmt"

	"github.com/fwojciec/relic"
	"github.com/fwojciec/relic/fs"
)

// Run executes the users import command.
func (c *UsersImportCmd) Run(deps *Dependencies) error {
	users, err := fs.ReadUsers(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", relic.ErrorMessage(err))
		return err
	}

	n, err := deps.Users.ImportUsers(deps.Ctx, users)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", relic.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d users\n", n)
	return nil
}

// Run executes the users list command.
func (c *UsersListCmd) Run(deps *Dependencies) error {
	filter := relic.UserFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Name != "" {
		filter.Name = &c.Name
	}

	users, err := deps.Users.FindUsers(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", relic.ErrorMessage(err))
		return err
	}

	if len(users) == 0 {
		fmt.Fprintln(deps.Stdout, "No users found. Use 'relic users import' to load a users file.")
		return nil
	}

	for _, u := range users {
		fmt.Fprintf(deps.Stdout, "%d  %s  %s\n", u.ID, u.Name, u.Avatar)
	}
	return nil
}
