// Package cli implements the user administration commands. Users are never
// created through the HTTP API; operators manage them here.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/store"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Runner dispatches user administration subcommands.
type Runner struct {
	users  service.UserService
	out    io.Writer
	errOut io.Writer
}

// NewRunner creates a Runner writing normal output to out and failures to errOut.
func NewRunner(users service.UserService, out, errOut io.Writer) *Runner {
	return &Runner{users: users, out: out, errOut: errOut}
}

// Run executes one subcommand and returns an exit code.
func (r *Runner) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		r.PrintHelp()
		return ExitUsage
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		r.PrintHelp()
		return ExitOK

	case "create":
		if len(a) != 1 {
			r.fail("usage: usermgr create <username>")
			return ExitUsage
		}
		return r.doCreate(ctx, a[0])

	case "delete":
		if len(a) != 1 {
			r.fail("usage: usermgr delete <username|id>")
			return ExitUsage
		}
		return r.doDelete(ctx, a[0])

	case "apikey":
		if len(a) != 1 {
			r.fail("usage: usermgr apikey <username|id>")
			return ExitUsage
		}
		return r.doAPIKey(ctx, a[0])

	case "list", "ls":
		return r.doList(ctx, a)
	}

	r.fail("unknown subcommand: %s", cmd)
	fmt.Fprintln(r.errOut)
	r.PrintHelp()
	return ExitUsage
}

// PrintHelp writes the usage text.
func (r *Runner) PrintHelp() {
	fmt.Fprint(r.out, `usermgr - manage todo API users

Usage:
  usermgr <subcommand> [args]

Subcommands:
  create <username>          Create a user and print its API key
  delete <username|id>       Delete a user together with everything it owns
  apikey <username|id>       Print a user's API key
  list [-offset N] [-limit N]
                             List users in creation order

Examples:
  usermgr create alice
  usermgr apikey alice
  usermgr list -limit 50
`)
}

func (r *Runner) doCreate(ctx context.Context, username string) int {
	user, err := r.users.CreateUser(ctx, username)
	if err != nil {
		r.fail("create: %s", describe(err))
		return ExitError
	}
	r.ok("created user %s (%s)", user.Username, user.ID)
	fmt.Fprintf(r.out, "api key: %s\n", user.APIKey)
	return ExitOK
}

func (r *Runner) doDelete(ctx context.Context, ref string) int {
	user, err := r.users.DeleteUser(ctx, ref)
	if err != nil {
		r.fail("delete: %s", describe(err))
		return ExitError
	}
	r.ok("deleted user %s (%s)", user.Username, user.ID)
	return ExitOK
}

func (r *Runner) doAPIKey(ctx context.Context, ref string) int {
	user, err := r.users.FindUser(ctx, ref)
	if err != nil {
		r.fail("apikey: %s", describe(err))
		return ExitError
	}
	fmt.Fprintln(r.out, user.APIKey)
	return ExitOK
}

func (r *Runner) doList(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(r.errOut)
	offset := fs.Int("offset", 0, "number of users to skip")
	limit := fs.Int("limit", store.DefaultLimit, "maximum number of users to show")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	page := store.NewPage(*offset, *limit)
	result, err := r.users.ListUsers(ctx, page)
	if err != nil {
		r.fail("list: %s", describe(err))
		return ExitError
	}
	if len(result.Items) == 0 {
		r.muted("no users (total %d)", result.Total)
		return ExitOK
	}

	rows := make([][]string, 0, len(result.Items))
	for i, u := range result.Items {
		rows = append(rows, []string{
			strconv.Itoa(page.Offset + i + 1),
			u.Username,
			u.ID.String(),
			u.APIKey,
			u.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	renderTable(r.out, []string{"#", "Username", "ID", "API Key", "Created"}, rows)
	r.muted("showing %d-%d of %d", page.Offset+1, page.Offset+len(result.Items), result.Total)
	return ExitOK
}

// describe turns service errors into operator-facing text.
func describe(err error) string {
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return "user not found"
	case errors.Is(err, store.ErrUsernameExists):
		return "username already exists"
	}
	return err.Error()
}
