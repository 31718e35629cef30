package shell

import (
	"github.com/abiosoft/ishell"

	"github.com/juruen/digitpad/session"
)

// ShellCtxt carries the session the shell commands drive. Pressed mirrors
// the primary pointer button.
type ShellCtxt struct {
	Session *session.Session
	Pressed bool
}

// RunShell runs the interactive shell, or processes args as a single
// command when any are given.
func RunShell(ctx *ShellCtxt, args []string) error {
	shell := ishell.New()

	shell.AddCmd(downCmd(ctx))
	shell.AddCmd(moveCmd(ctx))
	shell.AddCmd(upCmd(ctx))
	shell.AddCmd(leaveCmd(ctx))
	shell.AddCmd(lineCmd(ctx))
	shell.AddCmd(clearCmd(ctx))
	shell.AddCmd(submitCmd(ctx))
	shell.AddCmd(statusCmd(ctx))
	shell.AddCmd(previewCmd(ctx))
	shell.AddCmd(sampleCmd(ctx))

	shell.SetPrompt("[digitpad]>")

	if len(args) > 0 {
		if err := shell.Process(args...); err != nil {
			return err
		}
		waited, err := awaitResult(ctx)
		if err != nil || !waited {
			return err
		}
		return shell.Process("status")
	}

	shell.Println("digitpad: draw with down/move/up, then submit. Type help for commands.")
	shell.Run()
	return nil
}

// awaitResult blocks until a pending submission resolves, so a one-shot
// submit does not exit before its guess arrives. It reports whether there
// was anything to wait for.
func awaitResult(ctx *ShellCtxt) (bool, error) {
	updates, cancel, err := ctx.Session.Subscribe()
	if err != nil {
		return false, err
	}
	defer cancel()

	st, err := ctx.Session.State()
	if err != nil || !st.Waiting {
		return false, err
	}

	for d := range updates {
		if !d.Waiting {
			return true, nil
		}
	}
	return false, session.ErrClosed
}
