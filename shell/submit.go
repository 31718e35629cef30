package shell

import (
	"fmt"

	"github.com/abiosoft/ishell"
)

func submitCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "submit",
		Help: "send the drawing to the classifier",
		Func: func(c *ishell.Context) {
			sub, err := ctx.Session.Submit()
			if err != nil {
				c.Err(err)
				return
			}
			c.Println(fmt.Sprintf("submitted [%s]", sub.ID))
		},
	}
}

func clearCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "clear",
		Help: "wipe the canvas",
		Func: func(c *ishell.Context) {
			if err := ctx.Session.Clear(); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		},
	}
}

func statusCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "status",
		Help: "show the guess and the submit button",
		Func: func(c *ishell.Context) {
			d, err := ctx.Session.Display()
			if err != nil {
				c.Err(err)
				return
			}

			c.Printf("guess:  %s\n", d.Text)
			c.Printf("submit: %s (enabled: %v)\n", d.SubmitLabel, d.SubmitEnabled)

			res, err := ctx.Session.LastResult()
			if err != nil || res == nil {
				return
			}
			if res.Err != "" {
				c.Printf("last:   [%s] failed after %v: %s\n", res.ID, res.Duration, res.Err)
			} else {
				c.Printf("last:   [%s] %d in %v\n", res.ID, res.Digit, res.Duration)
			}
		},
	}
}
