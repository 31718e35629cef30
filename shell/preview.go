package shell

import (
	"encoding/json"

	"github.com/abiosoft/ishell"

	"github.com/juruen/digitpad/downsample"
)

func previewCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "preview",
		Help: "print the 28x28 preview",
		Func: func(c *ishell.Context) {
			r, err := ctx.Session.Preview()
			if err != nil {
				c.Err(err)
				return
			}
			c.Print(downsample.ASCII(r))
		},
	}
}

func sampleCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "sample",
		Help: "print the sample that submit would send",
		Func: func(c *ishell.Context) {
			s, err := ctx.Session.Sample()
			if err != nil {
				c.Err(err)
				return
			}

			output, err := json.Marshal(s)
			if err != nil {
				c.Err(err)
				return
			}
			c.Println(string(output))
		},
	}
}
