package shell

import (
	"strconv"

	"github.com/abiosoft/ishell"
	"github.com/pkg/errors"

	"github.com/juruen/digitpad/surface"
)

// parsePoints reads x y pairs.
func parsePoints(args []string) ([]surface.Point, error) {
	if len(args) == 0 || len(args)%2 != 0 {
		return nil, errors.New("expected x y coordinate pairs")
	}

	points := make([]surface.Point, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		x, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad x %q", args[i])
		}
		y, err := strconv.ParseFloat(args[i+1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad y %q", args[i+1])
		}
		p := surface.Point{X: x, Y: y}
		if !p.Finite() {
			return nil, errors.Errorf("coordinates must be finite, got %s %s", args[i], args[i+1])
		}
		points = append(points, p)
	}
	return points, nil
}

func parsePoint(args []string) (surface.Point, error) {
	points, err := parsePoints(args)
	if err != nil {
		return surface.Point{}, err
	}
	if len(points) != 1 {
		return surface.Point{}, errors.New("expected a single x y pair")
	}
	return points[0], nil
}

func downCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name:     "down",
		Help:     "press the pointer at x y",
		LongHelp: "Usage: down <x> <y>",
		Func: func(c *ishell.Context) {
			p, err := parsePoint(c.Args)
			if err != nil {
				c.Err(err)
				return
			}

			if err := ctx.Session.BeginStroke(p); err != nil {
				c.Err(err)
				return
			}
			ctx.Pressed = true
		},
	}
}

func moveCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name:     "move",
		Help:     "move the pointer to x y, drawing while pressed",
		LongHelp: "Usage: move <x> <y> [<x> <y> ...]",
		Func: func(c *ishell.Context) {
			points, err := parsePoints(c.Args)
			if err != nil {
				c.Err(err)
				return
			}

			for _, p := range points {
				if err := ctx.Session.ExtendStroke(p, ctx.Pressed); err != nil {
					c.Err(err)
					return
				}
			}
		},
	}
}

func upCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "up",
		Help: "release the pointer and refresh the preview",
		Func: func(c *ishell.Context) {
			ctx.Pressed = false
			if err := ctx.Session.EndStroke(); err != nil {
				c.Err(err)
			}
		},
	}
}

func leaveCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "leave",
		Help: "move the pointer off the surface",
		Func: func(c *ishell.Context) {
			if err := ctx.Session.EndStroke(); err != nil {
				c.Err(err)
			}
		},
	}
}

func lineCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name:     "line",
		Help:     "draw a complete stroke through the given points",
		LongHelp: "Usage: line <x0> <y0> [<x1> <y1> ...]\n\nA single point draws a dot.",
		Func: func(c *ishell.Context) {
			points, err := parsePoints(c.Args)
			if err != nil {
				c.Err(err)
				return
			}

			if err := drawLine(ctx, points); err != nil {
				c.Err(err)
			}
		},
	}
}

func drawLine(ctx *ShellCtxt, points []surface.Point) error {
	s := ctx.Session
	if err := s.BeginStroke(points[0]); err != nil {
		return err
	}
	if len(points) == 1 {
		if err := s.ExtendStroke(points[0], true); err != nil {
			return err
		}
	}
	for _, p := range points[1:] {
		if err := s.ExtendStroke(p, true); err != nil {
			return err
		}
	}
	ctx.Pressed = false
	return s.EndStroke()
}
