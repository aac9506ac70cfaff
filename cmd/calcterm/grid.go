package main

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/calcterm"
)

// maxPoints bounds the size of a sampling grid.
const maxPoints = 1 << 24

// axis is one sampled variable of a grid.
type axis struct {
	name           string
	from, to, step float64
}

// parseAxis parses a "from:to:step" axis for the named variable. Each bound
// is itself a term, so "0:2*pi:pi/8" is allowed.
func parseAxis(name, spec string) (axis, error) {
	a := axis{name: strings.ToLower(name)}
	if _, err := slot(a.name); err != nil {
		return a, err
	}
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return a, fmt.Errorf("grid for %s must be from:to:step, not %q", a.name, spec)
	}
	for i, dst := range []*float64{&a.from, &a.to, &a.step} {
		v, err := calcterm.Eval(parts[i])
		if err != nil {
			return a, fmt.Errorf("grid for %s: %q: %w", a.name, parts[i], err)
		}
		*dst = v
	}
	if !(a.step > 0) || math.IsInf(a.step, 0) {
		return a, fmt.Errorf("grid for %s: step must be positive, not %g", a.name, a.step)
	}
	if math.IsInf(a.from, 0) || math.IsInf(a.to, 0) || math.IsNaN(a.from) || math.IsNaN(a.to) || a.to < a.from {
		return a, fmt.Errorf("grid for %s: invalid range %g to %g", a.name, a.from, a.to)
	}
	return a, nil
}

// len returns the number of points on the axis. The end point is included
// when it is within rounding of a step boundary.
func (a axis) len() int {
	n := math.Floor((a.to-a.from)/a.step+1e-9) + 1
	if n > maxPoints {
		return maxPoints + 1
	}
	return int(n)
}

// at returns the i-th point on the axis.
func (a axis) at(i int) float64 {
	return a.from + float64(i)*a.step
}

// sample is one evaluated grid point.
type sample struct {
	at []float64
	r  float64
}

// grid evaluates p at every point of the grid spanned by axes, with the other
// variables taken from base. Points are ordered with the last axis varying
// fastest. Work is spread over GOMAXPROCS goroutines all running the same
// program.
func grid(ctx context.Context, p *calcterm.Program, base calcterm.Vars, axes []axis) ([]sample, error) {
	total := 1
	for _, a := range axes {
		total *= a.len()
		if total > maxPoints {
			return nil, fmt.Errorf("grid has more than %d points", maxPoints)
		}
	}
	slots := make([]int, len(axes))
	for i, a := range axes {
		slots[i], _ = slot(a.name)
	}
	r := make([]sample, total)
	workers := runtime.GOMAXPROCS(0)
	chunk := (total + workers - 1) / workers
	g, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < total; lo += chunk {
		lo, hi := lo, min(lo+chunk, total)
		g.Go(func() error {
			for k := lo; k < hi; k++ {
				if k%4096 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				v := base
				at := make([]float64, len(axes))
				for i, j := len(axes)-1, k; i >= 0; i-- {
					n := axes[i].len()
					at[i] = axes[i].at(j % n)
					j /= n
					setSlot(&v, slots[i], at[i])
				}
				y, err := p.RunVars(v)
				if err != nil {
					return err
				}
				r[k] = sample{at: at, r: y}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return r, nil
}

// slot returns the index of a variable name: 0 for x, 1 for y, 2 for z.
func slot(name string) (int, error) {
	switch strings.ToLower(name) {
	case "x":
		return 0, nil
	case "y":
		return 1, nil
	case "z":
		return 2, nil
	default:
		return -1, fmt.Errorf("unknown variable %q (want x, y, or z)", name)
	}
}

func setSlot(v *calcterm.Vars, i int, x float64) {
	switch i {
	case 0:
		v.X = x
	case 1:
		v.Y = x
	case 2:
		v.Z = x
	default:
		panic("calcterm: bad variable slot")
	}
}
