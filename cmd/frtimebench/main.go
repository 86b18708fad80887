// Command frtimebench runs the scenarios from SPEC_FULL.md's end-to-end
// catalogue against the frtime runtime and reports timing, grounded on
// the benchmark driver pattern used elsewhere in this module's source
// corpus: tachymeter for latency percentiles, go-pretty for the table.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"

	"github.com/ochreflow/frtime"
)

const (
	itersKey    = "iters"
	scenarioKey = "scenario"
)

func main() {
	cmd := &cli.Command{
		Name:  "frtimebench",
		Usage: "Time frtime's propagation scenarios",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  itersKey,
				Usage: "Number of propagation cycles to time per scenario",
				Value: 1000,
			},
			&cli.StringFlag{
				Name:  scenarioKey,
				Usage: "Run only the named scenario (diamond, merge, switch, failure); empty runs all",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

type scenario struct {
	name string
	fn   func(iters int) *tachymeter.Tachymeter
}

var scenarios = []scenario{
	{"diamond", benchmarkDiamond},
	{"merge", benchmarkMerge},
	{"switch", benchmarkSwitch},
	{"failure", benchmarkFailure},
}

func run(_ context.Context, cmd *cli.Command) error {
	iters := int(cmd.Uint(itersKey))
	only := cmd.String(scenarioKey)

	tbl := table.NewWriter()
	tbl.SetTitle("frtime propagation scenarios")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"scenario", "avg", "min", "p75", "p99", "max"})

	for _, s := range scenarios {
		if only != "" && only != s.name {
			continue
		}
		calc := s.fn(iters).Calc()
		tbl.AppendRow(table.Row{s.name, calc.Time.Avg, calc.Time.Min, calc.Time.P75, calc.Time.P99, calc.Time.Max})
	}

	tbl.Render()
	return nil
}

func timed(tach *tachymeter.Tachymeter, fn func()) {
	start := time.Now()
	fn()
	tach.AddTime(time.Since(start))
}

// benchmarkDiamond times spec scenario 3: a glitch-free diamond where
// the shared source is written once per iteration and the downstream
// join must be read exactly once per cycle.
func benchmarkDiamond(iters int) *tachymeter.Tachymeter {
	frtime.Init()
	tach := tachymeter.New(&tachymeter.Config{Size: iters})

	a, setA := frtime.MakeCell(0)
	b := frtime.Lift(func(x int) int { return x + 1 }, a, nil)
	c := frtime.Lift(func(x int) int { return x * 2 }, a, nil)
	d := frtime.Lift2(func(x, y int) int { return x + y }, b, c, nil)

	for i := 0; i < iters; i++ {
		timed(tach, func() {
			setA(i)
			_, _ = frtime.Read(d)
		})
	}
	return tach
}

// benchmarkMerge times spec scenario 6: fan-in delivery across two
// source channels merged into one.
func benchmarkMerge(iters int) *tachymeter.Tachymeter {
	frtime.Init()
	tach := tachymeter.New(&tachymeter.Config{Size: iters})

	e1, send1 := frtime.MakeEvent[int]()
	e2, send2 := frtime.MakeEvent[int]()
	merged := frtime.Merge(e1, e2)
	frtime.NotifyE(merged, func(int) {})

	for i := 0; i < iters; i++ {
		timed(tach, func() {
			frtime.Send(send1, i)
			frtime.Send(send2, i)
		})
	}
	return tach
}

// benchmarkSwitch times spec scenario 4: repeatedly retargeting a
// switch_bb to a fresh inner behavior, exercising dependency release.
func benchmarkSwitch(iters int) *tachymeter.Tachymeter {
	frtime.Init()
	tach := tachymeter.New(&tachymeter.Config{Size: iters})

	inner, _ := frtime.MakeCell(0)
	bb, setBB := frtime.MakeCell(inner)
	out := frtime.SwitchBB(bb, nil)
	frtime.NotifyB(out, func(int) {})

	for i := 0; i < iters; i++ {
		next, _ := frtime.MakeCell(i)
		timed(tach, func() {
			setBB(next)
		})
	}
	return tach
}

// benchmarkFailure times spec scenario 5: a lifted function that
// fails on every other cycle, exercising safeApply's panic-to-Fail
// conversion. The Catch wrapper is evaluated once, at construction
// while a is 1, so its handler does not run during the timed loop.
func benchmarkFailure(iters int) *tachymeter.Tachymeter {
	frtime.Init()
	tach := tachymeter.New(&tachymeter.Config{Size: iters})

	a, setA := frtime.MakeCell(1)
	b := frtime.Lift(func(x int) int { return 10 / x }, a, nil)
	caught := frtime.Catch(func() int {
		return frtime.MustRead(b)
	}, func(error) int { return -1 }, nil)
	frtime.NotifyB(caught, func(int) {})

	for i := 0; i < iters; i++ {
		timed(tach, func() {
			if i%2 == 0 {
				setA(0)
			} else {
				setA(1)
			}
		})
	}
	return tach
}
