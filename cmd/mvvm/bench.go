package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/delaneyj/mvvm/cmd/mvvm/templates"
	"github.com/delaneyj/mvvm/dom"
	"github.com/delaneyj/mvvm/vm"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

var sizes = []int{1, 10, 100, 1_000}

func benchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "Measure how long a single write takes to reach the DOM",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  itersKey,
				Usage: "Writes per benchmark",
				Value: 100,
			},
			&cli.BoolFlag{
				Name:  renderKey,
				Usage: "Print the result table",
				Value: true,
			},
		},
		Action: bench,
	}
}

func bench(ctx context.Context, cmd *cli.Command) error {
	iters := int(cmd.Uint(itersKey))
	if iters < 1 {
		return fmt.Errorf("--%s must be at least 1", itersKey)
	}

	log.Printf("warming up")
	if _, err := benchmark("fanout", sizes[0], iters, true); err != nil {
		return err
	}

	tbl := table.NewWriter()
	tbl.SetTitle("mvvm propagation")
	tbl.SetOutputMirror(cmd.Root().Writer)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max", "writes", "checksum"})

	for _, n := range sizes {
		for _, shared := range []bool{true, false} {
			name := "spread"
			if shared {
				name = "fanout"
			}
			row, err := benchmark(name, n, iters, shared)
			if err != nil {
				return err
			}
			tbl.AppendRow(row)
		}
	}

	if cmd.Bool(renderKey) {
		tbl.Render()
	}
	return nil
}

// benchmark mounts n bindings and writes one key iters times. With shared
// every binding reads the written key, otherwise each reads its own key and
// only one of them is affected.
func benchmark(name string, n, iters int, shared bool) (table.Row, error) {
	keys := templates.KeyNames("k", n)
	row := make(map[string]any, n)
	exprs := make([]string, n)
	for i, key := range keys {
		if shared {
			exprs[i] = "row.value"
			continue
		}
		exprs[i] = "row." + key
		row[key] = 0
	}
	target := "row." + keys[0]
	if shared {
		row["value"] = 0
		target = "row.value"
	}

	doc, err := dom.ParseString(templates.Bench(exprs))
	if err != nil {
		return nil, err
	}
	v, err := vm.New(vm.Options{
		El:       "#app",
		Document: doc,
		Data:     map[string]any{"row": row},
	})
	if err != nil {
		return nil, err
	}

	tach := tachymeter.New(&tachymeter.Config{Size: iters})
	writes := doc.TotalWrites()
	for i := 1; i <= iters; i++ {
		start := time.Now()
		if err := v.Set(target, i); err != nil {
			return nil, err
		}
		tach.AddTime(time.Since(start))
	}
	if got := v.Get(target); got != iters {
		return nil, fmt.Errorf("%s %d: %s is %v after %d writes", name, n, target, got, iters)
	}

	calc := tach.Calc()
	return table.Row{
		fmt.Sprintf("%s: %d", name, n),
		calc.Time.Avg,
		calc.Time.Min,
		calc.Time.P75,
		calc.Time.P99,
		calc.Time.Max,
		doc.TotalWrites() - writes,
		fmt.Sprintf("%016x", doc.Checksum()),
	}, nil
}
