package main

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/delaneyj/mvvm/compile"
	"github.com/delaneyj/mvvm/dom"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const maxValueWidth = 40

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Compile a template and list the watchers it created",
		Flags:  mountFlags(),
		Action: stats,
	}
}

func stats(ctx context.Context, cmd *cli.Command) error {
	v, err := mount(cmd)
	if err != nil {
		return err
	}
	if !v.Mounted() {
		return nil
	}

	w := cmd.Root().Writer
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"watcher", "expression", "deps", "value"})

	totalDeps := 0
	for _, w := range v.Watchers() {
		totalDeps += w.Deps()
		table.Append([]string{
			strconv.FormatUint(w.ID(), 10),
			w.Expr(),
			strconv.Itoa(w.Deps()),
			truncate(dom.Stringify(w.Value()), maxValueWidth),
		})
	}

	markup := dom.OuterHTML(v.El())
	table.SetFooter([]string{
		"",
		"total",
		humanize.Comma(int64(totalDeps)),
		humanize.Bytes(uint64(len(markup))),
	})
	table.Render()

	deps, watchers := v.System().Counts()
	log.Printf("%s deps, %s watchers, %s listeners",
		humanize.Comma(int64(deps)),
		humanize.Comma(int64(watchers)),
		humanize.Comma(int64(v.Bindings(compile.KindEvent)+v.Bindings(compile.KindModel))),
	)
	for _, k := range []compile.Kind{compile.KindText, compile.KindHTML, compile.KindClass, compile.KindModel, compile.KindAttr, compile.KindEvent} {
		if n := v.Bindings(k); n > 0 {
			fmt.Fprintf(w, "%-6s %s\n", k, humanize.Comma(int64(n)))
		}
	}
	fmt.Fprintf(w, "checksum %016x\n", v.Document().Checksum())
	return nil
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
