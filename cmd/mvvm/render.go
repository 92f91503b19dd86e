package main

import (
	"context"
	"fmt"

	"github.com/delaneyj/mvvm/cmd/mvvm/templates"
	"github.com/delaneyj/mvvm/dom"
	"github.com/urfave/cli/v3"
)

func renderCommand() *cli.Command {
	flags := append(mountFlags(),
		&cli.StringSliceFlag{
			Name:  setKey,
			Usage: "path=value written to the data after mounting, value is JSON or a string",
		},
		&cli.StringSliceFlag{
			Name:  inputKey,
			Usage: "selector=value typed into a bound form control after mounting",
		},
		&cli.BoolFlag{
			Name:  pageKey,
			Usage: "Wrap the output in a standalone HTML page",
		},
		&cli.StringFlag{
			Name:  titleKey,
			Usage: "Title of the page written with --page",
			Value: "mvvm",
		},
	)
	return &cli.Command{
		Name:   "render",
		Usage:  "Compile a template, apply writes and inputs, print the mount element",
		Flags:  flags,
		Action: render,
	}
}

func render(ctx context.Context, cmd *cli.Command) error {
	v, err := mount(cmd)
	if err != nil {
		return err
	}
	if !v.Mounted() {
		return nil
	}

	for _, s := range cmd.StringSlice(setKey) {
		path, value, err := parseAssignment(s)
		if err != nil {
			return err
		}
		if err := v.Set(path, value); err != nil {
			return fmt.Errorf("set %s: %w", path, err)
		}
	}

	doc := v.Document()
	for _, s := range cmd.StringSlice(inputKey) {
		selector, value, err := parseAssignment(s)
		if err != nil {
			return err
		}
		target, ok := doc.Resolve(selector)
		if !ok {
			return fmt.Errorf("input %s: no single element matches", selector)
		}
		doc.Input(target, dom.Stringify(value))
	}

	out := dom.OuterHTML(v.El())
	w := cmd.Root().Writer
	if cmd.Bool(pageKey) {
		templates.WritePage(w, cmd.String(titleKey), out)
		return nil
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
