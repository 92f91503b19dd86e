package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/delaneyj/mvvm/dom"
	"github.com/delaneyj/mvvm/vm"
	"github.com/urfave/cli/v3"
)

// mount builds a VM from the template and data flags.
func mount(cmd *cli.Command) (*vm.VM, error) {
	f, err := os.Open(cmd.String(templateKey))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	data := map[string]any{}
	if path := cmd.String(dataKey); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(b, &data); err != nil {
			return nil, fmt.Errorf("parse data %s: %w", path, err)
		}
	}

	v, err := vm.New(vm.Options{
		El:       cmd.String(elKey),
		Data:     data,
		Document: doc,
		Logger:   newLogger(cmd.Bool(verboseKey)),
	})
	if err != nil {
		return nil, err
	}
	if !v.Mounted() {
		log.Printf("No single element matches %q, nothing was compiled", cmd.String(elKey))
	}
	return v, nil
}

func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// parseAssignment splits path=value. The value is decoded as JSON when it
// parses, otherwise it is taken as a plain string.
func parseAssignment(s string) (string, any, error) {
	path, raw, ok := strings.Cut(s, "=")
	path = strings.TrimSpace(path)
	if !ok || path == "" {
		return "", nil, fmt.Errorf("expected path=value, got %q", s)
	}
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return path, raw, nil
	}
	return path, value, nil
}
