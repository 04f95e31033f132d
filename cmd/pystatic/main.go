// Command pystatic checks a frontend AST dump: module resolution,
// class hierarchy registration, flow-sensitive type inference, and
// exception control-flow validation.
//
// Usage:
//
//	pystatic check <dump.json>
//
// Configuration is read from pystatic.yaml in the working directory
// when present. Exit status is 1 when diagnostics were reported, 2 on
// usage or input errors.
package main

import (
	"fmt"
	"os"

	"github.com/pystatic/pystatic/internal/astjson"
	"github.com/pystatic/pystatic/internal/config"
	"github.com/pystatic/pystatic/internal/diagnostics"
	"github.com/pystatic/pystatic/internal/pipeline"
)

const configFile = "pystatic.yaml"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) != 2 || args[0] != "check" {
		fmt.Fprintln(os.Stderr, "usage: pystatic check <dump.json>")
		return 2
	}

	opts, err := loadOptions()
	if err != nil {
		fmt.Fprintln(os.Stderr, "pystatic:", err)
		return 2
	}

	f, err := os.Open(args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "pystatic:", err)
		return 2
	}
	sources, err := astjson.Decode(f)
	f.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "pystatic:", err)
		return 2
	}

	ctx := pipeline.NewContext(opts, sources)
	if err := pipeline.Run(ctx, pipeline.Default()...); err != nil {
		fmt.Fprintln(os.Stderr, "pystatic:", err)
		return 2
	}

	if ctx.Collector.HasErrors() {
		printer := diagnostics.NewPrinter(os.Stderr, opts.Color)
		printer.Print(ctx.Collector.Errors())
		return 1
	}
	return 0
}

func loadOptions() (*config.Options, error) {
	if _, err := os.Stat(configFile); err != nil {
		if os.IsNotExist(err) {
			return config.DefaultOptions(), nil
		}
		return nil, err
	}
	return config.LoadOptions(configFile)
}
