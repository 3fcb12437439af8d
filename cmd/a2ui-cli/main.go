// Package main provides the A2UI CLI tool for development and debugging.
//
// It reads a JSON array of A2UI messages from a file or stdin, applies it
// through the message processor, and prints either a surface summary or the
// rendered HTML.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/a2ui/go-sdk/pkg/processor"
	"github.com/a2ui/go-sdk/pkg/render"
)

func main() {
	htmlOut := flag.Bool("html", false, "print rendered HTML instead of a summary")
	baseURL := flag.String("base-url", "http://localhost:10004", "base URL for resolving relative image URLs")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: a2ui-cli [flags] [file]")
		fmt.Fprintln(os.Stderr, "Reads a JSON array of A2UI messages from file (or stdin) and prints the resulting surfaces.")
		flag.PrintDefaults()
	}
	flag.Parse()

	data, err := readInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "a2ui-cli: %v\n", err)
		os.Exit(1)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	p := processor.New(processor.WithLogger(logger))
	diagnostics := p.ProcessJSON(data)
	for _, d := range diagnostics {
		fmt.Fprintf(os.Stderr, "warning: %s\n", d)
	}

	if *htmlOut {
		r := render.NewHTML(p, render.Config{BaseURL: *baseURL})
		fmt.Println(r.RenderAll())
		return
	}

	surfaces := p.Surfaces()
	fmt.Printf("%d surface(s)\n", len(surfaces))
	for _, s := range surfaces {
		fmt.Printf("  %s: root=%q components=%d\n", s.ID(), s.RootID(), len(s.Components()))
		for _, comp := range s.Components() {
			fmt.Printf("    %-12s %s\n", comp.Kind(), comp.ID)
		}
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
