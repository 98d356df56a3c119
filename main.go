// Command adze evaluates a brush scene script and reports what it built.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
)

func main() {
	jsonOut := flag.Bool("json", false, "emit the full evaluation result as JSON")
	flag.Parse()

	source, err := readSource(flag.Arg(0))
	if err != nil {
		log.Fatalf("read script: %v", err)
	}

	app := NewApp()
	app.startup(context.Background())
	result := app.Evaluate(source)

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Fatalf("encode result: %v", err)
		}
		if len(result.Errors) > 0 {
			os.Exit(1)
		}
		return
	}

	for _, e := range result.Errors {
		if e.Line > 0 {
			fmt.Fprintf(os.Stderr, "error: line %d: %s\n", e.Line, e.Message)
		} else {
			fmt.Fprintf(os.Stderr, "error: %s\n", e.Message)
		}
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w.Message)
	}
	if len(result.Errors) > 0 {
		os.Exit(1)
	}

	triangles := 0
	for _, m := range result.Meshes {
		triangles += len(m.Indices) / 3
		fmt.Printf("%-20s %5d vertices %5d triangles\n",
			m.BrushName, len(m.Vertices)/3, len(m.Indices)/3)
	}
	fmt.Printf("%d brushes, %d triangles total\n", len(result.Meshes), triangles)
}

// readSource reads the script from the named file, or stdin if no file
// is given.
func readSource(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
