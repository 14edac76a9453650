// Command burl evaluates a Lisp modeling script and writes the resulting
// triangle meshes as JSON to stdout. Evaluation errors are reported in the
// same payload so callers get one document either way.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chazu/burl/pkg/engine"
)

// MeshData is the JSON-serializable mesh format.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Colors   []float32 `json:"colors"`
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// EvalResult is the full result written to stdout.
type EvalResult struct {
	Meshes []MeshData      `json:"meshes"`
	Shells int             `json:"shells"`
	Errors []EvalErrorData `json:"errors"`
}

// evaluate runs a script and flattens the outcome into the output format.
func evaluate(eng *engine.Engine, source string) EvalResult {
	result := EvalResult{
		Meshes: []MeshData{},
		Errors: []EvalErrorData{},
	}

	res, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Message: e.Message,
			})
		}
		return result
	}

	result.Shells = len(res.Shells)
	for _, m := range res.Meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			Colors:   m.Colors,
		})
	}

	return result
}

func main() {
	pretty := flag.Bool("pretty", false, "indent JSON output")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: burl [-pretty] <script.lisp>\n")
		os.Exit(2)
	}

	source, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	result := evaluate(engine.NewEngine(), string(source))

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		log.Fatal(err)
	}

	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}
