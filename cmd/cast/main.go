// Command cast solves a casting from a preference document on disk and
// prints the report, without the API server.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/elrathor/casting-api-go/pkg/casting"
	"github.com/elrathor/casting-api-go/pkg/loader"
	"github.com/elrathor/casting-api-go/pkg/report"
)

func main() {
	file := flag.String("file", "", "preference document (.json, .yaml or .yml)")
	scoring := flag.String("scoring", "linear", "scoring policy: linear or weighted")
	solver := flag.String("solver", "optimal", "solver: optimal or exhaustive")
	maxRank := flag.Int("max-rank", 0, "satisfaction threshold (0 = top 3)")
	xlsxOut := flag.String("xlsx", "", "also write an XLSX workbook to this path")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(1)
	}
	if err := run(*file, *scoring, *solver, *maxRank, *xlsxOut); err != nil {
		fmt.Fprintln(os.Stderr, "cast:", err)
		os.Exit(1)
	}
}

func run(file, scoring, solver string, maxRank int, xlsxOut string) error {
	doc, err := loader.ParseFile(file)
	if err != nil {
		return err
	}

	policy, err := casting.ParsePolicy(scoring)
	if err != nil {
		return err
	}

	matrix, err := casting.BuildMatrix(doc.Characters, doc.Players, policy)
	if err != nil {
		return err
	}

	var res *casting.Result
	switch solver {
	case "optimal":
		res, err = casting.SolveOptimal(matrix)
	case "exhaustive":
		res, err = casting.SolveExhaustive(matrix, 0)
	default:
		return fmt.Errorf("solver must be %q or %q, got %q", "optimal", "exhaustive", solver)
	}
	if err != nil {
		return err
	}

	rep, err := casting.Analyze(res.Details, matrix.Size(), maxRank)
	if err != nil {
		return err
	}

	fmt.Print(report.Render(res, rep, policy))

	if xlsxOut != "" {
		data, err := report.ExportXLSX(res, rep, policy)
		if err != nil {
			return err
		}
		if err := os.WriteFile(xlsxOut, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("\nWorkbook written to %s\n", xlsxOut)
	}
	return nil
}
