package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"octls/internal/diag"
	"octls/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:          "check [files...]",
	Short:        "Parse and type-bind Octave files, printing diagnostics",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	checkCmd.Flags().Bool("no-cache", false, "disable the diagnostics disk cache")
	checkCmd.Flags().Bool("variables", false, "also print the inferred variable types per file")
	checkCmd.Flags().Int("workers", 0, "parallel file analyses (0 = GOMAXPROCS)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig("")
	if err != nil {
		return err
	}
	setupColor(cmd)

	noCache, _ := cmd.Flags().GetBool("no-cache")
	var cache *driver.DiskCache
	if cfg.Check.cacheEnabled() && !noCache {
		if opened, err := driver.OpenDiskCache("octls"); err == nil {
			cache = opened
		} else {
			fmt.Fprintf(os.Stderr, "octls: cache disabled: %v\n", err)
		}
	}

	workers, _ := cmd.Flags().GetInt("workers")
	results, err := driver.CheckFiles(cmd.Context(), args, driver.CheckOptions{
		Workers: workers,
		Cache:   cache,
	})
	if err != nil {
		return err
	}

	showVariables, _ := cmd.Flags().GetBool("variables")
	printResults(results, showVariables)

	if driver.HasErrors(results) {
		os.Exit(1)
	}
	return nil
}

var (
	errorColor = color.New(color.FgRed, color.Bold)
	pathColor  = color.New(color.FgCyan)
	okColor    = color.New(color.FgGreen)
)

func printResults(results []driver.FileResult, showVariables bool) {
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("%s: %s %v\n", pathColor.Sprint(r.Path), errorColor.Sprint("error:"), r.Err)
			continue
		}
		if len(r.Diagnostics) == 0 {
			fmt.Printf("%s: %s\n", pathColor.Sprint(r.Path), okColor.Sprint("ok"))
		}
		for _, d := range r.Diagnostics {
			printDiagnostic(r.Path, d)
		}
		if showVariables {
			printVariables(r.Path)
		}
	}
}

func printDiagnostic(path string, d diag.Diagnostic) {
	fmt.Printf("%s:%d:%d: %s %s\n",
		pathColor.Sprint(path),
		d.Span.Start.Line, d.Span.Start.Col,
		errorColor.Sprintf("%s:", d.Severity),
		d.Message,
	)
}

func printVariables(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		return
	}
	for _, line := range driver.SortedVariables(string(content)) {
		fmt.Printf("  %s\n", line)
	}
}

// setupColor resolves the --color flag against terminal detection.
func setupColor(cmd *cobra.Command) {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}
