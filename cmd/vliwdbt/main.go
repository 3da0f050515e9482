// Package main provides the vliwdbt command-line driver.
//
// vliwdbt feeds canned VLIW guest regions through the translation
// engine and narrates the resulting translation blocks and loop phase
// transitions.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var rootCmd = &cobra.Command{
	Use:   "vliwdbt",
	Short: "Translate canned VLIW guest regions into translation blocks.",
	Long: `vliwdbt drives the VLIW dynamic-binary-translation engine over ` +
		`canned guest regions: straight-line code with branch delay slots, ` +
		`a co-issued load/store packet, and single and nested ` +
		`software-pipelined loops.`,
}

func init() {
	// A .env file may set VLIWDBT_TRACE and VLIWDBT_TRACE_FILE.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("config", "",
		"path to a run configuration JSON file")
	rootCmd.PersistentFlags().Int("budget", 0,
		"initial cycle budget for straight-line blocks")
	rootCmd.PersistentFlags().Int("ilc", 0,
		"inner loop counter (single and nested loops)")
	rootCmd.PersistentFlags().Int("rilc", 0,
		"inner loop counter reload value (nested loop)")
	rootCmd.PersistentFlags().Int("a1", 0,
		"outer loop counter (nested loop)")
	rootCmd.PersistentFlags().String("trace",
		os.Getenv("VLIWDBT_TRACE"),
		"diagnostic trace sink: stdout, csv, or sqlite")
	rootCmd.PersistentFlags().String("trace-file",
		os.Getenv("VLIWDBT_TRACE_FILE"),
		"trace output path (csv and sqlite sinks)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
