// Package main provides the entry point for vliwdbt.
// vliwdbt is a translation-block engine for a VLIW dynamic binary
// translator.
//
// For the full CLI, use: go run ./cmd/vliwdbt
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("vliwdbt - VLIW DBT translation-block engine")
	fmt.Println("")
	fmt.Println("Usage: vliwdbt <scenario>")
	fmt.Println("")
	fmt.Println("Scenarios:")
	fmt.Println("  straightline   Translate the branch-heavy straight-line region")
	fmt.Println("  reorder        Deferred-store reordering of a load/store packet")
	fmt.Println("  sploop         Single software-pipelined loop")
	fmt.Println("  nested         Nested software-pipelined loop")
	fmt.Println("  all            All four in sequence")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/vliwdbt' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/vliwdbt' instead.")
	}
}
