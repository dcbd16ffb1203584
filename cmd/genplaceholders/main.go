package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/quickgfx/internal/placeholders"
)

func main() {
	out := flag.String("o", "assets.zip", "bundle to write")
	flag.Parse()

	fmt.Println("quickgfx Placeholder Bundle Generator")
	fmt.Println("=====================================")
	fmt.Println()

	if err := placeholders.GenerateAndSave(*out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s: font in %s, %s, %s, %s\n", *out, placeholders.FontDir,
		placeholders.CheckerTile, placeholders.OrbSheet, placeholders.BeepSound)
}
