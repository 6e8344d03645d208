package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/siderun/internal/placeholders"
)

func main() {
	dir := flag.String("out", "assets", "directory to write placeholder PNGs into")
	flag.Parse()

	fmt.Println("Siderun Placeholder Graphics Generator")
	fmt.Println("======================================")

	if err := placeholders.GenerateAndSave(*dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote placeholders to %s\n", *dir)
}
