package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/lucid/internal/placeholders"
)

func main() {
	out := flag.String("out", "assets/textures", "directory to write textures into")
	flag.Parse()

	fmt.Println("Lucid Placeholder Texture Generator")
	fmt.Println("===================================")
	fmt.Println()

	written, err := placeholders.GenerateAndSave(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, path := range written {
		fmt.Printf("  wrote %s\n", path)
	}

	fmt.Println()
	fmt.Printf("Done! %d textures are ready in %s.\n", len(written), *out)
}
