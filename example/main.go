// Example program demonstrating the pdfmerge library API.
//
// Run from the repo root:
//
//	go run ./example/ /path/to/root
//
// It previews the merge of every subdirectory of the given root and prints
// what would be written.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/MyCarrier-DevOps/go-pdfmerge/pkg/pdfmerge"
)

func main() {
	root := "."
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	stats, err := pdfmerge.Stats(pdfmerge.Options{Root: root})
	if err != nil {
		log.Fatalf("stats failed: %v", err)
	}
	fmt.Printf("%d subdirectories, %d with PDFs, %d PDFs total\n\n",
		stats.TotalSubdirs, stats.SubdirsWithFiles, stats.TotalFiles)

	summary, err := pdfmerge.Preview(context.Background(), pdfmerge.Options{Root: root})
	if err != nil {
		log.Fatalf("preview failed: %v", err)
	}
	printSummary(summary)
}

func printSummary(summary *pdfmerge.Summary) {
	fmt.Println("=== Preview ===")
	for _, r := range summary.Results {
		if r.Status != pdfmerge.StatusReady {
			fmt.Printf("%-30s %s\n", r.Name, r.Reason())
			continue
		}
		fmt.Printf("%-30s %s\n", r.Name, filepath.Base(r.Output))
		for _, f := range r.Files {
			fmt.Printf("    %s\n", filepath.Base(f))
		}
	}
	fmt.Println()
}
