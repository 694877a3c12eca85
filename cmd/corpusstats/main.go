package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"lgs-predict/internal/corpus"
)

// Prints the full corpus analysis report as JSON. Useful for eyeballing a
// data file before serving it.
func main() {
	dataPath := flag.String("data", "data.json", "path to the corpus JSON file")
	topN := flag.Int("keywords", 30, "how many top keywords to include")
	flag.Parse()

	store := corpus.NewStore(*dataPath)
	if err := store.Load(); err != nil {
		log.Fatalf("failed to load corpus from %s: %v", *dataPath, err)
	}

	analyzer := corpus.NewAnalyzer(store)
	report := analyzer.ExportReport()
	report["top_keywords"] = analyzer.KeywordFrequency(*topN)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal report: %v", err)
	}

	fmt.Fprintln(os.Stdout, string(out))
}
