package main

import (
	"flag"
	"fmt"
	"os"

	"lgs-predict/internal/config"
	"lgs-predict/internal/corpus"
	"lgs-predict/internal/domain"
	"lgs-predict/internal/logger"

	"go.uber.org/zap"
)

// importquestions merges a question file into the corpus data file. New
// questions are validated and normalized; ids already present in the corpus
// are skipped so the tool can be re-run on the same input.
func main() {
	inputPath := flag.String("input", "", "question file to import (required)")
	dataPath := flag.String("data", "", "corpus data file (defaults to the configured one)")
	dryRun := flag.Bool("dry-run", false, "validate and report without writing")
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: importquestions -input <file> [-data <file>] [-dry-run]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	l := logger.Get()

	target := *dataPath
	if target == "" {
		target = cfg.Data.CorpusFile
	}

	input, err := corpus.ReadDocument(*inputPath)
	if err != nil {
		l.Fatal("failed to read input file", zap.String("path", *inputPath), zap.Error(err))
	}

	doc, err := corpus.ReadDocument(target)
	if err != nil {
		l.Warn("corpus file missing, starting a new one", zap.String("path", target), zap.Error(err))
		doc = corpus.NewDocument()
	}

	existing := make(map[string]bool, len(doc.Questions))
	for _, q := range doc.Questions {
		existing[q.ID] = true
	}

	added, skipped := 0, 0
	for _, q := range input.Questions {
		if q.ID != "" && existing[q.ID] {
			skipped++
			continue
		}
		if !domain.IsSupportedCategory(q.Category) {
			l.Warn("skipping question with unsupported category",
				zap.String("id", q.ID),
				zap.String("category", q.Category))
			skipped++
			continue
		}
		if q.Body == "" {
			l.Warn("skipping question without a body", zap.String("id", q.ID))
			skipped++
			continue
		}
		q.Difficulty, _ = domain.NormalizeDifficulty(q.Difficulty)
		q.CorrectAnswer, _ = domain.NormalizeCorrectAnswer(q.CorrectAnswer)

		doc.Questions = append(doc.Questions, q)
		if q.ID != "" {
			existing[q.ID] = true
		}
		added++
	}

	if *dryRun {
		l.Info("dry run, not writing",
			zap.Int("would_add", added),
			zap.Int("skipped", skipped),
			zap.Int("total_after", len(doc.Questions)))
		return
	}

	if err := corpus.WriteDocument(target, doc); err != nil {
		l.Fatal("failed to write corpus file", zap.String("path", target), zap.Error(err))
	}

	l.Info("import finished",
		zap.String("path", target),
		zap.Int("added", added),
		zap.Int("skipped", skipped),
		zap.Int("total", len(doc.Questions)))
}
