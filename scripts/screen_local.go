package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"apollohr/resume-screener/internal/config"
	"apollohr/resume-screener/internal/services"
)

// Screens a local directory of resumes against a job description file
// without going through the HTTP API. Usage:
//
//	go run scripts/screen_local.go <job_description_file> <resumes_dir>
func main() {
	if len(os.Args) != 3 {
		log.Fatalf("usage: %s <job_description_file> <resumes_dir>", os.Args[0])
	}

	jdPath := os.Args[1]
	resumesDir := os.Args[2]

	log.Println("🚀 Starting local screening...")

	// Load configuration
	cfg := config.Load()

	extractor := services.NewTextExtractor()

	jdBytes, err := os.ReadFile(jdPath)
	if err != nil {
		log.Fatalf("❌ Failed to read job description: %v", err)
	}

	jobDescription := services.CleanText(extractor.ExtractText(jdBytes, filepath.Base(jdPath)))
	if jobDescription == "" {
		log.Fatalf("❌ No text could be extracted from %s", jdPath)
	}

	entries, err := os.ReadDir(resumesDir)
	if err != nil {
		log.Fatalf("❌ Failed to read resumes directory: %v", err)
	}

	resumes := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(resumesDir, entry.Name()))
		if err != nil {
			log.Printf("⚠️  Skipping %s: %v", entry.Name(), err)
			continue
		}

		text := services.CleanText(extractor.ExtractText(data, entry.Name()))
		if text == "" {
			log.Printf("⚠️  Skipping %s: no text could be extracted", entry.Name())
			continue
		}

		resumes[entry.Name()] = text
	}

	if len(resumes) == 0 {
		log.Fatalf("❌ No readable resumes in %s", resumesDir)
	}

	log.Printf("📄 Screening %d resumes...", len(resumes))

	credentials := services.NewClientCredentials(
		cfg.Apollo.TokenURL,
		cfg.Apollo.ClientID,
		cfg.Apollo.ClientSecret,
		cfg.Apollo.TokenTimeout,
	)

	llmClient := services.NewApolloClient(
		credentials,
		cfg.Apollo.APIURL,
		cfg.Apollo.Model,
		cfg.Apollo.Temperature,
		cfg.Apollo.MaxTokens,
		cfg.Apollo.CompletionTimeout,
	)

	analyzer := services.NewAnalyzerService(llmClient, zap.NewNop(), cfg.Analyzer.Concurrency)

	results := analyzer.AnalyzeBatch(context.Background(), resumes, jobDescription, cfg.Analyzer.Concurrency)

	fmt.Printf("\n%-30s %-10s %-10s %-12s %s\n", "CANDIDATE", "TECH FIT", "BEHAVIOR", "RECOMMEND", "FILE")
	for _, record := range results {
		if record.Failed() {
			fmt.Printf("%-30s %-10s %-10s %-12s %s\n", record.CandidateName, "-", "-", "FAILED", record.ResumeFilename)
			continue
		}
		fmt.Printf("%-30s %-10d %-10.1f %-12s %s\n",
			record.CandidateName,
			record.TechnicalFitScore,
			record.BehaviorAverage(),
			record.OverallRecommendation,
			record.ResumeFilename,
		)
	}

	log.Println("✅ Screening complete")
}
