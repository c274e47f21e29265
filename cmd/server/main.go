package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/limjk/policylens/internal/api"
	"github.com/limjk/policylens/internal/llm"
	"github.com/limjk/policylens/internal/query"
	"github.com/limjk/policylens/internal/source"
	"github.com/limjk/policylens/internal/storage"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	documents := buildDocumentSource()

	var generator llm.Generator
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		opts := []llm.ClientOption{}
		if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
			opts = append(opts, llm.WithBaseURL(baseURL))
		}
		if model := os.Getenv("OPENAI_MODEL"); model != "" {
			opts = append(opts, llm.WithModel(model))
		}
		generator = llm.NewClient(apiKey, opts...)
	} else {
		log.Println("OPENAI_API_KEY not set - using deterministic fallback summaries")
	}

	server := api.NewServer(api.ServerConfig{
		Documents: documents,
		Generator: generator,
	})

	fmt.Printf("Starting policylens server on port %s\n", port)
	if err := server.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildDocumentSource assembles the document retrieval stack: live
// Hansard scraping and press feeds when configured, template data
// otherwise, social search always, all behind an optional Postgres cache.
func buildDocumentSource() source.Source {
	analyzer := query.NewAnalyzer(nil)

	var sources []source.Source
	if baseURL := os.Getenv("HANSARD_BASE_URL"); baseURL != "" {
		sources = append(sources, source.NewHansardSource(baseURL))
	}
	if feeds := os.Getenv("PRESS_FEED_URLS"); feeds != "" {
		sources = append(sources, source.NewPressSource(strings.Split(feeds, ",")))
	}
	if len(sources) == 0 {
		log.Println("No live sources configured - using template documents")
		sources = append(sources, source.NewTemplateSource())
	}
	sources = append(sources, source.NewSocialSource(analyzer, nil))

	combined := source.Source(source.NewMultiSource(sources...))

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return combined
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Printf("Failed to open database, search cache disabled: %v", err)
		return combined
	}
	if err := db.Ping(); err != nil {
		log.Printf("Failed to ping database, search cache disabled: %v", err)
		return combined
	}

	return source.NewCachedSource(combined, storage.NewPostgresSearchCache(db, 0))
}
