package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"prepverse/answer-evaluator/internal/config"
	"prepverse/answer-evaluator/internal/services"
)

// publishedArticle is one entry of the seed file: an article that already
// cleared the gate and went live. The originality check compares new drafts
// against these.
type publishedArticle struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

func main() {
	log.Println("🚀 Starting article ingestion...")

	seedPath := "./seed/published_articles.json"
	if len(os.Args) > 1 {
		seedPath = os.Args[1]
	}

	articles, err := loadArticles(seedPath)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	log.Printf("📋 Loaded %d published articles from %s", len(articles), seedPath)

	// Load configuration
	cfg := config.Load()

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	chunker := services.NewTextChunker()

	ctx := context.Background()

	type row struct {
		title  string
		chunks int
		stored int
		status string
	}

	rows := make([]row, 0, len(articles))
	failCount := 0

	for _, article := range articles {
		log.Printf("\n📄 Processing: %s", article.Title)

		if article.Body == "" {
			log.Printf("   ⚠️  Empty body, skipping...")
			rows = append(rows, row{title: article.Title, status: "skipped"})
			failCount++
			continue
		}

		// Chunk the text
		log.Printf("   ✂️  Chunking text...")
		chunks := chunker.ChunkText(article.Body, 1000, 200)
		log.Printf("   ✅ Created %d chunks", len(chunks))

		// Embed and store each chunk
		log.Printf("   🔄 Embedding and storing chunks...")
		stored := 0
		for i, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("   ❌ Failed to generate embedding for chunk %d: %v", i+1, err)
				continue
			}

			if err := qdrantService.UpsertArticle(ctx, article.ID, article.Title, chunk, embedding); err != nil {
				log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
				continue
			}
			stored++
		}

		status := "ok"
		if stored < len(chunks) {
			status = "partial"
			failCount++
		}
		rows = append(rows, row{title: article.Title, chunks: len(chunks), stored: stored, status: status})

		log.Printf("   ✅ Stored %d/%d chunks", stored, len(chunks))
	}

	// Summary
	color.Cyan("\nIngestion Summary")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Article", "Chunks", "Stored", "Status"})

	for _, r := range rows {
		table.Append([]string{
			r.title,
			fmt.Sprintf("%d", r.chunks),
			fmt.Sprintf("%d", r.stored),
			r.status,
		})
	}
	table.Render()

	if failCount > 0 {
		color.Red("%d of %d articles did not ingest cleanly. Check the logs above.", failCount, len(articles))
		os.Exit(1)
	}

	color.Green("All %d articles ingested successfully!", len(articles))
}

func loadArticles(path string) ([]publishedArticle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var articles []publishedArticle
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	return articles, nil
}
