package main

import (
	"context"
	"log"

	"hireflow/resume-screener/internal/config"
	"hireflow/resume-screener/internal/repositories"
	"hireflow/resume-screener/internal/services"
)

const pageSize = 50

// Rebuilds the Qdrant similarity index from the documents table. Useful
// after changing the embedding model or recreating the collection.
func main() {
	log.Println("🚀 Starting similarity index rebuild...")

	// Load configuration
	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	docRepo := repositories.NewDocumentRepository(db)

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	similarityIndex, err := services.NewSimilarityIndex(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := similarityIndex.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	ctx := context.Background()
	indexed, failed := 0, 0

	for offset := 0; ; offset += pageSize {
		docs, err := docRepo.FindAll(pageSize, offset)
		if err != nil {
			log.Fatalf("❌ Failed to list documents: %v", err)
		}
		if len(docs) == 0 {
			break
		}

		for _, doc := range docs {
			chunks := services.ChunkResumeText(doc.CleanText, 4000, 200)
			if len(chunks) == 0 {
				continue
			}

			embeddings := make([][]float32, 0, len(chunks))
			embedFailed := false
			for _, chunk := range chunks {
				embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
				if err != nil {
					log.Printf("⚠️ Failed to embed document %s: %v", doc.ID, err)
					embedFailed = true
					break
				}
				embeddings = append(embeddings, embedding)
			}
			if embedFailed {
				failed++
				continue
			}

			// Drop stale points first so re-runs do not duplicate chunks.
			if err := similarityIndex.DeleteResume(ctx, doc.ID.String()); err != nil {
				log.Printf("⚠️ Failed to clear old points for %s: %v", doc.ID, err)
			}

			if err := similarityIndex.IndexResume(ctx, doc.ID.String(), doc.CompanyID.String(), chunks, embeddings); err != nil {
				log.Printf("⚠️ Failed to index document %s: %v", doc.ID, err)
				failed++
				continue
			}

			indexed++
			log.Printf("✅ Indexed document %s (%d chunks)", doc.ID, len(chunks))
		}
	}

	log.Printf("🎉 Rebuild complete: %d indexed, %d failed", indexed, failed)
}
