package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// SimilarityIndex stores embeddings of screened resumes and answers
// nearest-candidate lookups. One point is stored per text chunk; matches
// are de-duplicated by document on the way out.
type SimilarityIndex interface {
	InitCollection() error
	IndexResume(ctx context.Context, docID, companyID string, chunks []string, embeddings [][]float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, companyID, excludeDocID string, limit int) ([]SimilarMatch, error)
	DeleteResume(ctx context.Context, docID string) error
}

type SimilarMatch struct {
	DocumentID string
	Score      float32
}

type qdrantIndex struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewSimilarityIndex(urlStr, apiKey, collectionName string) (SimilarityIndex, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port by default.
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantIndex{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 vector size
	}, nil
}

// InitCollection implements SimilarityIndex.
func (q *qdrantIndex) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("qdrant collection %q created", q.collectionName)
	return nil
}

// IndexResume implements SimilarityIndex.
func (q *qdrantIndex) IndexResume(ctx context.Context, docID, companyID string, chunks []string, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunk/embedding count mismatch: %d vs %d", len(chunks), len(embeddings))
	}

	points := make([]*qdrant.PointStruct, 0, len(chunks))
	for i, embedding := range embeddings {
		pointID := uuid.New()
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(uint64(pointID.ID())),
			Vectors: qdrant.NewVectors(embedding...),
			Payload: qdrant.NewValueMap(map[string]interface{}{
				"doc_id":     docID,
				"company_id": companyID,
				"chunk":      i,
				"text":       chunks[i],
			}),
		})
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	return nil
}

// SearchSimilar implements SimilarityIndex.
func (q *qdrantIndex) SearchSimilar(ctx context.Context, queryEmbedding []float32, companyID, excludeDocID string, limit int) ([]SimilarMatch, error) {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("company_id", companyID),
		},
	}
	if excludeDocID != "" {
		filter.MustNot = []*qdrant.Condition{
			qdrant.NewMatch("doc_id", excludeDocID),
		}
	}

	// Over-fetch: multiple chunks of one document can match.
	fetchLimit := uint64(limit * 4)
	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(fetchLimit),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	seen := make(map[string]bool)
	var matches []SimilarMatch
	for _, point := range searchResult {
		docID := ""
		if value, ok := point.Payload["doc_id"]; ok {
			if sv, ok := value.GetKind().(*qdrant.Value_StringValue); ok {
				docID = sv.StringValue
			}
		}
		if docID == "" || seen[docID] {
			continue
		}
		seen[docID] = true
		matches = append(matches, SimilarMatch{DocumentID: docID, Score: point.Score})
		if len(matches) == limit {
			break
		}
	}

	return matches, nil
}

// DeleteResume implements SimilarityIndex.
func (q *qdrantIndex) DeleteResume(ctx context.Context, docID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("doc_id", docID),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete resume points: %w", err)
	}

	return nil
}
