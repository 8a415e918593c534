package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"alfredoptarigan/cv-screener/internal/models"
)

const embeddingSize = 768

// IndexHit is one semantic search match.
type IndexHit struct {
	CandidateID uuid.UUID
	Score       float32
}

// CandidateIndex keeps candidate profiles searchable by meaning.
type CandidateIndex interface {
	Init(ctx context.Context) error
	Index(ctx context.Context, candidate *models.Candidate) error
	Search(ctx context.Context, userID, query string, limit int) ([]IndexHit, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type qdrantIndex struct {
	client         *qdrant.Client
	gemini         GeminiService
	prompts        *PromptBuilder
	collectionName string
	vectorSize     uint64
}

func NewQdrantIndex(urlStr, apiKey, collectionName string, gemini GeminiService, prompts *PromptBuilder) (CandidateIndex, error) {
	host, port, useTLS, err := parseQdrantURL(urlStr)
	if err != nil {
		return nil, err
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
		gemini:         gemini,
		prompts:        prompts,
		collectionName: collectionName,
		vectorSize:     embeddingSize,
	}, nil
}

// parseQdrantURL splits a Qdrant URL into gRPC dial settings. The port
// defaults to 6334, the gRPC port.
func parseQdrantURL(urlStr string) (string, int, bool, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return "", 0, false, fmt.Errorf("invalid Qdrant URL: %w", err)
	}
	if parsed.Hostname() == "" {
		return "", 0, false, fmt.Errorf("invalid Qdrant URL: missing host in %q", urlStr)
	}

	port := 6334
	if p := parsed.Port(); p != "" {
		v, err := strconv.Atoi(p)
		if err != nil {
			return "", 0, false, fmt.Errorf("invalid Qdrant port %q: %w", p, err)
		}
		port = v
	}

	return parsed.Hostname(), port, parsed.Scheme == "https", nil
}

// Init implements CandidateIndex.
func (q *qdrantIndex) Init(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
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

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// Index implements CandidateIndex. The point ID is the candidate ID, so
// reprocessing a resume replaces its point.
func (q *qdrantIndex) Index(ctx context.Context, candidate *models.Candidate) error {
	profile := q.prompts.BuildProfileText(candidate.JobTitle, candidate.Category,
		candidate.YearsOfExperience, candidate.SkillList(), candidate.ProfessionalSummary)

	embedding, err := q.gemini.GenerateEmbedding(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to embed candidate profile: %w", err)
	}

	_, err = q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points: []*qdrant.PointStruct{{
			Id:      qdrant.NewID(candidate.ID.String()),
			Vectors: qdrant.NewVectors(embedding...),
			Payload: qdrant.NewValueMap(candidatePayload(candidate)),
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// Search implements CandidateIndex.
func (q *qdrantIndex) Search(ctx context.Context, userID, query string, limit int) ([]IndexHit, error) {
	embedding, err := q.gemini.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("user_id", userID),
			},
		},
		Limit:       qdrant.PtrOf(uint64(limit)),
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	hits := make([]IndexHit, 0, len(points))
	for _, point := range points {
		id, ok := payloadCandidateID(point.Payload)
		if !ok {
			continue
		}
		hits = append(hits, IndexHit{CandidateID: id, Score: point.Score})
	}

	return hits, nil
}

// Delete implements CandidateIndex.
func (q *qdrantIndex) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points:         qdrant.NewPointsSelector(qdrant.NewID(id.String())),
	})
	if err != nil {
		return fmt.Errorf("failed to delete point: %w", err)
	}

	return nil
}

func candidatePayload(c *models.Candidate) map[string]any {
	return map[string]any{
		"candidate_id": c.ID.String(),
		"user_id":      c.UserID,
		"category":     c.Category,
		"years":        int64(c.YearsOfExperience),
	}
}

func payloadCandidateID(payload map[string]*qdrant.Value) (uuid.UUID, bool) {
	v, ok := payload["candidate_id"]
	if !ok {
		return uuid.Nil, false
	}
	s, ok := v.GetKind().(*qdrant.Value_StringValue)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s.StringValue)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
