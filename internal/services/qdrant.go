package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"

	"alfredoptarigan/placement-predictor/internal/prediction"
)

const (
	recordVectorSize  = 4
	candidateLimit    = 200
	upsertBatchSize   = 256
	branchPayloadKey  = "branch"
	studentPayloadKey = "student_id"
)

// QdrantNeighborIndex stores historical records as small normalised vectors
// so fallback candidates can be fetched without scanning the dataset.
type QdrantNeighborIndex interface {
	prediction.NeighborSource
	InitCollection(ctx context.Context) error
	IndexDataset(ctx context.Context, ds *prediction.Dataset) (int, error)
	Reset(ctx context.Context) error
}

type qdrantNeighborIndex struct {
	client         *qdrant.Client
	collectionName string
}

func NewQdrantNeighborIndex(urlStr, apiKey, collectionName string) (QdrantNeighborIndex, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port unless the URL names one
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

	return &qdrantNeighborIndex{
		client:         client,
		collectionName: collectionName,
	}, nil
}

// InitCollection implements QdrantNeighborIndex.
func (q *qdrantNeighborIndex) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Printf("✅ Qdrant collection '%s' already exists", q.collectionName)
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     recordVectorSize,
			Distance: qdrant.Distance_Euclid,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	_, err = q.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: q.collectionName,
		FieldName:      branchPayloadKey,
		FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
	})
	if err != nil {
		return fmt.Errorf("failed to index branch payload: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully", q.collectionName)
	return nil
}

// IndexDataset upserts every record, keyed by its row number so re-indexing
// overwrites instead of duplicating.
func (q *qdrantNeighborIndex) IndexDataset(ctx context.Context, ds *prediction.Dataset) (int, error) {
	records := ds.Records()
	for start := 0; start < len(records); start += upsertBatchSize {
		end := min(start+upsertBatchSize, len(records))

		points := make([]*qdrant.PointStruct, 0, end-start)
		for i := start; i < end; i++ {
			points = append(points, &qdrant.PointStruct{
				Id:      qdrant.NewIDNum(uint64(i + 1)),
				Vectors: qdrant.NewVectors(recordVector(records[i].CGPA, records[i].WorkExp, records[i].Internships, records[i].Projects)...),
				Payload: qdrant.NewValueMap(recordPayload(records[i])),
			})
		}

		_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: q.collectionName,
			Points:         points,
		})
		if err != nil {
			return start, fmt.Errorf("failed to upsert records %d-%d: %w", start, end, err)
		}
		log.Printf("📊 Indexed %d/%d records", end, len(records))
	}

	return len(records), nil
}

// Candidates implements prediction.NeighborSource.
func (q *qdrantNeighborIndex) Candidates(ctx context.Context, p prediction.StudentProfile) ([]prediction.DatasetRecord, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(recordVector(p.CGPA, p.WorkExpYears, p.InternshipCount, p.ProjectCount)...),
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch(branchPayloadKey, prediction.NormalizeBranch(p.Branch)),
			},
		},
		Limit:       qdrant.PtrOf(uint64(candidateLimit)),
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: qdrant query failed: %v", prediction.ErrDatasetUnavailable, err)
	}

	out := make([]prediction.DatasetRecord, 0, len(points))
	for _, point := range points {
		out = append(out, recordFromPayload(point.Payload))
	}
	return out, nil
}

// Reset implements QdrantNeighborIndex.
func (q *qdrantNeighborIndex) Reset(ctx context.Context) error {
	if err := q.client.DeleteCollection(ctx, q.collectionName); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	return q.InitCollection(ctx)
}

// recordVector scales each count into roughly [0,1] with the same ranges
// the estimator's similarity uses.
func recordVector(cgpa float64, workExp, internships, projects int) []float32 {
	return []float32{
		float32(cgpa / 10),
		float32(float64(workExp) / 5),
		float32(float64(internships) / 5),
		float32(float64(projects) / 10),
	}
}

func recordPayload(r prediction.DatasetRecord) map[string]any {
	return map[string]any{
		studentPayloadKey: r.StudentID,
		branchPayloadKey:  prediction.NormalizeBranch(r.Degree),
		"degree":          r.Degree,
		"cgpa":            r.CGPA,
		"work_exp":        int64(r.WorkExp),
		"internships":     int64(r.Internships),
		"projects":        int64(r.Projects),
		"skills":          r.Skills,
		"resume_score":    int64(r.ResumeScore),
		"soft_skills":     int64(r.SoftSkills),
		"placed":          r.Placed,
		"salary":          r.Salary,
	}
}

func recordFromPayload(payload map[string]*qdrant.Value) prediction.DatasetRecord {
	return prediction.DatasetRecord{
		StudentID:   payloadString(payload, studentPayloadKey),
		CGPA:        payloadFloat(payload, "cgpa"),
		Degree:      payloadString(payload, "degree"),
		WorkExp:     int(payloadFloat(payload, "work_exp")),
		Internships: int(payloadFloat(payload, "internships")),
		Projects:    int(payloadFloat(payload, "projects")),
		Skills:      payloadString(payload, "skills"),
		ResumeScore: int(payloadFloat(payload, "resume_score")),
		SoftSkills:  int(payloadFloat(payload, "soft_skills")),
		Placed:      payloadString(payload, "placed"),
		Salary:      payloadFloat(payload, "salary"),
	}
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if v, ok := payload[key]; ok {
		if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
			return s.StringValue
		}
	}
	return ""
}

// payloadFloat reads integer and double payload values alike.
func payloadFloat(payload map[string]*qdrant.Value, key string) float64 {
	v, ok := payload[key]
	if !ok {
		return 0
	}
	switch k := v.GetKind().(type) {
	case *qdrant.Value_DoubleValue:
		return k.DoubleValue
	case *qdrant.Value_IntegerValue:
		return float64(k.IntegerValue)
	}
	return 0
}
