package liveness

import (
	"context"
	"fmt"
	"math"

	gocache "github.com/patrickmn/go-cache"

	"liveface.io/infrastructure/logger"
)

// EmbeddingMatrix is an immutable stack of a user's L2-normalized reference
// embeddings. Rows are pre-normalized so a dot product against a unit-length
// candidate is the cosine similarity. Once published to the cache a matrix is
// never mutated; invalidation swaps in a freshly built one.
type EmbeddingMatrix struct {
	Rows    [][]float32
	FaceIDs []string
	Dim     int
}

func (m *EmbeddingMatrix) Empty() bool {
	return m == nil || len(m.Rows) == 0
}

// EmbeddingCache lazily loads reference embeddings per user and keeps the
// normalized matrices in memory with idle-based eviction.
type EmbeddingCache struct {
	faces FaceStore
	store *gocache.Cache
}

func NewEmbeddingCache(faces FaceStore, cfg Config) *EmbeddingCache {
	return &EmbeddingCache{
		faces: faces,
		store: gocache.New(cfg.EmbeddingCacheTTL, cfg.EmbeddingCacheTTL*2),
	}
}

// Get returns the cached matrix for the user, loading and normalizing the
// stored vectors on a miss. A user with zero enrolled faces yields an empty
// matrix, not an error; a store read failure yields ErrDataUnavailable.
func (c *EmbeddingCache) Get(ctx context.Context, userID string) (*EmbeddingMatrix, error) {
	if cached, found := c.store.Get(userID); found {
		return cached.(*EmbeddingMatrix), nil
	}

	faces, err := c.faces.ReferenceFaces(ctx, userID)
	if err != nil {
		logger.Error("failed to load reference embeddings", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "userID",
			Data: userID,
		})
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	matrix := &EmbeddingMatrix{}
	for _, face := range faces {
		row := normalizeVector(face.Embedding)
		if row == nil {
			continue
		}
		if matrix.Dim == 0 {
			matrix.Dim = len(row)
		}
		if len(row) != matrix.Dim {
			logger.Warning("skipping reference embedding with mismatched dimensionality", logger.LoggerOptions{
				Key:  "faceID",
				Data: face.ID,
			})
			continue
		}
		matrix.Rows = append(matrix.Rows, row)
		matrix.FaceIDs = append(matrix.FaceIDs, face.ID)
	}

	c.store.SetDefault(userID, matrix)
	return matrix, nil
}

// Invalidate evicts the user's matrix. Enrollment collaborators must call
// this whenever a reference face is added or removed.
func (c *EmbeddingCache) Invalidate(userID string) {
	c.store.Delete(userID)
}

// normalizeVector returns a unit-length copy of v, or nil for a zero or
// empty vector.
func normalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return nil
	}
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return nil
	}
	normalized := make([]float32, len(v))
	for i, x := range v {
		normalized[i] = float32(float64(x) / norm)
	}
	return normalized
}
