package liveness

import (
	"context"
	"errors"
	"math"
	"testing"

	"liveface.io/entities"
)

func TestEmbeddingCacheLoadsOnceAndNormalizes(t *testing.T) {
	store := &fakeFaceStore{}
	store.enroll("user-1", entities.Face{ID: "face-1", UserID: "user-1", Embedding: []float32{3, 4}})
	cache := NewEmbeddingCache(store, testConfig())

	matrix, err := cache.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(matrix.Rows) != 1 {
		t.Fatalf("rows = %d; want 1", len(matrix.Rows))
	}

	var norm float64
	for _, x := range matrix.Rows[0] {
		norm += float64(x) * float64(x)
	}
	if math.Abs(math.Sqrt(norm)-1.0) > 1e-6 {
		t.Errorf("row norm = %f; want 1.0", math.Sqrt(norm))
	}

	cache.Get(context.Background(), "user-1")
	if store.readCount() != 1 {
		t.Errorf("store reads = %d; want 1 (second Get must hit the cache)", store.readCount())
	}
}

func TestEmbeddingCacheInvalidateRoundTrip(t *testing.T) {
	store := &fakeFaceStore{}
	store.enroll("user-1", entities.Face{ID: "face-1", UserID: "user-1", Embedding: []float32{1, 0}})
	cache := NewEmbeddingCache(store, testConfig())

	matrix, _ := cache.Get(context.Background(), "user-1")
	if len(matrix.Rows) != 1 {
		t.Fatalf("rows = %d; want 1", len(matrix.Rows))
	}

	// enroll → invalidate → fetch reflects the new vector
	store.enroll("user-1", entities.Face{ID: "face-2", UserID: "user-1", Embedding: []float32{0, 1}})
	cache.Invalidate("user-1")

	matrix, _ = cache.Get(context.Background(), "user-1")
	if len(matrix.Rows) != 2 {
		t.Fatalf("rows after invalidation = %d; want 2", len(matrix.Rows))
	}
	if matrix.FaceIDs[1] != "face-2" {
		t.Errorf("FaceIDs = %v; want face-2 present", matrix.FaceIDs)
	}
}

func TestEmbeddingCacheEmptyUserIsNotAnError(t *testing.T) {
	cache := NewEmbeddingCache(&fakeFaceStore{}, testConfig())

	matrix, err := cache.Get(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Get() error = %v; want nil", err)
	}
	if !matrix.Empty() {
		t.Error("matrix for user with no faces must be empty")
	}
}

func TestEmbeddingCacheStoreFailure(t *testing.T) {
	cache := NewEmbeddingCache(&fakeFaceStore{fail: true}, testConfig())

	_, err := cache.Get(context.Background(), "user-1")
	if !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("Get() error = %v; want ErrDataUnavailable", err)
	}
}

func TestEmbeddingCacheSkipsDegenerateVectors(t *testing.T) {
	store := &fakeFaceStore{}
	store.enroll("user-1", entities.Face{ID: "face-1", UserID: "user-1", Embedding: []float32{1, 0, 0}})
	store.enroll("user-1", entities.Face{ID: "face-2", UserID: "user-1", Embedding: []float32{0, 0, 0}})
	store.enroll("user-1", entities.Face{ID: "face-3", UserID: "user-1", Embedding: []float32{1, 1}})
	cache := NewEmbeddingCache(store, testConfig())

	matrix, _ := cache.Get(context.Background(), "user-1")
	if len(matrix.Rows) != 1 || matrix.FaceIDs[0] != "face-1" {
		t.Errorf("matrix = %v; want only face-1 (zero and mismatched vectors dropped)", matrix.FaceIDs)
	}
}
