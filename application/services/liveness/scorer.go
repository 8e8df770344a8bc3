package liveness

import "math"

// Score computes the best cosine similarity between the candidate embedding
// and every row of the reference matrix, returning that similarity and the
// enrolled face ID it belongs to. Rows are pre-normalized, the candidate is
// normalized here, so a plain dot product is the cosine. Stateless and safe
// for unlimited concurrent calls on a shared matrix.
func Score(matrix *EmbeddingMatrix, candidate []float32) (float64, string) {
	if matrix.Empty() || len(candidate) == 0 {
		return 0, ""
	}

	var candidateNorm float64
	for _, x := range candidate {
		candidateNorm += float64(x) * float64(x)
	}
	candidateNorm = math.Sqrt(candidateNorm)
	if candidateNorm == 0 {
		return 0, ""
	}

	best := math.Inf(-1)
	bestFaceID := ""
	for i, row := range matrix.Rows {
		if len(row) != len(candidate) {
			continue
		}
		var dot float64
		for j, x := range row {
			dot += float64(x) * float64(candidate[j])
		}
		similarity := dot / candidateNorm
		if similarity > best {
			best = similarity
			bestFaceID = matrix.FaceIDs[i]
		}
	}
	if math.IsInf(best, -1) {
		return 0, ""
	}
	return best, bestFaceID
}
