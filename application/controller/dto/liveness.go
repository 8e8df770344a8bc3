package dto

type VerifyLivenessDTO struct {
	UserID string   `validate:"required"`
	Frames [][]byte `validate:"required,min=1"`
}

type VerifySingleFrameDTO struct {
	UserID string `validate:"required"`
	Frame  []byte `validate:"required"`
}

// LivenessVerificationResponse is the batch verdict shape returned to API
// consumers. Batch-level failures come back with Status "error" and a
// human-readable Message instead of an HTTP failure.
type LivenessVerificationResponse struct {
	Status            string   `json:"status"`
	SamePersonBatch   *bool    `json:"same_person_batch,omitempty"`
	MatchingRatio     *float64 `json:"matching_ratio,omitempty"`
	AverageSimilarity *float64 `json:"average_similarity,omitempty"`
	ProcessingTime    *float64 `json:"processing_time,omitempty"`
	FramesAnalyzed    *int     `json:"frames_analyzed,omitempty"`
	MovementHistory   []string `json:"movement_history"`
	NextExpectedMove  *string  `json:"next_expected_move"`
	Finished          bool     `json:"finished"`
	Message           string   `json:"message,omitempty"`
}

type SingleFrameVerificationResponse struct {
	Status         string   `json:"status"`
	BestSimilarity *float64 `json:"best_similarity,omitempty"`
	SamePerson     *bool    `json:"same_person,omitempty"`
	MatchedFaceID  *string  `json:"matched_face_id,omitempty"`
	Message        string   `json:"message,omitempty"`
}

type ChallengeResponse struct {
	UserID           string   `json:"user_id"`
	RequiredSequence []string `json:"required_sequence"`
	MovementHistory  []string `json:"movement_history"`
	NextExpectedMove *string  `json:"next_expected_move"`
	Finished         bool     `json:"finished"`
}
