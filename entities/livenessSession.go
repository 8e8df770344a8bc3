package entities

import (
	"time"

	"liveface.io/application/utils"
)

// LivenessSession tracks a user's progress through the head-movement
// challenge. MovementHistory is always a prefix of RequiredSequence and
// NextExpectedMove is nil exactly when the challenge is finished.
// Transient per-frame tracking state is kept in memory by the engine and is
// deliberately absent here.
type LivenessSession struct {
	UserID           string    `bson:"userID" json:"userID"`
	RequiredSequence []string  `bson:"requiredSequence" json:"requiredSequence"`
	MovementHistory  []string  `bson:"movementHistory" json:"movementHistory"`
	NextExpectedMove *string   `bson:"nextExpectedMove" json:"nextExpectedMove"`
	Finished         bool      `bson:"finished" json:"finished"`
	MatchedFaceID    *string   `bson:"matchedFaceID" json:"matchedFaceID"`
	LastPersistedAt  time.Time `bson:"lastPersistedAt" json:"-"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model LivenessSession) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateULIDString()
		}
	}
	model.UpdatedAt = now
	return &model
}
