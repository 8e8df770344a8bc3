package entities

import (
	"time"

	"liveface.io/application/utils"
)

// Face is a single enrolled reference face for a user. The embedding is
// stored exactly as produced by the detector service; normalization happens
// when the engine builds its in-memory matrix.
type Face struct {
	UserID    string    `bson:"userID" json:"userID"`
	FileName  string    `bson:"fileName" json:"fileName"`
	Source    string    `bson:"source" json:"source"`
	Embedding []float32 `bson:"embedding" json:"-"`

	ID        string     `bson:"_id" json:"id"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt *time.Time `bson:"deletedAt" json:"deletedAt"`
}

func (model Face) ParseModel() any {
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
