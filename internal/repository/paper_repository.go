package repository

import (
	"context"
	"errors"

	"paper-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StoreName keys the single snapshot blob holding every local paper.
const StoreName = "paper-builder-store"

type snapshotDoc struct {
	ID     string                 `bson:"_id"`
	Papers []models.QuestionPaper `bson:"papers"`
}

// PaperRepository persists the document collection as one named blob. The
// blob is written whole on every save; there is no per-paper update path.
type PaperRepository struct {
	Col *mongo.Collection
}

func NewPaperRepository(db *mongo.Database) *PaperRepository {
	return &PaperRepository{Col: db.Collection("paper_store")}
}

// SaveSnapshot upserts the full paper collection into the store blob.
func (r *PaperRepository) SaveSnapshot(ctx context.Context, papers []models.QuestionPaper) error {
	if papers == nil {
		papers = []models.QuestionPaper{}
	}
	doc := snapshotDoc{ID: StoreName, Papers: papers}
	_, err := r.Col.ReplaceOne(ctx,
		bson.M{"_id": StoreName},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

// LoadSnapshot reads the store blob back. A missing blob is not an error; it
// yields an empty collection, for first startup.
func (r *PaperRepository) LoadSnapshot(ctx context.Context) ([]models.QuestionPaper, error) {
	var doc snapshotDoc
	err := r.Col.FindOne(ctx, bson.M{"_id": StoreName}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []models.QuestionPaper{}, nil
	}
	if err != nil {
		return nil, err
	}
	if doc.Papers == nil {
		doc.Papers = []models.QuestionPaper{}
	}
	return doc.Papers, nil
}
