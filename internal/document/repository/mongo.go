package repository

import (
	"context"
	"time"

	"github.com/termination/collab-text-editor/internal/document"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements a MongoDB-backed document repository. Documents are
// keyed by the short "docId" field; the unique index turns the (unchecked)
// generator collision case into a store error instead of a silent overwrite.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "docId", Value: 1}}, Options: options.Index().SetUnique(true)}
	col.Indexes().CreateOne(context.Background(), idx)
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Save(ctx context.Context, doc *document.Document) error {
	_, err := m.col.InsertOne(ctx, doc)
	return err
}

func (m *MongoRepo) FindByDocID(ctx context.Context, docID string) (*document.Document, error) {
	var d document.Document
	if err := m.col.FindOne(ctx, bson.M{"docId": docID}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (m *MongoRepo) Update(ctx context.Context, docID string, title, content *string, updatedAt time.Time) (*document.Document, error) {
	set := bson.M{"updatedAt": updatedAt}
	if title != nil {
		set["title"] = *title
	}
	if content != nil {
		set["content"] = *content
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d document.Document
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"docId": docID}, bson.M{"$set": set}, opts).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}
