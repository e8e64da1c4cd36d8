package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/savora-ai/savora/backend/internal/models"
	"github.com/savora-ai/savora/backend/internal/types"
)

// ErrNotFound is returned by DeleteDocument when the target document does
// not exist in the collection.
var ErrNotFound = errors.New("document not found")

// OrderSpec asks the store to order results by the client creation stamp.
// Passing nil to GetDocuments fetches the collection unordered.
type OrderSpec struct {
	Descending bool
}

// DocumentStore exposes the collection primitives the rest of the system
// uses: single-document add and delete, whole-collection fetch. The ordered
// fetch may fail independently of the base fetch; callers that need the
// ordering are expected to fall back.
type DocumentStore interface {
	AddDocument(ctx context.Context, path Path, doc types.Entry) (uuid.UUID, error)
	GetDocuments(ctx context.Context, path Path, order *OrderSpec) ([]types.Entry, error)
	DeleteDocument(ctx context.Context, path Path, id uuid.UUID) error
}

// GormStore is the database-backed document store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AddDocument persists a new document and returns the store-assigned id.
// The entry's id field is ignored; ids are never chosen by callers.
func (s *GormStore) AddDocument(ctx context.Context, path Path, doc types.Entry) (uuid.UUID, error) {
	row := models.Document{
		UserID:     path.UserID,
		Collection: path.Collection,
		Recipe:     models.JSONBRecipe{Recipe: doc.Recipe},
		Filters:    models.JSONBRequest{CustomizationRequest: doc.Filters},
		CreatedAt:  doc.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return uuid.Nil, fmt.Errorf("adding document to %s: %w", path, err)
	}
	return row.ID, nil
}

// GetDocuments fetches every document in the collection. With an OrderSpec
// the store orders by the client creation stamp; RFC 3339 strings sort
// lexically in time order, so the database collation is enough. A document
// written without a stamp sorts after every stamped one under DESC, whereas
// the in-memory fallback places it by server timestamp. Every writer in
// this system stamps CreatedAt, so the two orderings agree in practice.
func (s *GormStore) GetDocuments(ctx context.Context, path Path, order *OrderSpec) ([]types.Entry, error) {
	query := s.db.WithContext(ctx).
		Where("user_id = ? AND collection = ?", path.UserID, path.Collection)

	if order != nil {
		if order.Descending {
			query = query.Order("created_at DESC")
		} else {
			query = query.Order("created_at ASC")
		}
	}

	var rows []models.Document
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetching documents from %s: %w", path, err)
	}

	entries := make([]types.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.Entry())
	}
	return entries, nil
}

// DeleteDocument removes one document from the collection. Deleting a
// document that is already gone returns ErrNotFound.
func (s *GormStore) DeleteDocument(ctx context.Context, path Path, id uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND collection = ?", path.UserID, path.Collection).
		Delete(&models.Document{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("deleting document %s from %s: %w", id, path, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
