package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/savora-ai/savora/backend/internal/store"
	"github.com/savora-ai/savora/backend/internal/types"
)

// FavoriteService adds and removes documents in a user's favorites
// collection. It touches only the store; any in-memory list the caller is
// displaying is the caller's to update.
type FavoriteService struct {
	store store.DocumentStore
}

func NewFavoriteService(documentStore store.DocumentStore) *FavoriteService {
	return &FavoriteService{store: documentStore}
}

// Add saves a recipe with the request that produced it and returns the
// store-assigned id.
func (s *FavoriteService) Add(ctx context.Context, userID uuid.UUID, recipe types.Recipe, filters types.CustomizationRequest) (uuid.UUID, error) {
	return s.store.AddDocument(ctx, store.FavoritesPath(userID), types.Entry{
		Recipe:    recipe,
		Filters:   filters,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// Remove deletes one favorite. Removing an id that is already gone is not
// an error: the store's not-found is swallowed and logged, so a repeated
// remove is a no-op for the caller.
func (s *FavoriteService) Remove(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	err := s.store.DeleteDocument(ctx, store.FavoritesPath(userID), id)
	if errors.Is(err, store.ErrNotFound) {
		log.Printf("favorite %s for user %s already removed", id, userID)
		return nil
	}
	return err
}
