package service

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/savora-ai/savora/backend/internal/store"
	"github.com/savora-ai/savora/backend/internal/types"
)

// CollectionService loads a user's persisted recipe collections. Every load
// re-fetches; nothing is cached between calls.
type CollectionService struct {
	store store.DocumentStore
}

func NewCollectionService(documentStore store.DocumentStore) *CollectionService {
	return &CollectionService{store: documentStore}
}

// Load returns the collection newest-first. The ordered store query is
// tried first; if it fails (a missing index or field), the same collection
// is fetched unordered and sorted here by derived display date. Both paths
// produce the same sequence for the same data. When both fail the view gets
// an empty collection, never an error.
func (s *CollectionService) Load(ctx context.Context, userID uuid.UUID, collection string) []types.Entry {
	path := store.Path{UserID: userID, Collection: collection}

	entries, err := s.store.GetDocuments(ctx, path, &store.OrderSpec{Descending: true})
	if err == nil {
		return entries
	}
	log.Printf("ordered fetch of %s failed, retrying unordered: %v", path, err)

	entries, err = s.store.GetDocuments(ctx, path, nil)
	if err != nil {
		log.Printf("unordered fetch of %s failed: %v", path, err)
		return []types.Entry{}
	}
	return sortByDisplayDate(entries)
}

// sortByDisplayDate orders entries newest-first by their derived display
// date. Dates are derived once per entry before sorting so the "now"
// fallback cannot shift between comparisons.
func sortByDisplayDate(entries []types.Entry) []types.Entry {
	dates := make(map[uuid.UUID]time.Time, len(entries))
	for _, e := range entries {
		dates[e.ID] = e.DisplayDate()
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return dates[entries[i].ID].After(dates[entries[j].ID])
	})
	return entries
}

// RecordGeneration appends a history entry for a freshly generated recipe,
// stamped with the client-side creation time. History entries are never
// deleted.
func (s *CollectionService) RecordGeneration(ctx context.Context, userID uuid.UUID, recipe types.Recipe, filters types.CustomizationRequest) (uuid.UUID, error) {
	return s.store.AddDocument(ctx, store.HistoryPath(userID), types.Entry{
		Recipe:    recipe,
		Filters:   filters,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}
