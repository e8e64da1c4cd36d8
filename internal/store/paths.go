// Package store is the boundary to the per-user document store. Every
// persisted collection lives under users/{uid}/{collection}; the typed path
// builders below are the only way paths are formed, so the read and write
// sides can never drift apart.
package store

import (
	"fmt"

	"github.com/google/uuid"
)

// Collection names.
const (
	CollectionHistory     = "history"
	CollectionFavorites   = "favorites"
	CollectionDiagnostics = "test"
)

// Path identifies one per-user collection.
type Path struct {
	UserID     uuid.UUID
	Collection string
}

// HistoryPath returns the path to a user's generated-recipe history.
func HistoryPath(userID uuid.UUID) Path {
	return Path{UserID: userID, Collection: CollectionHistory}
}

// FavoritesPath returns the path to a user's saved favorites.
func FavoritesPath(userID uuid.UUID) Path {
	return Path{UserID: userID, Collection: CollectionFavorites}
}

// DiagnosticsPath returns the path used by the store connectivity probe.
func DiagnosticsPath(userID uuid.UUID) Path {
	return Path{UserID: userID, Collection: CollectionDiagnostics}
}

func (p Path) String() string {
	return fmt.Sprintf("users/%s/%s", p.UserID, p.Collection)
}
