package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/savora-ai/savora/backend/internal/types"
)

// JSONBRecipe stores a types.Recipe in a JSONB column. Freeform recipes are
// stored as a bare JSON string, structured ones as an object; both forms are
// accepted back on scan.
type JSONBRecipe struct {
	types.Recipe
}

// Value implements the driver.Valuer interface
func (r JSONBRecipe) Value() (driver.Value, error) {
	return json.Marshal(r.Recipe)
}

// Scan implements the sql.Scanner interface
func (r *JSONBRecipe) Scan(value interface{}) error {
	if value == nil {
		*r = JSONBRecipe{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported recipe column type %T", value)
	}

	return json.Unmarshal(bytes, &r.Recipe)
}

// JSONBRequest stores a types.CustomizationRequest in a JSONB column.
type JSONBRequest struct {
	types.CustomizationRequest
}

// Value implements the driver.Valuer interface
func (f JSONBRequest) Value() (driver.Value, error) {
	return json.Marshal(f.CustomizationRequest)
}

// Scan implements the sql.Scanner interface
func (f *JSONBRequest) Scan(value interface{}) error {
	if value == nil {
		*f = JSONBRequest{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported filters column type %T", value)
	}

	return json.Unmarshal(bytes, &f.CustomizationRequest)
}

// Document is one persisted entry in a per-user collection (history,
// favorites, or the diagnostics collection). CreatedAt is the client-side
// ISO-8601 stamp the collections sort by; Timestamp is set by the store on
// write and only consulted when CreatedAt is absent.
type Document struct {
	ID         uuid.UUID    `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID     uuid.UUID    `gorm:"type:varchar(36);not null;index:idx_documents_user_collection" json:"user_id"`
	Collection string       `gorm:"size:50;not null;index:idx_documents_user_collection" json:"collection"`
	Recipe     JSONBRecipe  `gorm:"type:jsonb" json:"recipe"`
	Filters    JSONBRequest `gorm:"type:jsonb" json:"filters"`
	CreatedAt  string       `gorm:"size:40" json:"createdAt"`
	Timestamp  time.Time    `gorm:"autoCreateTime" json:"timestamp"`
}

func (Document) TableName() string {
	return "documents"
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Entry converts the stored row to the domain entry shape.
func (d Document) Entry() types.Entry {
	return types.Entry{
		ID:        d.ID,
		Recipe:    d.Recipe.Recipe,
		Filters:   d.Filters.CustomizationRequest,
		CreatedAt: d.CreatedAt,
		Timestamp: d.Timestamp,
	}
}
