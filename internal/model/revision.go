package model

import (
	"time"

	"gorm.io/datatypes"
)

// EntityKind discriminates which table a revision row belongs to.
type EntityKind string

const (
	EntityKindManual    EntityKind = "manual"
	EntityKindSection   EntityKind = "section"
	EntityKindProcedure EntityKind = "procedure"
	EntityKindDocument  EntityKind = "document"
)

// Revision change types.
const (
	ChangeTypeCreated  = "created"
	ChangeTypeUpdated  = "updated"
	ChangeTypeApproved = "approved"
	ChangeTypeArchived = "archived"
)

// Revision is an append-only audit record. Rows are created once and
// never updated or deleted by application code.
type Revision struct {
	ID             uint              `json:"id" gorm:"primaryKey"`
	EntityKind     EntityKind        `json:"entity_kind" gorm:"size:20;not null;index:idx_revision_entity"`
	EntityID       uint              `json:"entity_id" gorm:"not null;index:idx_revision_entity"`
	Version        string            `json:"version" gorm:"size:20"` // entity version at time of change
	ChangesSummary string            `json:"changes_summary" gorm:"type:text"`
	OldData        datatypes.JSONMap `json:"old_data"`
	NewData        datatypes.JSONMap `json:"new_data"`
	ChangeType     string            `json:"change_type" gorm:"size:20;default:updated"` // created, updated, approved, archived
	ChangedBy      uint              `json:"changed_by" gorm:"not null;index"`
	ChangedAt      time.Time         `json:"changed_at" gorm:"index"`
	ChangeReason   string            `json:"change_reason" gorm:"type:text"`
	IsMajorChange  bool              `json:"is_major_change" gorm:"default:false"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`

	ChangedByUser *User `json:"changed_by_user,omitempty" gorm:"foreignKey:ChangedBy"`
}
