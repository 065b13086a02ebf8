package repository

import (
	"gorm.io/gorm"

	"github.com/qmsdocs/backend/internal/model"
)

type revisionRepository struct {
	db *gorm.DB
}

func NewRevisionRepository(db *gorm.DB) RevisionRepository {
	return &revisionRepository{db: db}
}

// Create 写入修订记录。修订表只追加，应用层不提供更新与删除。
func (r *revisionRepository) Create(rev *model.Revision) error {
	return r.db.Create(rev).Error
}

func (r *revisionRepository) ListByEntity(kind model.EntityKind, entityID uint) ([]model.Revision, error) {
	return listRevisions(r.db, kind, entityID)
}

// listRevisions 供各实体 Get 装配修订历史复用
func listRevisions(db *gorm.DB, kind model.EntityKind, entityID uint) ([]model.Revision, error) {
	var revisions []model.Revision
	err := db.
		Where("entity_kind = ? AND entity_id = ?", kind, entityID).
		Preload("ChangedByUser").
		Order("changed_at DESC, id DESC").
		Find(&revisions).Error
	return revisions, err
}
