package repository

import (
	"gorm.io/gorm"

	"github.com/qmsdocs/backend/internal/model"
)

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(d *model.Document) error {
	return translateError(r.db.Create(d).Error)
}

// List 分页查询文档，支持按手册过滤
func (r *documentRepository) List(opts ListOptions, manualID uint) ([]model.Document, int64, error) {
	query := r.db.Model(&model.Document{})

	if manualID != 0 {
		query = query.Where("manual_id = ?", manualID)
	}
	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}
	if opts.Search != "" {
		like := "%" + opts.Search + "%"
		query = query.Where("title LIKE ? OR document_code LIKE ? OR description LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := opts.offset()
	var documents []model.Document
	err := query.
		Preload("Manual").
		Preload("Creator").
		Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&documents).Error
	return documents, total, err
}

// Get 获取文档详情（含手册、章节、规程、修订历史）
func (r *documentRepository) Get(id uint) (*model.Document, error) {
	var d model.Document
	result := r.db.
		Preload("Manual").
		Preload("Section").
		Preload("Procedure").
		Preload("Creator").
		Preload("Approver").
		First(&d, id)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}

	revisions, err := listRevisions(r.db, model.EntityKindDocument, id)
	if err != nil {
		return nil, err
	}
	d.Revisions = revisions
	return &d, nil
}

func (r *documentRepository) GetBasic(id uint) (*model.Document, error) {
	var d model.Document
	if err := r.db.First(&d, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &d, nil
}

func (r *documentRepository) Save(d *model.Document) error {
	return translateError(r.db.Save(d).Error)
}

func (r *documentRepository) Delete(id uint) error {
	return r.db.Delete(&model.Document{}, id).Error
}

func (r *documentRepository) Search(q string, limit int) ([]model.Document, error) {
	like := "%" + q + "%"
	var documents []model.Document
	err := r.db.
		Where("title LIKE ? OR document_code LIKE ? OR description LIKE ?", like, like, like).
		Preload("Manual").
		Preload("Creator").
		Limit(limit).
		Find(&documents).Error
	return documents, err
}
