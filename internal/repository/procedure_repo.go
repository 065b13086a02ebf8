package repository

import (
	"gorm.io/gorm"

	"github.com/qmsdocs/backend/internal/model"
)

type procedureRepository struct {
	db *gorm.DB
}

func NewProcedureRepository(db *gorm.DB) ProcedureRepository {
	return &procedureRepository{db: db}
}

func (r *procedureRepository) Create(p *model.Procedure) error {
	return translateError(r.db.Create(p).Error)
}

// List 分页查询规程，支持按章节过滤
func (r *procedureRepository) List(opts ListOptions, sectionID uint) ([]model.Procedure, int64, error) {
	query := r.db.Model(&model.Procedure{})

	if sectionID != 0 {
		query = query.Where("section_id = ?", sectionID)
	}
	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}
	if opts.Search != "" {
		like := "%" + opts.Search + "%"
		query = query.Where("title LIKE ? OR procedure_code LIKE ? OR purpose LIKE ? OR scope LIKE ?",
			like, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := opts.offset()
	var procedures []model.Procedure
	err := query.
		Preload("Section").
		Preload("Owner").
		Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&procedures).Error
	return procedures, total, err
}

// Get 获取规程详情（含所在章节、负责人、文档与修订历史）
func (r *procedureRepository) Get(id uint) (*model.Procedure, error) {
	var p model.Procedure
	result := r.db.
		Preload("Section").
		Preload("Section.Manual").
		Preload("Owner").
		Preload("Documents").
		First(&p, id)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}

	revisions, err := listRevisions(r.db, model.EntityKindProcedure, id)
	if err != nil {
		return nil, err
	}
	p.Revisions = revisions
	return &p, nil
}

func (r *procedureRepository) GetBasic(id uint) (*model.Procedure, error) {
	var p model.Procedure
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

func (r *procedureRepository) Save(p *model.Procedure) error {
	return translateError(r.db.Save(p).Error)
}

// Delete 删除规程，挂接文档置空引用
func (r *procedureRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Document{}).
			Where("procedure_id = ?", id).
			Update("procedure_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Procedure{}, id).Error
	})
}

func (r *procedureRepository) Search(q string, limit int) ([]model.Procedure, error) {
	like := "%" + q + "%"
	var procedures []model.Procedure
	err := r.db.
		Where("title LIKE ? OR procedure_code LIKE ? OR purpose LIKE ? OR scope LIKE ?",
			like, like, like, like).
		Preload("Section.Manual").
		Preload("Owner").
		Limit(limit).
		Find(&procedures).Error
	return procedures, err
}
