package repository

import (
	"gorm.io/gorm"

	"github.com/qmsdocs/backend/internal/model"
)

type manualRepository struct {
	db *gorm.DB
}

func NewManualRepository(db *gorm.DB) ManualRepository {
	return &manualRepository{db: db}
}

func (r *manualRepository) Create(m *model.Manual) error {
	return translateError(r.db.Create(m).Error)
}

// List 分页查询手册，支持状态过滤与标题/标准/描述模糊搜索
func (r *manualRepository) List(opts ListOptions) ([]model.Manual, int64, error) {
	query := r.db.Model(&model.Manual{})

	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}
	if opts.Search != "" {
		like := "%" + opts.Search + "%"
		query = query.Where("title LIKE ? OR iso_standard LIKE ? OR description LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := opts.offset()
	var manuals []model.Manual
	err := query.
		Preload("Creator").
		Preload("Approver").
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Where("parent_section_id IS NULL").Order("order_index ASC, id ASC")
		}).
		Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&manuals).Error
	return manuals, total, err
}

// Get 获取手册详情（含顶级章节树、文档、修订历史）
func (r *manualRepository) Get(id uint) (*model.Manual, error) {
	var m model.Manual
	result := r.db.
		Preload("Creator").
		Preload("Approver").
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Where("parent_section_id IS NULL").Order("order_index ASC, id ASC")
		}).
		Preload("Sections.Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC, id ASC")
		}).
		Preload("Sections.Procedures").
		Preload("Sections.Documents").
		Preload("Documents").
		First(&m, id)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}

	revisions, err := listRevisions(r.db, model.EntityKindManual, id)
	if err != nil {
		return nil, err
	}
	m.Revisions = revisions
	return &m, nil
}

func (r *manualRepository) GetBasic(id uint) (*model.Manual, error) {
	var m model.Manual
	if err := r.db.First(&m, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &m, nil
}

func (r *manualRepository) Save(m *model.Manual) error {
	return translateError(r.db.Save(m).Error)
}

// Delete 删除手册：事务内依次显式删除文档、章节下的规程、章节，最后删手册
func (r *manualRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("manual_id = ?", id).Delete(&model.Document{}).Error; err != nil {
			return err
		}
		var sectionIDs []uint
		if err := tx.Model(&model.Section{}).
			Where("manual_id = ?", id).
			Pluck("id", &sectionIDs).Error; err != nil {
			return err
		}
		if len(sectionIDs) > 0 {
			if err := tx.Where("section_id IN ?", sectionIDs).Delete(&model.Procedure{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("manual_id = ?", id).Delete(&model.Section{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Manual{}, id).Error
	})
}

func (r *manualRepository) Search(q string, limit int) ([]model.Manual, error) {
	like := "%" + q + "%"
	var manuals []model.Manual
	err := r.db.
		Where("title LIKE ? OR iso_standard LIKE ? OR description LIKE ?", like, like, like).
		Preload("Creator").
		Limit(limit).
		Find(&manuals).Error
	return manuals, err
}
