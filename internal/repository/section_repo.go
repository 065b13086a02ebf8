package repository

import (
	"gorm.io/gorm"

	"github.com/qmsdocs/backend/internal/model"
)

type sectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{db: db}
}

func (r *sectionRepository) Create(s *model.Section) error {
	return translateError(r.db.Create(s).Error)
}

// ListByManual 按手册查询章节，order_index 升序。
// filterParent=true 时按 parentID 过滤（nil 表示只取顶级章节）。
func (r *sectionRepository) ListByManual(manualID uint, parentID *uint, filterParent bool) ([]model.Section, error) {
	query := r.db.Model(&model.Section{})
	if manualID != 0 {
		query = query.Where("manual_id = ?", manualID)
	}
	if filterParent {
		if parentID == nil {
			query = query.Where("parent_section_id IS NULL")
		} else {
			query = query.Where("parent_section_id = ?", *parentID)
		}
	}

	var sections []model.Section
	err := query.
		Preload("Manual").
		Preload("Parent").
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC, id ASC")
		}).
		Preload("Procedures").
		Preload("Documents").
		Order("order_index ASC, id ASC").
		Find(&sections).Error
	return sections, err
}

// Get 获取章节详情（两层子章节、规程、文档、修订历史）
func (r *sectionRepository) Get(id uint) (*model.Section, error) {
	var s model.Section
	result := r.db.
		Preload("Manual").
		Preload("Parent").
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC, id ASC")
		}).
		Preload("Children.Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC, id ASC")
		}).
		Preload("Procedures").
		Preload("Documents").
		First(&s, id)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}

	revisions, err := listRevisions(r.db, model.EntityKindSection, id)
	if err != nil {
		return nil, err
	}
	s.Revisions = revisions
	return &s, nil
}

func (r *sectionRepository) GetBasic(id uint) (*model.Section, error) {
	var s model.Section
	if err := r.db.First(&s, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &s, nil
}

func (r *sectionRepository) Save(s *model.Section) error {
	return translateError(r.db.Save(s).Error)
}

// Delete 删除章节：子孙章节与其规程级联删除，挂接文档置空引用
func (r *sectionRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return deleteSectionTree(tx, id)
	})
}

func deleteSectionTree(tx *gorm.DB, id uint) error {
	var children []model.Section
	if err := tx.Where("parent_section_id = ?", id).Find(&children).Error; err != nil {
		return err
	}
	for _, child := range children {
		if err := deleteSectionTree(tx, child.ID); err != nil {
			return err
		}
	}
	if err := deleteSectionProcedures(tx, id); err != nil {
		return err
	}
	if err := tx.Model(&model.Document{}).
		Where("section_id = ?", id).
		Update("section_id", nil).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Section{}, id).Error
}

// deleteSectionProcedures 删除章节下的规程，挂接文档先置空规程引用
func deleteSectionProcedures(tx *gorm.DB, sectionID uint) error {
	var ids []uint
	if err := tx.Model(&model.Procedure{}).
		Where("section_id = ?", sectionID).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Model(&model.Document{}).
		Where("procedure_id IN ?", ids).
		Update("procedure_id", nil).Error; err != nil {
		return err
	}
	return tx.Where("section_id = ?", sectionID).Delete(&model.Procedure{}).Error
}

// Reorder 批量更新排序，整体在一个事务内：任一 id 不存在则全部回滚
func (r *sectionRepository) Reorder(items []ReorderItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 去重后再比对行数，同一 id 重复出现不算缺失
		ids := make([]uint, 0, len(items))
		seen := make(map[uint]bool, len(items))
		for _, item := range items {
			if seen[item.ID] {
				continue
			}
			seen[item.ID] = true
			ids = append(ids, item.ID)
		}
		var count int64
		if err := tx.Model(&model.Section{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(ids)) {
			return ErrNotFound
		}
		for _, item := range items {
			if err := tx.Model(&model.Section{}).
				Where("id = ?", item.ID).
				Update("order_index", item.OrderIndex).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sectionRepository) Search(q string, limit int) ([]model.Section, error) {
	like := "%" + q + "%"
	var sections []model.Section
	err := r.db.
		Where("title LIKE ? OR content LIKE ? OR section_number LIKE ?", like, like, like).
		Preload("Manual").
		Limit(limit).
		Find(&sections).Error
	return sections, err
}
