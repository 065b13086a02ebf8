package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/qmsdocs/backend/internal/model"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("record not found")

// ErrDuplicate unique 约束冲突（重复编码/编号）
var ErrDuplicate = errors.New("duplicate value for unique field")

// ListOptions carries offset pagination and the common filters of the
// list endpoints.
type ListOptions struct {
	Page    int
	PerPage int
	Status  string
	Search  string
}

func (o ListOptions) offset() (limit, offset int) {
	limit = o.PerPage
	if limit <= 0 {
		limit = 15
	}
	page := o.Page
	if page <= 0 {
		page = 1
	}
	return limit, (page - 1) * limit
}

// ReorderItem is one entry of a section reorder batch.
type ReorderItem struct {
	ID         uint `json:"id" binding:"required"`
	OrderIndex int  `json:"order_index" binding:"min=0"`
}

type ManualRepository interface {
	Create(m *model.Manual) error
	List(opts ListOptions) ([]model.Manual, int64, error)
	Get(id uint) (*model.Manual, error)
	GetBasic(id uint) (*model.Manual, error)
	Save(m *model.Manual) error
	Delete(id uint) error
	Search(q string, limit int) ([]model.Manual, error)
}

type SectionRepository interface {
	Create(s *model.Section) error
	ListByManual(manualID uint, parentID *uint, filterParent bool) ([]model.Section, error)
	Get(id uint) (*model.Section, error)
	GetBasic(id uint) (*model.Section, error)
	Save(s *model.Section) error
	Delete(id uint) error
	Reorder(items []ReorderItem) error
	Search(q string, limit int) ([]model.Section, error)
}

type ProcedureRepository interface {
	Create(p *model.Procedure) error
	List(opts ListOptions, sectionID uint) ([]model.Procedure, int64, error)
	Get(id uint) (*model.Procedure, error)
	GetBasic(id uint) (*model.Procedure, error)
	Save(p *model.Procedure) error
	Delete(id uint) error
	Search(q string, limit int) ([]model.Procedure, error)
}

type DocumentRepository interface {
	Create(d *model.Document) error
	List(opts ListOptions, manualID uint) ([]model.Document, int64, error)
	Get(id uint) (*model.Document, error)
	GetBasic(id uint) (*model.Document, error)
	Save(d *model.Document) error
	Delete(id uint) error
	Search(q string, limit int) ([]model.Document, error)
}

type RevisionRepository interface {
	Create(r *model.Revision) error
	ListByEntity(kind model.EntityKind, entityID uint) ([]model.Revision, error)
}

type UserRepository interface {
	Create(u *model.User) error
	Get(id uint) (*model.User, error)
}

// translateError maps gorm errors onto the repository sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint") ||
		strings.Contains(err.Error(), "Duplicate entry") {
		return ErrDuplicate
	}
	return err
}
