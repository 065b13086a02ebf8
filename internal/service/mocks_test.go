package service

import (
	"github.com/qmsdocs/backend/internal/model"
	"github.com/qmsdocs/backend/internal/repository"
)

type mockManualRepo struct {
	CreateFunc   func(m *model.Manual) error
	ListFunc     func(opts repository.ListOptions) ([]model.Manual, int64, error)
	GetFunc      func(id uint) (*model.Manual, error)
	GetBasicFunc func(id uint) (*model.Manual, error)
	SaveFunc     func(m *model.Manual) error
	DeleteFunc   func(id uint) error
	SearchFunc   func(q string, limit int) ([]model.Manual, error)
}

func (m *mockManualRepo) Create(manual *model.Manual) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(manual)
	}
	return nil
}

func (m *mockManualRepo) List(opts repository.ListOptions) ([]model.Manual, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(opts)
	}
	return nil, 0, nil
}

func (m *mockManualRepo) Get(id uint) (*model.Manual, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockManualRepo) GetBasic(id uint) (*model.Manual, error) {
	if m.GetBasicFunc != nil {
		return m.GetBasicFunc(id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockManualRepo) Save(manual *model.Manual) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(manual)
	}
	return nil
}

func (m *mockManualRepo) Delete(id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

func (m *mockManualRepo) Search(q string, limit int) ([]model.Manual, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(q, limit)
	}
	return nil, nil
}

type mockSectionRepo struct {
	CreateFunc       func(s *model.Section) error
	ListByManualFunc func(manualID uint, parentID *uint, filterParent bool) ([]model.Section, error)
	GetFunc          func(id uint) (*model.Section, error)
	GetBasicFunc     func(id uint) (*model.Section, error)
	SaveFunc         func(s *model.Section) error
	DeleteFunc       func(id uint) error
	ReorderFunc      func(items []repository.ReorderItem) error
	SearchFunc       func(q string, limit int) ([]model.Section, error)
}

func (m *mockSectionRepo) Create(s *model.Section) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(s)
	}
	return nil
}

func (m *mockSectionRepo) ListByManual(manualID uint, parentID *uint, filterParent bool) ([]model.Section, error) {
	if m.ListByManualFunc != nil {
		return m.ListByManualFunc(manualID, parentID, filterParent)
	}
	return nil, nil
}

func (m *mockSectionRepo) Get(id uint) (*model.Section, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockSectionRepo) GetBasic(id uint) (*model.Section, error) {
	if m.GetBasicFunc != nil {
		return m.GetBasicFunc(id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockSectionRepo) Save(s *model.Section) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(s)
	}
	return nil
}

func (m *mockSectionRepo) Delete(id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

func (m *mockSectionRepo) Reorder(items []repository.ReorderItem) error {
	if m.ReorderFunc != nil {
		return m.ReorderFunc(items)
	}
	return nil
}

func (m *mockSectionRepo) Search(q string, limit int) ([]model.Section, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(q, limit)
	}
	return nil, nil
}

type mockProcedureRepo struct {
	CreateFunc   func(p *model.Procedure) error
	ListFunc     func(opts repository.ListOptions, sectionID uint) ([]model.Procedure, int64, error)
	GetFunc      func(id uint) (*model.Procedure, error)
	GetBasicFunc func(id uint) (*model.Procedure, error)
	SaveFunc     func(p *model.Procedure) error
	DeleteFunc   func(id uint) error
	SearchFunc   func(q string, limit int) ([]model.Procedure, error)
}

func (m *mockProcedureRepo) Create(p *model.Procedure) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(p)
	}
	return nil
}

func (m *mockProcedureRepo) List(opts repository.ListOptions, sectionID uint) ([]model.Procedure, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(opts, sectionID)
	}
	return nil, 0, nil
}

func (m *mockProcedureRepo) Get(id uint) (*model.Procedure, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProcedureRepo) GetBasic(id uint) (*model.Procedure, error) {
	if m.GetBasicFunc != nil {
		return m.GetBasicFunc(id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProcedureRepo) Save(p *model.Procedure) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(p)
	}
	return nil
}

func (m *mockProcedureRepo) Delete(id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

func (m *mockProcedureRepo) Search(q string, limit int) ([]model.Procedure, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(q, limit)
	}
	return nil, nil
}

type mockDocumentRepo struct {
	CreateFunc   func(d *model.Document) error
	ListFunc     func(opts repository.ListOptions, manualID uint) ([]model.Document, int64, error)
	GetFunc      func(id uint) (*model.Document, error)
	GetBasicFunc func(id uint) (*model.Document, error)
	SaveFunc     func(d *model.Document) error
	DeleteFunc   func(id uint) error
	SearchFunc   func(q string, limit int) ([]model.Document, error)
}

func (m *mockDocumentRepo) Create(d *model.Document) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(d)
	}
	return nil
}

func (m *mockDocumentRepo) List(opts repository.ListOptions, manualID uint) ([]model.Document, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(opts, manualID)
	}
	return nil, 0, nil
}

func (m *mockDocumentRepo) Get(id uint) (*model.Document, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockDocumentRepo) GetBasic(id uint) (*model.Document, error) {
	if m.GetBasicFunc != nil {
		return m.GetBasicFunc(id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockDocumentRepo) Save(d *model.Document) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(d)
	}
	return nil
}

func (m *mockDocumentRepo) Delete(id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

func (m *mockDocumentRepo) Search(q string, limit int) ([]model.Document, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(q, limit)
	}
	return nil, nil
}

type mockRevisionRepo struct {
	CreateFunc       func(r *model.Revision) error
	ListByEntityFunc func(kind model.EntityKind, entityID uint) ([]model.Revision, error)
}

func (m *mockRevisionRepo) Create(r *model.Revision) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(r)
	}
	return nil
}

func (m *mockRevisionRepo) ListByEntity(kind model.EntityKind, entityID uint) ([]model.Revision, error) {
	if m.ListByEntityFunc != nil {
		return m.ListByEntityFunc(kind, entityID)
	}
	return nil, nil
}

type mockUserRepo struct {
	CreateFunc func(u *model.User) error
	GetFunc    func(id uint) (*model.User, error)
}

func (m *mockUserRepo) Create(u *model.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(u)
	}
	return nil
}

func (m *mockUserRepo) Get(id uint) (*model.User, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return &model.User{ID: id, Name: "tester"}, nil
}
