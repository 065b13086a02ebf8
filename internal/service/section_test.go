package service

import (
	"errors"
	"testing"

	"github.com/qmsdocs/backend/internal/model"
	"github.com/qmsdocs/backend/internal/repository"
)

func uintPtr(v uint) *uint { return &v }

// sectionStore 用 map 模拟章节表，GetBasic 按 ID 查找
func sectionStore(sections ...*model.Section) *mockSectionRepo {
	byID := make(map[uint]*model.Section, len(sections))
	for _, sec := range sections {
		byID[sec.ID] = sec
	}
	return &mockSectionRepo{
		GetBasicFunc: func(id uint) (*model.Section, error) {
			if sec, ok := byID[id]; ok {
				copied := *sec
				return &copied, nil
			}
			return nil, repository.ErrNotFound
		},
	}
}

func newSectionServiceForTest(sectionRepo *mockSectionRepo, manualRepo *mockManualRepo) *SectionService {
	if manualRepo == nil {
		manualRepo = &mockManualRepo{
			GetBasicFunc: func(id uint) (*model.Manual, error) {
				return &model.Manual{ID: id, Status: "draft"}, nil
			},
		}
	}
	return NewSectionService(sectionRepo, manualRepo, NewRevisionService(&mockRevisionRepo{}))
}

func TestSectionFullNumber(t *testing.T) {
	repo := sectionStore(
		&model.Section{ID: 1, ManualID: 1, SectionNumber: "4"},
		&model.Section{ID: 2, ManualID: 1, SectionNumber: "1", ParentSectionID: uintPtr(1)},
		&model.Section{ID: 3, ManualID: 1, SectionNumber: "2", ParentSectionID: uintPtr(2)},
	)
	service := newSectionServiceForTest(repo, nil)

	cases := []struct {
		id   uint
		want string
	}{
		{1, "4"},
		{2, "4.1"},
		{3, "4.1.2"},
	}
	for _, c := range cases {
		sec, err := repo.GetBasic(c.id)
		if err != nil {
			t.Fatalf("GetBasic(%d) error = %v", c.id, err)
		}
		got, err := service.FullNumber(sec)
		if err != nil {
			t.Fatalf("FullNumber(%d) error = %v", c.id, err)
		}
		if got != c.want {
			t.Errorf("FullNumber(%d) = %q, want %q", c.id, got, c.want)
		}
	}
}

func TestSectionCreateRejectedWhenManualNotEditable(t *testing.T) {
	manualRepo := &mockManualRepo{
		GetBasicFunc: func(id uint) (*model.Manual, error) {
			return &model.Manual{ID: id, Status: "approved"}, nil
		},
	}
	service := newSectionServiceForTest(&mockSectionRepo{}, manualRepo)

	_, err := service.Create(2, CreateSectionRequest{
		ManualID:      1,
		SectionNumber: "4",
		Title:         "质量管理体系",
		SectionType:   "chapter",
	})
	var neerr *NotEditableError
	if !errors.As(err, &neerr) {
		t.Fatalf("expected NotEditableError, got %v", err)
	}
}

func TestSectionCreateParentInDifferentManual(t *testing.T) {
	repo := sectionStore(&model.Section{ID: 9, ManualID: 2, SectionNumber: "1"})
	service := newSectionServiceForTest(repo, nil)

	_, err := service.Create(2, CreateSectionRequest{
		ManualID:        1,
		ParentSectionID: uintPtr(9),
		SectionNumber:   "1",
		Title:           "范围",
		SectionType:     "section",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "parent_section_id" {
		t.Errorf("Field = %q", verr.Field)
	}
}

func TestSectionUpdateRejectsSelfParent(t *testing.T) {
	repo := sectionStore(&model.Section{ID: 1, ManualID: 1, SectionNumber: "4"})
	service := newSectionServiceForTest(repo, nil)

	_, err := service.Update(2, 1, UpdateSectionRequest{ParentSectionID: uintPtr(1)})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSectionUpdateRejectsDescendantParent(t *testing.T) {
	// 1 <- 2 <- 3，尝试把 1 挂到 3 下面会成环
	repo := sectionStore(
		&model.Section{ID: 1, ManualID: 1, SectionNumber: "4"},
		&model.Section{ID: 2, ManualID: 1, SectionNumber: "1", ParentSectionID: uintPtr(1)},
		&model.Section{ID: 3, ManualID: 1, SectionNumber: "2", ParentSectionID: uintPtr(2)},
	)
	service := newSectionServiceForTest(repo, nil)

	_, err := service.Update(2, 1, UpdateSectionRequest{ParentSectionID: uintPtr(3)})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSectionUpdateMoveToValidParent(t *testing.T) {
	var saved *model.Section
	repo := sectionStore(
		&model.Section{ID: 1, ManualID: 1, SectionNumber: "4"},
		&model.Section{ID: 2, ManualID: 1, SectionNumber: "5"},
	)
	repo.SaveFunc = func(sec *model.Section) error {
		saved = sec
		return nil
	}
	service := newSectionServiceForTest(repo, nil)

	sec, err := service.Update(2, 2, UpdateSectionRequest{ParentSectionID: uintPtr(1)})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if sec.ParentSectionID == nil || *sec.ParentSectionID != 1 {
		t.Errorf("parent not updated: %+v", sec.ParentSectionID)
	}
	if saved == nil {
		t.Errorf("expected Save to be called")
	}
}

func TestSectionReorderEmptyBatch(t *testing.T) {
	service := newSectionServiceForTest(&mockSectionRepo{}, nil)

	err := service.Reorder(nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSectionReorderDelegates(t *testing.T) {
	var got []repository.ReorderItem
	repo := &mockSectionRepo{
		ReorderFunc: func(items []repository.ReorderItem) error {
			got = items
			return nil
		},
	}
	service := newSectionServiceForTest(repo, nil)

	items := []repository.ReorderItem{{ID: 1, OrderIndex: 2}, {ID: 2, OrderIndex: 1}}
	if err := service.Reorder(items); err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected batch of 2, got %d", len(got))
	}
}
