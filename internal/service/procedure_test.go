package service

import (
	"errors"
	"testing"

	"github.com/qmsdocs/backend/internal/model"
	"github.com/qmsdocs/backend/internal/repository"
	"github.com/qmsdocs/backend/internal/service/statemachine"
)

func newProcedureServiceForTest(procRepo *mockProcedureRepo, revRepo *mockRevisionRepo) *ProcedureService {
	sectionRepo := &mockSectionRepo{
		GetBasicFunc: func(id uint) (*model.Section, error) {
			return &model.Section{ID: id, ManualID: 1, SectionNumber: "4"}, nil
		},
	}
	if revRepo == nil {
		revRepo = &mockRevisionRepo{}
	}
	return NewProcedureService(procRepo, sectionRepo, &mockUserRepo{}, NewRevisionService(revRepo))
}

func TestProcedureCreateDefaults(t *testing.T) {
	var captured *model.Procedure
	procRepo := &mockProcedureRepo{
		CreateFunc: func(p *model.Procedure) error {
			p.ID = 1
			captured = p
			return nil
		},
	}
	service := newProcedureServiceForTest(procRepo, nil)

	p, err := service.Create(4, CreateProcedureRequest{
		SectionID:     2,
		ProcedureCode: "QP-7.5-01",
		Title:         "文件控制程序",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if captured == nil {
		t.Fatalf("expected repository Create to be called")
	}
	if p.Version != "1.0" || p.Status != string(statemachine.ProcedureStatusDraft) {
		t.Fatalf("expected defaults 1.0/draft, got %s/%s", p.Version, p.Status)
	}
	if p.OwnerID != 4 {
		t.Errorf("OwnerID = %d, want actor 4", p.OwnerID)
	}
}

func TestProcedureCreateUnknownSection(t *testing.T) {
	service := NewProcedureService(&mockProcedureRepo{}, &mockSectionRepo{
		GetBasicFunc: func(id uint) (*model.Section, error) {
			return nil, repository.ErrNotFound
		},
	}, &mockUserRepo{}, NewRevisionService(&mockRevisionRepo{}))

	_, err := service.Create(4, CreateProcedureRequest{
		SectionID:     99,
		ProcedureCode: "QP-7.5-01",
		Title:         "文件控制程序",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "section_id" {
		t.Errorf("Field = %q", verr.Field)
	}
}

func TestProcedureUpdateStepsChangeBumpsVersion(t *testing.T) {
	var revisions []*model.Revision
	procRepo := &mockProcedureRepo{
		GetBasicFunc: func(id uint) (*model.Procedure, error) {
			return &model.Procedure{ID: id, Title: "文件控制程序", ProcedureSteps: "旧步骤", Version: "1.3", Status: "draft"}, nil
		},
	}
	revRepo := &mockRevisionRepo{
		CreateFunc: func(r *model.Revision) error {
			revisions = append(revisions, r)
			return nil
		},
	}
	service := newProcedureServiceForTest(procRepo, revRepo)

	steps := "新步骤"
	p, err := service.Update(4, 1, UpdateProcedureRequest{ProcedureSteps: &steps})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if p.Version != "2.0" {
		t.Errorf("procedure_steps change must bump version, got %s", p.Version)
	}
	if len(revisions) != 1 || !revisions[0].IsMajorChange {
		t.Fatalf("expected one major revision, got %+v", revisions)
	}
}

func TestProcedureUpdateRejectedWhenObsolete(t *testing.T) {
	procRepo := &mockProcedureRepo{
		GetBasicFunc: func(id uint) (*model.Procedure, error) {
			return &model.Procedure{ID: id, Title: "文件控制程序", Version: "2.0", Status: "obsolete"}, nil
		},
	}
	service := newProcedureServiceForTest(procRepo, nil)

	title := "新标题"
	_, err := service.Update(4, 1, UpdateProcedureRequest{Title: &title})
	var neerr *NotEditableError
	if !errors.As(err, &neerr) {
		t.Fatalf("expected NotEditableError, got %v", err)
	}
}

func TestProcedureMarkObsoleteFromReview(t *testing.T) {
	procRepo := &mockProcedureRepo{
		GetBasicFunc: func(id uint) (*model.Procedure, error) {
			return &model.Procedure{ID: id, Title: "文件控制程序", Version: "1.0", Status: "review"}, nil
		},
	}
	service := newProcedureServiceForTest(procRepo, nil)

	p, err := service.MarkObsolete(4, 1)
	if err != nil {
		t.Fatalf("MarkObsolete() error = %v", err)
	}
	if p.Status != string(statemachine.ProcedureStatusObsolete) {
		t.Errorf("Status = %s", p.Status)
	}
}

func TestProcedureMarkObsoleteFromDraftRejected(t *testing.T) {
	procRepo := &mockProcedureRepo{
		GetBasicFunc: func(id uint) (*model.Procedure, error) {
			return &model.Procedure{ID: id, Title: "文件控制程序", Version: "1.0", Status: "draft"}, nil
		},
	}
	service := newProcedureServiceForTest(procRepo, nil)

	_, err := service.MarkObsolete(4, 1)
	var terr *statemachine.InvalidStateTransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("expected InvalidStateTransitionError, got %v", err)
	}
}
