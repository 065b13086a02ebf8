package service

import (
	"errors"
	"time"

	"gorm.io/datatypes"

	"github.com/qmsdocs/backend/internal/model"
	"github.com/qmsdocs/backend/internal/repository"
	"github.com/qmsdocs/backend/internal/service/statemachine"
)

type ProcedureService struct {
	procRepo    repository.ProcedureRepository
	sectionRepo repository.SectionRepository
	userRepo    repository.UserRepository
	revisions   *RevisionService
	sm          *statemachine.ProcedureStateMachine
}

func NewProcedureService(procRepo repository.ProcedureRepository, sectionRepo repository.SectionRepository, userRepo repository.UserRepository, revisions *RevisionService) *ProcedureService {
	return &ProcedureService{
		procRepo:    procRepo,
		sectionRepo: sectionRepo,
		userRepo:    userRepo,
		revisions:   revisions,
		sm:          statemachine.NewProcedureStateMachine(),
	}
}

type CreateProcedureRequest struct {
	SectionID        uint       `json:"section_id" binding:"required"`
	ProcedureCode    string     `json:"procedure_code" binding:"required,max=50"`
	Title            string     `json:"title" binding:"required,max=255"`
	Purpose          string     `json:"purpose"`
	Scope            string     `json:"scope"`
	ProcedureSteps   string     `json:"procedure_steps"`
	Responsibilities string     `json:"responsibilities"`
	References       string     `json:"references"`
	Records          string     `json:"records"`
	Version          string     `json:"version" binding:"max=50"`
	ReviewDate       *time.Time `json:"review_date"`
	EffectiveDate    *time.Time `json:"effective_date"`
	Attachments      []string   `json:"attachments"`
}

type UpdateProcedureRequest struct {
	Title            *string    `json:"title" binding:"omitempty,max=255"`
	Purpose          *string    `json:"purpose"`
	Scope            *string    `json:"scope"`
	ProcedureSteps   *string    `json:"procedure_steps"`
	Responsibilities *string    `json:"responsibilities"`
	References       *string    `json:"references"`
	Records          *string    `json:"records"`
	ReviewDate       *time.Time `json:"review_date"`
	EffectiveDate    *time.Time `json:"effective_date"`
	Attachments      []string   `json:"attachments"`
	ChangeReason     string     `json:"change_reason"`
}

func (s *ProcedureService) Create(actorID uint, req CreateProcedureRequest) (*model.Procedure, error) {
	if _, err := s.sectionRepo.GetBasic(req.SectionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ValidationError{Field: "section_id", Message: "section does not exist"}
		}
		return nil, err
	}
	if _, err := s.userRepo.Get(actorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ValidationError{Field: "owner_id", Message: "unknown user"}
		}
		return nil, err
	}

	version := req.Version
	if version == "" {
		version = "1.0"
	}

	p := &model.Procedure{
		SectionID:        req.SectionID,
		ProcedureCode:    req.ProcedureCode,
		Title:            req.Title,
		Purpose:          req.Purpose,
		Scope:            req.Scope,
		ProcedureSteps:   req.ProcedureSteps,
		Responsibilities: req.Responsibilities,
		References:       req.References,
		Records:          req.Records,
		Status:           string(statemachine.ProcedureStatusDraft),
		Version:          version,
		OwnerID:          actorID,
		ReviewDate:       req.ReviewDate,
		EffectiveDate:    req.EffectiveDate,
		Attachments:      datatypes.NewJSONSlice(req.Attachments),
	}

	if err := s.procRepo.Create(p); err != nil {
		return nil, err
	}

	s.revisions.Record(actorID, p, nil, model.ChangeTypeCreated, "")
	return p, nil
}

func (s *ProcedureService) List(opts repository.ListOptions, sectionID uint) ([]model.Procedure, int64, error) {
	return s.procRepo.List(opts, sectionID)
}

func (s *ProcedureService) Get(id uint) (*model.Procedure, error) {
	return s.procRepo.Get(id)
}

// Update 更新规程，受规程自身状态约束；重大字段变化递增版本号
func (s *ProcedureService) Update(actorID uint, id uint, req UpdateProcedureRequest) (*model.Procedure, error) {
	p, err := s.procRepo.GetBasic(id)
	if err != nil {
		return nil, err
	}

	if !s.sm.IsEditable(statemachine.ProcedureStatus(p.Status)) {
		return nil, &NotEditableError{Entity: "procedure", ID: p.ID, Status: p.Status}
	}

	old := p.Snapshot()

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Purpose != nil {
		p.Purpose = *req.Purpose
	}
	if req.Scope != nil {
		p.Scope = *req.Scope
	}
	if req.ProcedureSteps != nil {
		p.ProcedureSteps = *req.ProcedureSteps
	}
	if req.Responsibilities != nil {
		p.Responsibilities = *req.Responsibilities
	}
	if req.References != nil {
		p.References = *req.References
	}
	if req.Records != nil {
		p.Records = *req.Records
	}
	if req.ReviewDate != nil {
		p.ReviewDate = req.ReviewDate
	}
	if req.EffectiveDate != nil {
		p.EffectiveDate = req.EffectiveDate
	}
	if req.Attachments != nil {
		p.Attachments = datatypes.NewJSONSlice(req.Attachments)
	}

	if IsMajorChange(old, p.Snapshot()) {
		p.Version = BumpVersion(p.Version)
	}

	if err := s.procRepo.Save(p); err != nil {
		return nil, err
	}

	s.revisions.Record(actorID, p, old, model.ChangeTypeUpdated, req.ChangeReason)
	return p, nil
}

// Delete 删除规程，已批准的规程不可删除
func (s *ProcedureService) Delete(id uint) error {
	p, err := s.procRepo.GetBasic(id)
	if err != nil {
		return err
	}
	if !s.sm.IsEditable(statemachine.ProcedureStatus(p.Status)) {
		return &NotEditableError{Entity: "procedure", ID: p.ID, Status: p.Status}
	}
	return s.procRepo.Delete(id)
}

// SubmitForReview 提交审核，仅允许 draft -> review
func (s *ProcedureService) SubmitForReview(actorID uint, id uint) (*model.Procedure, error) {
	return s.transition(actorID, id, statemachine.ProcedureStatusReview, model.ChangeTypeUpdated, "submitted for review")
}

// Approve 批准规程，仅允许 review -> approved
func (s *ProcedureService) Approve(actorID uint, id uint) (*model.Procedure, error) {
	return s.transition(actorID, id, statemachine.ProcedureStatusApproved, model.ChangeTypeApproved, "")
}

// MarkObsolete 作废规程
func (s *ProcedureService) MarkObsolete(actorID uint, id uint) (*model.Procedure, error) {
	return s.transition(actorID, id, statemachine.ProcedureStatusObsolete, model.ChangeTypeArchived, "")
}

func (s *ProcedureService) transition(actorID uint, id uint, to statemachine.ProcedureStatus, changeType, reason string) (*model.Procedure, error) {
	p, err := s.procRepo.GetBasic(id)
	if err != nil {
		return nil, err
	}

	if err := s.sm.Transition(statemachine.ProcedureStatus(p.Status), to, p.ID); err != nil {
		return nil, err
	}

	old := p.Snapshot()
	p.Status = string(to)

	if IsMajorChange(old, p.Snapshot()) {
		p.Version = BumpVersion(p.Version)
	}

	if err := s.procRepo.Save(p); err != nil {
		return nil, err
	}

	s.revisions.Record(actorID, p, old, changeType, reason)
	return p, nil
}
