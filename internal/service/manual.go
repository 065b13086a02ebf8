package service

import (
	"errors"
	"time"

	"gorm.io/datatypes"

	"github.com/qmsdocs/backend/config"
	"github.com/qmsdocs/backend/internal/model"
	"github.com/qmsdocs/backend/internal/repository"
	"github.com/qmsdocs/backend/internal/service/statemachine"
)

type ManualService struct {
	cfg        *config.Config
	manualRepo repository.ManualRepository
	userRepo   repository.UserRepository
	revisions  *RevisionService
	sm         *statemachine.ManualStateMachine
}

func NewManualService(cfg *config.Config, manualRepo repository.ManualRepository, userRepo repository.UserRepository, revisions *RevisionService) *ManualService {
	return &ManualService{
		cfg:        cfg,
		manualRepo: manualRepo,
		userRepo:   userRepo,
		revisions:  revisions,
		sm:         statemachine.NewManualStateMachine(),
	}
}

type CreateManualRequest struct {
	Title         string         `json:"title" binding:"required,max=255"`
	ISOStandard   string         `json:"iso_standard" binding:"max=100"`
	Description   string         `json:"description"`
	Version       string         `json:"version" binding:"max=50"`
	EffectiveDate *time.Time     `json:"effective_date"`
	ReviewDate    *time.Time     `json:"review_date"`
	Metadata      map[string]any `json:"metadata"`
}

type UpdateManualRequest struct {
	Title         *string        `json:"title" binding:"omitempty,max=255"`
	ISOStandard   *string        `json:"iso_standard" binding:"omitempty,max=100"`
	Description   *string        `json:"description"`
	EffectiveDate *time.Time     `json:"effective_date"`
	ReviewDate    *time.Time     `json:"review_date"`
	Metadata      map[string]any `json:"metadata"`
	ChangeReason  string         `json:"change_reason"`
}

func (s *ManualService) Create(actorID uint, req CreateManualRequest) (*model.Manual, error) {
	if _, err := s.userRepo.Get(actorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ValidationError{Field: "created_by", Message: "unknown user"}
		}
		return nil, err
	}

	version := req.Version
	if version == "" {
		version = "1.0"
	}

	m := &model.Manual{
		Title:         req.Title,
		ISOStandard:   req.ISOStandard,
		Description:   req.Description,
		Version:       version,
		Status:        string(statemachine.ManualStatusDraft),
		CreatedBy:     actorID,
		EffectiveDate: req.EffectiveDate,
		ReviewDate:    req.ReviewDate,
		Metadata:      datatypes.JSONMap(req.Metadata),
	}

	if err := s.manualRepo.Create(m); err != nil {
		return nil, err
	}

	s.revisions.Record(actorID, m, nil, model.ChangeTypeCreated, "")
	return m, nil
}

func (s *ManualService) List(opts repository.ListOptions) ([]model.Manual, int64, error) {
	return s.manualRepo.List(opts)
}

func (s *ManualService) Get(id uint) (*model.Manual, error) {
	return s.manualRepo.Get(id)
}

// Update 更新手册。approved/archived 状态下拒绝编辑；
// 重大字段变化触发版本号递增。
func (s *ManualService) Update(actorID uint, id uint, req UpdateManualRequest) (*model.Manual, error) {
	m, err := s.manualRepo.GetBasic(id)
	if err != nil {
		return nil, err
	}

	if !s.sm.IsEditable(statemachine.ManualStatus(m.Status)) {
		return nil, &NotEditableError{Entity: "manual", ID: m.ID, Status: m.Status}
	}

	old := m.Snapshot()

	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.ISOStandard != nil {
		m.ISOStandard = *req.ISOStandard
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.EffectiveDate != nil {
		m.EffectiveDate = req.EffectiveDate
	}
	if req.ReviewDate != nil {
		m.ReviewDate = req.ReviewDate
	}
	if req.Metadata != nil {
		m.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if IsMajorChange(old, m.Snapshot()) {
		m.Version = BumpVersion(m.Version)
	}

	if err := s.manualRepo.Save(m); err != nil {
		return nil, err
	}

	s.revisions.Record(actorID, m, old, model.ChangeTypeUpdated, req.ChangeReason)
	return m, nil
}

// Delete 删除手册。已批准的手册无论是否可编辑一律禁止删除。
func (s *ManualService) Delete(id uint) error {
	m, err := s.manualRepo.GetBasic(id)
	if err != nil {
		return err
	}
	if m.IsApproved() {
		return &ApprovedDeleteError{ID: m.ID}
	}
	return s.manualRepo.Delete(id)
}

// SubmitForReview 提交审核，仅允许 draft -> review
func (s *ManualService) SubmitForReview(actorID uint, id uint) (*model.Manual, error) {
	return s.transition(actorID, id, statemachine.ManualStatusReview, model.ChangeTypeUpdated, "submitted for review")
}

// Approve 批准手册，仅允许 review -> approved，记录批准人与时间
func (s *ManualService) Approve(actorID uint, id uint) (*model.Manual, error) {
	return s.transition(actorID, id, statemachine.ManualStatusApproved, model.ChangeTypeApproved, "")
}

// Archive 归档手册，仅允许 approved -> archived
func (s *ManualService) Archive(actorID uint, id uint) (*model.Manual, error) {
	return s.transition(actorID, id, statemachine.ManualStatusArchived, model.ChangeTypeArchived, "")
}

func (s *ManualService) transition(actorID uint, id uint, to statemachine.ManualStatus, changeType, reason string) (*model.Manual, error) {
	m, err := s.manualRepo.GetBasic(id)
	if err != nil {
		return nil, err
	}

	if err := s.sm.Transition(statemachine.ManualStatus(m.Status), to, m.ID); err != nil {
		return nil, err
	}

	old := m.Snapshot()
	m.Status = string(to)
	if to == statemachine.ManualStatusApproved {
		now := time.Now()
		m.ApprovedBy = &actorID
		m.ApprovedAt = &now
	}

	// status 属于重大字段，状态变化必然递增版本号
	if IsMajorChange(old, m.Snapshot()) {
		m.Version = BumpVersion(m.Version)
	}

	if err := s.manualRepo.Save(m); err != nil {
		return nil, err
	}

	s.revisions.Record(actorID, m, old, changeType, reason)
	return m, nil
}
