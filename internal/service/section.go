package service

import (
	"errors"
	"strings"

	"gorm.io/datatypes"

	"github.com/qmsdocs/backend/internal/model"
	"github.com/qmsdocs/backend/internal/repository"
	"github.com/qmsdocs/backend/internal/service/statemachine"
)

// maxSectionDepth 父链遍历的深度上限，防御脏数据中的环
const maxSectionDepth = 64

var errSectionChainTooDeep = errors.New("section parent chain exceeds depth limit")

type SectionService struct {
	sectionRepo repository.SectionRepository
	manualRepo  repository.ManualRepository
	revisions   *RevisionService
	manualSM    *statemachine.ManualStateMachine
}

func NewSectionService(sectionRepo repository.SectionRepository, manualRepo repository.ManualRepository, revisions *RevisionService) *SectionService {
	return &SectionService{
		sectionRepo: sectionRepo,
		manualRepo:  manualRepo,
		revisions:   revisions,
		manualSM:    statemachine.NewManualStateMachine(),
	}
}

type CreateSectionRequest struct {
	ManualID        uint           `json:"manual_id" binding:"required"`
	ParentSectionID *uint          `json:"parent_section_id"`
	SectionNumber   string         `json:"section_number" binding:"required,max=20"`
	Title           string         `json:"title" binding:"required,max=255"`
	Content         string         `json:"content"`
	OrderIndex      int            `json:"order_index" binding:"min=0"`
	SectionType     string         `json:"section_type" binding:"required,oneof=chapter section subsection appendix"`
	IsRequired      *bool          `json:"is_required"`
	Requirements    map[string]any `json:"requirements"`
}

type UpdateSectionRequest struct {
	ParentSectionID *uint          `json:"parent_section_id"`
	ClearParent     bool           `json:"clear_parent"`
	SectionNumber   *string        `json:"section_number" binding:"omitempty,max=20"`
	Title           *string        `json:"title" binding:"omitempty,max=255"`
	Content         *string        `json:"content"`
	OrderIndex      *int           `json:"order_index" binding:"omitempty,min=0"`
	SectionType     *string        `json:"section_type" binding:"omitempty,oneof=chapter section subsection appendix"`
	IsRequired      *bool          `json:"is_required"`
	Requirements    map[string]any `json:"requirements"`
	ChangeReason    string         `json:"change_reason"`
}

func (s *SectionService) Create(actorID uint, req CreateSectionRequest) (*model.Section, error) {
	manual, err := s.manualRepo.GetBasic(req.ManualID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ValidationError{Field: "manual_id", Message: "manual does not exist"}
		}
		return nil, err
	}

	if !s.manualSM.IsEditable(statemachine.ManualStatus(manual.Status)) {
		return nil, &NotEditableError{Entity: "manual", ID: manual.ID, Status: manual.Status}
	}

	if req.ParentSectionID != nil {
		if err := s.validateParent(req.ManualID, 0, *req.ParentSectionID); err != nil {
			return nil, err
		}
	}

	isRequired := true
	if req.IsRequired != nil {
		isRequired = *req.IsRequired
	}

	sec := &model.Section{
		ManualID:        req.ManualID,
		ParentSectionID: req.ParentSectionID,
		SectionNumber:   req.SectionNumber,
		Title:           req.Title,
		Content:         req.Content,
		OrderIndex:      req.OrderIndex,
		SectionType:     req.SectionType,
		IsRequired:      isRequired,
		Requirements:    datatypes.JSONMap(req.Requirements),
	}

	if err := s.sectionRepo.Create(sec); err != nil {
		return nil, err
	}

	s.revisions.Record(actorID, sec, nil, model.ChangeTypeCreated, "")
	return sec, nil
}

func (s *SectionService) List(manualID uint, parentID *uint, filterParent bool) ([]model.Section, error) {
	sections, err := s.sectionRepo.ListByManual(manualID, parentID, filterParent)
	if err != nil {
		return nil, err
	}
	for i := range sections {
		full, err := s.FullNumber(&sections[i])
		if err != nil {
			return nil, err
		}
		sections[i].FullSectionNumber = full
	}
	return sections, nil
}

func (s *SectionService) Get(id uint) (*model.Section, error) {
	sec, err := s.sectionRepo.Get(id)
	if err != nil {
		return nil, err
	}
	full, err := s.FullNumber(sec)
	if err != nil {
		return nil, err
	}
	sec.FullSectionNumber = full
	return sec, nil
}

func (s *SectionService) Update(actorID uint, id uint, req UpdateSectionRequest) (*model.Section, error) {
	sec, err := s.sectionRepo.GetBasic(id)
	if err != nil {
		return nil, err
	}

	manual, err := s.manualRepo.GetBasic(sec.ManualID)
	if err != nil {
		return nil, err
	}
	if !s.manualSM.IsEditable(statemachine.ManualStatus(manual.Status)) {
		return nil, &NotEditableError{Entity: "manual", ID: manual.ID, Status: manual.Status}
	}

	if req.ParentSectionID != nil {
		if err := s.validateParent(sec.ManualID, sec.ID, *req.ParentSectionID); err != nil {
			return nil, err
		}
	}

	old := sec.Snapshot()

	if req.ClearParent {
		sec.ParentSectionID = nil
	} else if req.ParentSectionID != nil {
		sec.ParentSectionID = req.ParentSectionID
	}
	if req.SectionNumber != nil {
		sec.SectionNumber = *req.SectionNumber
	}
	if req.Title != nil {
		sec.Title = *req.Title
	}
	if req.Content != nil {
		sec.Content = *req.Content
	}
	if req.OrderIndex != nil {
		sec.OrderIndex = *req.OrderIndex
	}
	if req.SectionType != nil {
		sec.SectionType = *req.SectionType
	}
	if req.IsRequired != nil {
		sec.IsRequired = *req.IsRequired
	}
	if req.Requirements != nil {
		sec.Requirements = datatypes.JSONMap(req.Requirements)
	}

	if err := s.sectionRepo.Save(sec); err != nil {
		return nil, err
	}

	s.revisions.Record(actorID, sec, old, model.ChangeTypeUpdated, req.ChangeReason)
	return sec, nil
}

// Delete 删除章节（子孙级联），受所属手册编辑状态约束
func (s *SectionService) Delete(id uint) error {
	sec, err := s.sectionRepo.GetBasic(id)
	if err != nil {
		return err
	}

	manual, err := s.manualRepo.GetBasic(sec.ManualID)
	if err != nil {
		return err
	}
	if !s.manualSM.IsEditable(statemachine.ManualStatus(manual.Status)) {
		return &NotEditableError{Entity: "manual", ID: manual.ID, Status: manual.Status}
	}

	return s.sectionRepo.Delete(id)
}

// Reorder 批量调整同级排序，整批原子生效
func (s *SectionService) Reorder(items []repository.ReorderItem) error {
	if len(items) == 0 {
		return &ValidationError{Field: "sections", Message: "reorder batch is empty"}
	}
	return s.sectionRepo.Reorder(items)
}

// FullNumber 逐级上溯拼接完整编号，如 "4.1.2"
func (s *SectionService) FullNumber(sec *model.Section) (string, error) {
	numbers := []string{sec.SectionNumber}
	current := sec
	for depth := 0; current.ParentSectionID != nil; depth++ {
		if depth >= maxSectionDepth {
			return "", errSectionChainTooDeep
		}
		parent, err := s.sectionRepo.GetBasic(*current.ParentSectionID)
		if err != nil {
			return "", err
		}
		numbers = append([]string{parent.SectionNumber}, numbers...)
		current = parent
	}
	return strings.Join(numbers, "."), nil
}

// validateParent 校验父章节：必须存在、同属一本手册，
// 且不能是自身或自身的子孙（避免成环）。
func (s *SectionService) validateParent(manualID, sectionID, parentID uint) error {
	if parentID == sectionID && sectionID != 0 {
		return &ValidationError{Field: "parent_section_id", Message: "section cannot be its own parent"}
	}

	parent, err := s.sectionRepo.GetBasic(parentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &ValidationError{Field: "parent_section_id", Message: "parent section does not exist"}
		}
		return err
	}
	if parent.ManualID != manualID {
		return &ValidationError{Field: "parent_section_id", Message: "parent section belongs to a different manual"}
	}

	// 上溯父链：遇到自身说明新父节点是自己的子孙
	current := parent
	for depth := 0; current.ParentSectionID != nil; depth++ {
		if depth >= maxSectionDepth {
			return errSectionChainTooDeep
		}
		if *current.ParentSectionID == sectionID && sectionID != 0 {
			return &ValidationError{Field: "parent_section_id", Message: "parent section is a descendant of this section"}
		}
		next, err := s.sectionRepo.GetBasic(*current.ParentSectionID)
		if err != nil {
			return err
		}
		current = next
	}
	return nil
}
