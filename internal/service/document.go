package service

import (
	"errors"
	"io"
	"time"

	"gorm.io/datatypes"

	"github.com/qmsdocs/backend/internal/model"
	"github.com/qmsdocs/backend/internal/repository"
	"github.com/qmsdocs/backend/internal/service/statemachine"
)

// DocumentService 文档与规程共用同一套状态机
type DocumentService struct {
	docRepo     repository.DocumentRepository
	manualRepo  repository.ManualRepository
	sectionRepo repository.SectionRepository
	procRepo    repository.ProcedureRepository
	userRepo    repository.UserRepository
	revisions   *RevisionService
	files       *FileStore
	sm          *statemachine.ProcedureStateMachine
}

func NewDocumentService(
	docRepo repository.DocumentRepository,
	manualRepo repository.ManualRepository,
	sectionRepo repository.SectionRepository,
	procRepo repository.ProcedureRepository,
	userRepo repository.UserRepository,
	revisions *RevisionService,
	files *FileStore,
) *DocumentService {
	return &DocumentService{
		docRepo:     docRepo,
		manualRepo:  manualRepo,
		sectionRepo: sectionRepo,
		procRepo:    procRepo,
		userRepo:    userRepo,
		revisions:   revisions,
		files:       files,
		sm:          statemachine.NewDocumentStateMachine(),
	}
}

type CreateDocumentRequest struct {
	ManualID     uint       `json:"manual_id" binding:"required"`
	SectionID    *uint      `json:"section_id"`
	ProcedureID  *uint      `json:"procedure_id"`
	DocumentCode string     `json:"document_code" binding:"required,max=50"`
	Title        string     `json:"title" binding:"required,max=255"`
	Description  string     `json:"description"`
	DocumentType string     `json:"document_type" binding:"omitempty,oneof=form template checklist record policy instruction other"`
	Version      string     `json:"version" binding:"max=20"`
	ReviewDate   *time.Time `json:"review_date"`
	Tags         []string   `json:"tags"`
}

type UpdateDocumentRequest struct {
	SectionID    *uint      `json:"section_id"`
	ProcedureID  *uint      `json:"procedure_id"`
	Title        *string    `json:"title" binding:"omitempty,max=255"`
	Description  *string    `json:"description"`
	DocumentType *string    `json:"document_type" binding:"omitempty,oneof=form template checklist record policy instruction other"`
	ReviewDate   *time.Time `json:"review_date"`
	Tags         []string   `json:"tags"`
	ChangeReason string     `json:"change_reason"`
}

func (s *DocumentService) Create(actorID uint, req CreateDocumentRequest) (*model.Document, error) {
	if _, err := s.userRepo.Get(actorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ValidationError{Field: "created_by", Message: "unknown user"}
		}
		return nil, err
	}
	if err := s.validateLinks(req.ManualID, req.SectionID, req.ProcedureID); err != nil {
		return nil, err
	}

	version := req.Version
	if version == "" {
		version = "1.0"
	}
	docType := req.DocumentType
	if docType == "" {
		docType = "other"
	}

	d := &model.Document{
		ManualID:     req.ManualID,
		SectionID:    req.SectionID,
		ProcedureID:  req.ProcedureID,
		DocumentCode: req.DocumentCode,
		Title:        req.Title,
		Description:  req.Description,
		DocumentType: docType,
		Version:      version,
		Status:       string(statemachine.ProcedureStatusDraft),
		CreatedBy:    actorID,
		ReviewDate:   req.ReviewDate,
		Tags:         datatypes.NewJSONSlice(req.Tags),
	}

	if err := s.docRepo.Create(d); err != nil {
		return nil, err
	}

	s.revisions.Record(actorID, d, nil, model.ChangeTypeCreated, "")
	return d, nil
}

func (s *DocumentService) List(opts repository.ListOptions, manualID uint) ([]model.Document, int64, error) {
	return s.docRepo.List(opts, manualID)
}

func (s *DocumentService) Get(id uint) (*model.Document, error) {
	return s.docRepo.Get(id)
}

func (s *DocumentService) Update(actorID uint, id uint, req UpdateDocumentRequest) (*model.Document, error) {
	d, err := s.docRepo.GetBasic(id)
	if err != nil {
		return nil, err
	}

	if !s.sm.IsEditable(statemachine.ProcedureStatus(d.Status)) {
		return nil, &NotEditableError{Entity: "document", ID: d.ID, Status: d.Status}
	}

	sectionID := d.SectionID
	if req.SectionID != nil {
		sectionID = req.SectionID
	}
	procedureID := d.ProcedureID
	if req.ProcedureID != nil {
		procedureID = req.ProcedureID
	}
	if err := s.validateLinks(d.ManualID, sectionID, procedureID); err != nil {
		return nil, err
	}

	old := d.Snapshot()

	d.SectionID = sectionID
	d.ProcedureID = procedureID
	if req.Title != nil {
		d.Title = *req.Title
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.DocumentType != nil {
		d.DocumentType = *req.DocumentType
	}
	if req.ReviewDate != nil {
		d.ReviewDate = req.ReviewDate
	}
	if req.Tags != nil {
		d.Tags = datatypes.NewJSONSlice(req.Tags)
	}

	if IsMajorChange(old, d.Snapshot()) {
		d.Version = BumpVersion(d.Version)
	}

	if err := s.docRepo.Save(d); err != nil {
		return nil, err
	}

	s.revisions.Record(actorID, d, old, model.ChangeTypeUpdated, req.ChangeReason)
	return d, nil
}

func (s *DocumentService) Delete(id uint) error {
	d, err := s.docRepo.GetBasic(id)
	if err != nil {
		return err
	}
	if !s.sm.IsEditable(statemachine.ProcedureStatus(d.Status)) {
		return &NotEditableError{Entity: "document", ID: d.ID, Status: d.Status}
	}
	if err := s.docRepo.Delete(id); err != nil {
		return err
	}
	if d.FilePath != "" {
		s.files.Remove(d.FilePath)
	}
	return nil
}

// SubmitForReview 提交审核，仅允许 draft -> review
func (s *DocumentService) SubmitForReview(actorID uint, id uint) (*model.Document, error) {
	return s.transition(actorID, id, statemachine.ProcedureStatusReview, model.ChangeTypeUpdated, "submitted for review")
}

// Approve 批准文档，仅允许 review -> approved，记录批准人与时间
func (s *DocumentService) Approve(actorID uint, id uint) (*model.Document, error) {
	return s.transition(actorID, id, statemachine.ProcedureStatusApproved, model.ChangeTypeApproved, "")
}

// Upload 保存上传文件并更新文件元数据
func (s *DocumentService) Upload(actorID uint, id uint, fileName string, size int64, r io.Reader) (*model.Document, error) {
	d, err := s.docRepo.GetBasic(id)
	if err != nil {
		return nil, err
	}

	if !s.sm.IsEditable(statemachine.ProcedureStatus(d.Status)) {
		return nil, &NotEditableError{Entity: "document", ID: d.ID, Status: d.Status}
	}

	stored, err := s.files.Save(fileName, r)
	if err != nil {
		return nil, err
	}

	old := d.Snapshot()

	// 替换旧文件
	if d.FilePath != "" {
		s.files.Remove(d.FilePath)
	}
	d.FilePath = stored.Path
	d.FileName = fileName
	d.FileType = stored.Ext
	d.FileSize = size
	if size <= 0 {
		d.FileSize = stored.Size
	}

	if err := s.docRepo.Save(d); err != nil {
		s.files.Remove(stored.Path)
		return nil, err
	}

	s.revisions.Record(actorID, d, old, model.ChangeTypeUpdated, "file uploaded")
	return d, nil
}

// Download 返回文档附件的存储路径与原始文件名
func (s *DocumentService) Download(id uint) (path, name string, err error) {
	d, err := s.docRepo.GetBasic(id)
	if err != nil {
		return "", "", err
	}
	if d.FilePath == "" {
		return "", "", repository.ErrNotFound
	}
	return s.files.Resolve(d.FilePath), d.FileName, nil
}

func (s *DocumentService) transition(actorID uint, id uint, to statemachine.ProcedureStatus, changeType, reason string) (*model.Document, error) {
	d, err := s.docRepo.GetBasic(id)
	if err != nil {
		return nil, err
	}

	if err := s.sm.Transition(statemachine.ProcedureStatus(d.Status), to, d.ID); err != nil {
		return nil, err
	}

	old := d.Snapshot()
	d.Status = string(to)
	if to == statemachine.ProcedureStatusApproved {
		now := time.Now()
		d.ApprovedBy = &actorID
		d.ApprovedAt = &now
	}

	if IsMajorChange(old, d.Snapshot()) {
		d.Version = BumpVersion(d.Version)
	}

	if err := s.docRepo.Save(d); err != nil {
		return nil, err
	}

	s.revisions.Record(actorID, d, old, changeType, reason)
	return d, nil
}

// validateLinks 校验手册/章节/规程引用存在且同属一本手册
func (s *DocumentService) validateLinks(manualID uint, sectionID, procedureID *uint) error {
	if _, err := s.manualRepo.GetBasic(manualID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &ValidationError{Field: "manual_id", Message: "manual does not exist"}
		}
		return err
	}

	if sectionID != nil {
		sec, err := s.sectionRepo.GetBasic(*sectionID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return &ValidationError{Field: "section_id", Message: "section does not exist"}
			}
			return err
		}
		if sec.ManualID != manualID {
			return &ValidationError{Field: "section_id", Message: "section belongs to a different manual"}
		}
	}

	if procedureID != nil {
		proc, err := s.procRepo.GetBasic(*procedureID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return &ValidationError{Field: "procedure_id", Message: "procedure does not exist"}
			}
			return err
		}
		sec, err := s.sectionRepo.GetBasic(proc.SectionID)
		if err != nil {
			return err
		}
		if sec.ManualID != manualID {
			return &ValidationError{Field: "procedure_id", Message: "procedure belongs to a different manual"}
		}
	}

	return nil
}
