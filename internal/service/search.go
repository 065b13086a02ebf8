package service

import (
	"strings"

	"github.com/qmsdocs/backend/internal/model"
	"github.com/qmsdocs/backend/internal/repository"
)

type SearchService struct {
	manualRepo  repository.ManualRepository
	sectionRepo repository.SectionRepository
	procRepo    repository.ProcedureRepository
	docRepo     repository.DocumentRepository
	limit       int
}

func NewSearchService(
	manualRepo repository.ManualRepository,
	sectionRepo repository.SectionRepository,
	procRepo repository.ProcedureRepository,
	docRepo repository.DocumentRepository,
	limit int,
) *SearchService {
	if limit <= 0 {
		limit = 10
	}
	return &SearchService{
		manualRepo:  manualRepo,
		sectionRepo: sectionRepo,
		procRepo:    procRepo,
		docRepo:     docRepo,
		limit:       limit,
	}
}

// GlobalSearchResult 全局搜索结果，四类实体各取前 limit 条
type GlobalSearchResult struct {
	Manuals    []model.Manual    `json:"manuals"`
	Sections   []model.Section   `json:"sections"`
	Procedures []model.Procedure `json:"procedures"`
	Documents  []model.Document  `json:"documents"`
}

// Global 全局模糊搜索。空查询直接返回四个空列表，不算错误。
func (s *SearchService) Global(q string) (*GlobalSearchResult, error) {
	result := &GlobalSearchResult{
		Manuals:    []model.Manual{},
		Sections:   []model.Section{},
		Procedures: []model.Procedure{},
		Documents:  []model.Document{},
	}

	q = strings.TrimSpace(q)
	if q == "" {
		return result, nil
	}

	manuals, err := s.manualRepo.Search(q, s.limit)
	if err != nil {
		return nil, err
	}
	if manuals != nil {
		result.Manuals = manuals
	}

	sections, err := s.sectionRepo.Search(q, s.limit)
	if err != nil {
		return nil, err
	}
	if sections != nil {
		result.Sections = sections
	}

	procedures, err := s.procRepo.Search(q, s.limit)
	if err != nil {
		return nil, err
	}
	if procedures != nil {
		result.Procedures = procedures
	}

	documents, err := s.docRepo.Search(q, s.limit)
	if err != nil {
		return nil, err
	}
	if documents != nil {
		result.Documents = documents
	}

	return result, nil
}
