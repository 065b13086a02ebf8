package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qmsdocs/backend/internal/middleware"
	"github.com/qmsdocs/backend/internal/repository"
	"github.com/qmsdocs/backend/internal/service"
)

type SectionHandler struct {
	service *service.SectionService
}

// NewSectionHandler 创建章节处理器
func NewSectionHandler(service *service.SectionService) *SectionHandler {
	return &SectionHandler{service: service}
}

// List 查询章节列表。
// manual_id 过滤手册，parent_section_id 过滤父章节（0 表示顶级）。
func (h *SectionHandler) List(c *gin.Context) {
	var manualID uint
	if raw := c.Query("manual_id"); raw != "" {
		id, err := parseUintParam(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid manual_id"})
			return
		}
		manualID = id
	}

	var parentID *uint
	filterParent := false
	if raw := c.Query("parent_section_id"); raw != "" {
		filterParent = true
		id, err := parseUintParam(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid parent_section_id"})
			return
		}
		if id != 0 {
			parentID = &id
		}
	}

	sections, err := h.service.List(manualID, parentID, filterParent)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sections)
}

// Create 创建章节
func (h *SectionHandler) Create(c *gin.Context) {
	actorID, _ := middleware.CurrentUser(c)

	var req service.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	section, err := h.service.Create(actorID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, section)
}

// Get 获取章节详情（含完整编号）
func (h *SectionHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	section, err := h.service.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, section)
}

// Update 更新章节
func (h *SectionHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actorID, _ := middleware.CurrentUser(c)

	var req service.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	section, err := h.service.Update(actorID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, section)
}

// Delete 删除章节
func (h *SectionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "section deleted"})
}

// Reorder 批量调整章节排序
func (h *SectionHandler) Reorder(c *gin.Context) {
	var req struct {
		Sections []repository.ReorderItem `json:"sections" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Reorder(req.Sections); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "sections reordered"})
}
