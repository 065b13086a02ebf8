package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qmsdocs/backend/config"
	"github.com/qmsdocs/backend/internal/middleware"
	"github.com/qmsdocs/backend/internal/service"
)

type ProcedureHandler struct {
	cfg     *config.Config
	service *service.ProcedureService
}

// NewProcedureHandler 创建规程处理器
func NewProcedureHandler(cfg *config.Config, service *service.ProcedureService) *ProcedureHandler {
	return &ProcedureHandler{cfg: cfg, service: service}
}

// Create 创建规程
func (h *ProcedureHandler) Create(c *gin.Context) {
	actorID, _ := middleware.CurrentUser(c)

	var req service.CreateProcedureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	procedure, err := h.service.Create(actorID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, procedure)
}

// List 分页查询规程
func (h *ProcedureHandler) List(c *gin.Context) {
	opts := listOptions(c, h.cfg.Search.PageSize)

	var sectionID uint
	if raw := c.Query("section_id"); raw != "" {
		id, err := parseUintParam(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid section_id"})
			return
		}
		sectionID = id
	}

	procedures, total, err := h.service.List(opts, sectionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     procedures,
		"total":    total,
		"page":     opts.Page,
		"per_page": opts.PerPage,
	})
}

// Get 获取规程详情
func (h *ProcedureHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	procedure, err := h.service.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, procedure)
}

// Update 更新规程
func (h *ProcedureHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actorID, _ := middleware.CurrentUser(c)

	var req service.UpdateProcedureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	procedure, err := h.service.Update(actorID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, procedure)
}

// Delete 删除规程
func (h *ProcedureHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "procedure deleted"})
}

// SubmitForReview 提交审核
func (h *ProcedureHandler) SubmitForReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actorID, _ := middleware.CurrentUser(c)

	procedure, err := h.service.SubmitForReview(actorID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, procedure)
}

// Approve 批准规程
func (h *ProcedureHandler) Approve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actorID, _ := middleware.CurrentUser(c)

	procedure, err := h.service.Approve(actorID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, procedure)
}

// MarkObsolete 作废规程
func (h *ProcedureHandler) MarkObsolete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actorID, _ := middleware.CurrentUser(c)

	procedure, err := h.service.MarkObsolete(actorID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, procedure)
}
