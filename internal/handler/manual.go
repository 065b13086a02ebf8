package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qmsdocs/backend/config"
	"github.com/qmsdocs/backend/internal/middleware"
	"github.com/qmsdocs/backend/internal/service"
)

type ManualHandler struct {
	cfg     *config.Config
	service *service.ManualService
}

// NewManualHandler 创建手册处理器
func NewManualHandler(cfg *config.Config, service *service.ManualService) *ManualHandler {
	return &ManualHandler{cfg: cfg, service: service}
}

// Create 创建手册
func (h *ManualHandler) Create(c *gin.Context) {
	actorID, _ := middleware.CurrentUser(c)

	var req service.CreateManualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	manual, err := h.service.Create(actorID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, manual)
}

// List 分页查询手册
func (h *ManualHandler) List(c *gin.Context) {
	opts := listOptions(c, h.cfg.Search.PageSize)

	manuals, total, err := h.service.List(opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     manuals,
		"total":    total,
		"page":     opts.Page,
		"per_page": opts.PerPage,
	})
}

// Get 获取手册详情
func (h *ManualHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	manual, err := h.service.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, manual)
}

// Update 更新手册
func (h *ManualHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actorID, _ := middleware.CurrentUser(c)

	var req service.UpdateManualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	manual, err := h.service.Update(actorID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, manual)
}

// Delete 删除手册（已批准的手册禁止删除）
func (h *ManualHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "manual deleted"})
}

// SubmitForReview 提交审核
func (h *ManualHandler) SubmitForReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actorID, _ := middleware.CurrentUser(c)

	manual, err := h.service.SubmitForReview(actorID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, manual)
}

// Approve 批准手册
func (h *ManualHandler) Approve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actorID, _ := middleware.CurrentUser(c)

	manual, err := h.service.Approve(actorID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, manual)
}

// Archive 归档手册
func (h *ManualHandler) Archive(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actorID, _ := middleware.CurrentUser(c)

	manual, err := h.service.Archive(actorID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, manual)
}
