package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qmsdocs/backend/config"
	"github.com/qmsdocs/backend/internal/middleware"
	"github.com/qmsdocs/backend/internal/service"
)

type DocumentHandler struct {
	cfg     *config.Config
	service *service.DocumentService
}

// NewDocumentHandler 创建文档处理器
func NewDocumentHandler(cfg *config.Config, service *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{cfg: cfg, service: service}
}

// Create 创建文档记录
func (h *DocumentHandler) Create(c *gin.Context) {
	actorID, _ := middleware.CurrentUser(c)

	var req service.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	document, err := h.service.Create(actorID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, document)
}

// List 分页查询文档
func (h *DocumentHandler) List(c *gin.Context) {
	opts := listOptions(c, h.cfg.Search.PageSize)

	var manualID uint
	if raw := c.Query("manual_id"); raw != "" {
		id, err := parseUintParam(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid manual_id"})
			return
		}
		manualID = id
	}

	documents, total, err := h.service.List(opts, manualID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     documents,
		"total":    total,
		"page":     opts.Page,
		"per_page": opts.PerPage,
	})
}

// Get 获取文档详情
func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	document, err := h.service.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, document)
}

// Update 更新文档
func (h *DocumentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actorID, _ := middleware.CurrentUser(c)

	var req service.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	document, err := h.service.Update(actorID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, document)
}

// Delete 删除文档
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "document deleted"})
}

// SubmitForReview 提交审核
func (h *DocumentHandler) SubmitForReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actorID, _ := middleware.CurrentUser(c)

	document, err := h.service.SubmitForReview(actorID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, document)
}

// Approve 批准文档
func (h *DocumentHandler) Approve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actorID, _ := middleware.CurrentUser(c)

	document, err := h.service.Approve(actorID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, document)
}

// Upload 上传文档附件（multipart 字段名 file）
func (h *DocumentHandler) Upload(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actorID, _ := middleware.CurrentUser(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if max := h.cfg.Storage.MaxUploadBytes; max > 0 && fileHeader.Size > max {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds upload limit"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	document, err := h.service.Upload(actorID, id, fileHeader.Filename, fileHeader.Size, src)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, document)
}

// Download 下载文档附件
func (h *DocumentHandler) Download(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	path, name, err := h.service.Download(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.FileAttachment(path, name)
}
