package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qmsdocs/backend/internal/service"
)

type SearchHandler struct {
	service *service.SearchService
}

// NewSearchHandler 创建搜索处理器
func NewSearchHandler(service *service.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// Global 全局搜索。空查询返回四个空列表。
func (h *SearchHandler) Global(c *gin.Context) {
	result, err := h.service.Global(c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
