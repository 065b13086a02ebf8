package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qmsdocs/backend/internal/repository"
	"github.com/qmsdocs/backend/internal/service"
	"github.com/qmsdocs/backend/internal/service/statemachine"
)

// respondError 按错误类型映射状态码：
// 校验失败/非法状态迁移 400，工作流拒绝 403，不存在 404，唯一约束冲突 409
func respondError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var notEditableErr *service.NotEditableError
	var approvedDeleteErr *service.ApprovedDeleteError
	var transitionErr *statemachine.InvalidStateTransitionError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message, "field": validationErr.Field})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": transitionErr.Error()})
	case errors.As(err, &notEditableErr):
		c.JSON(http.StatusForbidden, gin.H{"error": notEditableErr.Error()})
	case errors.As(err, &approvedDeleteErr):
		c.JSON(http.StatusForbidden, gin.H{"error": approvedDeleteErr.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.Is(err, repository.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate value for unique field"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func parseUintParam(raw string) (uint, error) {
	v, err := strconv.ParseUint(raw, 10, 32)
	return uint(v), err
}

// listOptions 解析列表接口通用查询参数
func listOptions(c *gin.Context, defaultPerPage int) repository.ListOptions {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	return repository.ListOptions{
		Page:    page,
		PerPage: perPage,
		Status:  c.Query("status"),
		Search:  c.Query("search"),
	}
}
