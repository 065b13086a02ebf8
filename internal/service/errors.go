package service

import "fmt"

// ValidationError 请求字段校验失败，不改变任何状态
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotEditableError 实体当前状态不允许编辑
type NotEditableError struct {
	Entity string
	ID     uint
	Status string
}

func (e *NotEditableError) Error() string {
	return fmt.Sprintf("%s %d cannot be edited in status %q", e.Entity, e.ID, e.Status)
}

// ApprovedDeleteError 已批准的手册禁止删除
type ApprovedDeleteError struct {
	ID uint
}

func (e *ApprovedDeleteError) Error() string {
	return fmt.Sprintf("cannot delete approved manual %d", e.ID)
}
