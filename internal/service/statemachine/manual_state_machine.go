package statemachine

import (
	"fmt"

	"k8s.io/klog/v2"
)

// ManualStatus 定义手册的所有可能状态
type ManualStatus string

const (
	ManualStatusDraft    ManualStatus = "draft"    // 起草中
	ManualStatusReview   ManualStatus = "review"   // 审核中
	ManualStatusApproved ManualStatus = "approved" // 已批准（不可编辑、不可删除）
	ManualStatusArchived ManualStatus = "archived" // 已归档
)

// ManualTransition 定义手册状态迁移
type ManualTransition struct {
	From ManualStatus
	To   ManualStatus
}

// ManualStateMachine 手册状态机
type ManualStateMachine struct {
	allowedTransitions map[ManualTransition]bool
}

func NewManualStateMachine() *ManualStateMachine {
	sm := &ManualStateMachine{
		allowedTransitions: make(map[ManualTransition]bool),
	}

	// draft -> review -> approved -> archived
	transitions := []ManualTransition{
		{ManualStatusDraft, ManualStatusReview},
		{ManualStatusReview, ManualStatusApproved},
		{ManualStatusApproved, ManualStatusArchived},
	}

	for _, t := range transitions {
		sm.allowedTransitions[t] = true
	}

	return sm
}

// CanTransition 检查状态迁移是否合法
func (sm *ManualStateMachine) CanTransition(from, to ManualStatus) bool {
	if from == to {
		return false
	}
	return sm.allowedTransitions[ManualTransition{From: from, To: to}]
}

// ValidateTransition 验证状态迁移并返回错误
func (sm *ManualStateMachine) ValidateTransition(from, to ManualStatus) error {
	if !sm.CanTransition(from, to) {
		return &InvalidStateTransitionError{
			Entity: "manual",
			From:   string(from),
			To:     string(to),
		}
	}
	return nil
}

// Transition 执行状态迁移（带日志）
func (sm *ManualStateMachine) Transition(from, to ManualStatus, manualID uint) error {
	if err := sm.ValidateTransition(from, to); err != nil {
		klog.V(6).Infof("手册状态迁移被拒绝: manualID=%d, %s -> %s", manualID, from, to)
		return err
	}
	klog.V(6).Infof("手册状态迁移成功: manualID=%d, %s -> %s", manualID, from, to)
	return nil
}

// IsEditable 判断手册当前状态是否允许编辑
func (sm *ManualStateMachine) IsEditable(status ManualStatus) bool {
	return status == ManualStatusDraft || status == ManualStatusReview
}

// InvalidStateTransitionError 无效的状态迁移错误
type InvalidStateTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid %s state transition: %s -> %s", e.Entity, e.From, e.To)
}
