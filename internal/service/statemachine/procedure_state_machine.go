package statemachine

import (
	"k8s.io/klog/v2"
)

// ProcedureStatus 定义规程的所有可能状态
type ProcedureStatus string

const (
	ProcedureStatusDraft    ProcedureStatus = "draft"
	ProcedureStatusReview   ProcedureStatus = "review"
	ProcedureStatusApproved ProcedureStatus = "approved"
	ProcedureStatusObsolete ProcedureStatus = "obsolete" // 已作废
)

// ProcedureTransition 定义规程状态迁移
type ProcedureTransition struct {
	From ProcedureStatus
	To   ProcedureStatus
}

// ProcedureStateMachine 规程状态机，文档共用同一套状态集。
// entity 标识错误信息里报告的实体名。
type ProcedureStateMachine struct {
	entity             string
	allowedTransitions map[ProcedureTransition]bool
}

func NewProcedureStateMachine() *ProcedureStateMachine {
	return newProcedureStateMachine("procedure")
}

// NewDocumentStateMachine 文档用同一状态集，错误按 document 报告
func NewDocumentStateMachine() *ProcedureStateMachine {
	return newProcedureStateMachine("document")
}

func newProcedureStateMachine(entity string) *ProcedureStateMachine {
	sm := &ProcedureStateMachine{
		entity:             entity,
		allowedTransitions: make(map[ProcedureTransition]bool),
	}

	// draft -> review -> approved -> obsolete
	// review -> obsolete（未批准直接作废）
	transitions := []ProcedureTransition{
		{ProcedureStatusDraft, ProcedureStatusReview},
		{ProcedureStatusReview, ProcedureStatusApproved},
		{ProcedureStatusApproved, ProcedureStatusObsolete},
		{ProcedureStatusReview, ProcedureStatusObsolete},
	}

	for _, t := range transitions {
		sm.allowedTransitions[t] = true
	}

	return sm
}

// CanTransition 检查状态迁移是否合法
func (sm *ProcedureStateMachine) CanTransition(from, to ProcedureStatus) bool {
	if from == to {
		return false
	}
	return sm.allowedTransitions[ProcedureTransition{From: from, To: to}]
}

// ValidateTransition 验证状态迁移并返回错误
func (sm *ProcedureStateMachine) ValidateTransition(from, to ProcedureStatus) error {
	if !sm.CanTransition(from, to) {
		return &InvalidStateTransitionError{
			Entity: sm.entity,
			From:   string(from),
			To:     string(to),
		}
	}
	return nil
}

// Transition 执行状态迁移（带日志）
func (sm *ProcedureStateMachine) Transition(from, to ProcedureStatus, id uint) error {
	if err := sm.ValidateTransition(from, to); err != nil {
		klog.V(6).Infof("状态迁移被拒绝: entity=%s id=%d, %s -> %s", sm.entity, id, from, to)
		return err
	}
	klog.V(6).Infof("状态迁移成功: entity=%s id=%d, %s -> %s", sm.entity, id, from, to)
	return nil
}

// IsEditable 判断规程当前状态是否允许编辑
func (sm *ProcedureStateMachine) IsEditable(status ProcedureStatus) bool {
	return status == ProcedureStatusDraft || status == ProcedureStatusReview
}
