package service

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"k8s.io/klog/v2"

	"github.com/qmsdocs/backend/internal/model"
	"github.com/qmsdocs/backend/internal/repository"
)

// majorRevisionFields 命中任一字段变化即视为重大修订，触发版本号递增。
// 其余字段（含 version 自身）无论变化幅度都只算普通修订。
var majorRevisionFields = []string{"title", "status", "content", "procedure_steps"}

// summaryExcludedFields 变更摘要中忽略的簿记字段
var summaryExcludedFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
}

// Revisable 可被修订记录跟踪的实体
type Revisable interface {
	Kind() model.EntityKind
	RevisableID() uint
	CurrentVersion() string
	Snapshot() map[string]any
}

// RevisionService 在每次实体变更后由对应 Service 显式调用，
// 每次变更恰好写入一条修订记录。
type RevisionService struct {
	revRepo repository.RevisionRepository
}

func NewRevisionService(revRepo repository.RevisionRepository) *RevisionService {
	return &RevisionService{revRepo: revRepo}
}

// Record 写入一条修订记录。写入失败只记日志，不影响主操作。
func (s *RevisionService) Record(actorID uint, entity Revisable, old map[string]any, changeType, reason string) *model.Revision {
	if old == nil {
		old = map[string]any{}
	}
	newData := entity.Snapshot()

	version := entity.CurrentVersion()
	if version == "" {
		version = "1.0"
	}

	rev := &model.Revision{
		EntityKind:     entity.Kind(),
		EntityID:       entity.RevisableID(),
		Version:        version,
		ChangesSummary: SummarizeChanges(old, newData),
		OldData:        old,
		NewData:        newData,
		ChangeType:     changeType,
		ChangedBy:      actorID,
		ChangedAt:      time.Now(),
		ChangeReason:   reason,
		IsMajorChange:  IsMajorChange(old, newData),
	}

	if err := s.revRepo.Create(rev); err != nil {
		klog.Errorf("修订记录写入失败: kind=%s id=%d changeType=%s err=%v",
			entity.Kind(), entity.RevisableID(), changeType, err)
		return nil
	}
	return rev
}

// IsMajorChange 判断 old/new 快照间是否存在重大字段变化
func IsMajorChange(old, newData map[string]any) bool {
	for _, field := range majorRevisionFields {
		if !reflect.DeepEqual(old[field], newData[field]) {
			return true
		}
	}
	return false
}

// SummarizeChanges 列出所有发生变化的业务字段，
// 没有业务字段变化时返回固定的 "Minor updates"。
func SummarizeChanges(old, newData map[string]any) string {
	fields := make([]string, 0, len(newData))
	for field := range newData {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var changes []string
	for _, field := range fields {
		if summaryExcludedFields[field] {
			continue
		}
		if !reflect.DeepEqual(old[field], newData[field]) {
			changes = append(changes, fieldLabel(field)+" changed")
		}
	}

	if len(changes) == 0 {
		return "Minor updates"
	}
	return strings.Join(changes, ", ")
}

func fieldLabel(field string) string {
	label := strings.ReplaceAll(field, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

// BumpVersion 重大修订的版本号递增规则：首段整数加一，
// 存在第二段时清零，其余段保持不变。首段非数字则原样返回。
func BumpVersion(version string) string {
	parts := strings.Split(version, ".")
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return version
	}
	parts[0] = strconv.Itoa(major + 1)
	if len(parts) > 1 {
		parts[1] = "0"
	}
	return strings.Join(parts, ".")
}
