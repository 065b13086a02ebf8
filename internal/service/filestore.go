package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"k8s.io/klog/v2"
)

// FileStore 文档附件的本地存储。存储名用 uuid 生成，
// 数据库只记录相对路径。
type FileStore struct {
	dir      string
	maxBytes int64
}

type StoredFile struct {
	Path string // 相对存储目录的路径
	Ext  string // 不带点的扩展名
	Size int64
}

func NewFileStore(dir string, maxBytes int64) *FileStore {
	return &FileStore{dir: dir, maxBytes: maxBytes}
}

// MaxBytes 单个附件的大小上限
func (f *FileStore) MaxBytes() int64 {
	return f.maxBytes
}

func (f *FileStore) Save(originalName string, r io.Reader) (*StoredFile, error) {
	ext := strings.TrimPrefix(filepath.Ext(originalName), ".")
	stored := uuid.NewString()
	if ext != "" {
		stored = stored + "." + ext
	}

	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return nil, err
	}

	dst, err := os.Create(filepath.Join(f.dir, stored))
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	limited := r
	if f.maxBytes > 0 {
		limited = io.LimitReader(r, f.maxBytes+1)
	}
	written, err := io.Copy(dst, limited)
	if err != nil {
		os.Remove(dst.Name())
		return nil, err
	}
	if f.maxBytes > 0 && written > f.maxBytes {
		os.Remove(dst.Name())
		return nil, fmt.Errorf("file exceeds upload limit of %d bytes", f.maxBytes)
	}

	return &StoredFile{Path: stored, Ext: strings.ToLower(ext), Size: written}, nil
}

// Resolve 还原存储路径为磁盘绝对路径
func (f *FileStore) Resolve(path string) string {
	return filepath.Join(f.dir, path)
}

// Remove 删除存储文件，失败只记日志
func (f *FileStore) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(filepath.Join(f.dir, path)); err != nil && !os.IsNotExist(err) {
		klog.Errorf("删除存储文件失败: path=%s err=%v", path, err)
	}
}
