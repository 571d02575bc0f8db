package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/darkkaiser/sangabriel-catalog/pkg/concurrency"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
)

const component = "storage"

const defaultDataDirectory = "data"

const tempFilePattern = "kv-*.tmp"

// staleTempFileAge 이 시간보다 오래된 임시 파일은 비정상 종료의 잔여물로 보고 삭제합니다.
const staleTempFileAge = time.Hour

// record 파일 하나에 기록되는 값과 만료 시각입니다.
type record struct {
	Key       string     `json:"key"`
	Value     []byte     `json:"value"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (r *record) expired(now time.Time) bool {
	return r.ExpiresAt != nil && !now.Before(*r.ExpiresAt)
}

// fileStore 키마다 JSON 파일 하나를 사용하는 Store 구현입니다.
//
// 쓰기는 임시 파일 기록, fsync, rename 순서로 수행되어 중간에 프로세스가 종료되어도
// 반쯤 쓰인 파일이 남지 않습니다. 같은 키에 대한 접근은 KeyedMutex로 직렬화됩니다.
type fileStore struct {
	baseDir string

	locks *concurrency.KeyedMutex

	now func() time.Time
}

var _ Store = (*fileStore)(nil)

// NewFileStore dir 디렉토리를 사용하는 파일 저장소를 생성합니다. dir이 비어 있으면 "data"를 사용합니다.
func NewFileStore(dir string) (Store, error) {
	return newFileStore(dir)
}

func newFileStore(dir string) (*fileStore, error) {
	if dir == "" {
		dir = defaultDataDirectory
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, newErrAbsPathConversionFailed(err)
	}

	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, newErrDirectoryAccessFailed(err, absDir)
	}

	s := &fileStore{
		baseDir: absDir,

		locks: concurrency.NewKeyedMutex(),

		now: time.Now,
	}

	s.cleanupStaleTempFiles()

	return s, nil
}

// cleanupStaleTempFiles 이전 실행에서 rename되지 못하고 남은 임시 파일을 정리합니다.
func (s *fileStore) cleanupStaleTempFiles() {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"dir":   s.baseDir,
			"error": err,
		}).Warn("임시 파일 정리 중단: 디렉토리 조회 실패")

		return
	}

	threshold := s.now().Add(-staleTempFileAge)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if matched, _ := filepath.Match(tempFilePattern, name); !matched {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.ModTime().After(threshold) {
			continue
		}

		fullPath := filepath.Join(s.baseDir, name)
		if err := os.Remove(fullPath); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"file":  fullPath,
				"error": err,
			}).Warn("임시 파일 삭제 실패: 파일 제거 오류")
		} else {
			applog.WithComponentAndFields(component, applog.Fields{
				"file": fullPath,
			}).Info("임시 파일 삭제 완료: 이전 실행 잔존 파일 정리")
		}
	}
}

func (s *fileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filename, err := s.resolveSafePath(key)
	if err != nil {
		return nil, err
	}

	var value []byte
	err = s.locks.WithLock(filename, func() error {
		rec, err := s.readRecord(filename)
		if err != nil {
			return err
		}
		if rec.expired(s.now()) {
			_ = os.Remove(filename)
			return ErrNotFound
		}

		value = rec.Value
		return nil
	})

	return value, err
}

func (s *fileStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	filename, err := s.resolveSafePath(key)
	if err != nil {
		return err
	}

	return s.locks.WithLock(filename, func() error {
		return s.writeRecord(filename, s.newRecord(key, value, ttl))
	})
}

func (s *fileStore) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	filename, err := s.resolveSafePath(key)
	if err != nil {
		return false, err
	}

	stored := false
	err = s.locks.WithLock(filename, func() error {
		rec, err := s.readRecord(filename)
		switch {
		case err == nil:
			if !rec.expired(s.now()) {
				return nil
			}
		case errors.Is(err, ErrNotFound):
		default:
			// 손상된 레코드는 덮어씁니다.
			applog.WithComponentAndFields(component, applog.Fields{
				"file":  filename,
				"error": err,
			}).Warn("저장 레코드 손상: 새 값으로 덮어씁니다")
		}

		if err := s.writeRecord(filename, s.newRecord(key, value, ttl)); err != nil {
			return err
		}

		stored = true
		return nil
	})

	return stored, err
}

func (s *fileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	filename, err := s.resolveSafePath(key)
	if err != nil {
		return err
	}

	return s.locks.WithLock(filename, func() error {
		if err := os.Remove(filename); err != nil && !os.IsNotExist(err) {
			return newErrFileRemoveFailed(err)
		}
		return nil
	})
}

func (s *fileStore) Close() error {
	return nil
}

func (s *fileStore) newRecord(key string, value []byte, ttl time.Duration) *record {
	rec := &record{Key: key, Value: value}
	if ttl > 0 {
		expiresAt := s.now().Add(ttl).UTC()
		rec.ExpiresAt = &expiresAt
	}
	return rec
}

func (s *fileStore) readRecord(filename string) (*record, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, newErrFileReadFailed(err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, newErrRecordDecodeFailed(err)
	}

	return &rec, nil
}

func (s *fileStore) writeRecord(filename string, rec *record) error {
	data, err := json.MarshalIndent(rec, "", "\t")
	if err != nil {
		return newErrRecordEncodeFailed(err)
	}

	return s.writeAtomic(filename, data)
}

// resolveSafePath 키에 해당하는 파일의 절대 경로를 반환합니다.
// 정규화된 경로가 baseDir 밖을 가리키면 ErrPathTraversalDetected를 반환합니다.
func (s *fileStore) resolveSafePath(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", ErrEmptyKey
	}

	filename := generateFilename(key)
	cleanPath := filepath.Clean(filepath.Join(s.baseDir, filename))

	rel, err := filepath.Rel(s.baseDir, cleanPath)
	if err != nil {
		return "", newErrPathResolutionFailed(err)
	}

	if strings.HasPrefix(rel, "..") || strings.ContainsRune(rel, filepath.Separator) {
		applog.WithComponentAndFields(component, applog.Fields{
			"key":      key,
			"filename": filename,
			"base_dir": s.baseDir,
			"rel_path": rel,
		}).Error("파일 경로 생성 차단: 경로 이탈 시도 감지")

		return "", ErrPathTraversalDetected
	}

	return cleanPath, nil
}

func (s *fileStore) writeAtomic(filename string, data []byte) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return newErrTempFileCreationFailed(err)
	}
	tmpPath := tmpFile.Name()

	// rename이 성공하면 tmpPath는 더 이상 존재하지 않으므로 Remove는 무시됩니다.
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return newErrFileWriteFailed(err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return newErrFileSyncFailed(err)
	}

	if err := tmpFile.Close(); err != nil {
		return newErrFileCloseFailed(err)
	}

	if err := renameWithRetry(tmpPath, filename); err != nil {
		return newErrFileRenameFailed(err)
	}

	if dirFile, err := os.Open(dir); err == nil {
		_ = dirFile.Sync()
		dirFile.Close()
	}

	return nil
}

// renameWithRetry Windows에서 대상 파일을 다른 프로세스가 잠시 열고 있으면 rename이 실패하므로 몇 차례 재시도합니다.
func renameWithRetry(oldPath, newPath string) error {
	const maxRetries = 5
	const retryDelay = 10 * time.Millisecond

	var lastErr error
	for range maxRetries {
		err := os.Rename(oldPath, newPath)
		if err == nil {
			return nil
		}

		lastErr = err
		time.Sleep(retryDelay)
	}

	return lastErr
}
