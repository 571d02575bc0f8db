package storage

import (
	"context"

	"github.com/darkkaiser/sangabriel-catalog/internal/config"
	applog "github.com/darkkaiser/sangabriel-catalog/pkg/log"
)

const (
	DriverFile   = "file"
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// New 설정의 드라이버에 맞는 Store를 생성합니다.
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	var (
		s   Store
		err error
	)

	switch cfg.Driver {
	case DriverFile, "":
		s, err = NewFileStore(cfg.Dir)
	case DriverMemory:
		s = NewMemoryStore()
	case DriverRedis:
		s, err = NewRedisStore(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return nil, newErrUnsupportedDriver(cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"driver": cfg.Driver,
		"dir":    cfg.Dir,
		"redis":  cfg.RedisAddr,
	}).Info("저장소 초기화 완료")

	return s, nil
}
