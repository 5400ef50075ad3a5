package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wekeepgrowing/school-backend/pkg/messaging"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/config"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/mail"
	notibus "github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/messaging"
)

// Infrastructure 인프라스트럭처 구조체
type Infrastructure struct {
	DB          *gorm.DB
	RedisClient *redis.Client
	SMTPClient  *mail.SMTPClient
	Bus         *notibus.NotificationBus
	logger      *zap.Logger
}

// NewInfrastructure 인프라스트럭처 초기화
func NewInfrastructure(cfg *config.Config) (*Infrastructure, error) {
	logger := cfg.Logger
	infrastructure := &Infrastructure{logger: logger}

	dbConfig := Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Name:            cfg.Database.Name,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		SSLMode:         cfg.Database.SSLMode,
		LogLevel:        cfg.Database.LogLevel,
		SlowThreshold:   time.Duration(cfg.Database.SlowThresholdMS) * time.Millisecond,
	}

	var err error
	infrastructure.DB, err = NewPostgresDB(dbConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("데이터베이스 연결 실패: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := Migrate(infrastructure.DB, logger); err != nil {
			return nil, err
		}
	}

	infrastructure.RedisClient, err = NewRedisClient(RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	if err != nil {
		return nil, err
	}

	infrastructure.SMTPClient = mail.NewSMTPClient(mail.SMTPConfig{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.SMTPUser,
		Password: cfg.Email.SMTPPass,
		From:     cfg.Email.SenderEmail,
		FromName: cfg.Email.SenderName,
	}, logger)

	infrastructure.Bus = notibus.NewNotificationBus(
		messaging.NewRedisPublisher(infrastructure.RedisClient),
		cfg.Notification.Channel,
	)

	logger.Info("인프라스트럭처 초기화 완료",
		zap.String("database", "PostgreSQL"),
		zap.String("redis", "Redis"),
		zap.String("email", "SMTP"),
	)

	return infrastructure, nil
}

// Ping 데이터베이스와 Redis 연결 확인
func (i *Infrastructure) Ping(ctx context.Context) error {
	sqlDB, err := i.DB.DB()
	if err != nil {
		return fmt.Errorf("DB 인스턴스 획득 실패: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("데이터베이스 응답 없음: %w", err)
	}
	if err := i.RedisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis 응답 없음: %w", err)
	}
	return nil
}

// Close 모든 연결 종료
func (i *Infrastructure) Close() error {
	var errs []error

	if i.DB != nil {
		if sqlDB, err := i.DB.DB(); err != nil {
			errs = append(errs, fmt.Errorf("DB 인스턴스 획득 실패: %w", err))
		} else if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("데이터베이스 연결 종료 실패: %w", err))
		}
	}

	if i.RedisClient != nil {
		if err := i.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("Redis 연결 종료 실패: %w", err))
		}
	}

	i.logger.Info("모든 인프라스트럭처 연결 종료됨")
	return errors.Join(errs...)
}
