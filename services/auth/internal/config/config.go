package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/school-backend/pkg/config"
	"github.com/wekeepgrowing/school-backend/pkg/logger"
)

// Config 인증 서비스 설정 구조체
type Config struct {
	// 서비스 기본 정보
	Service struct {
		Name    string
		Version string
	}

	// 서버 설정
	Server struct {
		HTTP struct {
			Port    string
			Timeout int
			Debug   bool
		}
		GRPC struct {
			Port       string
			Timeout    int
			Reflection bool
		}
	}

	// 데이터베이스 설정
	Database struct {
		Driver          string
		Host            string
		Port            int
		Name            string
		User            string
		Password        string
		SSLMode         string
		MaxOpenConns    int
		MaxIdleConns    int
		ConnMaxLifetime int
		LogLevel        string
		SlowThresholdMS int
		AutoMigrate     bool
	}

	// Redis 설정
	Redis struct {
		Host     string
		Port     int
		Password string
		DB       int
	}

	// 로그 설정
	Log struct {
		Level       string
		Format      string
		Output      string
		FilePath    string
		Development bool
	}

	// Email 설정
	Email struct {
		SenderEmail string
		SenderName  string
		SMTPHost    string
		SMTPPort    int
		SMTPUser    string
		SMTPPass    string
	}

	// 인증 설정
	Auth struct {
		TokenExpirySeconds   int
		TokenLength          int
		BindRoleToToken      bool
		Timezone             string
		SweepIntervalSeconds int
		HashCost             int
		BootstrapAdmin       struct {
			Username string
			Password string
			Email    string
		}
	}

	// OTP 설정
	OTP struct {
		ValidSeconds  int
		Digits        int
		Skew          int
		MaxAgeSeconds int
	}

	// 알림 설정
	Notification struct {
		Enabled      bool
		Channel      string
		EmailSubject string
	}

	// 로거 인스턴스
	Logger *zap.Logger
}

// defaults 설정 파일과 환경 변수가 없을 때의 기본값
var defaults = map[string]interface{}{
	"service.name":                "auth",
	"service.version":             "0.1.0",
	"server.http.port":            "8080",
	"server.http.timeout":         30,
	"server.grpc.port":            "9090",
	"server.grpc.timeout":         30,
	"database.driver":             "postgres",
	"database.host":               "localhost",
	"database.port":               5432,
	"database.name":               "school",
	"database.user":               "postgres",
	"database.sslmode":            "disable",
	"database.max_open_conns":     20,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  300,
	"database.log_level":          "warn",
	"database.slow_threshold_ms":  500,
	"database.auto_migrate":       true,
	"redis.host":                  "localhost",
	"redis.port":                  6379,
	"log.level":                   "info",
	"log.format":                  "json",
	"log.output":                  "stdout",
	"email.sender_name":           "School Admin",
	"email.smtp_port":             587,
	"auth.token_expiry_seconds":   1800,
	"auth.token_length":           40,
	"auth.bind_role_to_token":     true,
	"auth.timezone":               "UTC",
	"auth.sweep_interval_seconds": 300,
	"auth.hash_cost":              10,
	"otp.valid_seconds":           300,
	"otp.digits":                  6,
	"otp.skew":                    1,
	"otp.max_age_seconds":         86400,
	"notification.enabled":        true,
	"notification.channel":        "notifications",
	"notification.email_subject":  "Your one-time password",
}

// Load 설정 파일 로드
func Load() (*Config, error) {
	cfg, err := config.Load("auth", defaults)
	if err != nil {
		return nil, err
	}
	return FromSource(cfg)
}

// FromSource 이미 읽힌 설정 값에서 구조체와 로거를 만듭니다
func FromSource(cfg config.Config) (*Config, error) {
	c := &Config{}

	c.Service.Name = cfg.GetString("service.name")
	c.Service.Version = cfg.GetString("service.version")

	c.Server.HTTP.Port = cfg.GetString("server.http.port")
	c.Server.HTTP.Timeout = cfg.GetInt("server.http.timeout")
	c.Server.HTTP.Debug = cfg.GetBool("server.http.debug")
	c.Server.GRPC.Port = cfg.GetString("server.grpc.port")
	c.Server.GRPC.Timeout = cfg.GetInt("server.grpc.timeout")
	c.Server.GRPC.Reflection = cfg.GetBool("server.grpc.reflection")

	c.Database.Driver = cfg.GetString("database.driver")
	c.Database.Host = cfg.GetString("database.host")
	c.Database.Port = cfg.GetInt("database.port")
	c.Database.Name = cfg.GetString("database.name")
	c.Database.User = cfg.GetString("database.user")
	c.Database.Password = cfg.GetString("database.password")
	c.Database.SSLMode = cfg.GetString("database.sslmode")
	c.Database.MaxOpenConns = cfg.GetInt("database.max_open_conns")
	c.Database.MaxIdleConns = cfg.GetInt("database.max_idle_conns")
	c.Database.ConnMaxLifetime = cfg.GetInt("database.conn_max_lifetime")
	c.Database.LogLevel = cfg.GetString("database.log_level")
	c.Database.SlowThresholdMS = cfg.GetInt("database.slow_threshold_ms")
	c.Database.AutoMigrate = cfg.GetBool("database.auto_migrate")

	c.Redis.Host = cfg.GetString("redis.host")
	c.Redis.Port = cfg.GetInt("redis.port")
	c.Redis.Password = cfg.GetString("redis.password")
	c.Redis.DB = cfg.GetInt("redis.db")

	c.Log.Level = cfg.GetString("log.level")
	c.Log.Format = cfg.GetString("log.format")
	c.Log.Output = cfg.GetString("log.output")
	c.Log.FilePath = cfg.GetString("log.file_path")
	c.Log.Development = cfg.GetBool("log.development")

	c.Email.SenderEmail = cfg.GetString("email.sender_email")
	c.Email.SenderName = cfg.GetString("email.sender_name")
	c.Email.SMTPHost = cfg.GetString("email.smtp_host")
	c.Email.SMTPPort = cfg.GetInt("email.smtp_port")
	c.Email.SMTPUser = cfg.GetString("email.smtp_user")
	c.Email.SMTPPass = cfg.GetString("email.smtp_pass")

	c.Auth.TokenExpirySeconds = cfg.GetInt("auth.token_expiry_seconds")
	c.Auth.TokenLength = cfg.GetInt("auth.token_length")
	c.Auth.BindRoleToToken = cfg.GetBool("auth.bind_role_to_token")
	c.Auth.Timezone = cfg.GetString("auth.timezone")
	c.Auth.SweepIntervalSeconds = cfg.GetInt("auth.sweep_interval_seconds")
	c.Auth.HashCost = cfg.GetInt("auth.hash_cost")
	c.Auth.BootstrapAdmin.Username = cfg.GetString("auth.bootstrap_admin.username")
	c.Auth.BootstrapAdmin.Password = cfg.GetString("auth.bootstrap_admin.password")
	c.Auth.BootstrapAdmin.Email = cfg.GetString("auth.bootstrap_admin.email")

	c.OTP.ValidSeconds = cfg.GetInt("otp.valid_seconds")
	c.OTP.Digits = cfg.GetInt("otp.digits")
	c.OTP.Skew = cfg.GetInt("otp.skew")
	c.OTP.MaxAgeSeconds = cfg.GetInt("otp.max_age_seconds")

	c.Notification.Enabled = cfg.GetBool("notification.enabled")
	c.Notification.Channel = cfg.GetString("notification.channel")
	c.Notification.EmailSubject = cfg.GetString("notification.email_subject")

	if err := c.Validate(); err != nil {
		return nil, err
	}

	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:       c.Log.Level,
		Format:      c.Log.Format,
		Output:      c.Log.Output,
		FilePath:    c.Log.FilePath,
		Development: c.Log.Development,
		ServiceName: c.Service.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("로거 생성 실패: %w", err)
	}
	c.Logger = zapLogger

	return c, nil
}

// Validate 값 범위를 확인합니다
func (c *Config) Validate() error {
	if c.Auth.TokenExpirySeconds <= 0 {
		return fmt.Errorf("auth.token_expiry_seconds 는 양수여야 합니다: %d", c.Auth.TokenExpirySeconds)
	}
	if c.Auth.TokenLength < 22 {
		return fmt.Errorf("auth.token_length 는 22 이상이어야 합니다: %d", c.Auth.TokenLength)
	}
	if c.OTP.ValidSeconds <= 0 {
		return fmt.Errorf("otp.valid_seconds 는 양수여야 합니다: %d", c.OTP.ValidSeconds)
	}
	if c.OTP.Digits != 6 && c.OTP.Digits != 8 {
		return fmt.Errorf("otp.digits 는 6 또는 8 이어야 합니다: %d", c.OTP.Digits)
	}
	if c.OTP.Skew < 0 {
		return fmt.Errorf("otp.skew 는 음수일 수 없습니다: %d", c.OTP.Skew)
	}
	if _, err := time.LoadLocation(c.Auth.Timezone); err != nil {
		return fmt.Errorf("auth.timezone 로드 실패: %w", err)
	}
	return nil
}

// TokenTTL 세션 슬라이딩 만료 간격
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenExpirySeconds) * time.Second
}

// SweepInterval 만료 세션 정리 주기
func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.Auth.SweepIntervalSeconds) * time.Second
}

// Location 하루 경계를 계산할 시간대
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Auth.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
