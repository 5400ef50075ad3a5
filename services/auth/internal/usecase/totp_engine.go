package usecase

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/interfaces"
)

// 비밀키 길이 (160비트)
const totpSecretBytes = 20

// TOTPConfig OTP 엔진 설정
type TOTPConfig struct {
	Period uint          // 한 스텝 길이 (초)
	Digits int           // 6 또는 8
	Skew   uint          // 앞뒤로 허용하는 스텝 수
	MaxAge time.Duration // 발급 후 이 시간이 지나면 거부. 0 이면 제한 없음
}

// TOTPEngine pquerna/otp 기반 OTP 엔진
type TOTPEngine struct {
	cfg  TOTPConfig
	opts totp.ValidateOpts
	now  func() time.Time
}

// NewTOTPEngine OTP 엔진 생성
func NewTOTPEngine(cfg TOTPConfig) interfaces.TOTPEngine {
	return &TOTPEngine{
		cfg: cfg,
		opts: totp.ValidateOpts{
			Period:    cfg.Period,
			Skew:      cfg.Skew,
			Digits:    otp.Digits(cfg.Digits),
			Algorithm: otp.AlgorithmSHA1,
		},
		now: time.Now,
	}
}

// Generate 새 비밀키와 현재 스텝의 코드를 만듭니다
func (e *TOTPEngine) Generate(now time.Time) (string, string, int64, error) {
	raw := make([]byte, totpSecretBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", 0, fmt.Errorf("OTP 비밀키 생성 실패: %w", err)
	}

	step := now.Unix()
	code, err := totp.GenerateCodeCustom(base32.StdEncoding.EncodeToString(raw), time.Unix(step, 0), e.opts)
	if err != nil {
		return "", "", 0, fmt.Errorf("OTP 코드 생성 실패: %w", err)
	}

	return code, base64.StdEncoding.EncodeToString(raw), step, nil
}

// Verify 발급 시각의 스텝을 기준으로 코드를 검증합니다
func (e *TOTPEngine) Verify(secret, code string, timeStep int64) bool {
	code = strings.TrimSpace(code)
	if len(code) != e.cfg.Digits || !isDigits(code) {
		return false
	}

	raw, err := base64.StdEncoding.DecodeString(secret)
	if err != nil || len(raw) == 0 {
		return false
	}

	issuedAt := time.Unix(timeStep, 0)
	now := e.now()
	if issuedAt.After(now.Add(time.Duration(e.cfg.Period) * time.Second)) {
		return false
	}
	if e.cfg.MaxAge > 0 && now.Sub(issuedAt) > e.cfg.MaxAge {
		return false
	}

	ok, err := totp.ValidateCustom(code, base32.StdEncoding.EncodeToString(raw), issuedAt, e.opts)
	return err == nil && ok
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
