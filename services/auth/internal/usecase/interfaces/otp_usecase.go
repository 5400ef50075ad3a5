package interfaces

import "time"

// TOTPEngine 일회용 비밀번호 생성과 검증
type TOTPEngine interface {
	// Generate 새 비밀키(base64)와 코드, 발급 시각(unix 초)을 만듭니다
	Generate(now time.Time) (code string, secret string, timeStep int64, err error)

	// Verify 발급 시각 기준으로 코드를 검증합니다. 입력이 잘못되면 false.
	Verify(secret, code string, timeStep int64) bool
}
