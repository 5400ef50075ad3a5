package usecase

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(now time.Time) (*TOTPEngine, *fakeClock) {
	clock := &fakeClock{now: now}
	engine := NewTOTPEngine(TOTPConfig{Period: 300, Digits: 6, Skew: 1, MaxAge: 24 * time.Hour}).(*TOTPEngine)
	engine.now = clock.Now
	return engine, clock
}

func TestTOTPEngine_GenerateThenVerify(t *testing.T) {
	engine, clock := newTestEngine(baseTime)

	code, secret, step, err := engine.Generate(baseTime)
	require.NoError(t, err)

	assert.Len(t, code, 6)
	assert.Equal(t, baseTime.Unix(), step)
	raw, err := base64.StdEncoding.DecodeString(secret)
	require.NoError(t, err)
	assert.Len(t, raw, totpSecretBytes)

	assert.True(t, engine.Verify(secret, code, step))

	// 검증은 발급 스텝 기준이라 시간이 지나도 같은 코드가 유효합니다
	clock.Advance(6 * time.Hour)
	assert.True(t, engine.Verify(secret, code, step))
}

func TestTOTPEngine_GenerateUsesFreshSecrets(t *testing.T) {
	engine, _ := newTestEngine(baseTime)

	_, first, _, err := engine.Generate(baseTime)
	require.NoError(t, err)
	_, second, _, err := engine.Generate(baseTime)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTOTPEngine_VerifyRejects(t *testing.T) {
	engine, clock := newTestEngine(baseTime)
	code, secret, step, err := engine.Generate(baseTime)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		code   string
		step   int64
		setup  func()
	}{
		{name: "wrong code", secret: secret, code: wrongCode(code), step: step},
		{name: "short code", secret: secret, code: code[:5], step: step},
		{name: "non numeric", secret: secret, code: "12a456", step: step},
		{name: "malformed secret", secret: "%%%", code: code, step: step},
		{name: "empty secret", secret: "", code: code, step: step},
		{name: "future step", secret: secret, code: code, step: baseTime.Add(time.Hour).Unix()},
		{name: "older than max age", secret: secret, code: code, step: step, setup: func() { clock.Advance(25 * time.Hour) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}
			assert.False(t, engine.Verify(tt.secret, tt.code, tt.step))
		})
	}
}
