package usecase

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/crypto/bcrypt"
)

// 거래 참조 번호 문자 집합
const referenceAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// TokenGenerator 세션 토큰 생성 함수
type TokenGenerator func() (string, error)

// NanoIDTokens URL 안전 문자로 length 길이 토큰을 만듭니다
func NanoIDTokens(length int) TokenGenerator {
	return func() (string, error) {
		return gonanoid.New(length)
	}
}

// NewReference 거래 로그 참조 번호 생성
func NewReference() string {
	ref, err := gonanoid.Generate(referenceAlphabet, 12)
	if err != nil {
		return ""
	}
	return ref
}

// HashPassword는 비밀번호를 해싱하고 솔트를 반환합니다.
func HashPassword(password string, cost int) (hashedPassword string, salt string, err error) {
	saltBytes := make([]byte, 16)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", "", err
	}
	salt = base64.StdEncoding.EncodeToString(saltBytes)

	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password+salt), cost)
	if err != nil {
		return "", "", err
	}

	return string(hash), salt, nil
}

// dayBounds now 가 속한 날의 [시작, 다음 날 시작) 을 loc 기준으로 계산합니다
func dayBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
