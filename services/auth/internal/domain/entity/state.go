package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StateName 상태 테이블에 저장되는 라이프사이클 상태 이름
type StateName string

const (
	StateActive            StateName = "Active"
	StateInactive          StateName = "Inactive"
	StateDeleted           StateName = "Deleted"
	StateExpired           StateName = "Expired"
	StateActivationPending StateName = "ActivationPending"
	StateCompleted         StateName = "Completed"
	StateFailed            StateName = "Failed"
	StateSent              StateName = "Sent"
	StateIssued            StateName = "Issued"
	StateIdle              StateName = "Idle"
	StateReturned          StateName = "Returned"
)

// AllStates 시스템이 사용하는 상태 이름 전체 (닫힌 집합)
var AllStates = []StateName{
	StateActive,
	StateInactive,
	StateDeleted,
	StateExpired,
	StateActivationPending,
	StateCompleted,
	StateFailed,
	StateSent,
	StateIssued,
	StateIdle,
	StateReturned,
}

// Valid 알려진 상태 이름인지 확인
func (n StateName) Valid() bool {
	for _, s := range AllStates {
		if s == n {
			return true
		}
	}
	return false
}

// State 상태 레지스트리의 한 행
type State struct {
	ID          uuid.UUID
	Name        StateName
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ErrInvalidTransition 허용되지 않은 상태 전이
var ErrInvalidTransition = errors.New("허용되지 않은 상태 전이")

// Identity 상태 전이 표. Expired 는 종료 상태입니다.
var identityTransitions = map[StateName][]StateName{
	StateActivationPending: {StateActive, StateExpired},
	StateActive:            {StateActive, StateExpired},
}

// CanTransitionIdentity Identity 가 from 에서 to 로 갈 수 있는지 확인
func CanTransitionIdentity(from, to StateName) bool {
	for _, next := range identityTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func transitionError(from, to StateName) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
