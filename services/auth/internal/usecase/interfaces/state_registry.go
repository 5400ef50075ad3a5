package interfaces

import (
	"context"

	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
)

// StateRegistry 이름으로 상태 행을 찾는 읽기 캐시 레지스트리
type StateRegistry interface {
	// Warm 모든 상태를 미리 만들고 캐시에 올립니다
	Warm(ctx context.Context) error

	// Resolve 이름으로 상태를 찾고 없으면 생성합니다.
	// 알 수 없는 이름이거나 저장소 오류면 ErrStateNotFound 를 감싼 에러를 반환합니다.
	Resolve(ctx context.Context, name entity.StateName) (*entity.State, error)
}
