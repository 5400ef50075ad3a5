package repository

import "context"

// Transactor 여러 저장소 호출을 하나의 DB 트랜잭션으로 묶습니다.
// fn 에 전달되는 ctx 를 사용하는 저장소 호출만 트랜잭션에 참여합니다.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
