package errors

import (
	"errors"
	"fmt"
)

// 표준 라이브러리 함수 재노출
var (
	New    = errors.New
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// Error는 기본 에러 인터페이스를 확장합니다
type Error interface {
	error
	Code() string
	Unwrap() error
}

// AppError는 코드와 사용자 메시지를 함께 가지는 애플리케이션 에러입니다
type AppError struct {
	code    string
	message string
	err     error
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

func (e *AppError) Code() string {
	return e.code
}

// Message는 내부 원인을 제외한 메시지만 반환합니다
func (e *AppError) Message() string {
	return e.message
}

func (e *AppError) Unwrap() error {
	return e.err
}

// Is는 같은 코드의 AppError를 동일한 에러로 취급합니다
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.message == "" && t.err == nil && t.code == e.code
}

// NewAppError는 새 애플리케이션 에러를 생성합니다
func NewAppError(code string, message string, err error) *AppError {
	return &AppError{
		code:    code,
		message: message,
		err:     err,
	}
}

// Wrap은 기존 에러를 래핑합니다
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	// 기존 AppError인 경우 코드를 유지합니다
	var appErr *AppError
	if As(err, &appErr) {
		return NewAppError(appErr.Code(), message, err)
	}

	return NewAppError(ErrInternal, message, err)
}

// CodeOf는 에러 체인에서 가장 바깥 AppError의 코드를 반환합니다
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.Code()
	}
	return ErrInternal
}

// HasCode는 에러가 주어진 코드를 가지는지 확인합니다
func HasCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// 코드 비교용 센티넬 (errors.Is 에 사용)
var (
	Internal        = &AppError{code: ErrInternal}
	NotFound        = &AppError{code: ErrNotFound}
	InvalidArgument = &AppError{code: ErrInvalidArgument}
	Unauthenticated = &AppError{code: ErrUnauthenticated}
	Unauthorized    = &AppError{code: ErrUnauthorized}
	Conflict        = &AppError{code: ErrConflict}
	AuthFailed      = &AppError{code: ErrAuthFailed}
	InvalidOTP      = &AppError{code: ErrInvalidOTP}
	MissingToken    = &AppError{code: ErrMissingToken}
)

func NewNotFound(message string) *AppError {
	return NewAppError(ErrNotFound, message, nil)
}

func NewInvalidArgument(message string) *AppError {
	return NewAppError(ErrInvalidArgument, message, nil)
}

func NewUnauthenticated(message string) *AppError {
	return NewAppError(ErrUnauthenticated, message, nil)
}

func NewUnauthorized(message string) *AppError {
	return NewAppError(ErrUnauthorized, message, nil)
}

func NewConflict(message string) *AppError {
	return NewAppError(ErrConflict, message, nil)
}

func NewInternal(message string, err error) *AppError {
	return NewAppError(ErrInternal, message, err)
}
