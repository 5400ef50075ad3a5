package errors

// 공통 에러 코드 정의
const (
	ErrInternal        = "INTERNAL"
	ErrNotFound        = "NOT_FOUND"
	ErrInvalidArgument = "INVALID_ARGUMENT"
	ErrUnauthenticated = "UNAUTHENTICATED"
	ErrUnauthorized    = "UNAUTHORIZED"
	ErrConflict        = "CONFLICT"
	ErrTimeout         = "TIMEOUT"
	ErrNotImplemented  = "NOT_IMPLEMENTED"

	// 인증 흐름 전용 코드
	ErrAuthFailed   = "AUTH_FAILED"
	ErrInvalidOTP   = "INVALID_OTP"
	ErrMissingToken = "MISSING_TOKEN"
)

// 응답 봉투(envelope)에 실리는 점 표기 상태 코드
const (
	EnvelopeSuccess         = "100.000.000"
	EnvelopeMissingToken    = "888.888.001"
	EnvelopeUnauthenticated = "888.888.002"
	EnvelopeForbidden       = "888.888.003"
	EnvelopeAuthFailed      = "888.888.004"
	EnvelopeInvalidOTP      = "888.888.005"
	EnvelopeGateFailure     = "888.888.888"
	EnvelopeValidation      = "999.999.001"
	EnvelopeNotFound        = "999.999.004"
	EnvelopeConflict        = "999.999.009"
	EnvelopeException       = "999.999.999"
)
