package errors

// CodePair는 프레임워크 간 코드 매핑을 위한 구조체입니다
type CodePair struct {
	HTTPStatus int
	GRPCCode   int
	Envelope   string
}

var codeMapping = map[string]CodePair{
	ErrInternal:        {500, 13, EnvelopeException},
	ErrNotFound:        {404, 5, EnvelopeNotFound},
	ErrInvalidArgument: {400, 3, EnvelopeValidation},
	ErrUnauthenticated: {401, 16, EnvelopeUnauthenticated},
	ErrUnauthorized:    {403, 7, EnvelopeForbidden},
	ErrConflict:        {409, 6, EnvelopeConflict},
	ErrTimeout:         {504, 4, EnvelopeException},
	ErrNotImplemented:  {501, 12, EnvelopeException},
	ErrAuthFailed:      {401, 16, EnvelopeAuthFailed},
	ErrInvalidOTP:      {401, 16, EnvelopeInvalidOTP},
	ErrMissingToken:    {401, 16, EnvelopeMissingToken},
}

// GetCodeMapping은 특정 에러 코드에 대한 HTTP 및 gRPC 코드 매핑을 반환합니다
func GetCodeMapping(code string) (int, int) {
	if pair, ok := codeMapping[code]; ok {
		return pair.HTTPStatus, pair.GRPCCode
	}
	return 500, 13
}

// ToEnvelopeCode는 에러를 응답 봉투의 상태 코드로 변환합니다.
// AppError가 아닌 에러는 모두 일반 예외 코드가 됩니다.
func ToEnvelopeCode(err error) string {
	if err == nil {
		return EnvelopeSuccess
	}
	if pair, ok := codeMapping[CodeOf(err)]; ok {
		return pair.Envelope
	}
	return EnvelopeException
}
