// Package envelope 모든 HTTP 응답을 {code, message, data} 봉투로 씁니다.
package envelope

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/wekeepgrowing/school-backend/pkg/errors"
)

// 내부 에러 원인은 응답에 싣지 않습니다
const internalMessage = "unexpected error"

// Response 응답 봉투
type Response struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OK 성공 응답
func OK(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, Response{
		Code:    apperrors.EnvelopeSuccess,
		Message: message,
		Data:    data,
	})
}

// Fail 에러를 로그로 남기고 코드에 맞는 봉투를 씁니다
func Fail(c echo.Context, logger *zap.Logger, err error) error {
	return write(c, logger, err, "")
}

// GateFail 게이트 실패 응답. 내부 에러는 게이트 실패 코드로 씁니다.
func GateFail(c echo.Context, logger *zap.Logger, err error) error {
	override := ""
	if apperrors.CodeOf(err) == apperrors.ErrInternal {
		override = apperrors.EnvelopeGateFailure
	}
	return write(c, logger, err, override)
}

// ErrorHandler 라우팅 실패나 처리되지 않은 에러도 봉투로 응답합니다
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if werr := Fail(c, logger, err); werr != nil {
			logger.Error("에러 응답 실패", zap.Error(werr))
		}
	}
}

func write(c echo.Context, logger *zap.Logger, err error, envelopeCode string) error {
	appErr := normalize(err)
	apperrors.LogError(logger, err, "요청 처리 실패",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Request().URL.Path),
	)

	if envelopeCode == "" {
		envelopeCode = apperrors.ToEnvelopeCode(appErr)
	}
	message := appErr.Message()
	if appErr.Code() == apperrors.ErrInternal {
		message = internalMessage
	}

	return c.JSON(apperrors.ToHTTPStatus(appErr.Code()), Response{
		Code:    envelopeCode,
		Message: message,
	})
}

func normalize(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if apperrors.As(apperrors.FromHTTPError(err), &appErr) {
		return appErr
	}
	return apperrors.NewInternal(internalMessage, err)
}
