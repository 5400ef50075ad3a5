package middleware

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/labstack/echo/v4"
)

// 파싱된 요청 본문을 보관하는 컨텍스트 키
const payloadKey = "request_payload"

// PayloadValue 요청 데이터에서 key 값을 찾습니다.
// JSON 본문, 폼, 쿼리 순서로 확인하며 본문은 다음 핸들러를 위해 복원됩니다.
func PayloadValue(c echo.Context, key string) string {
	if v, ok := jsonPayload(c)[key]; ok && v != nil {
		switch value := v.(type) {
		case string:
			return strings.TrimSpace(value)
		default:
			return fmt.Sprint(value)
		}
	}

	if isForm(c) {
		if v := c.FormValue(key); v != "" {
			return strings.TrimSpace(v)
		}
	}
	return strings.TrimSpace(c.QueryParam(key))
}

// BearerToken Authorization 헤더의 Bearer 토큰, 없으면 요청 데이터의 token
func BearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "bearer") {
		if token = strings.TrimSpace(token); token != "" {
			return token
		}
	}
	return PayloadValue(c, "token")
}

func jsonPayload(c echo.Context) map[string]interface{} {
	if cached, ok := c.Get(payloadKey).(map[string]interface{}); ok {
		return cached
	}

	payload := map[string]interface{}{}
	req := c.Request()
	if req.Body != nil && strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		body, err := io.ReadAll(req.Body)
		if err == nil && len(body) > 0 {
			req.Body = io.NopCloser(bytes.NewReader(body))
			if err := c.Echo().JSONSerializer.Deserialize(c, &payload); err != nil {
				payload = map[string]interface{}{}
			}
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
	}

	c.Set(payloadKey, payload)
	return payload
}

func isForm(c echo.Context) bool {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(ct, echo.MIMEApplicationForm) || strings.HasPrefix(ct, echo.MIMEMultipartForm)
}
