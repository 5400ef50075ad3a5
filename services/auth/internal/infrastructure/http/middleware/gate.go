package middleware

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/wekeepgrowing/school-backend/pkg/errors"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/domain/entity"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/infrastructure/http/envelope"
	"github.com/wekeepgrowing/school-backend/services/auth/internal/usecase/interfaces"
)

// 컨텍스트 키 상수
const (
	IdentityKey = "identity"
	UserKey     = "user"
)

// Gate 핸들러 앞에서 실행되는 검사 하나. 에러를 반환하면 체인이 멈춥니다.
type Gate struct {
	Name  string
	Check func(c echo.Context) error
}

// Gates 인증, 역할 게이트 생성기
type Gates struct {
	logger  *zap.Logger
	usecase interfaces.GateUseCase
	observe func(gate string, err error)
}

// NewGates 게이트 생성기. observe 는 nil 이어도 됩니다.
func NewGates(logger *zap.Logger, usecase interfaces.GateUseCase, observe func(gate string, err error)) *Gates {
	if observe == nil {
		observe = func(string, error) {}
	}
	return &Gates{logger: logger, usecase: usecase, observe: observe}
}

// Authenticated 토큰으로 Active 세션을 찾고 연장합니다
func (g *Gates) Authenticated() Gate {
	return Gate{
		Name: "authenticated",
		Check: func(c echo.Context) error {
			identity, err := g.usecase.Authenticate(c.Request().Context(), BearerToken(c))
			if err != nil {
				return err
			}
			c.Set(IdentityKey, identity)
			return nil
		},
	}
}

// RequireRole 요청 user_id 의 역할이 allowed 에 있는지 확인합니다. Authenticated 뒤에 둡니다.
func (g *Gates) RequireRole(name string, allowed entity.RoleSet) Gate {
	return Gate{
		Name: name,
		Check: func(c echo.Context) error {
			identity := IdentityFrom(c)
			if identity == nil {
				return apperrors.NewUnauthenticated("not authenticated")
			}
			user, err := g.usecase.AuthorizeRole(c.Request().Context(), identity, PayloadValue(c, "user_id"), allowed)
			if err != nil {
				return err
			}
			c.Set(UserKey, user)
			return nil
		},
	}
}

// Chain 게이트를 순서대로 실행하고, 실패하면 봉투 응답을 쓰고 멈춥니다
func (g *Gates) Chain(gates ...Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for _, gate := range gates {
				err := gate.Check(c)
				g.observe(gate.Name, err)
				if err != nil {
					return envelope.GateFail(c, g.logger.With(zap.String("gate", gate.Name)), err)
				}
			}
			return next(c)
		}
	}
}

// IdentityFrom 인증 게이트가 저장한 세션
func IdentityFrom(c echo.Context) *entity.Identity {
	identity, _ := c.Get(IdentityKey).(*entity.Identity)
	return identity
}

// UserFrom 역할 게이트가 확인한 사용자
func UserFrom(c echo.Context) *entity.User {
	user, _ := c.Get(UserKey).(*entity.User)
	return user
}
