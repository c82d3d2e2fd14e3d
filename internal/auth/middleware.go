package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/portfolio/internal/apperr"
)

const claimsKey = "auth.claims"

// Middleware rejects requests without a valid bearer token.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return apperr.NewUnauthorized("No token provided")
			}

			claims, err := a.Verify(token)
			if err != nil {
				return apperr.NewUnauthorizedWrap("Invalid token", err)
			}
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims stored by Middleware.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(claimsKey).(*Claims)
	return claims, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
