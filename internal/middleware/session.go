package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/goldenhour-reservation/internal/utils"
)

const guestID = "guest"

// Session reads an optional Bearer session token and stores its subject and
// role in the context under "user_id" and "role". Requests without a token,
// or with one that does not verify, continue as the guest identity: the
// token labels requests, it never gates them.
func Session(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("user_id", guestID)
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if raw, ok := strings.CutPrefix(auth, "Bearer "); ok && raw != "" {
				if claims, err := utils.ParseSessionToken(secret, raw); err == nil {
					c.Set("user_id", claims.Subject)
					c.Set("role", claims.Role)
				}
			}
			return next(c)
		}
	}
}

// userID returns the identity stored by Session, or "guest".
func userID(c echo.Context) string {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s
	}
	return guestID
}

// userRole returns the role stored by Session, if any.
func userRole(c echo.Context) string {
	s, _ := c.Get("role").(string)
	return s
}
