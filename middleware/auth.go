// middleware/auth.go
package middleware

import (
	"context"
	"log/slog"
	"strings"

	"esports-registration/models"
	"esports-registration/services"

	"github.com/gofiber/fiber/v2"
)

const adminLocalsKey = "admin"

// Authenticator resolves a bearer token to an administrator account.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.AdminAccount, error)
}

// AdminAuth rejects requests without a valid session token and stores the
// resolved account in the request locals. Failures are returned as errors so
// the app error handler renders them.
func AdminAuth(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return services.ErrTokenMissing
		}

		acct, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			slog.Debug("admin auth rejected", "path", c.Path(), "err", err)
			return err
		}

		c.Locals(adminLocalsKey, acct)
		return c.Next()
	}
}

// CurrentAdmin returns the account stored by AdminAuth.
func CurrentAdmin(c *fiber.Ctx) (*models.AdminAccount, bool) {
	acct, ok := c.Locals(adminLocalsKey).(*models.AdminAccount)
	return acct, ok && acct != nil
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
