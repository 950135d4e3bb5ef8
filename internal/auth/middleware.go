package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/gripe-service/internal/domain"
	"github.com/spec-kit/gripe-service/internal/repository"
	apperrors "github.com/spec-kit/gripe-service/pkg/util/errorutil"
)

const identityKey = "session_identity"

// SessionMiddleware is the gate in front of every protected route. It
// resolves the session cookie to an existing user before any handler runs;
// anything short of that is Unauthenticated, which the transport layer
// translates into a redirect to the login page.
type SessionMiddleware struct {
	sessions   *SessionManager
	users      repository.UserRepository
	cookieName string
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(sessions *SessionManager, users repository.UserRepository, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, users: users, cookieName: cookieName}
}

// Handle enforces authentication for protected routes.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	cookie := c.Cookies(m.cookieName)
	if cookie == "" {
		return apperrors.NewUnauthenticated()
	}

	userID, err := m.sessions.Resolve(c.Context(), cookie)
	if err != nil {
		return apperrors.NewUnauthenticated()
	}

	user, err := m.users.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthenticated()
		}
		return apperrors.MapError(err)
	}

	c.Locals(identityKey, domain.Identity{UserID: user.ID, Email: user.Email})
	return c.Next()
}

// IdentityFromContext retrieves the authenticated identity.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return domain.Identity{}, false
	}
	identity, ok := val.(domain.Identity)
	return identity, ok
}
