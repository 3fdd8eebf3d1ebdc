package middleware

import (
	"Recipe-Website/domain"
	"Recipe-Website/internal/api/presenters"
	"Recipe-Website/pkg/jwt"
	"Recipe-Website/pkg/policy"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const identityKey = "identity"

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		AdminMiddleware() fiber.Handler
		Sessions() *session.Store
	}

	middleware struct {
		sessions *session.Store
	}
)

func NewMiddleware(sessions *session.Store) Middleware {
	return &middleware{sessions: sessions}
}

func NewSessionStore() *session.Store {
	return session.New(session.Config{
		Expiration:     120 * time.Minute,
		KeyLookup:      "cookie:recipe_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

func (m *middleware) Sessions() *session.Store {
	return m.sessions
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	})
}

// AuthMiddleware requires a valid bearer token or an authenticated session.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := m.resolve(c, jwtService)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}
		if identity.IsAnonymous() {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}
		setIdentity(c, identity)
		return c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller when credentials are present. A
// token that fails to validate continues as anonymous.
func (m *middleware) OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := m.resolve(c, jwtService)
		if err != nil {
			identity = domain.Identity{}
		}
		setIdentity(c, identity)
		return c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware.
func (m *middleware) AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := policy.Authorize(IdentityFrom(c), nil, domain.RoleAdmin); err != nil {
			return presenters.FailedResponse(c, domain.MesaageUserNotAllowed, err)
		}
		return c.Next()
	}
}

func (m *middleware) resolve(c *fiber.Ctx, jwtService jwt.JWTService) (domain.Identity, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header != "" {
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return domain.Identity{}, domain.ErrTokenInvalid
		}
		return jwtService.GetIdentityByToken(strings.TrimSpace(token))
	}

	if m.sessions == nil {
		return domain.Identity{}, nil
	}
	return SessionIdentity(c, m.sessions)
}

func setIdentity(c *fiber.Ctx, identity domain.Identity) {
	c.Locals(identityKey, identity)
	if !identity.IsAnonymous() {
		c.Locals("user_id", identity.UserID.String())
		c.Locals("role", identity.Role)
	}
}

// IdentityFrom returns the caller resolved by the auth middleware, or the
// anonymous identity.
func IdentityFrom(c *fiber.Ctx) domain.Identity {
	identity, _ := c.Locals(identityKey).(domain.Identity)
	return identity
}
