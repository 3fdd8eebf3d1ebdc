package middleware

import (
	"Recipe-Website/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

const (
	sessionUserIDKey = "user_id"
	sessionRoleKey   = "role"
)

// StartSession stores the identity in a fresh cookie session.
func StartSession(c *fiber.Ctx, store *session.Store, identity domain.Identity) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(sessionUserIDKey, identity.UserID.String())
	sess.Set(sessionRoleKey, identity.Role)
	return sess.Save()
}

func EndSession(c *fiber.Ctx, store *session.Store) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// SessionIdentity reads the identity from the cookie session. A missing or
// empty session yields the anonymous identity.
func SessionIdentity(c *fiber.Ctx, store *session.Store) (domain.Identity, error) {
	sess, err := store.Get(c)
	if err != nil {
		return domain.Identity{}, err
	}

	rawID, _ := sess.Get(sessionUserIDKey).(string)
	if rawID == "" {
		return domain.Identity{}, nil
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return domain.Identity{}, domain.ErrTokenInvalid
	}
	role, _ := sess.Get(sessionRoleKey).(string)
	return domain.Identity{UserID: id, Role: role}, nil
}
