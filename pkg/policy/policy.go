// Package policy holds the allow/deny decisions shared by every service.
package policy

import (
	"Recipe-Website/domain"
	"Recipe-Website/entities"

	"github.com/google/uuid"
)

// Authorize allows admins unconditionally. Other callers must hold
// requiredRole and, when ownerID is set, own the resource.
func Authorize(identity domain.Identity, ownerID *uuid.UUID, requiredRole string) error {
	if identity.IsAnonymous() {
		return domain.ErrUnauthorized
	}
	if identity.IsAdmin() {
		return nil
	}
	if requiredRole == domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if ownerID != nil && !identity.Owns(*ownerID) {
		return domain.ErrForbidden
	}
	return nil
}

// CanView reports whether the caller may read a recipe: live recipes are
// public, anything else only for its creator or an admin.
func CanView(identity domain.Identity, recipe *entities.Recipe) bool {
	if recipe.Status.IsApproved() {
		return true
	}
	return identity.IsAdmin() || identity.Owns(recipe.CreatedByUserID)
}
