package auth

import (
	"github.com/gardenhq/gardenapi/internal/core/domain"
)

// Authorization predicates are pure functions over the caller's freshly
// loaded user row and the target resource. They carry no state and must
// be re-evaluated on every request - ownership and admin status can
// change between calls. A nil caller always fails closed.

// =============================================================================
// Admin Authorization
// =============================================================================

// CanAdminister checks if the caller has admin privileges.
func CanAdminister(caller *domain.User) bool {
	return caller != nil && caller.IsAdmin
}

// =============================================================================
// Garden Authorization
// =============================================================================

// CanManageGarden checks if the caller can mutate a garden or its
// placements and comments. Only the garden's owner or an admin can.
func CanManageGarden(caller *domain.User, garden domain.Garden) bool {
	if caller == nil {
		return false
	}
	return caller.ID == garden.UserID || caller.IsAdmin
}

// =============================================================================
// Account Authorization
// =============================================================================

// CanManageAccount checks if the caller can update or delete the target
// user account. Only the account owner or an admin can.
func CanManageAccount(caller *domain.User, targetUserID int) bool {
	if caller == nil {
		return false
	}
	return caller.ID == targetUserID || caller.IsAdmin
}

// CanSetAdminFlag checks if the caller can change an account's admin
// flag. Strictly admin-only: an account owner cannot elevate themselves.
func CanSetAdminFlag(caller *domain.User) bool {
	return CanAdminister(caller)
}

// =============================================================================
// Comment Authorization
// =============================================================================

// CanManageComment checks if the caller can update or delete a comment.
// Only the comment's author or an admin can.
func CanManageComment(caller *domain.User, comment domain.Comment) bool {
	if caller == nil {
		return false
	}
	return caller.ID == comment.UserID || caller.IsAdmin
}
