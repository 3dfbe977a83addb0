package identity

import (
	"strings"

	"styledecor/models"
	"styledecor/utils"
)

const bannedMsg = "account is banned"

func RequireActive(caller models.Caller) error {
	if caller.IsBanned() {
		return utils.NewForbidden(bannedMsg)
	}
	return nil
}

func RequireAdmin(caller models.Caller) error {
	if err := RequireActive(caller); err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return utils.NewForbidden("admin access required")
	}
	return nil
}

func RequireDecoratorOrAdmin(caller models.Caller) error {
	if err := RequireActive(caller); err != nil {
		return err
	}
	if !caller.IsAdmin() && !caller.IsDecorator() {
		return utils.NewForbidden("decorator access required")
	}
	return nil
}

// RequireOwnerOrAdmin passes when caller is an admin or owns the resource identified by ownerEmail.
func RequireOwnerOrAdmin(caller models.Caller, ownerEmail string) error {
	if err := RequireActive(caller); err != nil {
		return err
	}
	if caller.IsAdmin() || SameEmail(caller.Email, ownerEmail) {
		return nil
	}
	return utils.NewForbidden("access denied")
}

// NormalizeEmail is the canonical form used for store lookups and cache keys.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SameEmail compares addresses case-insensitively.
func SameEmail(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}
