package auth

import (
	"github.com/Vinay9897/postpaid-billing-system/internal/models"
	pkgerrors "github.com/Vinay9897/postpaid-billing-system/pkg/errors"
)

// Authorization predicates. Handlers compose these per endpoint; the
// self-service (owner) route family and the back-office (admin) route
// family stay independent, and admins get no bypass on owner routes.

// RequireAuthenticated allows any principal.
func RequireAuthenticated(p *models.Principal) error {
	if p == nil {
		return pkgerrors.ErrUnauthorized
	}
	return nil
}

// RequireRole allows only principals with exactly the given role.
func RequireRole(p *models.Principal, role models.Role) error {
	if p == nil {
		return pkgerrors.ErrUnauthorized
	}
	if p.Role != role {
		return pkgerrors.ErrForbidden
	}
	return nil
}

// RequireOwner allows only the principal whose subject id equals the
// resource owner's id. Roles are irrelevant here.
func RequireOwner(p *models.Principal, ownerID string) error {
	if p == nil {
		return pkgerrors.ErrUnauthorized
	}
	if p.SubjectID != ownerID {
		return pkgerrors.ErrForbidden
	}
	return nil
}
