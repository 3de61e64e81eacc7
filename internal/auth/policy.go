package auth

import (
	"fmt"

	"github.com/jobee/jobee-api/internal/apperror"
	userdomain "github.com/jobee/jobee-api/internal/user/domain"
)

// Policy decisions are pure functions over already-loaded caller and resource
// state; authentication itself happens in the HTTP middleware.

// RequireRole allows the caller when its role is among the allowed set.
func RequireRole(role string, allowed ...string) error {
	for _, a := range allowed {
		if role == a {
			return nil
		}
	}
	return apperror.Forbidden(fmt.Sprintf("Role %s is not allowed to access this resource", role))
}

// CanModify allows the resource owner and any admin.
func CanModify(callerID, callerRole, ownerID string) error {
	if callerID == ownerID || callerRole == userdomain.RoleAdmin {
		return nil
	}
	return apperror.Forbidden("You are not allowed to modify this resource")
}
