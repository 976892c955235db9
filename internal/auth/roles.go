package auth

import "github.com/pooya1361/makerspace/internal/models"

// roleClosure maps each role to its downward closure in the hierarchy
// NORMAL < INSTRUCTOR < ADMIN < SUPERADMIN. Computed once; access-control
// checks only understand flat label membership, so the hierarchy is expanded
// here rather than re-derived at every check.
var roleClosure = map[models.UserType][]models.UserType{
	models.UserTypeNormal: {models.UserTypeNormal},
	models.UserTypeInstructor: {
		models.UserTypeInstructor,
		models.UserTypeNormal,
	},
	models.UserTypeAdmin: {
		models.UserTypeAdmin,
		models.UserTypeInstructor,
		models.UserTypeNormal,
	},
	models.UserTypeSuperAdmin: {
		models.UserTypeSuperAdmin,
		models.UserTypeAdmin,
		models.UserTypeInstructor,
		models.UserTypeNormal,
	},
}

// EffectiveRoles returns the complete set of role labels granted to a user
// with the given role: the role itself plus every role below it. Unknown or
// empty roles fail closed to exactly {NORMAL}.
func EffectiveRoles(role models.UserType) []models.UserType {
	if closure, ok := roleClosure[role]; ok {
		out := make([]models.UserType, len(closure))
		copy(out, closure)
		return out
	}
	return []models.UserType{models.UserTypeNormal}
}

// HasRole reports whether the given role's effective set contains required.
func HasRole(role models.UserType, required models.UserType) bool {
	for _, r := range EffectiveRoles(role) {
		if r == required {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the given role's effective set contains any of
// the required labels.
func HasAnyRole(role models.UserType, required ...models.UserType) bool {
	for _, req := range required {
		if HasRole(role, req) {
			return true
		}
	}
	return false
}
