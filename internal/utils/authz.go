package utils

import (
	"errors"

	"github.com/iliyamo/docutrack/internal/model"
)

// ErrForbidden is returned when an authenticated caller lacks the role an
// operation needs.
var ErrForbidden = errors.New("access denied")

// Authorize checks that claims carry one of the allowed roles. An empty
// allowed list admits any authenticated caller.
func Authorize(claims *Claims, allowed ...model.Role) error {
	if claims == nil {
		return ErrTokenMissing
	}
	if len(allowed) == 0 {
		return nil
	}
	for _, r := range allowed {
		if claims.Role == r {
			return nil
		}
	}
	return ErrForbidden
}
