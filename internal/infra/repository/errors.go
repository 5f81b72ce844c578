package repository

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/edsg/edsg/internal/domain"
)

// storeErr maps gorm's missing-row error onto the domain taxonomy and
// wraps everything else, so an unreachable store surfaces as an
// infrastructure failure rather than a missing resource.
func storeErr(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFoundError{Resource: resource}
	}
	return errors.Wrap(err, resource+" store")
}
