package services

import (
	"errors"

	"chat-workspace-service/pkg/response"

	"gorm.io/gorm"
)

// storeError maps an unexpected storage fault to the 500-class error. Callers
// that care about missing rows must check gorm.ErrRecordNotFound first.
func storeError(err error) *response.Error {
	return response.WrapError(response.KindInternal, err)
}

// notFoundOr maps a lookup failure to the given kind when the row is absent,
// and to the generic server error otherwise.
func notFoundOr(kind response.Kind, err error) *response.Error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewError(kind)
	}
	return storeError(err)
}
