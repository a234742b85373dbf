// Package repository holds the GORM-backed implementations of the
// persistence interfaces declared in the service package. Every method
// receives the caller's transaction handle; repositories never open their
// own transactions.
package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/OpenDAF/daf/internal/tracking/service"
)

// translateNotFound converts gorm's record-not-found into the service-level
// not-found kind with a readable message; other errors pass through.
func translateNotFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", service.ErrNotFound, fmt.Sprintf(format, args...))
	}
	return err
}
