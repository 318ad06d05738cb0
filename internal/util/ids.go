// internal/util/ids.go
// ID generator for reports and request tracing.

package util

import (
	"github.com/google/uuid"
)

func NewID() string {
	return uuid.New().String()
}
