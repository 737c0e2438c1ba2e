package activityscan

import (
	"errors"

	"github.com/gabapcia/validatorwatch/internal/pkg/validator"
)

var (
	// ErrInvalidStartBlock is returned for a negative start block. No chain access happens.
	ErrInvalidStartBlock = errors.New("startBlock must be a non-negative integer")

	// ErrInvalidRequest wraps validation failures of the optional tuning parameters.
	ErrInvalidRequest = errors.New("invalid scan request")

	// ErrChainUnavailable is returned when the node cannot be reached or the
	// validator set or chain head cannot be resolved.
	ErrChainUnavailable = errors.New("chain unavailable")

	// ErrKeyOwnerNotCached is returned by KeyOwnerCache implementations on a miss.
	ErrKeyOwnerNotCached = errors.New("key owner not cached")
)

// IsClientError reports whether err was caused by the caller's input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidStartBlock) ||
		errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, validator.ErrValidationFailed)
}
