package order

import (
	"fmt"
	"time"

	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

// DefaultLockTimeout is the inactivity period after which an advisory lock
// is considered expired and may be released by an external actor.
const DefaultLockTimeout = 30 * time.Minute

// ErrLockInfoIsNotConstructed is returned when attempting to use an improperly
// initialized LockInfo. LockInfo must be created via NewLockInfo.
var ErrLockInfoIsNotConstructed = errs.NewValueIsRequiredError(
	"lock info must be created via NewLockInfo constructor")

// LockInfo is an immutable value object describing an advisory lock on an
// order: who holds it and since when. Modeling the pair as a single optional
// value makes the "both or neither" invariant structural — an order either
// carries a LockInfo or it does not.
//
// The lock is purely advisory: nothing in the aggregate prevents a caller
// from mutating an order without holding it. Cooperating callers acquire it
// through Order.Lock and release it through Order.Unlock.
type LockInfo struct { //nolint:recvcheck //using for validation
	userID   int64
	lockedAt time.Time
	guard    guard.ConstructorGuard
}

// NewLockInfo creates a LockInfo for the given user at the given instant.
// The user identifier must be positive.
func NewLockInfo(userID int64, lockedAt time.Time) (LockInfo, error) {
	if userID <= 0 {
		return LockInfo{}, errs.NewValueIsInvalidErrorWithCause("userId",
			fmt.Errorf("%d is not greater than 0", userID))
	}
	if lockedAt.IsZero() {
		return LockInfo{}, errs.NewValueIsRequiredError("lockedAt")
	}

	return LockInfo{
		userID:   userID,
		lockedAt: lockedAt,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the LockInfo was created via NewLockInfo.
func (l LockInfo) Validate() error {
	return l.guard.Validate(ErrLockInfoIsNotConstructed)
}

// UserID returns the identifier of the user holding the lock.
func (l LockInfo) UserID() int64 {
	return l.userID
}

// LockedAt returns the instant the lock was acquired or last refreshed.
func (l LockInfo) LockedAt() time.Time {
	return l.lockedAt
}

// IsHeldBy reports whether the lock belongs to the given user.
func (l LockInfo) IsHeldBy(userID int64) bool {
	return l.userID == userID
}

// IsExpired reports whether the lock has been inactive longer than the given
// timeout as of the given instant. This is a stateless predicate: nothing in
// the aggregate releases expired locks automatically — an external actor
// must poll and unlock.
func (l LockInfo) IsExpired(asOf time.Time, timeout time.Duration) bool {
	return asOf.Sub(l.lockedAt) > timeout
}
