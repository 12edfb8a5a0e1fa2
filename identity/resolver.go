// Package identity resolves opaque player identifiers to display names.
//
// Two interchangeable strategies exist: delegation to the user-identity
// microservice over HTTP, and a direct batched lookup in storage. Both honor
// the same contract: identifiers with no match are simply absent from the
// returned map, and the call as a whole fails only on transport errors.
package identity

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the identity backend could not be reached at all.
// Partial misses are not a failure; they surface as absent map entries.
var ErrUnavailable = errors.New("identity service unavailable")

// Resolver maps a batch of player identifiers to display names. Callers are
// expected to deduplicate ids before calling and to apply their own fallback
// label for ids missing from the result.
type Resolver interface {
	ResolveNames(ctx context.Context, ids []string) (map[string]string, error)
}
