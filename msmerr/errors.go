// Package msmerr defines the sentinel error values for the msm engine's
// error taxonomy (spec.md §7). LengthMismatch is the only fault a caller
// can trigger from valid-looking inputs; it lives here because every
// orchestrator variant checks it at the same entry point. WorkerFault is
// combine.WorkerPanic instead, since it only ever arises at a parallel
// combiner's join point. OverflowWindowOutOfRange is not an error at all:
// per spec it is handled defensively and silently inside the bucket
// reducer (see bucket.sumPoints / sumSignedPoints), so it never surfaces
// as a value anywhere.
package msmerr

import "errors"

// ErrLengthMismatch is returned when len(points) != len(scalars).
var ErrLengthMismatch = errors.New("msm: points and scalars must have the same length")
