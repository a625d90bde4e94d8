// Package terraerr defines the stable error taxonomy shared by every stage
// of the pathfinding pipeline. Each kind has a distinct, stable wire name so
// callers across process boundaries can match on it without depending on Go
// error identity.
package terraerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies one of the taxonomy's distinct error categories.
type Kind string

const (
	// KindMapLoad marks an XML parse or I/O failure in the map reader.
	KindMapLoad Kind = "MapLoad"
	// KindDegenerateBounds marks a feature bounding rectangle with zero extent.
	KindDegenerateBounds Kind = "DegenerateBounds"
	// KindInvalidWaypoint marks a waypoint that is out of bounds or impassable.
	KindInvalidWaypoint Kind = "InvalidWaypoint"
	// KindSegmentUnreachable marks a pathfinder that exhausted its open set.
	KindSegmentUnreachable Kind = "SegmentUnreachable"
	// KindCancelled marks cooperative cancellation.
	KindCancelled Kind = "Cancelled"
	// KindBadConfig marks an unparseable obstacle config line.
	KindBadConfig Kind = "BadConfig"
)

// Error is the concrete type returned for every taxonomy member. It wraps an
// optional underlying cause via github.com/pkg/errors so both Kind matching
// (via As) and Cause inspection are available to callers.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

// Unwrap exposes the underlying cause to errors.Is/errors.As/errors.Unwrap.
func (e *Error) Unwrap() error { return e.err }

// Cause implements the github.com/pkg/errors Causer interface.
func (e *Error) Cause() error { return e.err }

// errorKind reports e's Kind. Defined so Is can match kind-bearing errors
// by interface rather than by concrete type: InvalidWaypointErr and
// SegmentUnreachableErr both promote this method from their embedded
// *Error, so Is matches them directly without needing Unwrap to surface
// the embedded *Error (its Unwrap instead surfaces the wrapped cause).
func (e *Error) errorKind() Kind { return e.Kind }

func newErr(kind Kind, msg string, cause error) *Error {
	var err error
	if cause != nil {
		err = errors.WithStack(cause)
	}
	return &Error{Kind: kind, msg: msg, err: err}
}

// MapLoad reports a fatal XML parse or filesystem failure while reading the
// map document.
func MapLoad(path string, cause error) *Error {
	return newErr(KindMapLoad, fmt.Sprintf("failed to load map %q", path), cause)
}

// DegenerateBounds reports a feature bounding rectangle with zero width or
// height, which cannot be normalized to a grid.
func DegenerateBounds(uMin, uMax, vMin, vMax float64) *Error {
	return newErr(KindDegenerateBounds,
		fmt.Sprintf("degenerate bounds u=[%g,%g] v=[%g,%g]", uMin, uMax, vMin, vMax), nil)
}

// InvalidWaypoint reports that waypoint i is out of bounds or impassable.
type InvalidWaypointErr struct {
	*Error
	Index int
}

// InvalidWaypoint builds the InvalidWaypoint(i) error for the i-th waypoint.
func InvalidWaypoint(i int, x, y int) *InvalidWaypointErr {
	return &InvalidWaypointErr{
		Error: newErr(KindInvalidWaypoint, fmt.Sprintf("waypoint %d at (%d,%d) is out of bounds or impassable", i, x, y), nil),
		Index: i,
	}
}

// SegmentUnreachableErr reports that the pathfinder could not connect
// consecutive waypoints i and i+1.
type SegmentUnreachableErr struct {
	*Error
	Index    int
	FromCell int
	ToCell   int
}

// SegmentUnreachable builds the SegmentUnreachable(i, a, b) error for the
// segment joining waypoint i to waypoint i+1.
func SegmentUnreachable(i, a, b int) *SegmentUnreachableErr {
	return &SegmentUnreachableErr{
		Error:    newErr(KindSegmentUnreachable, fmt.Sprintf("segment %d unreachable from cell %d to cell %d", i, a, b), nil),
		Index:    i,
		FromCell: a,
		ToCell:   b,
	}
}

// Cancelled reports that a cooperative cancellation token fired mid-call.
func Cancelled() *Error {
	return newErr(KindCancelled, "operation cancelled", nil)
}

// BadConfig reports an unparseable obstacle config line.
func BadConfig(line int, text string, cause error) *Error {
	return newErr(KindBadConfig, fmt.Sprintf("line %d: %q", line, text), cause)
}

// kindedErr is satisfied by *Error and by every wrapper type (such as
// InvalidWaypointErr) that embeds it.
type kindedErr interface {
	errorKind() Kind
}

// Is reports whether err is (or wraps) a terraerr.Error of kind k.
func Is(err error, k Kind) bool {
	var ke kindedErr
	if errors.As(err, &ke) {
		return ke.errorKind() == k
	}
	return false
}
