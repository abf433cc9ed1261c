// Package resolver walks colon-delimited path expressions through a parsed
// document.
//
// A path such as "servers:0:name" is split on ':' into segments that are
// applied left to right. On an object a segment is a key; on an array it must
// be a non-negative decimal index. Keys that themselves contain ':' cannot be
// addressed.
package resolver

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mcncl/jsonpeek/internal/errors"
	"github.com/mcncl/jsonpeek/internal/models"
)

// Separator delimits path segments.
const Separator = ":"

// SegmentError reports the segment at which resolution stopped.
// Err is one of errors.ErrNotFound, errors.ErrInvalidArrayIndex or
// errors.ErrIndexOutOfBounds.
type SegmentError struct {
	Segment  string
	Position int // zero-based
	Kind     models.Kind
	Err      error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("segment %d (%q) on %s: %v", e.Position+1, e.Segment, e.Kind, e.Err)
}

func (e *SegmentError) Unwrap() error {
	return e.Err
}

// Split breaks a path expression into segments. Empty segments are kept, so
// the empty path is a single empty segment.
func Split(path string) []string {
	return strings.Split(path, Separator)
}

// Resolve returns the value reached by following path from root.
func Resolve(root *models.Value, path string) (*models.Value, error) {
	return Walk(root, Split(path))
}

// Walk applies segments to root in order. The first failing segment ends the
// walk; there is no partial result.
func Walk(root *models.Value, segments []string) (*models.Value, error) {
	current := root
	for pos, seg := range segments {
		next, err := step(current, seg)
		if err != nil {
			return nil, errors.NewResolveError(
				fmt.Sprintf("%q at segment %d", seg, pos+1),
				&SegmentError{Segment: seg, Position: pos, Kind: current.Kind(), Err: err},
			)
		}
		current = next
	}
	return current, nil
}

// step resolves a single segment. Keys are tried on objects only and indexes
// on arrays only; a numeric-looking key on an object is still just a key.
func step(current *models.Value, seg string) (*models.Value, error) {
	if current.IsObject() {
		if v, ok := current.Get(seg); ok {
			return v, nil
		}
		return nil, errors.ErrNotFound
	}
	if !current.IsArray() {
		return nil, errors.ErrNotFound
	}

	idx, err := parseIndex(seg)
	if err != nil {
		return nil, err
	}
	if idx >= uint64(current.Len()) {
		return nil, errors.ErrIndexOutOfBounds
	}
	return current.Index(int(idx)), nil
}

// parseIndex accepts ASCII digits only: no sign, no whitespace, no empty string.
// A digit string too large for uint64 is still an index, just out of bounds.
func parseIndex(seg string) (uint64, error) {
	if seg == "" {
		return 0, errors.ErrInvalidArrayIndex
	}
	for i := 0; i < len(seg); i++ {
		if seg[i] < '0' || seg[i] > '9' {
			return 0, errors.ErrInvalidArrayIndex
		}
	}
	idx, err := strconv.ParseUint(seg, 10, 64)
	if err != nil {
		if stderrors.Is(err, strconv.ErrRange) {
			return 0, errors.ErrIndexOutOfBounds
		}
		return 0, errors.ErrInvalidArrayIndex
	}
	return idx, nil
}
