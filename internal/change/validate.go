package change

import (
	"errors"
	"fmt"

	"github.com/bethropolis/tidemark/internal/types"
)

// ErrMalformedDelta marks a delta that breaks the widget contract: missing
// line lists, a reversed range, or a removed-line count that does not match
// the range it claims to cover.
var ErrMalformedDelta = errors.New("malformed delta")

// Validate checks delta against the widget contract. Origins the classifier
// does not handle are only checked for shape, never rejected.
func Validate(delta types.RawDelta) error {
	if len(delta.Inserted) == 0 {
		return fmt.Errorf("%w: no inserted lines (want at least one, possibly empty)", ErrMalformedDelta)
	}
	if len(delta.Removed) == 0 {
		return fmt.Errorf("%w: no removed lines (want at least one, possibly empty)", ErrMalformedDelta)
	}
	if delta.To.Before(delta.From) {
		return fmt.Errorf("%w: range %v-%v is reversed", ErrMalformedDelta, delta.From, delta.To)
	}
	if delta.From.Line < 0 || delta.From.Col < 0 {
		return fmt.Errorf("%w: negative position %v", ErrMalformedDelta, delta.From)
	}

	if !isInputFamily(delta.Origin) && delta.Origin != types.OriginDelete {
		return nil
	}

	span := delta.To.Line - delta.From.Line + 1
	if len(delta.Removed) != span {
		return fmt.Errorf("%w: %d removed lines for a %d-line range %v-%v",
			ErrMalformedDelta, len(delta.Removed), span, delta.From, delta.To)
	}
	if !hasText(delta.Inserted) && !hasText(delta.Removed) {
		return fmt.Errorf("%w: %s delta inserts and removes nothing", ErrMalformedDelta, delta.Origin)
	}
	return nil
}
