package adapt

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// TextCodeStructure is the go-errors text code attached to structure
// failures.
const TextCodeStructure = "STRUCTURE_NO_HEADING"

// StructureError reports a block sequence that cannot anchor a course: it is
// empty or holds no heading at all.
type StructureError struct {
	Reason string
	Blocks int
}

func (e *StructureError) Error() string {
	if e == nil {
		return "adapt: structure error"
	}
	return "adapt: " + e.Reason
}

func newStructureError(reason string, blocks int) error {
	cause := &StructureError{Reason: reason, Blocks: blocks}
	return goerrors.Wrap(cause, goerrors.CategoryValidation, "no heading to anchor the course").
		WithTextCode(TextCodeStructure)
}

// IsStructureError reports whether err carries a StructureError.
func IsStructureError(err error) bool {
	var target *StructureError
	return errors.As(err, &target)
}
