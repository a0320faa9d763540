package codec

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/broady/tsio/iotsgen/checker"
)

var (
	// ErrUnclassified is matched by every *ClassificationError.
	ErrUnclassified = errors.New("unclassified type")

	// ErrRecursiveType is returned when a type refers back to itself while
	// it is still being emitted.
	ErrRecursiveType = errors.New("recursive type")
)

// ClassificationError reports a type that matched no category.
type ClassificationError struct {
	// Text is the checker's printable form of the type.
	Text string

	Flags checker.TypeFlags

	// Split is Flags decomposed, largest first.
	Split []checker.TypeFlags
}

func newClassificationError(c checker.Checker, t checker.Type) *ClassificationError {
	flags := c.Flags(t)
	return &ClassificationError{
		Text:  c.TypeToString(t),
		Flags: flags,
		Split: flags.Split(),
	}
}

func (e *ClassificationError) Error() string {
	parts := make([]string, len(e.Split))
	for i, f := range e.Split {
		parts[i] = fmt.Sprint(uint32(f))
	}
	return fmt.Sprintf("unknown type %q with type flags %d [%s] (%s)",
		e.Text, uint32(e.Flags), strings.Join(parts, " "), e.Flags)
}

// Is makes errors.Is(err, ErrUnclassified) hold.
func (e *ClassificationError) Is(target error) bool {
	return target == ErrUnclassified
}
