package scene

import (
	"fmt"

	"github.com/vango-dev/scene/internal/errors"
)

// Sentinel errors for errors.Is. Matching is by error code.
var (
	ErrUnsupportedEvent = errors.New("E001")
	ErrUnsupportedChild = errors.New("E002")
	ErrUnknownAttribute = errors.New("E003")
	ErrAlreadyBuilt     = errors.New("E004")
	ErrInvalidAttribute = errors.New("E005")
)

// UnknownAttribute returns the error a kind reports for a key it rejects.
func UnknownAttribute(kind, key string) error {
	return errors.New("E003").WithKind(kind).WithKey(key)
}

// InvalidAttribute returns the error a kind reports for a value it cannot
// decode.
func InvalidAttribute(kind, key, value string, cause error) error {
	return errors.New("E005").
		WithKind(kind).
		WithKey(key).
		WithDetail(fmt.Sprintf("cannot decode %q", value)).
		Wrap(cause)
}

func kindName(e Element) string {
	if named, ok := e.(Named); ok {
		return named.Kind()
	}
	return fmt.Sprintf("%T", e)
}
