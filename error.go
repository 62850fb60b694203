package terminal

import "errors"

// UnsupportedError reports an attribute the active driver has no
// representation for. Layout actions without a driver equivalent degrade to
// no-ops instead; attribute intent is unambiguous but unrepresentable, so
// it surfaces as an error.
type UnsupportedError struct {
	Name string
}

func (e *UnsupportedError) Error() string {
	return "attribute not supported: " + e.Name
}

// IsUnsupported reports whether err is an UnsupportedError.
func IsUnsupported(err error) bool {
	var u *UnsupportedError
	return errors.As(err, &u)
}
