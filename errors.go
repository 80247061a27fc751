package ndsprite

import "fmt"

// ErrorKind classifies why a subject failed.
type ErrorKind int

const (
	// InputReadError means a source image was missing or could not be
	// decoded.
	InputReadError ErrorKind = iota + 1
	// EncodeError means an output could not be encoded. It indicates a bug
	// rather than bad input.
	EncodeError
	// WriteError means an output file could not be written.
	WriteError
)

func (k ErrorKind) String() string {
	switch k {
	case InputReadError:
		return "input read error"
	case EncodeError:
		return "encode error"
	case WriteError:
		return "write error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// SubjectError is returned when a subject could not be converted.
type SubjectError struct {
	Subject string
	Kind    ErrorKind
	Err     error
}

func (e *SubjectError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Subject, e.Kind, e.Err)
}

func (e *SubjectError) Unwrap() error {
	return e.Err
}
