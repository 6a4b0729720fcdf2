package accounts

import "errors"

// Kind classifies an account operation failure.
type Kind int

const (
	KindValidation Kind = iota + 1 // malformed or missing input
	KindConflict                   // email already registered
	KindAuth                       // unknown account or wrong password
	KindStorage                    // durable store read/write/parse failure
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error is the failure value returned by AccountStore operations.
// Message is meant to be shown to the user verbatim.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match against another *Error of the same Kind, so callers can
// write errors.Is(err, accounts.ErrAuth).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Kind sentinels. They carry no message and match any error of their kind.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrConflict   = &Error{Kind: KindConflict}
	ErrAuth       = &Error{Kind: KindAuth}
	ErrStorage    = &Error{Kind: KindStorage}
)

// User-facing messages.
const (
	MsgNameRequired        = "name required"
	MsgInvalidEmail        = "invalid email"
	MsgAvatarRequired      = "avatar required"
	MsgEmailTaken          = "email already registered"
	MsgCredentialsRequired = "email and password required"
	MsgInvalidCredentials  = "invalid email or password"

	MsgPasswordTooShort  = "password must be at least 8 characters long"
	MsgPasswordMixedCase = "password must contain both uppercase and lowercase letters"
	MsgPasswordNoDigit   = "password must contain at least one number"
)

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func storageError(msg string, err error) *Error {
	return &Error{Kind: KindStorage, Message: msg, Err: err}
}

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
