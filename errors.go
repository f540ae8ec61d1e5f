package moneywise

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/moneywise/date"
)

// Sentinel errors, use with errors.Is.
var (
	// ErrUnresolvedReference is returned when an id or name reference loaded
	// from storage does not match any live item of the dataset.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrNoAttributeSet is returned when an optional attribute is modified on
	// an item that was built without an editable attribute set (view items).
	ErrNoAttributeSet = errors.New("item has no editable attribute set")

	// ErrRateNotFound is returned when a conversion needs an exchange rate that
	// does not exist on or before the requested date.
	ErrRateNotFound = errors.New("exchange rate not found")

	// ErrCommitBlocked is returned when committing an item in error.
	ErrCommitBlocked = errors.New("item has validation errors")

	// ErrWrongInfoType is returned when an attribute value does not match
	// the data type of its class.
	ErrWrongInfoType = errors.New("wrong attribute type")
)

// UnresolvedReferenceError details a reference that could not be resolved
// while linking a freshly loaded dataset.
type UnresolvedReferenceError struct {
	Kind  ItemKind // kind of the item holding the reference
	ID    int      // id of the item holding the reference
	Field FieldID  // field holding the reference
	Ref   string   // the reference as stored (id or name)
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s %d: %s: unresolved reference %q", e.Kind, e.ID, e.Field, e.Ref)
}

func (e *UnresolvedReferenceError) Unwrap() error { return ErrUnresolvedReference }

// RateLookupError details a missing pivot rate.
type RateLookupError struct {
	From, To string
	On       date.Date
}

func (e *RateLookupError) Error() string {
	return fmt.Sprintf("no %s to %s rate on or before %s", e.From, e.To, e.On)
}

func (e *RateLookupError) Unwrap() error { return ErrRateNotFound }

// ValidationError is a field scoped validation failure attached to an item.
type ValidationError struct {
	Field   FieldID
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrorList accumulates the validation errors of a single item.
//
// Its zero value is an empty list.
type ErrorList []ValidationError

// Add appends a validation error for the field.
func (l *ErrorList) Add(field FieldID, message string) {
	*l = append(*l, ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any errors.
func (l ErrorList) HasErrors() bool { return len(l) > 0 }

// ForField returns the errors attached to field.
func (l ErrorList) ForField(field FieldID) []ValidationError {
	var errs []ValidationError
	for _, e := range l {
		if e.Field == field {
			errs = append(errs, e)
		}
	}
	return errs
}

// HasError reports whether field carries the message.
func (l ErrorList) HasError(field FieldID, message string) bool {
	for _, e := range l {
		if e.Field == field && e.Message == message {
			return true
		}
	}
	return false
}

// Err returns nil for an empty list, or all errors joined.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errors.Join(errs...)
}

func (l ErrorList) String() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validation messages shared by several items.
const (
	msgMissing       = "must be set"
	msgTooLong       = "is too long"
	msgDuplicate     = "must be unique"
	msgDisabled      = "is disabled"
	msgNotAllowed    = "is not allowed"
	msgPositive      = "must be positive"
	msgZeroAmount    = "needs zero amount"
	msgClosed        = "is closed"
	msgNotCloseable  = "cannot be closed"
	msgInvalid       = "is invalid"
	msgDeleted       = "is deleted"
	msgBadParent     = "parent has the wrong class"
	msgSingular      = "only one instance allowed"
	msgNestedParent  = "parent must not have a parent"
	msgParentDate    = "must match parent date"
	msgIllegalEvent  = "illegal combination of category and accounts"
	msgNotPivot      = "must be the default currency"
	msgSameCurrency  = "from and to must differ"
	msgExclusive     = "is mutually exclusive with auto expense"
	msgCurrencyFree  = "must not be set for auto expense cash"
	msgParentClosed  = "parent is closed"
	msgBadSeparator  = "must not contain the separator"
	msgChildrenOpen  = "has open children"
	msgOwnerMismatch = "does not apply to this item"
	msgParentName    = "must start with the parent name"
)

// IsContractError returns true if err denotes a caller side misuse of the
// model rather than a data problem.
func IsContractError(err error) bool {
	return errors.Is(err, ErrNoAttributeSet) ||
		errors.Is(err, ErrWrongInfoType)
}
