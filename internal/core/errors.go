package core

import "errors"

// Sentinel errors for the business rules. Callers branch with errors.Is; the
// services wrap these with the offending values.
var (
	ErrNotFound          = errors.New("record not found")
	ErrUnknownReference  = errors.New("referenced record does not exist")
	ErrInvalidItem       = errors.New("invalid item")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidDate       = errors.New("invalid date")
	ErrEmptyActivities   = errors.New("report activities must not be empty")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrQuoteLocked       = errors.New("quote is approved or rejected and can no longer change")
	ErrQuoteNotApproved  = errors.New("quote is not approved")
)
