package storage

import "errors"

// Sentinel errors returned by Store implementations. Anything else coming out
// of a Store is a wrapped driver or I/O failure.
var (
	// ErrNotFound signals that a singular lookup matched no row.
	ErrNotFound = errors.New("not found")

	// ErrCategoryInUse signals a refused category deletion because at least
	// one debt still references it.
	ErrCategoryInUse = errors.New("category has referencing debts")

	// ErrOverpayment signals a payment (or principal edit) that would drive a
	// debt's remaining balance below zero.
	ErrOverpayment = errors.New("payment exceeds remaining balance")
)
