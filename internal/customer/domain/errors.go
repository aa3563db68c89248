package domain

import (
	"errors"
	"fmt"
)

// Kind classifies failures that cross the use-case boundary.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindCustomerAlreadyExists
	KindProductNotFound
	KindProductAlreadyFavorited
	KindStoreFailure
	KindCatalogFailure
)

func (k Kind) String() string {
	switch k {
	case KindCustomerAlreadyExists:
		return "customer_already_exists"
	case KindProductNotFound:
		return "product_not_found"
	case KindProductAlreadyFavorited:
		return "product_already_favorited"
	case KindStoreFailure:
		return "store_failure"
	case KindCatalogFailure:
		return "catalog_failure"
	default:
		return "unknown"
	}
}

// Error is a failure tagged with its Kind. Two Errors match under errors.Is
// when their kinds are equal, so callers compare against the sentinels below.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Business rule violations raised by the use cases.
var (
	ErrCustomerAlreadyExists   = &Error{Kind: KindCustomerAlreadyExists, Message: "customer already exists"}
	ErrProductNotFound         = &Error{Kind: KindProductNotFound, Message: "this product was not found"}
	ErrProductAlreadyFavorited = &Error{Kind: KindProductAlreadyFavorited, Message: "this customer already favorited this product"}
)

// StoreFailure tags a persistence fault. Used by store implementations only.
func StoreFailure(op string, err error) error {
	return &Error{Kind: KindStoreFailure, Message: op, Err: err}
}

// CatalogFailure tags a remote catalog fault. Used by catalog clients only.
func CatalogFailure(op string, err error) error {
	return &Error{Kind: KindCatalogFailure, Message: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
