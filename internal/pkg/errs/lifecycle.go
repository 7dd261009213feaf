package errs

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalTransition   = errors.New("illegal transition")
	ErrOrderNotCancellable = errors.New("order is not cancellable")
	ErrInvalidCoupon       = errors.New("invalid coupon")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrConflict            = errors.New("conflict")
)

// IllegalTransitionError reports a status change outside the legal graph of
// an aggregate. The aggregate state is left unchanged.
type IllegalTransitionError struct {
	Entity string
	From   string
	To     string
	Cause  error
}

func NewIllegalTransitionError(entity, from, to string) *IllegalTransitionError {
	return &IllegalTransitionError{Entity: entity, From: from, To: to}
}

func NewIllegalTransitionErrorWithCause(entity, from, to string, cause error) *IllegalTransitionError {
	return &IllegalTransitionError{Entity: entity, From: from, To: to, Cause: cause}
}

func (e *IllegalTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s %s -> %s", ErrIllegalTransition, e.Entity, e.From, e.To)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// OrderNotCancellableError is an IllegalTransitionError raised when a cancel
// arrives outside of the cancellable window.
type OrderNotCancellableError struct {
	OrderID string
	Status  string
}

func NewOrderNotCancellableError(orderID, status string) *OrderNotCancellableError {
	return &OrderNotCancellableError{OrderID: orderID, Status: status}
}

func (e *OrderNotCancellableError) Error() string {
	return fmt.Sprintf("%s: %s is %s", ErrOrderNotCancellable, e.OrderID, e.Status)
}

func (e *OrderNotCancellableError) Unwrap() error {
	return ErrOrderNotCancellable
}

func (e *OrderNotCancellableError) Is(target error) bool {
	return target == ErrIllegalTransition
}

// InvalidCouponError reports an unknown coupon code.
type InvalidCouponError struct {
	Code string
}

func NewInvalidCouponError(code string) *InvalidCouponError {
	return &InvalidCouponError{Code: code}
}

func (e *InvalidCouponError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidCoupon, sanitize(e.Code))
}

func (e *InvalidCouponError) Unwrap() error {
	return ErrInvalidCoupon
}

// InsufficientStockError reports a quantity above the live stock of a product.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func NewInsufficientStockError(productID string, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{ProductID: productID, Requested: requested, Available: available}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: product %s requested %d, available %d",
		ErrInsufficientStock, sanitize(e.ProductID), e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrValidation
}

// UnauthorizedError reports an actor whose role or identity does not permit
// the requested action.
type UnauthorizedError struct {
	Actor  string
	Action string
}

func NewUnauthorizedError(actor, action string) *UnauthorizedError {
	return &UnauthorizedError{Actor: actor, Action: action}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: %s may not %s", ErrUnauthorized, e.Actor, e.Action)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// ConflictError reports a write that lost an optimistic version race.
type ConflictError struct {
	Entity  string
	ID      string
	Version int64
}

func NewConflictError(entity, id string, version int64) *ConflictError {
	return &ConflictError{Entity: entity, ID: id, Version: version}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s changed after version %d", ErrConflict, e.Entity, e.ID, e.Version)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
