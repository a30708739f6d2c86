package service

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for service layer
var (
	ErrDelivery      = errors.New("email delivery failed")
	ErrNotConfigured = errors.New("email delivery not configured")
	ErrRender        = errors.New("email render failed")
)

// DeliveryError reports which of the two contact emails failed. It is meant
// for operator logs only and never reaches the submitter.
type DeliveryError struct {
	Business error
	Client   error
}

func (e *DeliveryError) Error() string {
	var parts []string
	if e.Business != nil {
		parts = append(parts, fmt.Sprintf("business notification: %v", e.Business))
	}
	if e.Client != nil {
		parts = append(parts, fmt.Sprintf("client confirmation: %v", e.Client))
	}
	return fmt.Sprintf("%v: %s", ErrDelivery, strings.Join(parts, "; "))
}

// Unwrap exposes ErrDelivery and both underlying causes to errors.Is/As.
func (e *DeliveryError) Unwrap() []error {
	errs := []error{ErrDelivery}
	if e.Business != nil {
		errs = append(errs, e.Business)
	}
	if e.Client != nil {
		errs = append(errs, e.Client)
	}
	return errs
}

// Partial reports whether exactly one of the two emails went out.
func (e *DeliveryError) Partial() bool {
	return (e.Business == nil) != (e.Client == nil)
}
