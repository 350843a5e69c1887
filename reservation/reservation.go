// Package reservation drives the multi-step workflow that turns a unit
// selection into a redirect to an external payment gateway.
//
// The workflow is modelled as an explicit step-indexed Flow value rather than
// being derived from control flow, so the step a failed attempt reached is
// always observable to the caller.
package reservation

import (
	"context"

	"github.com/onepay-ir/onepay-client/booking"
)

// Step marks how far a reservation flow has progressed. Steps advance strictly
// in order: Started -> Created -> Submitted -> PaymentInitiated -> Redirected.
type Step string

const (
	StepStarted          Step = "started"
	StepCreated          Step = "created"
	StepSubmitted        Step = "submitted"
	StepPaymentInitiated Step = "payment_initiated"
	StepRedirected       Step = "redirected"
)

// Flow is the record of one reservation attempt. On failure it carries the
// last completed step and whatever the server had committed by then; the
// client performs no compensation.
type Flow struct {
	UnitID            int64
	Step              Step
	RedirectedToLogin bool
	Request           *booking.PurchaseRequest
	Payment           *booking.PaymentInit
	RedirectURL       string
}

// Booking is the slice of the booking service the orchestrator depends on.
type Booking interface {
	CreateRequest(ctx context.Context, token string, unitID int64, note string) (*booking.PurchaseRequest, error)
	SubmitRequest(ctx context.Context, token string, requestID int64) (*booking.PurchaseRequest, error)
	InitiatePayment(ctx context.Context, token string, requestID int64, gatewayID string) (*booking.PaymentInit, error)
}

// Navigator transitions the browsing context. ToPayment is single-shot: the
// orchestrator awaits nothing after issuing it.
type Navigator interface {
	ToLogin()
	ToPayment(url string)
}
