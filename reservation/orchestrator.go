package reservation

import (
	"context"

	"github.com/onepay-ir/onepay-client/booking"
	"github.com/onepay-ir/onepay-client/session"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DefaultGateway is the payment gateway used when the caller does not override
// it.
const DefaultGateway = "mock"

// Sessions is the slice of the session manager the orchestrator depends on.
type Sessions interface {
	Session() session.Session
}

// Orchestrator runs the reservation workflow: create the purchase request,
// submit it if the service returned it as a draft, initiate payment and hand
// the browsing context to the payment gateway. Every remote step depends on
// the previous result; a failure aborts the remainder and surfaces the raw
// error for classification.
type Orchestrator struct {
	sessions Sessions
	booking  Booking
	nav      Navigator
	gateway  string
}

// Option modifies an Orchestrator instance.
type Option func(*Orchestrator)

// WithGateway overrides the default payment gateway identifier.
func WithGateway(id string) Option {
	return func(o *Orchestrator) {
		o.gateway = id
	}
}

// NewOrchestrator creates an Orchestrator with required dependencies.
func NewOrchestrator(sessions Sessions, bookingSvc Booking, nav Navigator, options ...Option) (*Orchestrator, error) {
	if sessions == nil {
		return nil, errors.New("[NewOrchestrator] session manager is required")
	}
	if bookingSvc == nil {
		return nil, errors.New("[NewOrchestrator] booking service is required")
	}
	if nav == nil {
		return nil, errors.New("[NewOrchestrator] navigator is required")
	}
	o := &Orchestrator{
		sessions: sessions,
		booking:  bookingSvc,
		nav:      nav,
		gateway:  DefaultGateway,
	}
	for _, opt := range options {
		opt(o)
	}
	return o, nil
}

// ReserveOption adjusts a single Reserve invocation.
type ReserveOption func(*reserveParams)

type reserveParams struct {
	note    string
	gateway string
}

// WithNote attaches a note to the created purchase request.
func WithNote(note string) ReserveOption {
	return func(p *reserveParams) {
		p.note = note
	}
}

// WithPaymentGateway overrides the gateway for this invocation only.
func WithPaymentGateway(id string) ReserveOption {
	return func(p *reserveParams) {
		p.gateway = id
	}
}

// Reserve runs the workflow for a unit. Without an authenticated session no
// remote call is made: the navigator is sent to the login entry point and the
// returned Flow marks the short-circuit, with a nil error.
//
// The returned Flow is non-nil even on failure and records the last completed
// step.
func (o *Orchestrator) Reserve(ctx context.Context, unitID int64, options ...ReserveOption) (*Flow, error) {
	params := reserveParams{gateway: o.gateway}
	for _, opt := range options {
		opt(&params)
	}

	flow := &Flow{UnitID: unitID, Step: StepStarted}

	sess := o.sessions.Session()
	if sess.Status != session.StatusAuthenticated {
		flow.RedirectedToLogin = true
		o.nav.ToLogin()
		return flow, nil
	}

	req, err := o.booking.CreateRequest(ctx, sess.Token, unitID, params.note)
	if err != nil {
		return flow, errors.Wrapf(err, "[Orchestrator.Reserve] create request for unit %d", unitID)
	}
	flow.Step = StepCreated
	flow.Request = req

	// The service may return the request already submitted (an existing active
	// request, or a create that skipped the draft stage). Submit exactly when
	// it did not.
	if req.Status != booking.StatusSubmitted {
		req, err = o.booking.SubmitRequest(ctx, sess.Token, req.ID)
		if err != nil {
			return flow, errors.Wrapf(err, "[Orchestrator.Reserve] submit request %d", flow.Request.ID)
		}
		flow.Request = req
	}
	flow.Step = StepSubmitted

	init, err := o.booking.InitiatePayment(ctx, sess.Token, req.ID, params.gateway)
	if err != nil {
		return flow, errors.Wrapf(err, "[Orchestrator.Reserve] initiate payment for request %d", req.ID)
	}
	flow.Step = StepPaymentInitiated
	flow.Payment = init
	flow.RedirectURL = init.PaymentURL

	log.Info().
		Int64("unit_id", unitID).
		Int64("request_id", req.ID).
		Str("tracking_code", req.TrackingCode).
		Msg("reservation ready for payment")

	o.nav.ToPayment(init.PaymentURL)
	flow.Step = StepRedirected
	return flow, nil
}
