// Package booking wraps the purchase-request and payment endpoints. Request
// status is owned entirely by the remote service; the client only reads it and
// advances it through the API.
package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/onepay-ir/onepay-client/catalog"
	"github.com/onepay-ir/onepay-client/gateway"
	"github.com/pkg/errors"
)

// RequestStatus is the lifecycle state of a purchase request.
type RequestStatus string

const (
	StatusDraft          RequestStatus = "draft"
	StatusSubmitted      RequestStatus = "submitted"
	StatusPendingPayment RequestStatus = "pending_payment"
	StatusPaid           RequestStatus = "paid"
	StatusRejected       RequestStatus = "rejected"
	StatusCancelled      RequestStatus = "cancelled"
)

// Terminal reports whether the status admits no further submission.
func (s RequestStatus) Terminal() bool {
	return s == StatusPaid || s == StatusRejected || s == StatusCancelled
}

// PurchaseRequest is the server-tracked record linking a user to a unit
// reservation attempt.
type PurchaseRequest struct {
	ID           int64         `json:"id"`
	UnitID       int64         `json:"unit_id"`
	UserID       int64         `json:"user_id"`
	Status       RequestStatus `json:"status"`
	TrackingCode string        `json:"tracking_code"`
	Note         string        `json:"note"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Unit         catalog.Unit  `json:"unit"`
}

// Payment is a payment record attached to a purchase request.
type Payment struct {
	ID         int64      `json:"id"`
	RequestID  int64      `json:"request_id"`
	Amount     int64      `json:"amount"`
	Gateway    string     `json:"gateway"`
	Authority  string     `json:"authority"`
	Status     string     `json:"status"`
	RefID      string     `json:"ref_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
}

// PaymentInit is the one-shot artifact returned by payment initiation; the
// payment URL is consumed immediately to redirect the browsing context.
type PaymentInit struct {
	Payment    Payment `json:"payment"`
	PaymentURL string  `json:"payment_url"`
}

// Service calls the request and payment endpoints through the shared gateway.
type Service struct {
	api *gateway.Client
}

// New creates a booking Service.
func New(api *gateway.Client) *Service {
	return &Service{api: api}
}

type createRequestBody struct {
	UnitID int64  `json:"unit_id"`
	Note   string `json:"note,omitempty"`
}

type initiatePaymentBody struct {
	RequestID int64  `json:"request_id"`
	Gateway   string `json:"gateway,omitempty"`
}

// CreateRequest asks the service to open a purchase request for a unit. The
// service is the sole authority on whether the unit is reservable.
func (s *Service) CreateRequest(ctx context.Context, token string, unitID int64, note string) (*PurchaseRequest, error) {
	var req PurchaseRequest
	if err := s.api.Post(ctx, "/requests", createRequestBody{UnitID: unitID, Note: note}, token, &req); err != nil {
		return nil, errors.Wrapf(err, "[Service.CreateRequest] unit %d", unitID)
	}
	return &req, nil
}

// SubmitRequest confirms a draft request.
func (s *Service) SubmitRequest(ctx context.Context, token string, requestID int64) (*PurchaseRequest, error) {
	var req PurchaseRequest
	if err := s.api.Post(ctx, fmt.Sprintf("/requests/%d/submit", requestID), nil, token, &req); err != nil {
		return nil, errors.Wrapf(err, "[Service.SubmitRequest] request %d", requestID)
	}
	return &req, nil
}

// MyRequests lists the caller's purchase requests, newest first.
func (s *Service) MyRequests(ctx context.Context, token string) ([]PurchaseRequest, error) {
	var reqs []PurchaseRequest
	if err := s.api.Get(ctx, "/requests/my", token, &reqs); err != nil {
		return nil, errors.Wrap(err, "[Service.MyRequests] /requests/my")
	}
	return reqs, nil
}

// InitiatePayment starts a payment for a submitted request through the named
// payment gateway and returns the redirect target.
func (s *Service) InitiatePayment(ctx context.Context, token string, requestID int64, gatewayID string) (*PaymentInit, error) {
	var init PaymentInit
	body := initiatePaymentBody{RequestID: requestID, Gateway: gatewayID}
	if err := s.api.Post(ctx, "/payments/initiate", body, token, &init); err != nil {
		return nil, errors.Wrapf(err, "[Service.InitiatePayment] request %d", requestID)
	}
	return &init, nil
}
