package devserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/onepay-ir/onepay-client/booking"
	"github.com/onepay-ir/onepay-client/catalog"
)

const minDepositAmount = 10_000_000

type initiatePaymentPayload struct {
	RequestID int64  `json:"request_id"`
	Gateway   string `json:"gateway"`
}

func newAuthority() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:20]
}

func (s *Server) paymentURL(r *http.Request, authority string) string {
	base := s.baseURL
	if base == "" {
		base = "http://" + r.Host
	}
	return fmt.Sprintf("%s/api/v1/payments/mock-gateway/%s", base, authority)
}

func (s *Server) handleInitiatePayment(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)

	var payload initiatePaymentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if payload.Gateway == "" {
		payload.Gateway = "mock"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	req, exists := s.requests[payload.RequestID]
	if !exists || req.UserID != u.ID {
		writeDetail(w, http.StatusNotFound, "Request not found")
		return
	}
	if req.Status != booking.StatusSubmitted && req.Status != booking.StatusPendingPayment {
		writeDetail(w, http.StatusConflict, "Request status is not payable")
		return
	}

	// Initiation is idempotent: an in-flight payment for the request is
	// reused rather than opening a second one.
	for _, p := range s.payments {
		if p.RequestID == req.ID && p.Status == "initiated" {
			writeJSON(w, http.StatusOK, booking.PaymentInit{
				Payment:    *p,
				PaymentURL: s.paymentURL(r, p.Authority),
			})
			return
		}
	}

	amount := req.Unit.Price / 20 // 5% deposit
	if amount < minDepositAmount {
		amount = minDepositAmount
	}

	payment := &booking.Payment{
		ID:        s.nextPayID,
		RequestID: req.ID,
		Amount:    amount,
		Gateway:   payload.Gateway,
		Authority: newAuthority(),
		Status:    "initiated",
		CreatedAt: s.now().UTC(),
	}
	s.nextPayID++
	s.payments[payment.ID] = payment

	req.Status = booking.StatusPendingPayment
	req.UpdatedAt = s.now().UTC()

	writeJSON(w, http.StatusOK, booking.PaymentInit{
		Payment:    *payment,
		PaymentURL: s.paymentURL(r, payment.Authority),
	})
}

// handleMockGateway stands in for the external payment gateway: a page with
// success and failure callbacks for simulating either outcome.
func (s *Server) handleMockGateway(w http.ResponseWriter, r *http.Request) {
	authority := chi.URLParam(r, "authority")
	okURL := fmt.Sprintf("/api/v1/payments/callback?authority=%s&status=OK", authority)
	failURL := fmt.Sprintf("/api/v1/payments/callback?authority=%s&status=NOK", authority)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<html lang="fa" dir="rtl"><head><title>درگاه پرداخت آزمایشی</title><meta charset="utf-8" /></head>
<body><h1>درگاه پرداخت آزمایشی</h1><p>کد رهگیری درگاه: <b>%s</b></p>
<a href="%s">پرداخت موفق</a> <a href="%s">پرداخت ناموفق</a></body></html>`, authority, okURL, failURL)
}

type callbackResult struct {
	OK            bool   `json:"ok"`
	RequestStatus string `json:"request_status"`
	PaymentStatus string `json:"payment_status"`
	RefID         string `json:"ref_id,omitempty"`
	Message       string `json:"message"`
}

func (s *Server) handlePaymentCallback(w http.ResponseWriter, r *http.Request) {
	authority := r.URL.Query().Get("authority")
	status := strings.ToUpper(r.URL.Query().Get("status"))

	s.mu.Lock()
	defer s.mu.Unlock()

	var payment *booking.Payment
	for _, p := range s.payments {
		if p.Authority == authority {
			payment = p
			break
		}
	}
	if payment == nil {
		writeDetail(w, http.StatusNotFound, "Payment not found")
		return
	}
	req, exists := s.requests[payment.RequestID]
	if !exists {
		writeDetail(w, http.StatusNotFound, "Request not found")
		return
	}
	unit := s.findUnit(req.UnitID)
	if unit == nil {
		writeDetail(w, http.StatusNotFound, "Unit not found")
		return
	}

	if payment.Status == "success" {
		writeJSON(w, http.StatusOK, callbackResult{
			OK:            true,
			RequestStatus: string(req.Status),
			PaymentStatus: payment.Status,
			RefID:         payment.RefID,
			Message:       "پرداخت قبلا تایید شده است",
		})
		return
	}

	now := s.now().UTC()
	if status == "OK" {
		payment.Status = "success"
		payment.RefID = fmt.Sprintf("PAY-%d-%d", payment.ID, now.Unix())
		payment.VerifiedAt = &now
		req.Status = booking.StatusPaid
		req.UpdatedAt = now
		if unit.Status == catalog.UnitAvailable {
			unit.Status = catalog.UnitReserved
		}
	} else {
		payment.Status = "failed"
		req.Status = booking.StatusSubmitted
		req.UpdatedAt = now
	}

	writeJSON(w, http.StatusOK, callbackResult{
		OK:            status == "OK",
		RequestStatus: string(req.Status),
		PaymentStatus: payment.Status,
		RefID:         payment.RefID,
		Message:       "نتیجه پرداخت با موفقیت ثبت شد",
	})
}
