package http

import (
	"net/http"

	"furnirent-backend/internal/domain"
	"furnirent-backend/internal/service"
)

type PaymentHandler struct {
	paymentSvc service.PaymentService
}

func NewPaymentHandler(paymentSvc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

type payInstallmentRequest struct {
	Kind        domain.InstallmentKind `json:"kind"`
	Method      string                 `json:"method"`
	Last4Digits string                 `json:"last4_digits"`
}

func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFrom(w, r)
	if !ok {
		return
	}
	var req payInstallmentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	payment, err := h.paymentSvc.PayInstallment(r.Context(), actorFrom(r), orderID, req.Kind, domain.PaymentMethodDetails{
		Method:      req.Method,
		Last4Digits: req.Last4Digits,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (h *PaymentHandler) ListForOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFrom(w, r)
	if !ok {
		return
	}
	payments, err := h.paymentSvc.ListOrderPayments(r.Context(), actorFrom(r), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	payments, err := h.paymentSvc.ListMyPayments(r.Context(), actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}
