package http

import (
	"net/http"

	"furnirent-backend/internal/service"
)

type TransportHandler struct {
	transportSvc service.TransportService
}

func NewTransportHandler(transportSvc service.TransportService) *TransportHandler {
	return &TransportHandler{transportSvc: transportSvc}
}

type proposeFeeRequest struct {
	FeeCents int64 `json:"fee_cents"`
}

func (h *TransportHandler) Propose(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFrom(w, r)
	if !ok {
		return
	}
	var req proposeFeeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	order, err := h.transportSvc.ProposeFee(r.Context(), actorFrom(r), orderID, req.FeeCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *TransportHandler) Accept(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFrom(w, r)
	if !ok {
		return
	}
	order, err := h.transportSvc.AcceptFee(r.Context(), actorFrom(r), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *TransportHandler) Reject(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFrom(w, r)
	if !ok {
		return
	}
	order, err := h.transportSvc.RejectFee(r.Context(), actorFrom(r), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
