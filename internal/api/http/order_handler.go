package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"furnirent-backend/internal/domain"
	"furnirent-backend/internal/service"
)

type OrderHandler struct {
	orderSvc service.OrderService
}

func NewOrderHandler(orderSvc service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

func orderIDFrom(w http.ResponseWriter, r *http.Request) (int32, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["orderID"], 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return 0, false
	}
	return int32(id), true
}

func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateOrderInput
	if !decodeBody(w, r, &input) {
		return
	}

	order, err := h.orderSvc.CreateOrder(r.Context(), actorFrom(r), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFrom(w, r)
	if !ok {
		return
	}
	order, err := h.orderSvc.GetOrder(r.Context(), actorFrom(r), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type listOrdersResponse struct {
	Orders []domain.RentalOrder `json:"orders"`
	Total  int32                `json:"total"`
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	orders, total, err := h.orderSvc.ListOrders(r.Context(), actorFrom(r), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listOrdersResponse{Orders: orders, Total: total})
}

type changeStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *OrderHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFrom(w, r)
	if !ok {
		return
	}
	var req changeStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	order, err := h.orderSvc.ChangeStatus(r.Context(), actorFrom(r), orderID, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFrom(w, r)
	if !ok {
		return
	}
	order, err := h.orderSvc.CancelOrder(r.Context(), actorFrom(r), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFrom(w, r)
	if !ok {
		return
	}
	if err := h.orderSvc.DeleteOrder(r.Context(), actorFrom(r), orderID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
