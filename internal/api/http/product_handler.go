package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"furnirent-backend/internal/domain"
	"furnirent-backend/internal/service"
)

type ProductHandler struct {
	productSvc service.ProductService
}

func NewProductHandler(productSvc service.ProductService) *ProductHandler {
	return &ProductHandler{productSvc: productSvc}
}

func (h *ProductHandler) Add(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if !decodeBody(w, r, &product) {
		return
	}

	if err := h.productSvc.AddProduct(r.Context(), actorFrom(r), &product); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["productID"], 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return
	}

	product, err := h.productSvc.GetProduct(r.Context(), int32(id))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

type listProductsResponse struct {
	Products []domain.Product `json:"products"`
	Total    int32            `json:"total"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	products, total, err := h.productSvc.ListProducts(r.Context(), r.URL.Query().Get("category"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listProductsResponse{Products: products, Total: total})
}
