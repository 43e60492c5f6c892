package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/swiftpos/backend/internal/usecase"
	"github.com/swiftpos/backend/pkg/e"
	"github.com/swiftpos/backend/pkg/logger"
)

type SaleHandler struct {
	store   usecase.StoreUC
	invoice usecase.InvoiceUC
	logger  logger.Logger
}

func NewSaleHandler(store usecase.StoreUC, invoice usecase.InvoiceUC, logger logger.Logger) *SaleHandler {
	return &SaleHandler{store: store, invoice: invoice, logger: logger}
}

type recordSaleRequest struct {
	SoldItems   []SoldItemPayload `json:"soldItems"`
	Subtotal    float64           `json:"subtotal"`
	Tax         float64           `json:"tax"`
	TotalAmount float64           `json:"totalAmount"`
}

// listSales
//
//	@Summary	Список продаж, новые — первыми
//	@Tags		sales
//	@Produce	json
//	@Success	200	{array}		SaleResponse
//	@Failure	503	{object}	ErrorResponse
//	@Router		/api/sales [get]
func (h *SaleHandler) listSales(w http.ResponseWriter, r *http.Request) {
	if !h.store.Ready() {
		WriteError(w, e.ErrStoreNotReady)
		return
	}

	WriteSuccess(w, http.StatusOK, toSaleResponses(h.store.Sales()))
}

// recordSale
//
//	@Summary		Фиксация продажи
//	@Description	Списывает остатки по позициям и добавляет продажу в начало списка
//	@Tags			sales
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	map[string]string
//	@Failure		400	{object}	ErrorResponse
//	@Router			/api/sales [post]
func (h *SaleHandler) recordSale(w http.ResponseWriter, r *http.Request) {
	if !h.store.Ready() {
		WriteError(w, e.ErrStoreNotReady)
		return
	}

	var req recordSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	if len(req.SoldItems) == 0 {
		WriteError(w, e.ErrNoSoldItems)
		return
	}
	for _, item := range req.SoldItems {
		if item.Quantity <= 0 {
			WriteError(w, e.ErrInvalidQuantity)
			return
		}
		if item.Price < 0 {
			WriteError(w, e.ErrInvalidPrice)
			return
		}
	}

	if err := verifyTotals(req.Subtotal, req.Tax, req.TotalAmount); err != nil {
		WriteError(w, err)
		return
	}

	// Как и экран POS: сначала списание остатков по каждой позиции,
	// затем фиксация самой продажи.
	for _, item := range req.SoldItems {
		h.store.AdjustStock(r.Context(), item.ProductID, -item.Quantity)
	}

	id, err := h.store.RecordSale(r.Context(),
		usecase.NewRecordSaleReq(toSoldItems(req.SoldItems), req.Subtotal, req.Tax, req.TotalAmount))
	if err != nil {
		h.logger.Warnf("recordSale: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]string{"id": id})
}

// getSale
//
//	@Summary		Продажа по идентификатору
//	@Description	Промах повторяется ограниченное число раз (гонка с гидратацией)
//	@Tags			sales
//	@Produce		json
//	@Param			id	path		string	true	"ID продажи"
//	@Success		200	{object}	SaleResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse	"Продажа без позиций"
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/sales/{id} [get]
func (h *SaleHandler) getSale(w http.ResponseWriter, r *http.Request) {
	sale, err := h.invoice.GetInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toSaleResponse(sale))
}
