package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/swiftpos/backend/internal/usecase"
	"github.com/swiftpos/backend/pkg/e"
	"github.com/swiftpos/backend/pkg/logger"
)

type ProductHandler struct {
	store  usecase.StoreUC
	logger logger.Logger
}

func NewProductHandler(store usecase.StoreUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{store: store, logger: logger}
}

type createProductRequest struct {
	ProductCode   string      `json:"productCode"`
	Name          string      `json:"name"`
	Price         json.Number `json:"price"`
	StockQuantity int         `json:"stockQuantity"`
}

type updateProductRequest struct {
	ProductCode   *string      `json:"productCode"`
	Name          *string      `json:"name"`
	Price         *json.Number `json:"price"`
	StockQuantity *int         `json:"stockQuantity"`
}

type adjustStockRequest struct {
	Delta int `json:"delta"`
}

// listProducts
//
//	@Summary		Каталог товаров
//	@Description	Возвращает текущий каталог из хранилища
//	@Tags			products
//	@Produce		json
//	@Success		200	{array}		ProductResponse
//	@Failure		503	{object}	ErrorResponse	"Хранилище еще не гидратировано"
//	@Router			/api/products [get]
func (h *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	if !h.store.Ready() {
		WriteError(w, e.ErrStoreNotReady)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponses(h.store.Products()))
}

// createProduct
//
//	@Summary		Добавление товара
//	@Description	Создает товар; код товара должен быть уникальным
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	map[string]string
//	@Failure		400	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse	"Код товара уже занят"
//	@Router			/api/products [post]
func (h *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	if !h.store.Ready() {
		WriteError(w, e.ErrStoreNotReady)
		return
	}

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.ProductCode = strings.TrimSpace(req.ProductCode)

	if req.Name == "" {
		WriteError(w, e.ErrProductNameRequired)
		return
	}
	if req.ProductCode == "" {
		WriteError(w, e.ErrProductCodeRequired)
		return
	}
	if req.StockQuantity < 0 {
		WriteError(w, e.ErrInvalidQuantity)
		return
	}

	price, err := parsePrice(req.Price.String())
	if err != nil {
		WriteError(w, err)
		return
	}

	id, err := h.store.AddProduct(r.Context(),
		usecase.NewAddProductReq(req.ProductCode, req.Name, price, req.StockQuantity))
	if err != nil {
		h.logger.Warnf("createProduct: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]string{"id": id})
}

// updateProduct
//
//	@Summary	Частичное обновление товара
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		id	path		string	true	"ID товара"
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/products/{id} [patch]
func (h *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	if !h.store.Ready() {
		WriteError(w, e.ErrStoreNotReady)
		return
	}

	id := chi.URLParam(r, "id")
	if _, ok := h.store.ProductByID(id); !ok {
		WriteError(w, e.ErrProductNotFound)
		return
	}

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	update := &usecase.UpdateProductReq{
		ProductCode:   req.ProductCode,
		Name:          req.Name,
		StockQuantity: req.StockQuantity,
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		WriteError(w, e.ErrProductNameRequired)
		return
	}
	if req.ProductCode != nil && strings.TrimSpace(*req.ProductCode) == "" {
		WriteError(w, e.ErrProductCodeRequired)
		return
	}
	if req.StockQuantity != nil && *req.StockQuantity < 0 {
		WriteError(w, e.ErrInvalidQuantity)
		return
	}
	if req.Price != nil {
		price, err := parsePrice(req.Price.String())
		if err != nil {
			WriteError(w, err)
			return
		}
		update.Price = &price
	}

	if err := h.store.UpdateProduct(r.Context(), id, update); err != nil {
		h.logger.Warnf("updateProduct: %s", err.Error())
		WriteError(w, err)
		return
	}

	product, _ := h.store.ProductByID(id)
	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// deleteProduct
//
//	@Summary	Удаление товара
//	@Tags		products
//	@Param		id	path	string	true	"ID товара"
//	@Success	204
//	@Router		/api/products/{id} [delete]
func (h *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if !h.store.Ready() {
		WriteError(w, e.ErrStoreNotReady)
		return
	}

	h.store.DeleteProduct(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// adjustStock
//
//	@Summary		Корректировка остатка
//	@Description	Прибавляет delta к остатку; результат ниже нуля обрезается до нуля
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id	path		string	true	"ID товара"
//	@Success		200	{object}	ProductResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/products/{id}/stock [post]
func (h *ProductHandler) adjustStock(w http.ResponseWriter, r *http.Request) {
	if !h.store.Ready() {
		WriteError(w, e.ErrStoreNotReady)
		return
	}

	id := chi.URLParam(r, "id")
	if _, ok := h.store.ProductByID(id); !ok {
		WriteError(w, e.ErrProductNotFound)
		return
	}

	var req adjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	h.store.AdjustStock(r.Context(), id, req.Delta)

	product, _ := h.store.ProductByID(id)
	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}
