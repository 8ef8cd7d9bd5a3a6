package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/adapter/http/middleware"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/catalog/domain"
	"go.uber.org/zap"
)

const (
	msgFetchFailed    = "Failed to fetch products"
	msgStorageFailed  = "Failed to store product images"
	msgInternalError  = middleware.InternalErrorMessage
	msgProductMissing = "Product not found"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type searchResponse struct {
	Success    bool              `json:"success"`
	Products   []*domain.Product `json:"products"`
	Pagination domain.PageResult `json:"pagination"`
}

type productResponse struct {
	Success bool            `json:"success"`
	Product *domain.Product `json:"product"`
}

type categoriesResponse struct {
	Success    bool     `json:"success"`
	Categories []string `json:"categories"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, errorResponse{Success: false, Message: message})
}

// fail maps a usecase error onto the failure envelope. Validation messages are
// passed through; store and storage details are only logged.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		h.logger.Debug("Rejected request", zap.String("op", op), zap.Error(err))
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrProductNotFound):
		h.writeError(w, http.StatusNotFound, msgProductMissing)
	case errors.Is(err, domain.ErrQuery):
		h.logger.Error("Product query failed", zap.String("op", op), zap.String("path", r.URL.Path), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, msgFetchFailed)
	case errors.Is(err, domain.ErrStorage):
		h.logger.Error("Image storage failed", zap.String("op", op), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, msgStorageFailed)
	default:
		h.logger.Error("Request failed", zap.String("op", op), zap.String("path", r.URL.Path), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, msgInternalError)
	}
}
