package adaptor

import (
	"encoding/json"
	"net/http"

	"service-marketplace/internal/dto/request"
	"service-marketplace/internal/usecase"
	"service-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ListCategories handles GET /api/categories (public)
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list categories")
		return
	}

	utils.ResponseSuccess(w, "success", categories)
}

// SearchProviders handles GET /api/providers (public)
func (h *CatalogHandler) SearchProviders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.SearchProvidersRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		CategorySlug: query.Get("category"),
		City:         query.Get("city"),
		Query:        query.Get("q"),
	}

	providers, err := h.service.SearchProviders(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "search providers")
		return
	}

	utils.ResponseSuccess(w, "success", providers)
}

// GetProvider handles GET /api/providers/{id} (public)
func (h *CatalogHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	providerID, ok := urlUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid provider ID", nil)
		return
	}

	provider, err := h.service.GetProvider(r.Context(), providerID)
	if err != nil {
		handleServiceError(w, h.log, err, "get provider")
		return
	}

	utils.ResponseSuccess(w, "success", provider)
}

// CreateService handles POST /api/services (protected, provider)
func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	service, err := h.service.CreateService(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create service")
		return
	}

	utils.ResponseCreated(w, "success", service)
}

// UpdateService handles PUT /api/services/{id} (protected, provider)
func (h *CatalogHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	serviceID, ok := urlUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid service ID", nil)
		return
	}

	var req request.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	service, err := h.service.UpdateService(r.Context(), userID, serviceID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update service")
		return
	}

	utils.ResponseSuccess(w, "success", service)
}

// DeactivateService handles DELETE /api/services/{id} (protected, provider)
func (h *CatalogHandler) DeactivateService(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	serviceID, ok := urlUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid service ID", nil)
		return
	}

	if err := h.service.DeactivateService(r.Context(), userID, serviceID); err != nil {
		handleServiceError(w, h.log, err, "deactivate service")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ListProviderServices handles GET /api/providers/{id}/services (public)
func (h *CatalogHandler) ListProviderServices(w http.ResponseWriter, r *http.Request) {
	providerID, ok := urlUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid provider ID", nil)
		return
	}

	services, err := h.service.ListProviderServices(r.Context(), providerID)
	if err != nil {
		handleServiceError(w, h.log, err, "list provider services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}
