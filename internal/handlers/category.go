package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/plata-app/plata/internal/models"
	"github.com/plata-app/plata/internal/services"
)

type CategoryHandler struct {
	service services.CategoryService
}

func NewCategoryHandler(service services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// HandleCategories handles collection-level operations for categories.
// @Summary List or create categories
// @Description List the system set plus the user's own categories, or create a custom one
// @Tags categories
// @Accept json
// @Produce json
// @Param user_id query string true "User ID"
// @Param type query string false "expense or income"
// @Success 200 {array} models.Category
// @Failure 409 {object} errorResponse
// @Router /categories [get]
// @Router /categories [post]
func (h *CategoryHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case "GET":
		h.listCategories(w, r)
	case "POST":
		h.createCategory(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleCategory handles item-level operations for a category.
// @Summary Update or delete a category
// @Description System categories are read-only and reject both operations
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} models.Category
// @Failure 422 {object} errorResponse
// @Router /categories/{id} [put]
// @Router /categories/{id} [delete]
func (h *CategoryHandler) HandleCategory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "Category ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case "PUT":
		h.updateCategory(w, r, id)
	case "DELETE":
		h.deleteCategory(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	categoryType := models.CategoryType(r.URL.Query().Get("type"))

	categories, err := h.service.ListCategories(r.Context(), userID, categoryType)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(categories)
}

func (h *CategoryHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := h.service.CreateCategory(r.Context(), &category); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) updateCategory(w http.ResponseWriter, r *http.Request, id string) {
	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	category.ID = id

	if err := h.service.UpdateCategory(r.Context(), &category); err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(category)
}

func (h *CategoryHandler) deleteCategory(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
