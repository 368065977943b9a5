package categories

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gestistock/gestistock/internal/i18n"
	"github.com/gestistock/gestistock/internal/platform/httpx"
	"github.com/gestistock/gestistock/internal/rbac"
	"github.com/gestistock/gestistock/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
}

func NewHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: rbac}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.View(rbac.ResCategories))).Get("/", h.List)
	r.With(h.rbac.Require(rbac.Create(rbac.ResCategories))).Post("/", h.Create)
	r.With(h.rbac.Require(rbac.Edit(rbac.ResCategories))).Post("/{id}/edit", h.Update)
	r.With(h.rbac.Require(rbac.Delete(rbac.ResCategories))).Post("/{id}/delete", h.Delete)
}

// List returns every category with its brand name. Filtering by brand is a
// client-side projection over marque_id, not a server contract.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list categories", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, i18n.MsgStorageFailure)
		return
	}
	httpx.JSON(w, http.StatusOK, cats)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	_, err := h.service.Create(r.Context(), h.fromForm(r))
	if err != nil {
		h.fail(w, r, err, "create categorie")
		return
	}
	shared.RedirectWithFlash(w, r, "/categories", "success", "Catégorie créée avec succès")
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if err := h.service.Update(r.Context(), id, h.fromForm(r)); err != nil {
		h.fail(w, r, err, "update categorie")
		return
	}
	shared.RedirectWithFlash(w, r, "/categories", "success", "Catégorie modifiée avec succès")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, "delete categorie")
		return
	}
	shared.RedirectWithFlash(w, r, "/categories", "success", "Catégorie supprimée avec succès")
}

func (h *Handler) fromForm(r *http.Request) Categorie {
	marqueID, _ := strconv.ParseInt(r.PostFormValue("marque_id"), 10, 64)
	return Categorie{
		Name:     r.PostFormValue("name"),
		MarqueID: marqueID,
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, op string) {
	if verr, ok := shared.AsValidationError(err); ok {
		shared.StashFormErrors(w, r, verr.Fields, r.PostForm)
		return
	}
	if errors.Is(err, shared.ErrNotFound) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	if errors.Is(err, shared.ErrDuplicate) {
		shared.RedirectWithFlash(w, r, "/categories", "error", i18n.MsgDuplicate)
		return
	}
	if errors.Is(err, shared.ErrInUse) {
		shared.RedirectWithFlash(w, r, "/categories", "error", i18n.MsgInUse)
		return
	}
	h.logger.Error(op, slog.Any("error", err))
	shared.RedirectWithFlash(w, r, "/categories", "error", i18n.MsgStorageFailure)
}
