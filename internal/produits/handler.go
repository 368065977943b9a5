package produits

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
	r.With(h.rbac.Require(rbac.View(rbac.ResProduits))).Get("/", h.List)
	r.With(h.rbac.Require(rbac.Create(rbac.ResProduits))).Post("/", h.Create)
	r.With(h.rbac.Require(rbac.Edit(rbac.ResProduits))).Post("/{id}/edit", h.Update)
	r.With(h.rbac.Require(rbac.Delete(rbac.ResProduits))).Post("/{id}/delete", h.Delete)
}

// MountAPIRoutes exposes the purchase-form helper lookups.
func (h *Handler) MountAPIRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.View(rbac.ResProduits))).Get("/product-details/{id}", h.Details)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list produits", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, i18n.MsgStorageFailure)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Error(w, http.StatusNotFound, i18n.MsgNotFound)
		return
	}
	details, err := h.service.Details(r.Context(), id)
	if errors.Is(err, shared.ErrNotFound) {
		httpx.Error(w, http.StatusNotFound, i18n.MsgNotFound)
		return
	}
	if err != nil {
		h.logger.Error("product details", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, i18n.MsgStorageFailure)
		return
	}
	httpx.JSON(w, http.StatusOK, details)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	_, err := h.service.Create(r.Context(), fromForm(r))
	if err != nil {
		h.fail(w, r, err, "create produit")
		return
	}
	shared.RedirectWithFlash(w, r, "/products", "success", "Produit créé avec succès")
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
	if err := h.service.Update(r.Context(), id, fromForm(r)); err != nil {
		h.fail(w, r, err, "update produit")
		return
	}
	shared.RedirectWithFlash(w, r, "/products", "success", "Produit modifié avec succès")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, "delete produit")
		return
	}
	shared.RedirectWithFlash(w, r, "/products", "success", "Produit supprimé avec succès")
}

func fromForm(r *http.Request) Produit {
	marqueID, _ := strconv.ParseInt(r.PostFormValue("marque_id"), 10, 64)
	categorieID, _ := strconv.ParseInt(r.PostFormValue("categorie_id"), 10, 64)
	prixAchatColis, _ := strconv.ParseFloat(r.PostFormValue("prix_achat_colis"), 64)
	prixAchatUnite, _ := strconv.ParseFloat(r.PostFormValue("prix_achat_unite"), 64)
	prixVenteColis, _ := strconv.ParseFloat(r.PostFormValue("prix_vente_colis"), 64)
	prixVenteUnite, _ := strconv.ParseFloat(r.PostFormValue("prix_vente_unite"), 64)
	weight, _ := strconv.ParseFloat(r.PostFormValue("weight"), 64)
	unitsPerCase, _ := strconv.Atoi(r.PostFormValue("units_per_case"))
	return Produit{
		Ref:            r.PostFormValue("ref"),
		Label:          r.PostFormValue("label"),
		MarqueID:       marqueID,
		CategorieID:    categorieID,
		PrixAchatColis: prixAchatColis,
		PrixAchatUnite: prixAchatUnite,
		PrixVenteColis: prixVenteColis,
		PrixVenteUnite: prixVenteUnite,
		Weight:         weight,
		UnitsPerCase:   unitsPerCase,
		IsActive:       r.PostFormValue("is_active") != "0",
		Note:           r.PostFormValue("note"),
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
		shared.RedirectWithFlash(w, r, "/products", "error", i18n.MsgDuplicate)
		return
	}
	if errors.Is(err, shared.ErrInUse) {
		shared.RedirectWithFlash(w, r, "/products", "error", i18n.MsgInUse)
		return
	}
	h.logger.Error(op, slog.Any("error", err))
	shared.RedirectWithFlash(w, r, "/products", "error", i18n.MsgStorageFailure)
}
