package commerciaux

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
	r.With(h.rbac.Require(rbac.View(rbac.ResCommerciaux))).Get("/", h.List)
	r.With(h.rbac.Require(rbac.Create(rbac.ResCommerciaux))).Post("/", h.Create)
	r.With(h.rbac.Require(rbac.Edit(rbac.ResCommerciaux))).Post("/{id}/edit", h.Update)
	r.With(h.rbac.Require(rbac.Delete(rbac.ResCommerciaux))).Post("/{id}/delete", h.Delete)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list commerciaux", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, i18n.MsgStorageFailure)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	_, err := h.service.Create(r.Context(), fromForm(r))
	if err != nil {
		h.fail(w, r, err, "create commercial")
		return
	}
	shared.RedirectWithFlash(w, r, "/commerciaux", "success", "Commercial créé avec succès")
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
		h.fail(w, r, err, "update commercial")
		return
	}
	shared.RedirectWithFlash(w, r, "/commerciaux", "success", "Commercial modifié avec succès")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, "delete commercial")
		return
	}
	shared.RedirectWithFlash(w, r, "/commerciaux", "success", "Commercial supprimé avec succès")
}

func fromForm(r *http.Request) Commercial {
	return Commercial{
		Code:     r.PostFormValue("code"),
		FullName: r.PostFormValue("full_name"),
		Phone:    r.PostFormValue("phone"),
		IsActive: r.PostFormValue("is_active") != "0",
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
		shared.RedirectWithFlash(w, r, "/commerciaux", "error", i18n.MsgDuplicate)
		return
	}
	if errors.Is(err, shared.ErrInUse) {
		shared.RedirectWithFlash(w, r, "/commerciaux", "error", i18n.MsgInUse)
		return
	}
	h.logger.Error(op, slog.Any("error", err))
	shared.RedirectWithFlash(w, r, "/commerciaux", "error", i18n.MsgStorageFailure)
}
