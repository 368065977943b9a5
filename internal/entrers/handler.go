package entrers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

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
	r.With(h.rbac.Require(rbac.View(rbac.ResEntrers))).Get("/", h.List)
	r.With(h.rbac.Require(rbac.Create(rbac.ResEntrers))).Post("/", h.Create)
	r.With(h.rbac.Require(rbac.Edit(rbac.ResEntrers))).Post("/{numero}/edit", h.Update)
	r.With(h.rbac.Require(rbac.Delete(rbac.ResEntrers))).Post("/{id}/delete", h.Delete)
}

// MountAPIRoutes exposes the form-composition lookups: the live BL duplicate
// check and the whole-group reload used by the edit form.
func (h *Handler) MountAPIRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.View(rbac.ResEntrers))).Get("/check-bl-exists/{numero}", h.CheckNumero)
	r.With(h.rbac.Require(rbac.View(rbac.ResEntrers))).Get("/bl-details/{numero}", h.Details)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list entrers", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, i18n.MsgStorageFailure)
		return
	}
	httpx.JSON(w, http.StatusOK, groups)
}

func (h *Handler) CheckNumero(w http.ResponseWriter, r *http.Request) {
	exists, err := h.service.NumeroExists(r.Context(), chi.URLParam(r, "numero"))
	if err != nil {
		h.logger.Error("check bl number", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, i18n.MsgStorageFailure)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	group, err := h.service.Details(r.Context(), chi.URLParam(r, "numero"))
	if errors.Is(err, shared.ErrNotFound) {
		httpx.Error(w, http.StatusNotFound, i18n.MsgNotFound)
		return
	}
	if err != nil {
		h.logger.Error("bl details", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, i18n.MsgStorageFailure)
		return
	}
	httpx.JSON(w, http.StatusOK, group)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	n, err := h.service.Create(r.Context(), fromForm(r))
	if err != nil {
		h.fail(w, r, err, "create entrers")
		return
	}
	shared.RedirectWithFlash(w, r, "/entrers", "success", i18n.EntreesCreees(n))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	n, err := h.service.Update(r.Context(), chi.URLParam(r, "numero"), fromForm(r))
	if err != nil {
		h.fail(w, r, err, "update entrers")
		return
	}
	shared.RedirectWithFlash(w, r, "/entrers", "success", i18n.EntreesModifiees(n))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	n, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "delete entrers")
		return
	}
	shared.RedirectWithFlash(w, r, "/entrers", "success", i18n.EntreesSupprimees(n))
}

// fromForm decodes the header fields plus the parallel line arrays
// (produit_id[], ref[], prix_achat[], quantite[], shortage[], offert[]).
func fromForm(r *http.Request) BonLivraisonInput {
	in := BonLivraisonInput{Numero: r.PostFormValue("numero")}
	in.TransporteurID, _ = strconv.ParseInt(r.PostFormValue("transporteur_id"), 10, 64)
	in.LoadDate, _ = time.Parse("2006-01-02", r.PostFormValue("load_date"))
	if raw := r.PostFormValue("unload_date"); raw != "" {
		if d, err := time.Parse("2006-01-02", raw); err == nil {
			in.UnloadDate = &d
		}
	}

	ids := r.PostForm["produit_id[]"]
	refs := r.PostForm["ref[]"]
	prices := r.PostForm["prix_achat[]"]
	qtys := r.PostForm["quantite[]"]
	shortages := r.PostForm["shortage[]"]
	offerts := r.PostForm["offert[]"]
	for i := range ids {
		var l LigneInput
		l.ProduitID, _ = strconv.ParseInt(ids[i], 10, 64)
		if i < len(refs) {
			l.ProduitRef = refs[i]
		}
		if i < len(prices) {
			l.PrixAchat, _ = strconv.ParseFloat(prices[i], 64)
		}
		if i < len(qtys) {
			l.Quantite, _ = strconv.Atoi(qtys[i])
		}
		if i < len(shortages) && shortages[i] != "" {
			if n, err := strconv.Atoi(shortages[i]); err == nil {
				l.Shortage = &n
			}
		}
		if i < len(offerts) {
			l.Offert = offerts[i] == "1"
		}
		in.Lignes = append(in.Lignes, l)
	}
	return in
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
	h.logger.Error(op, slog.Any("error", err))
	shared.RedirectWithFlash(w, r, "/entrers", "error", i18n.MsgStorageFailure)
}
