package shared

import (
	"encoding/json"
	"net/http"
	"net/url"
)

const (
	formErrorsKey = "form_errors"
	formOldKey    = "form_old"
)

// StashFormErrors stores field-keyed validation messages and the submitted
// input in the session, then redirects back to the referring form. The next
// page load pops both so the form can re-render with errors and old input,
// mirroring the redirect-back-with-errors contract of the admin UI.
func StashFormErrors(w http.ResponseWriter, r *http.Request, errs map[string]string, old url.Values) {
	if sess := SessionFromContext(r.Context()); sess != nil {
		if data, err := json.Marshal(errs); err == nil {
			sess.Set(formErrorsKey, string(data))
		}
		if old != nil {
			sess.Set(formOldKey, old.Encode())
		}
	}
	back := r.Referer()
	if back == "" {
		back = r.URL.Path
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// PopFormErrors returns and clears any stashed validation state.
func PopFormErrors(sess *Session) (map[string]string, url.Values) {
	if sess == nil {
		return nil, nil
	}
	var errs map[string]string
	if raw := sess.Get(formErrorsKey); raw != "" {
		_ = json.Unmarshal([]byte(raw), &errs)
		sess.Delete(formErrorsKey)
	}
	var old url.Values
	if raw := sess.Get(formOldKey); raw != "" {
		old, _ = url.ParseQuery(raw)
		sess.Delete(formOldKey)
	}
	return errs, old
}

// RedirectWithFlash queues a flash message and redirects.
func RedirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}
