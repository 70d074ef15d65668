package utils

import (
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/hilthontt/chatlobby/internal/infrastructure/json"
)

// WantsJSON reports whether the request body is JSON. JSON callers get JSON
// responses; form posts from the page get redirected back to it.
func WantsJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// ReadInput fills dst from a JSON body, or calls fromForm with the parsed
// form values for a regular form post.
func ReadInput(w http.ResponseWriter, r *http.Request, dst any, fromForm func(get func(string) string)) error {
	if WantsJSON(r) {
		return json.Read(w, r, dst)
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	if err := r.ParseForm(); err != nil {
		return err
	}
	fromForm(r.PostForm.Get)
	return nil
}

// RedirectHome sends the browser back to the lobby page, optionally to an
// anchor on it.
func RedirectHome(w http.ResponseWriter, r *http.Request, anchor string) {
	target := "/"
	if anchor = strings.TrimPrefix(anchor, "#"); anchor != "" {
		target += "#" + anchor
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RedirectToModal sends the browser back to the page with a dialog open, so
// a rejected submit can be corrected in place.
func RedirectToModal(w http.ResponseWriter, r *http.Request, modal string) {
	http.Redirect(w, r, "/?"+url.Values{"modal": {modal}}.Encode(), http.StatusSeeOther)
}
