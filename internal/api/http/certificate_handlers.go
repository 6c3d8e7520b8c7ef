package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/examforge/examforge/internal/auth"
	"github.com/examforge/examforge/internal/certificate"
)

// GET /certificates
func MyCertificatesHandler(issuer *certificate.Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		certs, err := issuer.ListMine(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, certs)
	}
}

// GET /certificates/{attemptID} (public verification path: no auth,
// no ownership check).
func PublicCertificateHandler(issuer *certificate.Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cert, err := issuer.Get(r.Context(), chi.URLParam(r, "attemptID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cert)
	}
}
