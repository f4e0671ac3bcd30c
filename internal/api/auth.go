package api

import (
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// NewToken mints a bearer token for a verified password. The format is
// base64(password:timestamp) and is what every deployed client expects,
// so it stays even though it is not a signature.
func NewToken(password string) string {
	raw := fmt.Sprintf("%s:%d", password, time.Now().UnixMilli())
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// ValidateToken reports whether the token decodes to the configured
// password. Tokens do not expire.
func ValidateToken(token, password string) bool {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return false
	}
	got, _, _ := strings.Cut(string(decoded), ":")
	return subtle.ConstantTimeCompare([]byte(got), []byte(password)) == 1
}

func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	if s.cfg.AuthPassword == "" {
		writeError(w, http.StatusInternalServerError, "Auth not configured")
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.cfg.AuthPassword)) != 1 {
		writeError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": NewToken(req.Password)})
}

// requireToken rejects requests whose Authorization header is missing
// or does not carry a valid bearer token.
func requireToken(password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")
			if password == "" || !ValidateToken(token, password) {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
