package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/examforge/examforge/internal/auth"
)

var validate = validator.New()

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"` // optional display name for the profile
}

type profileOut struct {
	Name string `json:"name"`
}

type userOut struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Profile  profileOut `json:"profile"`
}

// POST /auth/register
func RegisterHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			writeError(w, err)
			return
		}

		id := uuid.NewString()
		tx, err := db.BeginTx(r.Context(), nil)
		if err != nil {
			writeError(w, err)
			return
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(r.Context(),
			`INSERT INTO users (id,username,email,password_hash,created_at) VALUES ($1,$2,$3,$4,$5)`,
			id, req.Username, req.Email, string(hash), time.Now().Unix()); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "username taken"})
			return
		}
		if req.Name != "" {
			if _, err := tx.ExecContext(r.Context(),
				`INSERT INTO profiles (user_id,name) VALUES ($1,$2)`, id, req.Name); err != nil {
				writeError(w, err)
				return
			}
		}
		if err := tx.Commit(); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]userOut{"user": {
			ID:       id,
			Username: req.Username,
			Email:    req.Email,
			Profile:  profileOut{Name: req.Name},
		}})
	}
}

// POST /auth/login  { "username": "...", "password": "..." }
func LoginHandler(db *sql.DB, authSvc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		var id, storedHash string
		err := db.QueryRowContext(r.Context(),
			`SELECT id,password_hash FROM users WHERE username=$1`, req.Username).Scan(&id, &storedHash)
		if errors.Is(err, sql.ErrNoRows) ||
			(err == nil && bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password)) != nil) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		if err != nil {
			writeError(w, err)
			return
		}

		tok, err := authSvc.IssueJWT(id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access_token": tok})
	}
}

// GET /me
func MeHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		var out userOut
		err := db.QueryRowContext(r.Context(),
			`SELECT u.id,u.username,u.email,COALESCE(p.name,'')
			 FROM users u LEFT JOIN profiles p ON p.user_id=u.id
			 WHERE u.id=$1`, userID).
			Scan(&out.ID, &out.Username, &out.Email, &out.Profile.Name)
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}
