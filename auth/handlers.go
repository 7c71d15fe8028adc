// HTTP handlers for the auth module.
package auth

import (
	"encoding/json"
	"net/http"

	"github.com/user/recipebook-go/apperror"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session_token"

// Handlers wraps the auth Service to provide HTTP handlers.
type Handlers struct {
	service *Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleAuth serves POST /auth. The payload carries an action field selecting
// register, login, or logout. The original frontend multiplexes all three
// over a single endpoint, so the shape is kept; an unrecognized action is a
// 400 rather than the silent empty body it used to be.
func (h *Handlers) HandleAuth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AuthRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		switch req.Action {
		case ActionRegister:
			h.register(w, r, req)
		case ActionLogin:
			h.login(w, r, req)
		case ActionLogout:
			h.logout(w, r)
		default:
			WriteError(w, r, apperror.NewBadRequestError("unknown action", nil))
		}
	}
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request, req AuthRequest) {
	if req.Email == "" || req.Password == "" {
		WriteError(w, r, apperror.NewBadRequestError("email and password are required", nil))
		return
	}

	if err := h.service.Register(r.Context(), req.Email, req.Password); err != nil {
		WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, AuthResponse{Success: true})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request, req AuthRequest) {
	if req.Email == "" || req.Password == "" {
		WriteError(w, r, apperror.NewBadRequestError("email and password are required", nil))
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, AuthResponse{Success: true})
}

// logout always succeeds, with or without a live session.
func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	token := TokenFromRequest(r)
	if err := h.service.Logout(r.Context(), token); err != nil {
		WriteError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, AuthResponse{Success: true})
}

// writeJSON serializes data to JSON and writes it with the given status.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError writes a standardized error response. Errors that are not
// already an *apperror.AppError are wrapped as internal errors so that every
// failure reaches the client in the same shape.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred: "+err.Error(), err)
	}
	writeJSON(w, appErr.StatusCode(), appErr.ToResponse())
}

// WriteJSON exposes the JSON response helper to other handler packages.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, data)
}
