package api

import (
	"net/http"

	"github.com/Navaneeth-Nair/Neuromate/internal/auth"
	"github.com/Navaneeth-Nair/Neuromate/internal/domain"
)

// SignupRequest is the payload for POST /v1/auth/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// SigninRequest is the payload for POST /v1/auth/signin.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the payload for PUT /v1/auth/password.
type ChangePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// UpdateProfileRequest carries the optional profile fields; absent fields stay untouched.
type UpdateProfileRequest struct {
	Username    *string `json:"username"`
	AvatarURL   *string `json:"avatar_url"`
	Mood        *string `json:"mood"`
	Status      *string `json:"status"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var req SignupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	session, err := h.service.Signup(r.Context(), domain.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionResponse(*session))
}

func (h *Handler) signin(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var req SigninRequest
	if !decodeBody(w, r, &req) {
		return
	}

	session, err := h.service.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(*session))
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPut) {
		return
	}
	claims, ok := authorize(w, r, auth.ScopeProfileWrite)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.service.ChangePassword(r.Context(), claims.Subject, req.NewPassword); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "password updated"})
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		claims, ok := authorize(w, r, auth.ScopeProfileRead, auth.ScopeProfileWrite)
		if !ok {
			return
		}
		profile, err := h.service.GetProfile(r.Context(), claims.Subject)
		if err != nil {
			h.writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfileView(*profile))
	case http.MethodPut:
		claims, ok := authorize(w, r, auth.ScopeProfileWrite)
		if !ok {
			return
		}
		var req UpdateProfileRequest
		if !decodeBody(w, r, &req) {
			return
		}
		profile, err := h.service.UpdateProfile(r.Context(), claims.Subject, domain.ProfileUpdate{
			Username:    req.Username,
			AvatarURL:   req.AvatarURL,
			Mood:        req.Mood,
			Status:      req.Status,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			PhoneNumber: req.PhoneNumber,
		})
		if err != nil {
			h.writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfileView(*profile))
	default:
		allowMethod(w, r, http.MethodGet, http.MethodPut)
	}
}
