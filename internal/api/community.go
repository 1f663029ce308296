package api

import (
	"net/http"
	"strconv"

	"github.com/Navaneeth-Nair/Neuromate/internal/auth"
	"github.com/Navaneeth-Nair/Neuromate/internal/persistence"
)

// BetaSignupRequest is the payload for POST /v1/beta/signup.
type BetaSignupRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ContactRequest is the payload for POST /v1/contact.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// feed serves GET /v1/posts with cursor pagination.
func (h *Handler) feed(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := authorize(w, r, auth.ScopeCommunityRead, auth.ScopeCommunityWrite); !ok {
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	cursor, err := persistence.DecodeCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "invalid cursor")
		return
	}

	posts, next, err := h.service.ListFeed(r.Context(), cursor, limit)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	items := make([]PostView, 0, len(posts))
	for _, post := range posts {
		items = append(items, toPostView(post))
	}
	writeJSON(w, http.StatusOK, FeedResponse{
		Items:      items,
		NextCursor: persistence.EncodeCursor(next),
	})
}

func (h *Handler) betaSignup(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var req BetaSignupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	signup, err := h.service.SubmitBetaSignup(r.Context(), req.Name, req.Email, req.Phone)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageResponse{Message: "thanks for joining the beta", ID: signup.ID})
}

func (h *Handler) contact(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var req ContactRequest
	if !decodeBody(w, r, &req) {
		return
	}

	message, err := h.service.SubmitContactMessage(r.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageResponse{Message: "message received", ID: message.ID})
}
