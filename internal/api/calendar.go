package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Navaneeth-Nair/Neuromate/internal/auth"
	"github.com/Navaneeth-Nair/Neuromate/internal/calendar"
)

const (
	minCalendarYear = 1970
	maxCalendarYear = 9999
)

// calendar serves GET /v1/calendar?year=YYYY&tz=Area/City.
func (h *Handler) calendar(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	claims, ok := authorize(w, r, auth.ScopeActivitiesRead, auth.ScopeActivitiesWrite)
	if !ok {
		return
	}

	loc := h.calendars.Aggregator().Location()
	if tz := strings.TrimSpace(r.URL.Query().Get("tz")); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", "unknown timezone "+tz)
			return
		}
		loc = parsed
	}

	today := h.now().In(loc)
	year := today.Year()
	if raw := strings.TrimSpace(r.URL.Query().Get("year")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < minCalendarYear || parsed > maxCalendarYear {
			writeError(w, http.StatusBadRequest, "validation_failed", "year must be a number between 1970 and 9999")
			return
		}
		year = parsed
	}

	cal, err := h.calendars.Calendar(r.Context(), calendar.Request{
		UserID:   claims.Subject,
		Year:     year,
		Today:    today,
		Location: loc,
	})
	if err != nil {
		if errors.Is(err, r.Context().Err()) {
			// The client went away; nothing useful can be written.
			return
		}
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCalendarResponse(cal))
}
