package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/money_managemet_app/internal/apperrors"
	"github.com/SscSPs/money_managemet_app/internal/core/domain"
	portssvc "github.com/SscSPs/money_managemet_app/internal/core/ports/services"
	"github.com/SscSPs/money_managemet_app/internal/dto"
	"github.com/SscSPs/money_managemet_app/internal/middleware"
)

// journalHandler handles HTTP requests for journal entries.
type journalHandler struct {
	journalSvc portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalSvc portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalSvc: journalSvc}
}

// createEntry handles POST /journal-entries.
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createEntry", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalSvc.CreateJournalEntry(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listEntries handles GET /journal-entries. Query parameters select the
// lookup: ?ref= or ?id= return a single entry; ?year=&month=&day= and
// ?date= match buckets; ?from=&to= select an inclusive range; no parameters
// return everything.
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ctx := c.Request.Context()

	switch {
	case c.Query("ref") != "":
		entry, err := h.journalSvc.FindByReferenceNumber(ctx, c.Query("ref"))
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))

	case c.Query("id") != "":
		entry, err := h.journalSvc.FindByID(ctx, c.Query("id"))
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))

	case c.Query("from") != "" || c.Query("to") != "":
		from, err := parsePartialDate(c.Query("from"))
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		to, err := parsePartialDate(c.Query("to"))
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		entries, err := h.journalSvc.FindByDateRange(ctx, from, to)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))

	case c.Query("date") != "":
		query, err := parsePartialDate(c.Query("date"))
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		entries, err := h.journalSvc.FindByDate(ctx, query)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))

	case c.Query("year") != "" || c.Query("month") != "" || c.Query("day") != "":
		query, err := parseDateDetails(c)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		entries, err := h.journalSvc.FindByDate(ctx, query)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))

	default:
		entries, err := h.journalSvc.AllEntries(ctx)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))
	}
}

// updateEntry handles PATCH /journal-entries/:entryID.
func (h *journalHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var patch dto.JournalEntryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		logger.Warn("Failed to bind JSON for updateEntry", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalSvc.UpdateJournalEntry(c.Request.Context(), entryID, patch, actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// resetEntries handles DELETE /journal-entries. It always succeeds.
func (h *journalHandler) resetEntries(c *gin.Context) {
	entries := h.journalSvc.ResetAll(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))
}

// parsePartialDate accepts a full RFC 3339 timestamp or a partial date in
// "2006", "2006-01" or "2006-01-02" form.
func parsePartialDate(text string) (domain.PartialDate, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.PartialDate{}, fmt.Errorf("%w: empty date", apperrors.ErrInvalidDate)
	}

	if t, err := time.Parse(time.RFC3339, text); err == nil {
		return domain.PartialDateOf(t), nil
	}

	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		t, err := time.Parse(layout, text)
		if err != nil {
			continue
		}
		p := domain.PartialDate{}
		year := t.Year()
		p.Year = &year
		if len(layout) >= len("2006-01") {
			month := int(t.Month())
			p.Month = &month
		}
		if layout == "2006-01-02" {
			day := t.Day()
			p.Day = &day
		}
		return p, nil
	}

	return domain.PartialDate{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, text)
}

// parseDateDetails builds a partial date from the year/month/day query
// parameters, leaving absent components nil.
func parseDateDetails(c *gin.Context) (domain.PartialDate, error) {
	var query domain.PartialDate
	for _, part := range []struct {
		name   string
		target **int
	}{
		{"year", &query.Year},
		{"month", &query.Month},
		{"day", &query.Day},
	} {
		raw := c.Query(part.name)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return domain.PartialDate{}, fmt.Errorf("%w: %s %q", apperrors.ErrInvalidDate, part.name, raw)
		}
		*part.target = &value
	}
	return query, query.Validate()
}
