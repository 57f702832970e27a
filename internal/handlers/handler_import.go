package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/money_managemet_app/internal/adapters/csvsource"
	"github.com/SscSPs/money_managemet_app/internal/apperrors"
	portssvc "github.com/SscSPs/money_managemet_app/internal/core/ports/services"
	"github.com/SscSPs/money_managemet_app/internal/dto"
	"github.com/SscSPs/money_managemet_app/internal/middleware"
)

// importHandler handles bulk CSV ingestion.
type importHandler struct {
	importer portssvc.JournalImporterSvc
}

// newImportHandler creates a new importHandler.
func newImportHandler(importer portssvc.JournalImporterSvc) *importHandler {
	return &importHandler{importer: importer}
}

// importEntries handles POST /journal-entries/import. The CSV arrives as a
// multipart upload under the "file" field; a partial failure still returns
// 200 with the per-reference error list.
func (h *importHandler) importEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Missing file in import request", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "csv upload required under the 'file' field"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	rows, err := csvsource.Rows(file)
	if err != nil {
		logger.Warn("Unreadable csv upload", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.importer.Import(c.Request.Context(), rows, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidFile) {
			failure := dto.ImportFailure{Message: "invalid_csv"}
			if result != nil {
				failure.Errors = result.Errors
			}
			c.JSON(http.StatusBadRequest, failure)
			return
		}
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
