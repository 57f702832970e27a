package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/gin-gonic/gin/binding"

	"github.com/SscSPs/money_managemet_app/internal/core/domain"
	portssvc "github.com/SscSPs/money_managemet_app/internal/core/ports/services"
)

// RegisterCustomValidations wires domain-specific checks into gin's binding
// validator. Call once at startup before serving.
func RegisterCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("entryside", func(fl validator.FieldLevel) bool {
			return domain.EntrySide(fl.Field().String()).Valid()
		})
	}
}

// RegisterJournalRoutes mounts the journal store operations on the group.
func RegisterJournalRoutes(group *gin.RouterGroup, journalSvc portssvc.JournalSvcFacade, importer portssvc.JournalImporterSvc) {
	journal := newJournalHandler(journalSvc)
	imports := newImportHandler(importer)

	entries := group.Group("/journal-entries")
	entries.POST("", journal.createEntry)
	entries.GET("", journal.listEntries)
	entries.PATCH("/:entryID", journal.updateEntry)
	entries.DELETE("", journal.resetEntries)
	entries.POST("/import", imports.importEntries)
}

// RegisterAccountRoutes mounts the chart-of-accounts registry on the group.
func RegisterAccountRoutes(group *gin.RouterGroup, registry portssvc.AccountRegistrySvc) {
	handler := newAccountHandler(registry)

	accounts := group.Group("/accounts")
	accounts.POST("", handler.createAccount)
	accounts.GET("", handler.listAccounts)
	accounts.GET("/:nameOrCode", handler.getAccount)
}

// RegisterHealthRoutes mounts the public liveness endpoint.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
