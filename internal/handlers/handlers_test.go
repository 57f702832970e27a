package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	backupmem "github.com/SscSPs/money_managemet_app/internal/adapters/backup/memory"
	"github.com/SscSPs/money_managemet_app/internal/core/domain"
	"github.com/SscSPs/money_managemet_app/internal/core/services"
	"github.com/SscSPs/money_managemet_app/internal/dto"
	"github.com/SscSPs/money_managemet_app/internal/handlers"
	"github.com/SscSPs/money_managemet_app/internal/middleware"
)

const testJWTSecret = "test-secret"

type HandlersTestSuite struct {
	suite.Suite
	router *gin.Engine
	token  string
}

func (s *HandlersTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterCustomValidations()
}

func (s *HandlersTestSuite) SetupTest() {
	registry := services.NewAccountRegistry(
		domain.Account{Code: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true},
		domain.Account{Code: "4000", Name: "Revenue", AccountType: domain.Revenue, IsActive: true},
	)
	factory := services.NewEntryFactory(services.NewLineItemService(registry))
	store := services.NewJournalStore(factory, backupmem.New())
	importer := services.NewImporterService(store)

	s.router = gin.New()
	s.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	handlers.RegisterHealthRoutes(s.router)

	api := s.router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterJournalRoutes(api, store, importer)
	handlers.RegisterAccountRoutes(api, registry)

	s.token = s.signToken("auditor-1", time.Now().Add(time.Hour))
}

func (s *HandlersTestSuite) signToken(subject string, expiry time.Time) string {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiry),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	s.Require().NoError(err)
	return token
}

func (s *HandlersTestSuite) do(method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlersTestSuite) doJSON(method, path string, payload any) *httptest.ResponseRecorder {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		s.Require().NoError(err)
	}
	return s.do(method, path, body, "application/json")
}

func (s *HandlersTestSuite) createEntryPayload(ref string) map[string]any {
	return map[string]any{
		"transactionDate": "2024-03-10T00:00:00Z",
		"referenceNumber": ref,
		"description":     "March sale",
		"lineItems": []map[string]any{
			{"accountRef": "Cash", "amount": "100.00", "side": "DEBIT"},
			{"accountRef": "Revenue", "amount": "100.00", "side": "CREDIT"},
		},
	}
}

func (s *HandlersTestSuite) TestHealthzIsPublic() {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlersTestSuite) TestAuthRequired() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/journal-entries", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *HandlersTestSuite) TestExpiredTokenRejected() {
	s.token = s.signToken("auditor-1", time.Now().Add(-time.Hour))
	rec := s.doJSON(http.MethodGet, "/api/v1/journal-entries", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "expired")
}

func (s *HandlersTestSuite) TestCreateAndFetchEntry() {
	rec := s.doJSON(http.MethodPost, "/api/v1/journal-entries", s.createEntryPayload("JE001"))
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var created dto.JournalEntryResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	s.Equal("JE001", created.ReferenceNumber)
	s.Len(created.LineItems, 2)
	s.False(created.Posted)

	// The token subject is stamped onto the audit trail.
	s.Require().NotEmpty(created.AuditTrail)
	s.Equal("auditor-1", created.AuditTrail[0].Actor)

	rec = s.doJSON(http.MethodGet, "/api/v1/journal-entries?ref=JE001", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var fetched dto.JournalEntryResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &fetched))
	s.Equal(created.EntryID, fetched.EntryID)
}

func (s *HandlersTestSuite) TestCreateRejectsBadSide() {
	payload := s.createEntryPayload("JE001")
	payload["lineItems"] = []map[string]any{
		{"accountRef": "Cash", "amount": "100.00", "side": "SIDEWAYS"},
		{"accountRef": "Revenue", "amount": "100.00", "side": "CREDIT"},
	}
	rec := s.doJSON(http.MethodPost, "/api/v1/journal-entries", payload)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlersTestSuite) TestDuplicateReferenceConflicts() {
	rec := s.doJSON(http.MethodPost, "/api/v1/journal-entries", s.createEntryPayload("JE001"))
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec = s.doJSON(http.MethodPost, "/api/v1/journal-entries", s.createEntryPayload("JE001"))
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *HandlersTestSuite) TestListByDateQueries() {
	rec := s.doJSON(http.MethodPost, "/api/v1/journal-entries", s.createEntryPayload("JE001"))
	s.Require().Equal(http.StatusCreated, rec.Code)

	for _, path := range []string{
		"/api/v1/journal-entries?date=2024-03-10",
		"/api/v1/journal-entries?date=2024-03",
		"/api/v1/journal-entries?year=2024&month=3",
		"/api/v1/journal-entries?from=2024-03&to=2024-03",
		"/api/v1/journal-entries",
	} {
		rec = s.doJSON(http.MethodGet, path, nil)
		s.Require().Equal(http.StatusOK, rec.Code, path)

		var entries []dto.JournalEntryResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &entries), path)
		s.Len(entries, 1, path)
	}

	rec = s.doJSON(http.MethodGet, "/api/v1/journal-entries?date=2023", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var empty []dto.JournalEntryResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &empty))
	s.Empty(empty)
}

func (s *HandlersTestSuite) TestUnknownRefIs404() {
	rec := s.doJSON(http.MethodGet, "/api/v1/journal-entries?ref=NOPE", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlersTestSuite) TestPatchAndPostedConflict() {
	rec := s.doJSON(http.MethodPost, "/api/v1/journal-entries", s.createEntryPayload("JE001"))
	s.Require().Equal(http.StatusCreated, rec.Code)

	var created dto.JournalEntryResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))

	rec = s.doJSON(http.MethodPatch, "/api/v1/journal-entries/"+created.EntryID, map[string]any{"posted": true})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var updated dto.JournalEntryResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &updated))
	s.True(updated.Posted)

	rec = s.doJSON(http.MethodPatch, "/api/v1/journal-entries/"+created.EntryID, map[string]any{"description": "too late"})
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *HandlersTestSuite) TestResetEntries() {
	rec := s.doJSON(http.MethodPost, "/api/v1/journal-entries", s.createEntryPayload("JE001"))
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec = s.doJSON(http.MethodDelete, "/api/v1/journal-entries", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.doJSON(http.MethodGet, "/api/v1/journal-entries", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var entries []dto.JournalEntryResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &entries))
	s.Empty(entries)
}

func (s *HandlersTestSuite) uploadCSV(csvBody string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "entries.csv")
	s.Require().NoError(err)
	_, err = part.Write([]byte(csvBody))
	s.Require().NoError(err)
	s.Require().NoError(writer.Close())

	return s.do(http.MethodPost, "/api/v1/journal-entries/import", buf.Bytes(), writer.FormDataContentType())
}

func (s *HandlersTestSuite) TestImportCSV() {
	csvBody := strings.Join([]string{
		"Reference Number,Transaction Date,Account Name,Debit,Credit,Description,Posted",
		"JE001,03-10-2024,Cash,100.00,,March sale,No",
		"JE001,03-10-2024,Revenue,,100.00,,No",
		"JE002,03-11-2024,Cash,50.00,,,No",
		"JE002,03-11-2024,Revenue,,75.00,,No",
	}, "\n")

	rec := s.uploadCSV(csvBody)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var result dto.ImportResult
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &result))
	s.Require().Len(result.OK, 1)
	s.Equal("JE001", result.OK[0].ReferenceNumber)
	s.Require().Len(result.Errors, 1)
	s.Equal("JE002", result.Errors[0].ReferenceNumber)
}

func (s *HandlersTestSuite) TestImportAllBadRows() {
	csvBody := strings.Join([]string{
		"Reference Number,Transaction Date,Account Name,Debit,Credit",
		"JE001,03-10-2024,Cash,100.00,",
		"JE001,03-10-2024,Revenue,,150.00",
	}, "\n")

	rec := s.uploadCSV(csvBody)
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var failure dto.ImportFailure
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &failure))
	s.Equal("invalid_csv", failure.Message)
	s.NotEmpty(failure.Errors)
}

func (s *HandlersTestSuite) TestImportRequiresFile() {
	rec := s.doJSON(http.MethodPost, "/api/v1/journal-entries/import", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlersTestSuite) TestAccountEndpoints() {
	rec := s.doJSON(http.MethodPost, "/api/v1/accounts", map[string]any{
		"code": "2000", "name": "Accounts Payable", "accountType": "LIABILITY",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.doJSON(http.MethodGet, "/api/v1/accounts/2000", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var account domain.Account
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &account))
	s.Equal("Accounts Payable", account.Name)
	s.True(account.IsActive)

	rec = s.doJSON(http.MethodGet, "/api/v1/accounts", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var accounts []domain.Account
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &accounts))
	s.Len(accounts, 3)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
