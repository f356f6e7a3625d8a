package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/makuta3933/budget/internal/core"
	"github.com/makuta3933/budget/internal/ledger"
)

const maxBodyBytes = 10 << 20 // 10MB, imports included

type transactionInput struct {
	Date       string `json:"date"`
	Amount     int64  `json:"amount"`
	Type       string `json:"type"`
	CategoryID string `json:"categoryId"`
	Note       string `json:"note"`
}

type transactionPatch struct {
	Date       *string `json:"date"`
	Amount     *int64  `json:"amount"`
	Type       *string `json:"type"`
	CategoryID *string `json:"categoryId"`
	Note       *string `json:"note"`
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	case http.MethodDelete:
		s.store.Clear(r.Context())
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, "GET, POST, DELETE")
	}
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var out []core.Transaction
	switch {
	case q.Get("date") != "":
		date := q.Get("date")
		if !core.ValidDate(date) {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		out = s.store.ByDate(date)
	case q.Get("month") != "":
		month := q.Get("month")
		if !monthPattern.MatchString(month) {
			writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
			return
		}
		out = s.store.ByMonth(month)
	default:
		out = s.store.All()
	}

	if out == nil {
		out = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var in transactionInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	created, err := s.store.Add(r.Context(), ledger.Input{
		Date:       in.Date,
		Amount:     in.Amount,
		Type:       core.TransactionType(in.Type),
		CategoryID: in.CategoryID,
		Note:       in.Note,
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodPatch:
		s.updateTransaction(w, r, id)
	case http.MethodDelete:
		if !s.store.Delete(r.Context(), id) {
			writeError(w, http.StatusNotFound, "no transaction with id "+id)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, "PATCH, DELETE")
	}
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request, id string) {
	var in transactionPatch
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	patch := ledger.Patch{
		Date:       in.Date,
		Amount:     in.Amount,
		CategoryID: in.CategoryID,
		Note:       in.Note,
	}
	if in.Type != nil {
		tt := core.TransactionType(*in.Type)
		patch.Type = &tt
	}
	if err := validatePatch(patch); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if !s.store.Update(r.Context(), id, patch) {
		writeError(w, http.StatusNotFound, "no transaction with id "+id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validatePatch enforces the field constraints on whatever fields the
// patch provides. The store itself blind-merges, so this is the boundary
// that keeps invalid values out.
func validatePatch(p ledger.Patch) error {
	if p.Date != nil && !core.ValidDate(*p.Date) {
		return core.ErrInvalidDate
	}
	if p.Amount != nil && *p.Amount <= 0 {
		return core.ErrInvalidAmount
	}
	if p.Type != nil && !p.Type.IsValid() {
		return core.ErrInvalidType
	}
	if p.CategoryID != nil && strings.TrimSpace(*p.CategoryID) == "" {
		return core.ErrEmptyCategoryID
	}
	return nil
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	q := r.URL.Query()
	var out []core.Category
	switch {
	case q.Get("class") != "":
		class := core.ExpenseType(q.Get("class"))
		if !class.IsValid() {
			writeError(w, http.StatusBadRequest, "class must be fixed or variable")
			return
		}
		out = core.ExpenseCategoriesByClass(class)
	case q.Get("type") != "":
		tt := core.TransactionType(q.Get("type"))
		if !tt.IsValid() {
			writeError(w, http.StatusBadRequest, "type must be income or expense")
			return
		}
		out = core.CategoriesByType(tt)
	default:
		out = core.Categories
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDailySummaries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	month, ok := monthParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.store.DailySummaries(month))
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	month, ok := monthParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.store.MonthlySummary(month))
}

func (s *Server) handleCategorySummaries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	month, ok := monthParam(w, r)
	if !ok {
		return
	}
	out := s.store.CategorySummaries(month)
	if out == nil {
		out = []core.CategorySummary{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	months := 6
	if v := r.URL.Query().Get("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 120 {
			writeError(w, http.StatusBadRequest, "months must be a number between 1 and 120")
			return
		}
		months = n
	}

	writeJSON(w, http.StatusOK, s.store.MonthlyTrend(months))
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	payload, err := s.store.ExportJSON()
	if err != nil {
		slog.ErrorContext(r.Context(), "Export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	filename := fmt.Sprintf("budget-backup-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	filename := fmt.Sprintf("budget-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.store.ExportCSV())
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed reading request body")
		return
	}

	count, err := s.store.ImportJSON(r.Context(), body)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, ledger.ErrMalformedJSON) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"imported": count,
		"message":  fmt.Sprintf("imported %d records", count),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
