package api

import (
	"encoding/json"
	"net/http"

	"github.com/oceandash/ocean-api/internal/domain/models"
)

type FinanceRequest struct {
	Tipo      *string  `json:"tipo"`
	Valor     *float64 `json:"valor"`
	Categoria *string  `json:"categoria"`
	Data      *string  `json:"data"`
	Descricao *string  `json:"descricao"`
}

type FinanceResponse struct {
	ID        int     `json:"id"`
	Tipo      string  `json:"tipo"`
	Valor     float64 `json:"valor"`
	Categoria string  `json:"categoria"`
	Data      *string `json:"data"`
	Descricao string  `json:"descricao"`
}

func financeResponse(f *models.FinanceEntry) FinanceResponse {
	return FinanceResponse{
		ID:        f.ID,
		Tipo:      f.Tipo,
		Valor:     f.Valor,
		Categoria: f.Categoria,
		Data:      formatDate(f.Data),
		Descricao: f.Descricao,
	}
}

func (s *APIServer) listFinancesHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := s.storage.ListFinances(r.Context(), userID(r))
		if err != nil {
			s.respondStorageError(w, err)
			return
		}

		res := make([]FinanceResponse, 0, len(entries))
		for i := range entries {
			res = append(res, financeResponse(&entries[i]))
		}

		s.respondJSON(w, http.StatusOK, res)
	}
}

func (s *APIServer) createFinanceHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FinanceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, codeValidation, "invalid request body")
			return
		}
		if req.Tipo == nil || *req.Tipo == "" {
			s.respondError(w, http.StatusBadRequest, codeValidation, "tipo is required")
			return
		}
		if req.Valor == nil {
			s.respondError(w, http.StatusBadRequest, codeValidation, "valor is required")
			return
		}

		entry := models.FinanceEntry{
			Tipo:      *req.Tipo,
			Valor:     *req.Valor,
			UsuarioID: userID(r),
		}
		if req.Categoria != nil {
			entry.Categoria = *req.Categoria
		}
		if req.Data != nil {
			entry.Data = parseDate(*req.Data)
		}
		if req.Descricao != nil {
			entry.Descricao = *req.Descricao
		}

		id, err := s.storage.SaveFinance(r.Context(), &entry)
		if err != nil {
			s.respondStorageError(w, err)
			return
		}

		s.respondJSON(w, http.StatusCreated, CreatedResponse{ID: id})
	}
}

func (s *APIServer) updateFinanceHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		entry, err := s.storage.GetFinance(r.Context(), pathID(r), userID(r))
		if err != nil {
			s.respondStorageError(w, err)
			return
		}

		var req FinanceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, codeValidation, "invalid request body")
			return
		}

		if req.Tipo != nil {
			entry.Tipo = *req.Tipo
		}
		if req.Valor != nil {
			entry.Valor = *req.Valor
		}
		if req.Categoria != nil {
			entry.Categoria = *req.Categoria
		}
		if req.Data != nil {
			if d := parseDate(*req.Data); d != nil {
				entry.Data = d
			}
		}
		if req.Descricao != nil {
			entry.Descricao = *req.Descricao
		}

		if err := s.storage.UpdateFinance(r.Context(), entry); err != nil {
			s.respondStorageError(w, err)
			return
		}

		s.respondJSON(w, http.StatusOK, financeResponse(entry))
	}
}

func (s *APIServer) deleteFinanceHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.storage.DeleteFinance(r.Context(), pathID(r), userID(r)); err != nil {
			s.respondStorageError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
