package api

import (
	"encoding/json"
	"net/http"

	"github.com/oceandash/ocean-api/internal/domain/models"
)

type GoalRequest struct {
	Titulo      *string `json:"titulo"`
	Descricao   *string `json:"descricao"`
	DataInicial *string `json:"data_inicial"`
	DataFinal   *string `json:"data_final"`
}

type GoalResponse struct {
	ID          int     `json:"id"`
	Titulo      string  `json:"titulo"`
	Descricao   string  `json:"descricao"`
	DataInicial *string `json:"data_inicial"`
	DataFinal   *string `json:"data_final"`
}

func goalResponse(g *models.Goal) GoalResponse {
	return GoalResponse{
		ID:          g.ID,
		Titulo:      g.Titulo,
		Descricao:   g.Descricao,
		DataInicial: formatDate(g.DataInicial),
		DataFinal:   formatDate(g.DataFinal),
	}
}

func (s *APIServer) listGoalsHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		goals, err := s.storage.ListGoals(r.Context(), userID(r))
		if err != nil {
			s.respondStorageError(w, err)
			return
		}

		res := make([]GoalResponse, 0, len(goals))
		for i := range goals {
			res = append(res, goalResponse(&goals[i]))
		}

		s.respondJSON(w, http.StatusOK, res)
	}
}

func (s *APIServer) createGoalHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GoalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, codeValidation, "invalid request body")
			return
		}
		if req.Titulo == nil || *req.Titulo == "" {
			s.respondError(w, http.StatusBadRequest, codeValidation, "titulo is required")
			return
		}

		goal := models.Goal{
			Titulo:    *req.Titulo,
			UsuarioID: userID(r),
		}
		if req.Descricao != nil {
			goal.Descricao = *req.Descricao
		}
		// Unparseable dates are stored as null, not rejected.
		if req.DataInicial != nil {
			goal.DataInicial = parseDate(*req.DataInicial)
		}
		if req.DataFinal != nil {
			goal.DataFinal = parseDate(*req.DataFinal)
		}

		id, err := s.storage.SaveGoal(r.Context(), &goal)
		if err != nil {
			s.respondStorageError(w, err)
			return
		}

		s.respondJSON(w, http.StatusCreated, CreatedResponse{ID: id})
	}
}

func (s *APIServer) updateGoalHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		goal, err := s.storage.GetGoal(r.Context(), pathID(r), userID(r))
		if err != nil {
			s.respondStorageError(w, err)
			return
		}

		var req GoalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, codeValidation, "invalid request body")
			return
		}

		if req.Titulo != nil {
			goal.Titulo = *req.Titulo
		}
		if req.Descricao != nil {
			goal.Descricao = *req.Descricao
		}
		// A date that is present but does not parse keeps the stored value.
		if req.DataInicial != nil {
			if d := parseDate(*req.DataInicial); d != nil {
				goal.DataInicial = d
			}
		}
		if req.DataFinal != nil {
			if d := parseDate(*req.DataFinal); d != nil {
				goal.DataFinal = d
			}
		}

		if err := s.storage.UpdateGoal(r.Context(), goal); err != nil {
			s.respondStorageError(w, err)
			return
		}

		s.respondJSON(w, http.StatusOK, goalResponse(goal))
	}
}

func (s *APIServer) deleteGoalHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.storage.DeleteGoal(r.Context(), pathID(r), userID(r)); err != nil {
			s.respondStorageError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
