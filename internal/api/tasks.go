package api

import (
	"encoding/json"
	"net/http"

	"github.com/oceandash/ocean-api/internal/domain/models"
)

// TaskRequest uses pointer fields so partial updates can tell an absent
// field from a provided one. Absent fields keep the stored value.
type TaskRequest struct {
	Titulo    *string `json:"titulo"`
	Descricao *string `json:"descricao"`
	Status    *string `json:"status"`
}

type TaskResponse struct {
	ID          int    `json:"id"`
	Titulo      string `json:"titulo"`
	Descricao   string `json:"descricao"`
	Status      string `json:"status"`
	DataCriacao string `json:"data_criacao"`
}

type CreatedResponse struct {
	ID int `json:"id"`
}

func taskResponse(t *models.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Titulo:      t.Titulo,
		Descricao:   t.Descricao,
		Status:      t.Status,
		DataCriacao: t.DataCriacao.Format("2006-01-02T15:04:05"),
	}
}

func (s *APIServer) listTasksHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		tasks, err := s.storage.ListTasks(r.Context(), userID(r))
		if err != nil {
			s.respondStorageError(w, err)
			return
		}

		res := make([]TaskResponse, 0, len(tasks))
		for i := range tasks {
			res = append(res, taskResponse(&tasks[i]))
		}

		s.respondJSON(w, http.StatusOK, res)
	}
}

func (s *APIServer) createTaskHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, codeValidation, "invalid request body")
			return
		}
		if req.Titulo == nil || *req.Titulo == "" {
			s.respondError(w, http.StatusBadRequest, codeValidation, "titulo is required")
			return
		}

		// The owner always comes from the token, never from the body.
		task := models.Task{
			Titulo:    *req.Titulo,
			Status:    "pendente",
			UsuarioID: userID(r),
		}
		if req.Descricao != nil {
			task.Descricao = *req.Descricao
		}
		if req.Status != nil {
			task.Status = *req.Status
		}

		id, err := s.storage.SaveTask(r.Context(), &task)
		if err != nil {
			s.respondStorageError(w, err)
			return
		}

		s.respondJSON(w, http.StatusCreated, CreatedResponse{ID: id})
	}
}

func (s *APIServer) updateTaskHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		task, err := s.storage.GetTask(r.Context(), pathID(r), userID(r))
		if err != nil {
			s.respondStorageError(w, err)
			return
		}

		var req TaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, codeValidation, "invalid request body")
			return
		}

		if req.Titulo != nil {
			task.Titulo = *req.Titulo
		}
		if req.Descricao != nil {
			task.Descricao = *req.Descricao
		}
		if req.Status != nil {
			task.Status = *req.Status
		}

		if err := s.storage.UpdateTask(r.Context(), task); err != nil {
			s.respondStorageError(w, err)
			return
		}

		s.respondJSON(w, http.StatusOK, taskResponse(task))
	}
}

func (s *APIServer) deleteTaskHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.storage.DeleteTask(r.Context(), pathID(r), userID(r)); err != nil {
			s.respondStorageError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
