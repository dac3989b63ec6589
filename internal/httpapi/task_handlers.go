package httpapi

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"task-manager/internal/service"
)

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Token is missing")
		return
	}

	var req createTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := s.tasks.CreateTask(r.Context(), ownerID, service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		s.writeTaskError(w, r, err)
		return
	}

	s.logger.Printf("[info] task created id=%s user=%s", task.ID, ownerID)
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Token is missing")
		return
	}

	tasks, err := s.tasks.ListTasks(r.Context(), ownerID)
	if err != nil {
		s.writeTaskError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	ownerID, taskID, ok := s.taskRoute(w, r)
	if !ok {
		return
	}

	task, err := s.tasks.GetTask(r.Context(), ownerID, taskID)
	if err != nil {
		s.writeTaskError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	ownerID, taskID, ok := s.taskRoute(w, r)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := s.tasks.UpdateTask(r.Context(), ownerID, taskID, service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		s.writeTaskError(w, r, err)
		return
	}

	s.logger.Printf("[info] task updated id=%s user=%s", task.ID, ownerID)
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	ownerID, taskID, ok := s.taskRoute(w, r)
	if !ok {
		return
	}

	if err := s.tasks.DeleteTask(r.Context(), ownerID, taskID); err != nil {
		s.writeTaskError(w, r, err)
		return
	}

	s.logger.Printf("[info] task deleted id=%s user=%s", taskID, ownerID)
	writeMessage(w, http.StatusOK, "Task deleted successfully")
}

// taskRoute extracts the caller and the task id. A malformed id is reported as 404, like a missing task.
func (s *Server) taskRoute(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	ownerID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Token is missing")
		return uuid.Nil, uuid.Nil, false
	}
	taskID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Task not found")
		return uuid.Nil, uuid.Nil, false
	}
	return ownerID, taskID, true
}

func (s *Server) writeTaskError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, service.ErrInvalidInput):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Printf("task request rid=%s: %v", RequestIDFromContext(r.Context()), err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}
