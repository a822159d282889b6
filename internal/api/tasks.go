package api

import (
	"net/http"

	"github.com/Formula-SAE/signupspark/internal/service"
	"github.com/Formula-SAE/signupspark/internal/store"
	"github.com/gorilla/mux"
)

func (a *API) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := a.service.Tasks(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, "list-tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (a *API) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	body := service.TaskDraft{}
	if !decodeJSON(w, r, &body) {
		return
	}

	task, err := a.service.CreateTask(mux.Vars(r)["id"], body)
	if err != nil {
		writeServiceError(w, "create-task", err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (a *API) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	body := store.TaskUpdate{}
	if !decodeJSON(w, r, &body) {
		return
	}

	task, err := a.service.UpdateTask(vars["id"], vars["taskID"], body)
	if err != nil {
		writeServiceError(w, "update-task", err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (a *API) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := a.service.DeleteTask(vars["id"], vars["taskID"]); err != nil {
		writeServiceError(w, "delete-task", err)
		return
	}
	writeMessage(w, http.StatusOK, "Task deleted")
}

func (a *API) handleClearTasks(w http.ResponseWriter, r *http.Request) {
	if err := a.service.ClearTasks(mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, "clear-tasks", err)
		return
	}
	writeMessage(w, http.StatusOK, "Tasks cleared")
}
