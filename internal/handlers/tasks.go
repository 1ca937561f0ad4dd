package handlers

import (
	"errors"
	"net/http"
	"time"

	"task_manager/internal/models"
	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errTaskNotFound = "task not found"
	errListTasks    = "failed to list tasks"
	errGetTask      = "failed to load task"
	errInvalidBody  = "invalid body: "
)

// Request DTO for create and update. Status sent on create is ignored —
// a new task always starts at TO_DO.
type taskRequest struct {
	Title          string    `json:"title" binding:"required"`
	Description    string    `json:"description"`
	ExpirationDate time.Time `json:"expirationDate" binding:"required"`
	Status         string    `json:"status,omitempty"` // TO_DO | IN_PROGRESS | DONE
}

// TaskPayload is an exported model for Swagger docs of the task body.
type TaskPayload struct {
	// Title of the task
	Title string `json:"title" example:"buy milk"`
	// Free-form description
	Description string `json:"description" example:"2 liters, lactose free"`
	// Expiration timestamp, RFC3339
	ExpirationDate time.Time `json:"expirationDate" example:"2026-09-01T12:00:00Z"`
	// Status. Allowed: TO_DO, IN_PROGRESS, DONE (ignored on create)
	Status string `json:"status,omitempty" example:"TO_DO"`
}

func (r taskRequest) toInput() service.TaskInput {
	return service.TaskInput{
		Title:          r.Title,
		Description:    r.Description,
		ExpirationDate: r.ExpirationDate,
		Status:         r.Status,
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Create task
// @Description  Status is forced to TO_DO regardless of the payload.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      TaskPayload  true  "Task payload"
// @Success      201   {object}  models.Task
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /task [post]
// @Security     BearerAuth
func (h *Handler) createTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody + err.Error()})
		return
	}

	t, err := h.services.Tasks.Create(c.Request.Context(), req.toInput())
	if err != nil {
		// Validation failures from the service read as bad requests.
		h.logAndJSONError(c, http.StatusBadRequest, err.Error(), "task_create_failed", err, "title", req.Title)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// @Summary      Get task by id
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  models.Task
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /task/{id} [get]
// @Security     BearerAuth
func (h *Handler) getTask(c *gin.Context) {
	t, err := h.services.Tasks.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetTask, "task_get_failed", err, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, t)
}

// @Summary      List tasks
// @Description  Optional title and status filters match as case-sensitive substrings.
// @Tags         tasks
// @Produce      json
// @Param        title   query     string  false  "Title substring"
// @Param        status  query     string  false  "Status substring"  Enums(TO_DO,IN_PROGRESS,DONE)
// @Success      200     {array}   models.Task
// @Failure      401     {object}  map[string]string
// @Router       /task [get]
// @Security     BearerAuth
func (h *Handler) listTasks(c *gin.Context) {
	tasks, err := h.services.Tasks.List(c.Request.Context(), service.TaskListFilter{
		Title:  c.Query("title"),
		Status: c.Query("status"),
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListTasks, "task_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// @Summary      Update task
// @Description  Full replace of title, description, expiration date, and status.
// @Tags         tasks
// @Accept       json
// @Param        id    path      string       true  "Task id"
// @Param        body  body      TaskPayload  true  "Task payload"
// @Success      204   "updated"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /task/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody + err.Error()})
		return
	}

	id := c.Param("id")
	if err := h.services.Tasks.Update(c.Request.Context(), id, req.toInput()); err != nil {
		if errors.Is(err, models.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusBadRequest, err.Error(), "task_update_failed", err, "id", id)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Delete task
// @Tags         tasks
// @Param        id  path  string  true  "Task id"
// @Success      204  "deleted"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /task/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteTask(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.Tasks.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to delete task", "task_delete_failed", err, "id", id)
		return
	}
	c.Status(http.StatusNoContent)
}
