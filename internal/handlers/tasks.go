package handlers

import (
	"net/http"

	"taskboard/internal/models"
	"taskboard/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TaskHandler struct {
	base
	taskService services.TaskService
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{base: newBase(db, logger), taskService: taskService}
}

type createTaskInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
}

func (h *TaskHandler) GetTasks(c *gin.Context) {
	tasks, err := h.taskService.GetTasks(h.dbFor(c))
	if err != nil {
		h.fail(c, http.StatusInternalServerError, MsgTasksFetchFailed, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var input createTaskInput
	if !h.bindJSON(c, &input, MsgTaskTitleMissing) {
		return
	}

	task := models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
	}
	if err := h.taskService.CreateTask(h.dbFor(c), &task); err != nil {
		h.fail(c, http.StatusInternalServerError, MsgTaskCreateFailed, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	task, err := h.taskService.GetTaskByID(h.dbFor(c), paramID(c))
	if err != nil {
		if isNotFound(err) {
			h.fail(c, http.StatusNotFound, MsgTaskNotFound, nil)
			return
		}
		h.fail(c, http.StatusInternalServerError, MsgTaskFetchFailed, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTask overwrites the fields present in the body. A missing row is
// reported like any other failure.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var update services.TaskUpdate
	if !h.bindJSON(c, &update, MsgInvalidBody) {
		return
	}

	task, err := h.taskService.UpdateTask(h.dbFor(c), paramID(c), update)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, MsgTaskUpdateFailed, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.DeleteTask(h.dbFor(c), paramID(c)); err != nil {
		h.fail(c, http.StatusInternalServerError, MsgTaskDeleteFailed, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgTaskDeleted})
}
