package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clientportal/internal/dashboard"
	"clientportal/internal/model"
	"clientportal/internal/progress"
	"clientportal/internal/repository"
	"clientportal/internal/service/auth"
	"clientportal/internal/visibility"
	"clientportal/pkg/rbac"
)

type TaskHandler struct {
	taskRepo    *repository.TaskRepository
	projectRepo *repository.ProjectRepository
	viewCache   *dashboard.ViewCache
	logger      *zap.Logger
}

func NewTaskHandler(taskRepo *repository.TaskRepository, projectRepo *repository.ProjectRepository, viewCache *dashboard.ViewCache, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		viewCache:   viewCache,
		logger:      logger,
	}
}

// ListTasks returns a project's tasks.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	projectID := model.FlexID(c.Query("project_id"))
	if projectID.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_id required"})
		return
	}

	tasks, err := h.taskRepo.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		h.logger.Error("ListTasks failed",
			zap.String("project_id", projectID.String()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// CompleteTask confirms a client's optimistic task completion: mark the
// task done, recompute the project rollup from its tasks, and drop cached
// views. The client applies the toggle locally first and reconciles with
// this response.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	user := auth.UserFromContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	taskID := model.FlexID(c.Param("id"))
	h.logger.Info("CompleteTask request received",
		zap.String("task_id", taskID.String()),
		zap.String("user_id", user.ID.String()),
	)

	projectID, err := h.taskRepo.GetProjectIDForTask(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	// Clients may only touch tasks on projects assigned to them.
	if user.Role == rbac.RoleClient {
		project, err := h.projectRepo.GetByID(c.Request.Context(), projectID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		if !visibility.IsAssigned(project, user) {
			c.JSON(http.StatusForbidden, gin.H{"error": "project not assigned to user"})
			return
		}
	}

	if err := h.taskRepo.MarkCompleted(c.Request.Context(), taskID); err != nil {
		h.logger.Error("CompleteTask failed",
			zap.String("task_id", taskID.String()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete task"})
		return
	}

	// Recompute the project rollup so the stored figure tracks the tasks.
	newProgress := 0
	tasks, err := h.taskRepo.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		h.logger.Warn("Progress recompute skipped, task list unavailable",
			zap.String("project_id", projectID.String()),
			zap.Error(err),
		)
	} else {
		newProgress = progress.Aggregate(tasks)
		if err := h.projectRepo.UpdateProgress(c.Request.Context(), projectID, newProgress, ""); err != nil {
			h.logger.Warn("Failed to store recomputed progress",
				zap.String("project_id", projectID.String()),
				zap.Error(err),
			)
		}
	}

	h.viewCache.InvalidateProject(c.Request.Context(), projectID)

	h.logger.Info("CompleteTask: success",
		zap.String("task_id", taskID.String()),
		zap.Int("project_progress", newProgress),
	)
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"progress": newProgress,
	})
}
