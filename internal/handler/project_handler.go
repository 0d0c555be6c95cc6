package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"clientportal/internal/dashboard"
	"clientportal/internal/model"
	"clientportal/internal/progress"
	"clientportal/internal/repository"
	"clientportal/internal/service/auth"
	"clientportal/internal/visibility"
	"clientportal/pkg/util"
)

type ProjectHandler struct {
	projectRepo  *repository.ProjectRepository
	taskRepo     *repository.TaskRepository
	updateRepo   *repository.UpdateRepository
	documentRepo *repository.DocumentRepository
	model3dRepo  *repository.Model3DRepository
	viewCache    *dashboard.ViewCache
	logger       *zap.Logger
}

func NewProjectHandler(
	projectRepo *repository.ProjectRepository,
	taskRepo *repository.TaskRepository,
	updateRepo *repository.UpdateRepository,
	documentRepo *repository.DocumentRepository,
	model3dRepo *repository.Model3DRepository,
	viewCache *dashboard.ViewCache,
	logger *zap.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		projectRepo:  projectRepo,
		taskRepo:     taskRepo,
		updateRepo:   updateRepo,
		documentRepo: documentRepo,
		model3dRepo:  model3dRepo,
		viewCache:    viewCache,
		logger:       logger,
	}
}

// ListProjects returns the projects visible to the current user.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	user := auth.UserFromContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	projects, err := h.projectRepo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("ListProjects failed", zap.Error(err))
		retryable, errType := util.IsRetryableError(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":      "failed to list projects",
			"error_type": errType,
			"retryable":  retryable,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": visibility.Visible(projects, user)})
}

type createProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Client      string `json:"client"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Status      string `json:"status"`
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	p := &model.Project{
		Name:        req.Name,
		Client:      req.Client,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
	}

	id, err := h.projectRepo.Insert(c.Request.Context(), p)
	if err != nil {
		h.logger.Error("CreateProject failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}

	p.ID = id
	c.JSON(http.StatusCreated, gin.H{"project": p})
}

type updateProgressRequest struct {
	Progress int    `json:"progress" binding:"min=0,max=100"`
	Status   string `json:"status"`
}

// UpdateProgress sets a project's stored progress and status, then drops
// the project's cached views.
func (h *ProjectHandler) UpdateProgress(c *gin.Context) {
	projectID := model.FlexID(c.Param("id"))

	var req updateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid progress"})
		return
	}

	pct := progress.Clamp(req.Progress)
	if err := h.projectRepo.UpdateProgress(c.Request.Context(), projectID, pct, req.Status); err != nil {
		h.logger.Error("UpdateProgress failed",
			zap.String("project_id", projectID.String()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update progress"})
		return
	}

	h.viewCache.InvalidateProject(c.Request.Context(), projectID)
	c.JSON(http.StatusOK, gin.H{"progress": pct})
}

type createTaskRequest struct {
	Name      string `json:"name" binding:"required"`
	Status    string `json:"status"`
	Progress  *int   `json:"progress"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// CreateTask adds a task under a project. Dates are optional; a dateless
// task still counts toward progress but is never drawn on the timeline.
func (h *ProjectHandler) CreateTask(c *gin.Context) {
	projectID := model.FlexID(c.Param("id"))

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	t := &model.Task{
		ProjectID: projectID,
		Name:      req.Name,
		Status:    model.NormalizeStatus(req.Status),
		Progress:  req.Progress,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}

	id, err := h.taskRepo.Insert(c.Request.Context(), t)
	if err != nil {
		h.logger.Error("CreateTask failed",
			zap.String("project_id", projectID.String()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}

	t.ID = id
	h.viewCache.InvalidateProject(c.Request.Context(), projectID)
	c.JSON(http.StatusCreated, gin.H{"task": t})
}

type assignUserRequest struct {
	UserID model.FlexID `json:"user_id" binding:"required"`
}

func (h *ProjectHandler) AssignUser(c *gin.Context) {
	projectID := model.FlexID(c.Param("id"))

	var req assignUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
		return
	}

	if err := h.projectRepo.AssignUser(c.Request.Context(), projectID, req.UserID); err != nil {
		h.logger.Error("AssignUser failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assign user"})
		return
	}

	h.viewCache.InvalidateProject(c.Request.Context(), projectID)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type addUpdateRequest struct {
	Date    string `json:"date" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func (h *ProjectHandler) AddUpdate(c *gin.Context) {
	projectID := model.FlexID(c.Param("id"))

	var req addUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date and content required"})
		return
	}

	u := &model.Update{
		ProjectID: projectID,
		Date:      req.Date,
		Content:   req.Content,
	}
	id, err := h.updateRepo.Insert(c.Request.Context(), u)
	if err != nil {
		h.logger.Error("AddUpdate failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add update"})
		return
	}

	u.ID = id
	h.viewCache.InvalidateProject(c.Request.Context(), projectID)
	c.JSON(http.StatusCreated, gin.H{"update": u})
}

type addDocumentRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type"`
	Size string `json:"size"`
	URL  string `json:"url" binding:"required"`
}

func (h *ProjectHandler) AddDocument(c *gin.Context) {
	projectID := model.FlexID(c.Param("id"))

	var req addDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and url required"})
		return
	}

	d := &model.Document{
		Name: req.Name,
		Type: req.Type,
		Size: req.Size,
		URL:  req.URL,
	}
	id, err := h.documentRepo.Insert(c.Request.Context(), projectID, d)
	if err != nil {
		h.logger.Error("AddDocument failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add document"})
		return
	}

	d.ID = id
	h.viewCache.InvalidateProject(c.Request.Context(), projectID)
	c.JSON(http.StatusCreated, gin.H{"document": d})
}

type addModel3DRequest struct {
	Name string `json:"name" binding:"required"`
	URL  string `json:"url" binding:"required"`
}

// GetModel3D returns the project's 3D preview metadata, if any.
func (h *ProjectHandler) GetModel3D(c *gin.Context) {
	projectID := model.FlexID(c.Param("id"))

	m, err := h.model3dRepo.GetByProject(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no 3d model for project"})
			return
		}
		h.logger.Error("GetModel3D failed",
			zap.String("project_id", projectID.String()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch 3d model"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"model3d": m})
}

func (h *ProjectHandler) AddModel3D(c *gin.Context) {
	projectID := model.FlexID(c.Param("id"))

	var req addModel3DRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and url required"})
		return
	}

	m := &model.Model3D{
		ProjectID: projectID,
		Name:      req.Name,
		URL:       req.URL,
	}
	id, err := h.model3dRepo.Insert(c.Request.Context(), m)
	if err != nil {
		h.logger.Error("AddModel3D failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add 3d model"})
		return
	}

	m.ID = id
	c.JSON(http.StatusCreated, gin.H{"model3d": m})
}
