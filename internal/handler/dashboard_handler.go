package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clientportal/internal/dashboard"
	"clientportal/internal/model"
	"clientportal/internal/service/auth"
	"clientportal/pkg/util"
)

type DashboardHandler struct {
	assembler *dashboard.Assembler
	viewCache *dashboard.ViewCache
	logger    *zap.Logger
}

func NewDashboardHandler(assembler *dashboard.Assembler, viewCache *dashboard.ViewCache, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		assembler: assembler,
		viewCache: viewCache,
		logger:    logger,
	}
}

// GetDashboard assembles the dashboard view for the selected project.
// Without a project_id it returns only the visible project list, the
// "choose a project" state.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	user := auth.UserFromContext(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	selectedID := model.FlexID(c.Query("project_id"))

	if !selectedID.IsZero() {
		if view, ok := h.viewCache.Get(c.Request.Context(), selectedID, user.ID); ok {
			c.JSON(http.StatusOK, view)
			return
		}
	}

	view, err := h.assembler.AssembleForUser(c.Request.Context(), selectedID)
	if err != nil {
		var repoErr *dashboard.RepositoryError
		if errors.As(err, &repoErr) {
			// Recoverable: the UI shows a banner and may retry.
			retryable, errType := util.IsRetryableError(repoErr.Err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":      "failed to load projects",
				"error_type": errType,
				"retryable":  retryable,
			})
			return
		}
		h.logger.Error("GetDashboard failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	if !selectedID.IsZero() && len(view.Tasks)+len(view.Updates)+len(view.Documents) > 0 {
		h.viewCache.Set(c.Request.Context(), selectedID, user.ID, view)
	}

	c.JSON(http.StatusOK, view)
}
