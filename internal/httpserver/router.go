package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"clientportal/internal/handler"
	"clientportal/internal/service/auth"
	"clientportal/pkg/rbac"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Project   *handler.ProjectHandler
	Task      *handler.TaskHandler
	Dashboard *handler.DashboardHandler
}

func NewRouter(h Handlers, authService *auth.Service, logger *zap.Logger, db *pgxpool.Pool, rdb *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(TraceMiddleware())
	r.Use(RequestLogMiddleware(logger))

	// Health endpoints
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}

		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				c.JSON(500, gin.H{"status": "redis_not_ready"})
				return
			}
		}

		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/auth/login", h.Auth.Login)

	authorized := r.Group("/")
	authorized.Use(RequireAuth(authService))
	{
		authorized.GET("/projects", h.Project.ListProjects)
		authorized.GET("/dashboard", h.Dashboard.GetDashboard)
		authorized.GET("/tasks", h.Task.ListTasks)
		authorized.GET("/projects/:id/model3d", h.Project.GetModel3D)
		authorized.POST("/tasks/:id/complete",
			RequirePermission(rbac.PermissionCompleteTask),
			h.Task.CompleteTask,
		)

		admin := authorized.Group("/")
		{
			admin.POST("/users", RequirePermission(rbac.PermissionCreateUser), h.User.CreateUser)
			admin.GET("/users", RequirePermission(rbac.PermissionCreateUser), h.User.ListUsers)
			admin.GET("/users/:id", RequirePermission(rbac.PermissionCreateUser), h.User.GetUser)
			admin.POST("/projects", RequirePermission(rbac.PermissionCreateProject), h.Project.CreateProject)
			admin.PUT("/projects/:id/progress", RequirePermission(rbac.PermissionUpdateProject), h.Project.UpdateProgress)
			admin.POST("/projects/:id/users", RequirePermission(rbac.PermissionUpdateProject), h.Project.AssignUser)
			admin.POST("/projects/:id/tasks", RequirePermission(rbac.PermissionUpdateProject), h.Project.CreateTask)
			admin.POST("/projects/:id/updates", RequirePermission(rbac.PermissionCreateUpdate), h.Project.AddUpdate)
			admin.POST("/projects/:id/documents", RequirePermission(rbac.PermissionCreateDocument), h.Project.AddDocument)
			admin.POST("/projects/:id/models3d", RequirePermission(rbac.PermissionCreateModel3D), h.Project.AddModel3D)
		}
	}

	return r
}
