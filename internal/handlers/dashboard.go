package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"taskboard/internal/models"
	"taskboard/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"statusLabel": func(status string) string {
		switch status {
		case models.TaskStatusCompleted:
			return "Concluída"
		case models.TaskStatusInProgress:
			return "Em Andamento"
		default:
			return "Pendente"
		}
	},
	"priorityLabel": func(priority string) string {
		switch priority {
		case models.TaskPriorityHigh:
			return "Alta"
		case models.TaskPriorityMedium:
			return "Média"
		default:
			return "Baixa"
		}
	},
	"roleLabel": func(role string) string {
		if role == models.RoleAdmin {
			return "Administrador"
		}
		return "Usuário"
	},
	"date": func(t time.Time) string {
		return t.Format("02/01/2006")
	},
}

// LoadTemplates parses the embedded HTML templates for gin's renderer.
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

type DashboardHandler struct {
	base
	taskService  services.TaskService
	userService  services.UserService
	statsService services.StatsService
}

func NewDashboardHandler(db *gorm.DB, taskService services.TaskService, userService services.UserService, statsService services.StatsService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		base:         newBase(db, logger),
		taskService:  taskService,
		userService:  userService,
		statsService: statsService,
	}
}

type statCard struct {
	Title string
	Value int64
	Tone  string
}

func (h *DashboardHandler) Index(c *gin.Context) {
	var (
		tasks []models.Task
		users []models.User
		stats models.Stats
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	var db *gorm.DB
	if h.db != nil {
		db = h.db.WithContext(ctx)
	}
	g.Go(func() (err error) {
		tasks, err = h.taskService.GetTasks(db)
		return err
	})
	g.Go(func() (err error) {
		users, err = h.userService.GetUsers(db)
		return err
	})
	g.Go(func() (err error) {
		stats, err = h.statsService.GetStats(db)
		return err
	})

	if err := g.Wait(); err != nil {
		h.logger.Error(MsgDashboardFailed, zap.Error(err))
		c.String(http.StatusInternalServerError, MsgDashboardFailed)
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Cards": []statCard{
			{Title: "Total de Tarefas", Value: stats.TotalTasks, Tone: "blue"},
			{Title: "Concluídas", Value: stats.CompletedTasks, Tone: "green"},
			{Title: "Em Andamento", Value: stats.InProgressTasks, Tone: "yellow"},
			{Title: "Usuários", Value: stats.TotalUsers, Tone: "purple"},
		},
		"Tasks": tasks,
		"Users": users,
	})
}
