package services

import (
	"fmt"

	"taskboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SeedResult struct {
	Users int64 `json:"users"`
	Tasks int64 `json:"tasks"`
}

func SampleUsers() []models.User {
	return []models.User{
		{Name: "João Silva", Email: "joao@devops.com", Role: models.RoleAdmin},
		{Name: "Maria Santos", Email: "maria@devops.com", Role: models.RoleUser},
		{Name: "Pedro Costa", Email: "pedro@devops.com", Role: models.RoleUser},
	}
}

func SampleTasks() []models.Task {
	return []models.Task{
		{
			Title:       "Configurar Pipeline CI/CD",
			Description: "Implementar GitHub Actions para automatizar deploy",
			Status:      models.TaskStatusInProgress,
			Priority:    models.TaskPriorityHigh,
		},
		{
			Title:       "Dockerizar Aplicação",
			Description: "Criar Dockerfile e docker-compose.yml",
			Status:      models.TaskStatusCompleted,
			Priority:    models.TaskPriorityHigh,
		},
		{
			Title:       "Configurar Monitoramento",
			Description: "Implementar logs e métricas da aplicação",
			Status:      models.TaskStatusPending,
			Priority:    models.TaskPriorityMedium,
		},
		{
			Title:       "Testes Automatizados",
			Description: "Criar testes unitários e de integração",
			Status:      models.TaskStatusPending,
			Priority:    models.TaskPriorityHigh,
		},
		{
			Title:       "Deploy na AWS",
			Description: "Configurar infraestrutura na AWS com Terraform",
			Status:      models.TaskStatusPending,
			Priority:    models.TaskPriorityMedium,
		},
		{
			Title:       "Documentação DevOps",
			Description: "Criar guias de deploy e operação",
			Status:      models.TaskStatusInProgress,
			Priority:    models.TaskPriorityLow,
		},
	}
}

// Seed inserts the sample rows. Users whose email already exists are
// skipped; tasks have no natural key and are inserted on every run.
func Seed(db *gorm.DB) (SeedResult, error) {
	var result SeedResult

	users := SampleUsers()
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&users)
	if res.Error != nil {
		return result, fmt.Errorf("seed users: %w", res.Error)
	}
	result.Users = res.RowsAffected

	tasks := SampleTasks()
	res = db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tasks)
	if res.Error != nil {
		return result, fmt.Errorf("seed tasks: %w", res.Error)
	}
	result.Tasks = res.RowsAffected

	return result, nil
}
