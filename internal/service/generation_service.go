package service

import (
	"github.com/openlabollioules/tools/internal/model"
	"gorm.io/gorm"
)

type generationService struct {
	*BaseService[*model.Generation]
}

func NewGenerationService(db *gorm.DB) GenerationService {
	srv := new(generationService)
	srv.BaseService = NewBaseService[*model.Generation](db, BaseServiceConfig[*model.Generation]{
		BuildCondition:  srv.BuildCondition,
		ListOmitColumns: []string{"error"},
	})
	return srv
}

func (s *generationService) BuildCondition(query *gorm.DB, condition *model.Generation) *gorm.DB {
	if condition != nil {
		if condition.UserID != "" {
			query = query.Where("user_id = ?", condition.UserID)
		}
		if condition.Kind != "" {
			query = query.Where("kind = ?", condition.Kind)
		}
		if condition.Status != 0 {
			query = query.Where("status = ?", condition.Status)
		}
	}
	return query
}
