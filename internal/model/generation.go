package model

import (
	"github.com/openlabollioules/tools/pkg/util"
	"gorm.io/gorm"
)

// Generation 每次工具调用一条记录
type Generation struct {
	BaseModel
	RequestID  string `json:"requestId" gorm:"type:varchar(32);index"`
	Kind       string `json:"kind" gorm:"type:varchar(10);not null"`
	Title      string `json:"title" gorm:"type:varchar(255)"`
	UserID     string `json:"userId" gorm:"type:varchar(64);index;not null"`
	FileID     string `json:"fileId" gorm:"type:varchar(64)"`
	Filename   string `json:"filename" gorm:"type:varchar(255)"`
	Status     int    `json:"status" gorm:"type:int;not null"` // 1: 成功, -1: 失败
	Error      string `json:"error,omitempty" gorm:"type:text"`
	DurationMs int64  `json:"durationMs"`
}

func (g *Generation) TableComment() string {
	return "文档生成记录表"
}

// BeforeCreate 创建前钩子
func (g *Generation) BeforeCreate(tx *gorm.DB) error {
	if g.ID == 0 {
		g.ID = util.NewID()
	}
	return nil
}

func init() {
	models = append(models, &Generation{})
}
