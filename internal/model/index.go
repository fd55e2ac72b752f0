package model

import (
	"fmt"
	"time"

	"github.com/openlabollioules/tools/pkg/logger"
	"gorm.io/gorm"
)

type Model interface {
	TableComment() string
	GetID() uint64
}

type BaseModel struct {
	ID        uint64    `json:"id,string" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt,omitzero" gorm:"not null"`
}

func (b *BaseModel) TableComment() string {
	return "基础模型"
}

func (b *BaseModel) GetID() uint64 {
	return b.ID
}

// 本服务自有的表
var models []Model

// AutoMigrate 迁移自有表。宿主的 user/file 表由宿主维护，不在此迁移
func AutoMigrate(db *gorm.DB, dbType string) error {
	switch dbType {
	case "mysql":
		migrator := db.Migrator()
		for _, m := range models {
			tx := db
			if !migrator.HasTable(m) {
				tx = db.Set("gorm:table_options", fmt.Sprintf("ENGINE=innoDB DEFAULT CHARSET=utf8mb4 COMMENT='%s';", m.TableComment()))
			}
			if err := tx.AutoMigrate(m); err != nil {
				logger.Error("自动迁移表失败", logger.F("error", err))
				return err
			}
		}
	case "postgres":
		if err := migrateAll(db); err != nil {
			return err
		}
		// 添加表注释
		for _, m := range models {
			stmt := &gorm.Statement{DB: db}
			if err := stmt.Parse(m); err != nil {
				logger.Error("解析模型失败", logger.F("error", err))
				continue
			}
			if err := db.Exec(fmt.Sprintf("COMMENT ON TABLE %s IS '%s';", stmt.Table, m.TableComment())).Error; err != nil {
				logger.Error("添加表注释失败", logger.F("error", err))
			}
		}
	case "sqlite":
		return migrateAll(db)
	default:
		logger.Error("不支持的数据库类型", logger.F("type", dbType))
		return fmt.Errorf("unsupported database type: %s", dbType)
	}
	return nil
}

func migrateAll(db *gorm.DB) error {
	var mList []interface{}
	for _, m := range models {
		mList = append(mList, m)
	}
	if err := db.AutoMigrate(mList...); err != nil {
		logger.Error("自动迁移表失败", logger.F("error", err))
		return err
	}
	return nil
}

// MigrateHostTables 创建宿主的 user/file 表，仅用于本地开发和测试
func MigrateHostTables(db *gorm.DB) error {
	return db.AutoMigrate(&HostUser{}, &HostFile{})
}
