package model

// HostUser 宿主的用户表，只读
type HostUser struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(255)"`
	Name      string `json:"name" gorm:"type:varchar(255)"`
	Email     string `json:"email" gorm:"type:varchar(255)"`
	Role      string `json:"role" gorm:"type:varchar(255)"`
	CreatedAt int64  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt int64  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (HostUser) TableName() string {
	return "user"
}

// FileMeta 上传文件的 meta 字段
type FileMeta struct {
	Name        string                 `json:"name"`
	ContentType string                 `json:"content_type"`
	Size        int64                  `json:"size"`
	Data        map[string]interface{} `json:"data"`
}

// HostFile 宿主的文件表，上传时插入，时间为秒级时间戳
type HostFile struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(255)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(255);index"`
	Hash      *string   `json:"hash"`
	Filename  string    `json:"filename" gorm:"type:text"`
	Path      string    `json:"path" gorm:"type:text"`
	Meta      *FileMeta `json:"meta" gorm:"serializer:json"`
	CreatedAt int64     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt int64     `json:"updated_at" gorm:"autoUpdateTime"`
}

func (HostFile) TableName() string {
	return "file"
}
