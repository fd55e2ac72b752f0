package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	config *viper.Viper
	once   sync.Once
)

func init() {
	// 未调用 Init 时也能读取默认值
	config = newViper()
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("TOOLS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Init 初始化配置
func Init(configFiles ...string) error {
	var err error
	once.Do(func() {
		v := newViper()
		configFile := "config.yaml"
		if len(configFiles) > 0 && configFiles[0] != "" {
			configFile = configFiles[0]
		}
		v.SetConfigFile(configFile)

		// 读取配置文件，文件不存在时使用默认值
		if err = v.ReadInConfig(); err != nil {
			var pathErr *os.PathError
			if errors.As(err, &pathErr) || errors.As(err, new(viper.ConfigFileNotFoundError)) {
				err = nil
			} else {
				err = fmt.Errorf("%w: read config file failed: %v", ErrInvalidConfig, err)
				return
			}
		} else {
			v.WatchConfig()
		}
		config = v
	})
	return err
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.app_name", "doc-tools")
	v.SetDefault("server.node_id", 1)
	v.SetDefault("server.print_routes", false)

	v.SetDefault("log.filename", "logs/app.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", true)
	v.SetDefault("log.console", false)

	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.dsn", "data/tools.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "openwebui")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 3600)

	v.SetDefault("cache.redis.enabled", false)
	v.SetDefault("cache.redis.host", "localhost")
	v.SetDefault("cache.redis.port", 6379)
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.pool_size", 10)
	v.SetDefault("cache.user_ttl", "300s")

	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.jwt_secret", "t0p-s3cr3t")
	v.SetDefault("auth.trust_forwarded_user", false)
	v.SetDefault("auth.trusted_proxies", []string{})

	v.SetDefault("security.allowed_origins", "*")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.max_requests", 120)
	v.SetDefault("rate_limit.duration", 60)

	v.SetDefault("output.dir", "./tmp")
	v.SetDefault("output.keep_files", false)
	v.SetDefault("output.min_free_mb", 50)
	v.SetDefault("output.transliterate", false)

	v.SetDefault("storage.mode", "database")
	v.SetDefault("storage.api_base_url", "http://localhost:3000/api/v1/files/")
	v.SetDefault("storage.upload_dir", "data/uploads")
	v.SetDefault("storage.upload_timeout", "30s")

	v.SetDefault("docx.template", "./templates/docx/templates_new.docx")
	v.SetDefault("docx.prefix", "CS-IN_")
	v.SetDefault("docx.logo_width_in", 2.0)
	v.SetDefault("docx.toc_title", "Table des matières")
	v.SetDefault("docx.bibliography_title", "Bibliographie / Références")
	v.SetDefault("docx.inline_markdown", true)
	v.SetDefault("docx.styles", map[string]interface{}{
		"cover_title": "Title",
		"title":       "Section",
		"subtitle":    "Subtitle",
		"heading1":    "Titre1-Numeroté",
		"heading2":    "Titre2-Numéroté",
		"heading3":    "Titre3-Numéroté",
		"heading4":    "Heading 4",
		"heading5":    "Heading 5",
		"normal":      "Normal",
		"body":        "Paragraphe standard",
		"section":     "Section",
		"caption":     "Caption",
		"list_bullet": "List Bullet",
	})
	v.SetDefault("docx.fonts.main", "Calibri")
	v.SetDefault("docx.fonts.heading", "Arial")
	v.SetDefault("docx.fonts.title", "Arial")

	v.SetDefault("pptx.template_dir", "./templates/")
	v.SetDefault("pptx.fr_dir", "fr/")
	v.SetDefault("pptx.en_dir", "en/")
	v.SetDefault("pptx.level_quirk", true)
	v.SetDefault("pptx.indent_emu", 228600)
	v.SetDefault("pptx.layouts.default", map[string]interface{}{
		"title_and_content": 1,
		"abstract":          2,
		"chapter_title":     3,
		"basic_content":     4,
		"final_slide_fr":    12,
		"final_slide_en":    13,
		"title_slot":        0,
		"author_slot":       1,
		"date_slot":         3,
		"chapter_slot":      0,
		"subtitle_slot":     1,
		"content_title":     0,
		"content_body":      1,
	})

	v.SetDefault("xlsx.header_fill", "1F4E78")
	v.SetDefault("xlsx.alt_fill", "F2F2F2")
	v.SetDefault("xlsx.grid", "D3D3D3")
	v.SetDefault("xlsx.table_style", "TableStyleMedium9")
	v.SetDefault("xlsx.header_font", "Arial")
}

// Get 获取配置值
func Get(key string) interface{} {
	return config.Get(key)
}

// GetString 获取字符串配置值
func GetString(key string) string {
	return config.GetString(key)
}

// GetInt 获取整数配置值
func GetInt(key string) int {
	return config.GetInt(key)
}

// GetInt64 获取64位整数配置值
func GetInt64(key string) int64 {
	return config.GetInt64(key)
}

// GetUint64 获取64位无符号整数配置值
func GetUint64(key string) uint64 {
	return config.GetUint64(key)
}

// GetFloat64 获取浮点数配置值
func GetFloat64(key string) float64 {
	return config.GetFloat64(key)
}

// GetBool 获取布尔配置值
func GetBool(key string) bool {
	return config.GetBool(key)
}

// GetDuration 获取时间间隔配置值
func GetDuration(key string) time.Duration {
	return config.GetDuration(key)
}

// GetStringSlice 获取字符串切片配置值
func GetStringSlice(key string) []string {
	return config.GetStringSlice(key)
}

// GetStringMapString 获取字符串映射配置值
func GetStringMapString(key string) map[string]string {
	return config.GetStringMapString(key)
}

// GetIntMap 获取整数映射配置值。配置文件中的同名映射会整体遮住默认映射，
// keys 中列出的键逐个读取，未写在文件里的键仍取默认值
func GetIntMap(key string, keys ...string) map[string]int {
	raw := config.GetStringMap(key)
	out := make(map[string]int, len(raw)+len(keys))
	for k := range raw {
		out[k] = config.GetInt(key + "." + k)
	}
	for _, k := range keys {
		if _, ok := out[k]; ok {
			continue
		}
		if config.IsSet(key + "." + k) {
			out[k] = config.GetInt(key + "." + k)
		}
	}
	return out
}

// Sub 获取子配置的所有键
func Sub(key string) map[string]interface{} {
	return config.GetStringMap(key)
}

// Set 设置配置值
func Set(key string, value interface{}) {
	config.Set(key, value)
}

// IsSet 检查配置值是否已设置
func IsSet(key string) bool {
	return config.IsSet(key)
}

// AllSettings 获取所有配置
func AllSettings() map[string]interface{} {
	return config.AllSettings()
}

// GetDSN 获取数据库连接字符串
func GetDSN() string {
	dbType := GetString("database.type")
	switch strings.ToLower(dbType) {
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			GetString("database.host"),
			GetInt("database.port"),
			GetString("database.user"),
			GetString("database.password"),
			GetString("database.dbname"),
		)
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			GetString("database.user"),
			GetString("database.password"),
			GetString("database.host"),
			GetInt("database.port"),
			GetString("database.dbname"),
		)
	case "sqlite":
		return GetString("database.dsn")
	default:
		return ""
	}
}

// GetJWTSecret 获取JWT密钥
func GetJWTSecret() []byte {
	return []byte(GetString("auth.jwt_secret"))
}

// GetServerAddress 获取服务器地址
func GetServerAddress() string {
	return fmt.Sprintf(":%d", GetInt("server.port"))
}
