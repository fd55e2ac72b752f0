package service

import (
	"context"
	"net/http"

	"github.com/openlabollioules/tools/internal/constant"
	"github.com/openlabollioules/tools/internal/event"
	"github.com/openlabollioules/tools/internal/generator"
	"github.com/openlabollioules/tools/internal/model"
	"github.com/openlabollioules/tools/internal/storage"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type UserService interface {
	// Get 按宿主用户 ID 查询，带缓存
	Get(ctx context.Context, id string) (*model.HostUser, error)
}

type GenerationService interface {
	Create(ctx context.Context, record *model.Generation) error
	Get(ctx context.Context, id uint64) (*model.Generation, error)
	List(ctx context.Context, condition *model.Generation, offset, limit int) ([]*model.Generation, int64, error)
}

// ToolResult 工具调用结果：result 为来源标记或以 "Error: " 开头的错误描述
type ToolResult struct {
	Result string        `json:"result"`
	Events []event.Event `json:"events"`
}

type ToolService interface {
	GenerateDocx(ctx context.Context, user storage.User, req generator.DocxRequest) *ToolResult
	GeneratePptx(ctx context.Context, user storage.User, req generator.PptxRequest) *ToolResult
	GenerateXlsx(ctx context.Context, user storage.User, req generator.XlsxRequest) *ToolResult
	CreateFile(ctx context.Context, user storage.User, req generator.FileRequest) *ToolResult
}

// /////////////////////////////
// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func OK(data interface{}) *Response {
	return NewResponse(data, nil)
}

func Error(err error) *Response {
	return NewResponse(nil, err)
}

// NewResponse 创建响应
func NewResponse(data interface{}, err error) *Response {
	if err == nil {
		return &Response{
			Code:    http.StatusOK,
			Message: "success",
			Data:    data,
		}
	}

	code := constant.GetErrorCode(err)
	return &Response{
		Code:    code,
		Message: err.Error(),
		Data:    data,
	}
}

// ListResponse 列表响应结构
type ListResponse struct {
	Total  int64       `json:"total"`
	Items  interface{} `json:"items"`
	Offset int         `json:"offset"`
	Limit  int         `json:"limit"`
}

// NewListResponse 创建列表响应
func NewListResponse(items interface{}, total int64, offset, limit int) *ListResponse {
	return &ListResponse{
		Total:  total,
		Items:  items,
		Offset: offset,
		Limit:  limit,
	}
}

// NormalizePage 修正分页参数
func NormalizePage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return offset, limit
}
