package toolapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/openlabollioules/tools/internal/constant"
	"github.com/openlabollioules/tools/internal/generator"
	"github.com/openlabollioules/tools/internal/middleware"
	"github.com/openlabollioules/tools/internal/service"
	"github.com/openlabollioules/tools/pkg/logger"
)

type ToolHandler struct {
	toolService service.ToolService
}

func RegisterToolHandler(toolService service.ToolService) {
	handler := &ToolHandler{
		toolService: toolService,
	}
	Handlers = append(Handlers, handler)
}

func (h *ToolHandler) RegisterRoutes(router fiber.Router, middlewares ...fiber.Handler) {
	tools := router.Group("/tools", middlewares...)
	{
		tools.Post("/docx", h.GenerateDocx)
		tools.Post("/pptx", h.GeneratePptx)
		tools.Post("/xlsx", h.GenerateXlsx)
		tools.Post("/file", h.CreateFile)
	}
}

// GenerateDocx 生成 Word 文档
//
//	@Summary	生成 Word 文档并返回下载来源
//	@Tags		tools
//	@Accept		json
//	@Produce	json
//	@Param		request	body		generator.DocxRequest	true	"文档内容"
//	@Success	200		{object}	service.Response{data=service.ToolResult}
//	@Router		/api/v1/tools/docx [post]
func (h *ToolHandler) GenerateDocx(c *fiber.Ctx) error {
	var req generator.DocxRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	user, _ := middleware.CurrentUser(c)
	return c.JSON(service.OK(h.toolService.GenerateDocx(c.Context(), user, req)))
}

// GeneratePptx 生成演示文稿
//
//	@Summary	生成演示文稿并返回下载来源
//	@Tags		tools
//	@Accept		json
//	@Produce	json
//	@Param		request	body		generator.PptxRequest	true	"演示文稿内容"
//	@Success	200		{object}	service.Response{data=service.ToolResult}
//	@Router		/api/v1/tools/pptx [post]
func (h *ToolHandler) GeneratePptx(c *fiber.Ctx) error {
	var req generator.PptxRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	user, _ := middleware.CurrentUser(c)
	return c.JSON(service.OK(h.toolService.GeneratePptx(c.Context(), user, req)))
}

// GenerateXlsx 生成表格
//
//	@Summary	生成 Excel 表格并返回下载来源
//	@Tags		tools
//	@Accept		json
//	@Produce	json
//	@Param		request	body		generator.XlsxRequest	true	"表格内容"
//	@Success	200		{object}	service.Response{data=service.ToolResult}
//	@Router		/api/v1/tools/xlsx [post]
func (h *ToolHandler) GenerateXlsx(c *fiber.Ctx) error {
	var req generator.XlsxRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	user, _ := middleware.CurrentUser(c)
	return c.JSON(service.OK(h.toolService.GenerateXlsx(c.Context(), user, req)))
}

// CreateFile 创建普通文件
//
//	@Summary	创建文件并返回下载来源
//	@Tags		tools
//	@Accept		json
//	@Produce	json
//	@Param		request	body		generator.FileRequest	true	"文件内容"
//	@Success	200		{object}	service.Response{data=service.ToolResult}
//	@Router		/api/v1/tools/file [post]
func (h *ToolHandler) CreateFile(c *fiber.Ctx) error {
	var req generator.FileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	user, _ := middleware.CurrentUser(c)
	return c.JSON(service.OK(h.toolService.CreateFile(c.Context(), user, req)))
}

func badRequest(c *fiber.Ctx, err error) error {
	logger.Error("解析请求参数失败", logger.F(constant.LogFieldPath, c.Path()), logger.F(constant.LogFieldError, err))
	return c.Status(fiber.StatusBadRequest).JSON(service.Error(constant.ErrInvalidParams))
}
