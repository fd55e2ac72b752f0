package sysapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/openlabollioules/tools/internal/constant"
	"github.com/openlabollioules/tools/internal/middleware"
	"github.com/openlabollioules/tools/internal/model"
	"github.com/openlabollioules/tools/internal/service"
)

type GenerationHandler struct {
	generationService service.GenerationService
}

func RegisterGenerationHandler(generationService service.GenerationService) {
	handler := &GenerationHandler{
		generationService: generationService,
	}
	Handlers = append(Handlers, handler)
}

func (h *GenerationHandler) RegisterRoutes(router fiber.Router, middlewares ...fiber.Handler) {
	generations := router.Group("/generations", middlewares...)
	{
		generations.Get("", h.listGenerations)
		generations.Get("/:id", h.getGeneration)
	}
}

// listGenerations 当前用户的生成记录
//
//	@Summary	当前用户的生成记录
//	@Tags		generations
//	@Produce	json
//	@Param		offset	query		int		false	"偏移"
//	@Param		limit	query		int		false	"数量"
//	@Param		kind	query		string	false	"docx/pptx/xlsx/file"
//	@Success	200		{object}	service.Response{data=service.ListResponse}
//	@Router		/api/v1/generations [get]
func (h *GenerationHandler) listGenerations(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(service.Error(constant.ErrUnauthorized))
	}
	offset, limit := service.NormalizePage(c.QueryInt("offset", 0), c.QueryInt("limit", service.DefaultPageSize))

	condition := &model.Generation{UserID: user.ID, Kind: c.Query("kind")}
	list, total, err := h.generationService.List(c.Context(), condition, offset, limit)
	if err != nil {
		return c.Status(constant.GetErrorCode(err)).JSON(service.Error(err))
	}
	return c.JSON(service.OK(service.NewListResponse(list, total, offset, limit)))
}

// getGeneration 单条生成记录，只能查看自己的
//
//	@Summary	生成记录详情
//	@Tags		generations
//	@Produce	json
//	@Param		id	path		int	true	"记录 ID"
//	@Success	200	{object}	service.Response{data=model.Generation}
//	@Router		/api/v1/generations/{id} [get]
func (h *GenerationHandler) getGeneration(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(service.Error(constant.ErrUnauthorized))
	}
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(service.Error(constant.ErrInvalidParams))
	}
	record, err := h.generationService.Get(c.Context(), id)
	if err != nil {
		return c.Status(constant.GetErrorCode(err)).JSON(service.Error(err))
	}
	if record.UserID != user.ID {
		return c.Status(fiber.StatusNotFound).JSON(service.Error(constant.ErrRecordNotFound))
	}
	return c.JSON(service.OK(record))
}
