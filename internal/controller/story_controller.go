package controller

import (
	"mime/multipart"

	"placement-mentor-be/internal/dto"
	"placement-mentor-be/internal/pkg/serverutils"
	"placement-mentor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStoryController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type storyController struct {
	storyService service.IStoryService
}

func NewStoryController(storyService service.IStoryService) IStoryController {
	return &storyController{
		storyService: storyService,
	}
}

func (c *storyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/story/v1")
	h.Get("", c.List)
	h.Get(":slug", c.Show)

	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Put(":slug", c.Update)
	h.Delete(":slug", c.Delete)
}

func (c *storyController) Create(ctx *fiber.Ctx) error {
	authorId, _ := ctx.Locals("user_id").(string)

	var req dto.CreateStoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	asset, err := formAsset(ctx)
	if err != nil {
		return err
	}

	res, err := c.storyService.Create(ctx.Context(), authorId, &req, asset)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create story", res))
}

func (c *storyController) List(ctx *fiber.Ctx) error {
	var req dto.ListStoriesRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.storyService.List(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list stories", res))
}

func (c *storyController) Show(ctx *fiber.Ctx) error {
	slug := ctx.Params("slug")

	res, err := c.storyService.Get(ctx.Context(), slug)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show story", res))
}

func (c *storyController) Update(ctx *fiber.Ctx) error {
	slug := ctx.Params("slug")

	var req dto.UpdateStoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	asset, err := formAsset(ctx)
	if err != nil {
		return err
	}

	res, err := c.storyService.Update(ctx.Context(), slug, &req, asset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update story", res))
}

func (c *storyController) Delete(ctx *fiber.Ctx) error {
	slug := ctx.Params("slug")

	var assetId *string
	if q := ctx.Query("asset_id"); q != "" {
		assetId = &q
	}

	if err := c.storyService.Delete(ctx.Context(), slug, assetId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete story", nil))
}

// formAsset pulls the optional "image" part out of a multipart body. A plain
// JSON body simply has no asset.
func formAsset(ctx *fiber.Ctx) (*service.UploadedAsset, error) {
	fileHeader, err := ctx.FormFile("image")
	if err != nil || fileHeader == nil {
		return nil, nil
	}
	return openAsset(fileHeader)
}

func openAsset(fileHeader *multipart.FileHeader) (*service.UploadedAsset, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "could not read uploaded image")
	}
	return &service.UploadedAsset{
		Filename: fileHeader.Filename,
		File:     file,
	}, nil
}
