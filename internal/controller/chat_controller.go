package controller

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"statement-chat-be/internal/dto"
	"statement-chat-be/internal/pkg/serverutils"
	"statement-chat-be/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	GetSessionState(ctx *fiber.Ctx) error
	ProcessDocument(ctx *fiber.Ctx) error
	ClearDocument(ctx *fiber.Ctx) error
	SendChat(ctx *fiber.Ctx) error
	ResetChat(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("session", c.CreateSession)
	h.Get("session/:id", c.GetSessionState)
	h.Post("session/:id/document", c.ProcessDocument)
	h.Delete("session/:id/document", c.ClearDocument)
	h.Post("session/:id/chat", c.SendChat)
	h.Delete("session/:id/chat", c.ResetChat)
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.chatService.CreateSession(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session created", res))
}

func (c *chatController) GetSessionState(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.chatService.GetSessionState(ctx.Context(), id)
	if err != nil {
		return mapServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Session state", res))
}

func (c *chatController) ProcessDocument(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	fileHeader, err := ctx.FormFile("pdf")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "PDF file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Unable to open uploaded file"))
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Unable to read uploaded file"))
	}

	res, err := c.chatService.ProcessDocument(ctx.Context(), id, payload)
	if err != nil {
		return mapServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("PDF processed! You can now ask questions about its content.", res))
}

func (c *chatController) ClearDocument(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.chatService.ClearDocument(ctx.Context(), id); err != nil {
		return mapServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("PDF context and chat cleared", nil))
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), id, &req)
	if err != nil {
		return mapServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Message sent", res))
}

func (c *chatController) ResetChat(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.chatService.ResetChat(ctx.Context(), id); err != nil {
		return mapServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Chat messages cleared! PDF context remains.", nil))
}

func mapServiceError(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrSessionNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Session not found or expired"))
	}

	var extractionErr *service.ExtractionError
	if errors.As(err, &extractionErr) {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, extractionErr.Reason))
	}

	return err
}
