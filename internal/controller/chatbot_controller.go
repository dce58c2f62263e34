package controller

import (
	"time"

	"fort-chatbot-be/internal/constant"
	"fort-chatbot-be/internal/dto"
	"fort-chatbot-be/internal/pkg/serverutils"
	"fort-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sessionCookieMaxAge = 30 * 24 * time.Hour

type IChatbotController interface {
	RegisterRoutes(r fiber.Router, rateLimiter fiber.Handler)
	SendChat(ctx *fiber.Ctx) error
}

type chatbotController struct {
	chatbotService service.IChatbotService
}

func NewChatbotController(chatbotService service.IChatbotService) IChatbotController {
	return &chatbotController{
		chatbotService: chatbotService,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router, rateLimiter fiber.Handler) {
	r.Post("/chat", rateLimiter, c.SendChat)
}

func (c *chatbotController) SendChat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("invalid request body", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	sessionId := resolveSessionId(ctx)

	res, err := c.chatbotService.SendChat(ctx.UserContext(), sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

// resolveSessionId prefers the X-Session-Id header, then the session cookie.
// A caller with neither gets a fresh id and a cookie carrying it.
func resolveSessionId(ctx *fiber.Ctx) string {
	if id := ctx.Get(constant.SessionHeaderName); id != "" {
		return id
	}
	if id := ctx.Cookies(constant.SessionCookieName); id != "" {
		return id
	}

	id := uuid.NewString()
	ctx.Cookie(&fiber.Cookie{
		Name:     constant.SessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(sessionCookieMaxAge.Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return id
}
