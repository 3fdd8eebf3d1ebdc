package handlers

import (
	"Recipe-Website/domain"
	"Recipe-Website/internal/api/presenters"
	"Recipe-Website/internal/middleware"
	"Recipe-Website/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

type (
	UserHandler interface {
		Register(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		Me(c *fiber.Ctx) error
	}

	// AccountHandler serves the same operations over a cookie session.
	AccountHandler interface {
		Register(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		Logout(c *fiber.Ctx) error
		Me(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
		validator   *validator.Validate
	}

	accountHandler struct {
		userService user.UserService
		validator   *validator.Validate
		sessions    *session.Store
	}
)

func NewUserHandler(userService user.UserService, validator *validator.Validate) UserHandler {
	return &userHandler{
		userService: userService,
		validator:   validator,
	}
}

func NewAccountHandler(userService user.UserService, validator *validator.Validate, sessions *session.Store) AccountHandler {
	return &accountHandler{
		userService: userService,
		validator:   validator,
		sessions:    sessions,
	}
}

func (h *userHandler) Register(c *fiber.Ctx) error {
	req := new(domain.RegisterRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRegister, err)
	}

	res, err := h.userService.Register(c.UserContext(), *req)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedRegister, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRegister)
}

func (h *userHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLogin, err)
	}

	res, err := h.userService.Login(c.UserContext(), *req)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedLogin, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLogin)
}

func (h *userHandler) Me(c *fiber.Ctx) error {
	res, err := h.userService.Me(c.UserContext(), middleware.IdentityFrom(c))
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetMe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMe)
}

func (h *accountHandler) Register(c *fiber.Ctx) error {
	req := new(domain.RegisterRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRegister, err)
	}

	res, err := h.userService.Register(c.UserContext(), *req)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedRegister, err)
	}
	return h.signIn(c, res, domain.MessageSuccessRegister)
}

func (h *accountHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLogin, err)
	}

	res, err := h.userService.Login(c.UserContext(), *req)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedLogin, err)
	}
	return h.signIn(c, res, domain.MessageSuccessLogin)
}

func (h *accountHandler) Logout(c *fiber.Ctx) error {
	if err := middleware.EndSession(c, h.sessions); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedLogout, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessLogout)
}

func (h *accountHandler) Me(c *fiber.Ctx) error {
	identity, err := middleware.SessionIdentity(c, h.sessions)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetMe, err)
	}
	if identity.IsAnonymous() {
		return presenters.FailedResponse(c, domain.MessageFailedGetMe, domain.ErrTokenNotFound)
	}

	res, err := h.userService.Me(c.UserContext(), identity)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetMe, err)
	}
	res.Token = ""
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMe)
}

func (h *accountHandler) signIn(c *fiber.Ctx, res domain.AuthResponse, message string) error {
	id, err := uuid.Parse(res.UserID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, message, err)
	}
	role := domain.RoleUser
	if res.IsAdmin {
		role = domain.RoleAdmin
	}

	if err := middleware.StartSession(c, h.sessions, domain.Identity{UserID: id, Role: role}); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, message, err)
	}
	res.Token = ""
	return presenters.SuccessResponse(c, res, fiber.StatusOK, message)
}
