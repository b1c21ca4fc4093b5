package handlers

import (
	"errors"
	"log"

	"journal/internal/middleware"
	"journal/internal/models"
	"journal/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app. Registration
// and the user listing are public; everything addressing a single account
// requires a bearer token.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	router.Post("/users", h.HandleRegister)
	router.Get("/users", h.HandleGetUsers)
	router.Get("/users/:username", authRequired, h.HandleGetUser)
	router.Put("/users/:username", authRequired, h.HandleUpdateUser)
	router.Delete("/users/:username", authRequired, h.HandleDeleteUser)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	FirstName string `json:"FirstName" validate:"required"`
	LastName  string `json:"LastName" validate:"required"`
	UserName  string `json:"UserName" validate:"required,alphanum,min=5"`
	Password  string `json:"Password" validate:"required,min=6"`
	Email     string `json:"Email" validate:"required,email"`
}

// HandleRegister handles new user registration.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return handleValidationError(c, err)
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserName:  req.UserName,
		Email:     req.Email,
	}
	created, err := h.userService.Register(user, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Registration failed",
				"error":   err.Error(),
			})
		}
		log.Printf("Error registering user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not register user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    created,
	})
}

// HandleGetUsers retrieves all users.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAll()
	if err != nil {
		log.Printf("Error getting all users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve users",
		})
	}
	return c.JSON(users)
}

// HandleGetUser retrieves a single user by username.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	username := c.Params("username")
	user, err := h.userService.GetByUserName(username)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "User not found",
				"error":   err.Error(),
			})
		}
		log.Printf("Error getting user %s: %v", username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve user",
		})
	}
	return c.JSON(user)
}

// UpdateUserRequest represents the request body for a credential update.
// Omitted fields keep their current values.
type UpdateUserRequest struct {
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
	UserName  string `json:"UserName" validate:"omitempty,alphanum,min=5"`
	Password  string `json:"Password" validate:"omitempty,min=6"`
	Email     string `json:"Email" validate:"omitempty,email"`
}

// HandleUpdateUser updates the authenticated user's own account.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return handleValidationError(c, err)
	}

	actingUser := middleware.UserFromContext(c)
	updated, err := h.userService.Update(actingUser, c.Params("username"), services.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserName:  req.UserName,
		Password:  req.Password,
		Email:     req.Email,
	})
	if err != nil {
		if errors.Is(err, services.ErrPermissionDenied) || errors.Is(err, services.ErrConflict) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Update failed",
				"error":   err.Error(),
			})
		}
		log.Printf("Error updating user %s: %v", c.Params("username"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update user",
		})
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    updated,
	})
}

// HandleDeleteUser deletes the authenticated user's own account.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	actingUser := middleware.UserFromContext(c)
	username := c.Params("username")

	if err := h.userService.Delete(actingUser, username); err != nil {
		if errors.Is(err, services.ErrPermissionDenied) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Deletion failed",
				"error":   err.Error(),
			})
		}
		log.Printf("Error deleting user %s: %v", username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete user",
		})
	}

	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
