package handlers

import (
	"errors"
	"log"

	"journal/internal/middleware"
	"journal/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// EntryHandler handles HTTP requests for journal entries. Every route is
// scoped to the authenticated user; entries of other users are never
// reachable through it.
type EntryHandler struct {
	entryService *services.EntryService
	validate     *validator.Validate
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryService *services.EntryService) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the entry routes with the Fiber app.
func (h *EntryHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	router.Get("/entries", authRequired, h.HandleGetEntries)
	router.Post("/entries", authRequired, h.HandleCreateEntry)
	router.Put("/entries/:title", authRequired, h.HandleUpdateEntry)
	router.Delete("/entries/:title", authRequired, h.HandleDeleteEntry)
}

// HandleGetEntries retrieves the authenticated user's entries.
func (h *EntryHandler) HandleGetEntries(c *fiber.Ctx) error {
	actingUser := middleware.UserFromContext(c)
	entries, err := h.entryService.ListOwn(actingUser)
	if err != nil {
		log.Printf("Error listing entries for user %s: %v", actingUser.UserName, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve entries",
		})
	}
	return c.JSON(entries)
}

// EntryRequest represents the request body for creating or updating an
// entry. Content bounds are inclusive on both ends.
type EntryRequest struct {
	Title   string `json:"Title" validate:"required,alphanum,min=5"`
	Content string `json:"Content" validate:"required,min=8,max=500"`
}

// HandleCreateEntry creates a new entry owned by the authenticated user.
func (h *EntryHandler) HandleCreateEntry(c *fiber.Ctx) error {
	var req EntryRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create entry request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return handleValidationError(c, err)
	}

	actingUser := middleware.UserFromContext(c)
	entry, err := h.entryService.Create(actingUser, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Entry creation failed",
				"error":   err.Error(),
			})
		}
		log.Printf("Error creating entry for user %s: %v", actingUser.UserName, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create entry",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// HandleUpdateEntry replaces the title and content of the entry currently
// addressed by the :title path parameter.
func (h *EntryHandler) HandleUpdateEntry(c *fiber.Ctx) error {
	var req EntryRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update entry request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return handleValidationError(c, err)
	}

	actingUser := middleware.UserFromContext(c)
	currentTitle := c.Params("title")
	entry, err := h.entryService.Update(actingUser, currentTitle, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) || errors.Is(err, services.ErrConflict) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Entry update failed",
				"error":   err.Error(),
			})
		}
		log.Printf("Error updating entry %q for user %s: %v", currentTitle, actingUser.UserName, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update entry",
		})
	}

	return c.JSON(entry)
}

// HandleDeleteEntry removes the entry addressed by the :title path parameter
// from the authenticated user's entries.
func (h *EntryHandler) HandleDeleteEntry(c *fiber.Ctx) error {
	actingUser := middleware.UserFromContext(c)
	title := c.Params("title")

	if err := h.entryService.Delete(actingUser, title); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Entry deletion failed",
				"error":   err.Error(),
			})
		}
		log.Printf("Error deleting entry %q for user %s: %v", title, actingUser.UserName, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete entry",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Entry deleted successfully",
	})
}
