package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/docuforge/docgen-api/internal/core/ports"
)

// TemplateHandler serves the template listing behind the admin gate.
type TemplateHandler struct {
	service ports.TemplateService
}

func NewTemplateHandler(service ports.TemplateService) *TemplateHandler {
	return &TemplateHandler{service: service}
}

type createTemplateRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description"`
	Body        string `json:"body" validate:"required"`
}

// List returns the templates owned by the authenticated admin.
//
// @Summary      List templates
// @Tags         templates
// @Produce      json
// @Success      200  {array}   domain.Template
// @Failure      401  {object}  map[string]string
// @Router       /admin/templates [get]
func (h *TemplateHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	templates, err := h.service.List(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, templates)
}

// Create registers a new template.
//
// @Summary      Create a template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        body  body      createTemplateRequest  true  "Template"
// @Success      201   {object}  domain.Template
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /admin/templates [post]
func (h *TemplateHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createTemplateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tpl, err := h.service.Create(c.Request().Context(), ports.CreateTemplateInput{
		Name:        req.Name,
		Description: req.Description,
		Body:        req.Body,
		OwnerID:     identity.UserID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tpl)
}
