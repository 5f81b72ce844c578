package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/edsg/edsg/internal/present/rest/middleware"
	"github.com/edsg/edsg/internal/present/rest/presenter"
	"github.com/edsg/edsg/internal/usecase"
)

func (h *Handler) handleMyOfferings(c echo.Context) error {
	offerings, err := h.catalog.List(c.Request().Context(), middleware.RequesterID(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"offerings": offerings})
}

func (h *Handler) handleCreateOffering(c echo.Context) error {
	var in usecase.OfferingInput
	if err := c.Bind(&in); err != nil {
		return presenter.BadRequest(c, err)
	}

	offering, err := h.catalog.Create(c.Request().Context(), middleware.RequesterID(c), in)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, offering)
}

func (h *Handler) handleEditOffering(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid offering id")
	}

	var in usecase.OfferingInput
	if err := c.Bind(&in); err != nil {
		return presenter.BadRequest(c, err)
	}

	offering, err := h.catalog.Edit(c.Request().Context(), middleware.RequesterID(c), id, in)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, offering)
}

func (h *Handler) handleDeleteOffering(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid offering id")
	}

	if err := h.catalog.Remove(c.Request().Context(), middleware.RequesterID(c), id); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleToggleOffering(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid offering id")
	}

	var in struct {
		Active bool `json:"active"`
	}
	if err := c.Bind(&in); err != nil {
		return presenter.BadRequest(c, err)
	}

	if err := h.catalog.SetActive(c.Request().Context(), middleware.RequesterID(c), id, in.Active); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}
