package rest

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/edsg/edsg/internal/domain"
	"github.com/edsg/edsg/internal/present/rest/middleware"
	"github.com/edsg/edsg/internal/present/rest/presenter"
)

func (h *Handler) handleFileReport(c echo.Context) error {
	var in struct {
		ReportedID  string            `json:"reportedId"`
		Kind        domain.ReportKind `json:"kind"`
		Description string            `json:"description"`
		RequestID   *int64            `json:"requestId"`
	}
	if err := c.Bind(&in); err != nil {
		return presenter.BadRequest(c, err)
	}

	report, err := h.admin.FileReport(c.Request().Context(), middleware.RequesterID(c), in.ReportedID, in.Kind, in.Description, in.RequestID)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, report)
}

func (h *Handler) handleAdminStats(c echo.Context) error {
	stats, err := h.admin.Stats(c.Request().Context())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, stats)
}

func (h *Handler) handleAdminListUsers(c echo.Context) error {
	var active *bool
	if activeStr := c.QueryParam("active"); activeStr != "" {
		parsed, err := strconv.ParseBool(activeStr)
		if err != nil {
			return presenter.BadRequestMessage(c, "invalid active parameter")
		}
		active = &parsed
	}

	users, err := h.admin.ListUsers(c.Request().Context(), c.QueryParam("search"), active)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"users": users})
}

func (h *Handler) handleAdminToggleActive(c echo.Context) error {
	user, err := h.admin.ToggleUserActive(c.Request().Context(), c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, user)
}

func (h *Handler) handleAdminToggleAdmin(c echo.Context) error {
	user, err := h.admin.ToggleAdmin(c.Request().Context(), c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, user)
}

func (h *Handler) handleAdminListReports(c echo.Context) error {
	var state *domain.ReportState
	if stateStr := c.QueryParam("state"); stateStr != "" {
		parsed, err := strconv.Atoi(stateStr)
		if err != nil {
			return presenter.BadRequestMessage(c, "invalid state parameter")
		}
		s := domain.ReportState(parsed)
		state = &s
	}

	reports, err := h.admin.ListReports(c.Request().Context(), state)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"reports": reports})
}

func (h *Handler) handleAdminGetReport(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid report id")
	}

	report, err := h.admin.GetReport(c.Request().Context(), id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, report)
}

func (h *Handler) handleAdminUpdateReport(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid report id")
	}

	var in struct {
		State domain.ReportState `json:"state"`
		Notes *string            `json:"notes"`
	}
	if err := c.Bind(&in); err != nil {
		return presenter.BadRequest(c, err)
	}

	report, err := h.admin.UpdateReport(c.Request().Context(), id, in.State, in.Notes)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, report)
}

func (h *Handler) handleAdminToggleOffering(c echo.Context) error {
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

	if err := h.admin.SetOfferingActive(c.Request().Context(), id, in.Active); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleAdminTogglePortfolioItem(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid portfolio item id")
	}

	var in struct {
		Active bool `json:"active"`
	}
	if err := c.Bind(&in); err != nil {
		return presenter.BadRequest(c, err)
	}

	if err := h.admin.SetPortfolioItemActive(c.Request().Context(), id, in.Active); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}
