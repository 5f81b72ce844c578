package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/edsg/edsg/internal/domain"
	"github.com/edsg/edsg/internal/present/rest/middleware"
	"github.com/edsg/edsg/internal/present/rest/presenter"
	"github.com/edsg/edsg/internal/usecase"
)

func (h *Handler) handleCreateRequest(c echo.Context) error {
	var in usecase.NewRequestInput
	if err := c.Bind(&in); err != nil {
		return presenter.BadRequest(c, err)
	}

	req, err := h.request.Request(c.Request().Context(), middleware.RequesterID(c), in)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, req)
}

func (h *Handler) handleListRequests(c echo.Context) error {
	mode := domain.ParseDashboardMode(c.QueryParam("mode"))
	reqs, err := h.request.List(c.Request().Context(), middleware.RequesterID(c), mode)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"requests": reqs})
}

func (h *Handler) handleGetRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid request id")
	}

	req, err := h.request.Get(c.Request().Context(), middleware.RequesterID(c), middleware.RequesterIsAdmin(c), id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, req)
}

func (h *Handler) handleEditRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid request id")
	}

	var in usecase.EditRequestInput
	if err := c.Bind(&in); err != nil {
		return presenter.BadRequest(c, err)
	}

	req, err := h.request.Edit(c.Request().Context(), middleware.RequesterID(c), id, in)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, req)
}

func (h *Handler) transition(c echo.Context, apply func(string, int64) (domain.ServiceRequest, error)) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid request id")
	}

	req, err := apply(middleware.RequesterID(c), id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, req)
}

func (h *Handler) handleAcceptRequest(c echo.Context) error {
	return h.transition(c, func(userID string, id int64) (domain.ServiceRequest, error) {
		return h.request.Accept(c.Request().Context(), userID, id)
	})
}

func (h *Handler) handleDeclineRequest(c echo.Context) error {
	return h.transition(c, func(userID string, id int64) (domain.ServiceRequest, error) {
		return h.request.Decline(c.Request().Context(), userID, id)
	})
}

func (h *Handler) handleStartRequest(c echo.Context) error {
	return h.transition(c, func(userID string, id int64) (domain.ServiceRequest, error) {
		return h.request.Start(c.Request().Context(), userID, id)
	})
}

func (h *Handler) handleCompleteRequest(c echo.Context) error {
	return h.transition(c, func(userID string, id int64) (domain.ServiceRequest, error) {
		return h.request.Complete(c.Request().Context(), userID, id)
	})
}

func (h *Handler) handleCancelRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid request id")
	}

	var in struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&in); err != nil {
		return presenter.BadRequest(c, err)
	}

	req, err := h.request.Cancel(c.Request().Context(), middleware.RequesterID(c), id, in.Reason)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, req)
}

func (h *Handler) handleRateRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid request id")
	}

	var in struct {
		Score   int     `json:"score"`
		Comment *string `json:"comment"`
	}
	if err := c.Bind(&in); err != nil {
		return presenter.BadRequest(c, err)
	}

	if err := h.request.Rate(c.Request().Context(), middleware.RequesterID(c), id, in.Score, in.Comment); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleMyRatings(c echo.Context) error {
	ratings, summary, err := h.rating.ListReceived(c.Request().Context(), middleware.RequesterID(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"ratings": ratings, "summary": summary})
}

func (h *Handler) handleReplyRating(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid rating id")
	}

	var in struct {
		Reply string `json:"reply"`
	}
	if err := c.Bind(&in); err != nil {
		return presenter.BadRequest(c, err)
	}

	if err := h.rating.Reply(c.Request().Context(), middleware.RequesterID(c), id, in.Reply); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}
