package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/edsg/edsg/internal/domain"
	"github.com/edsg/edsg/internal/present/rest/middleware"
	"github.com/edsg/edsg/internal/present/rest/presenter"
	"github.com/edsg/edsg/internal/usecase"
)

type sessionResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (h *Handler) handleRegister(c echo.Context) error {
	ctx := c.Request().Context()

	var in usecase.RegisterInput
	if err := c.Bind(&in); err != nil {
		return presenter.BadRequest(c, err)
	}

	user, err := h.account.Register(ctx, in)
	if err != nil {
		return presenter.Error(c, err)
	}

	token, err := h.auth.IssueToken(ctx, user)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.Created(c, sessionResponse{Token: token, User: user})
}

func (h *Handler) handleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&in); err != nil {
		return presenter.BadRequest(c, err)
	}

	user, err := h.account.Login(ctx, in.Email, in.Password)
	if err != nil {
		return presenter.Error(c, err)
	}

	token, err := h.auth.IssueToken(ctx, user)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, sessionResponse{Token: token, User: user})
}

func (h *Handler) handleMe(c echo.Context) error {
	user, err := h.account.Get(c.Request().Context(), middleware.RequesterID(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, user)
}

func (h *Handler) handleUpdateProfile(c echo.Context) error {
	var in usecase.ProfileInput
	if err := c.Bind(&in); err != nil {
		return presenter.BadRequest(c, err)
	}

	user, err := h.account.UpdateProfile(c.Request().Context(), middleware.RequesterID(c), in)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, user)
}

func (h *Handler) handleChangePassword(c echo.Context) error {
	var in struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.Bind(&in); err != nil {
		return presenter.BadRequest(c, err)
	}

	err := h.account.ChangePassword(c.Request().Context(), middleware.RequesterID(c), in.CurrentPassword, in.NewPassword)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleDeactivate(c echo.Context) error {
	var in struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&in); err != nil {
		return presenter.BadRequest(c, err)
	}

	err := h.account.Deactivate(c.Request().Context(), middleware.RequesterID(c), in.Password)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleSetPremium(c echo.Context) error {
	var in struct {
		Premium bool   `json:"premium"`
		Plan    string `json:"plan"`
	}
	if err := c.Bind(&in); err != nil {
		return presenter.BadRequest(c, err)
	}

	user, err := h.account.SetPremium(c.Request().Context(), middleware.RequesterID(c), in.Premium, in.Plan)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, user)
}

func (h *Handler) handleFavorites(c echo.Context) error {
	users, err := h.account.Favorites(c.Request().Context(), middleware.RequesterID(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"favorites": users})
}

func (h *Handler) handleAddFavorite(c echo.Context) error {
	err := h.account.AddFavorite(c.Request().Context(), middleware.RequesterID(c), c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleRemoveFavorite(c echo.Context) error {
	err := h.account.RemoveFavorite(c.Request().Context(), middleware.RequesterID(c), c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleDashboard(c echo.Context) error {
	mode := domain.ParseDashboardMode(c.QueryParam("mode"))
	view, err := h.dashboard.Load(c.Request().Context(), middleware.RequesterID(c), mode)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, view)
}
