package rest

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/edsg/edsg/internal/present/rest/presenter"
	"github.com/edsg/edsg/internal/usecase"
)

func (h *Handler) handleSearch(c echo.Context) error {
	ctx := c.Request().Context()

	q := usecase.SearchQuery{
		Keyword:     c.QueryParam("keyword"),
		Category:    c.QueryParam("category"),
		Location:    c.QueryParam("location"),
		Rating:      c.QueryParam("rating"),
		PremiumOnly: c.QueryParam("premium") == "true",
		Page:        1,
	}

	if pageStr := c.QueryParam("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return presenter.BadRequestMessage(c, "invalid page parameter")
		}
		q.Page = page
	}
	if minStr := c.QueryParam("priceMin"); minStr != "" {
		min, err := strconv.ParseFloat(minStr, 64)
		if err != nil {
			return presenter.BadRequestMessage(c, "invalid priceMin parameter")
		}
		q.PriceMin = &min
	}
	if maxStr := c.QueryParam("priceMax"); maxStr != "" {
		max, err := strconv.ParseFloat(maxStr, 64)
		if err != nil {
			return presenter.BadRequestMessage(c, "invalid priceMax parameter")
		}
		q.PriceMax = &max
	}

	result, err := h.search.Search(ctx, q)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, result)
}

func (h *Handler) handleCategories(c echo.Context) error {
	categories, err := h.search.Categories(c.Request().Context())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"categories": categories})
}

func (h *Handler) handleSearchStats(c echo.Context) error {
	stats, err := h.search.Stats(c.Request().Context())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, stats)
}

func (h *Handler) handleProfessionalDetail(c echo.Context) error {
	detail, err := h.search.Detail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, detail)
}

func (h *Handler) handleOfferingDetail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid offering id")
	}

	detail, err := h.catalog.Detail(c.Request().Context(), id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, detail)
}
