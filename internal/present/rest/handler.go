package rest

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/edsg/edsg/internal/present/rest/middleware"
	"github.com/edsg/edsg/internal/present/rest/presenter"
	"github.com/edsg/edsg/internal/service"
	"github.com/edsg/edsg/internal/usecase"
)

type Handler struct {
	search       *usecase.SearchUsecase
	rating       *usecase.RatingUsecase
	conversation *usecase.ConversationUsecase
	request      *usecase.RequestUsecase
	dashboard    *usecase.DashboardUsecase
	catalog      *usecase.CatalogUsecase
	account      *usecase.AccountUsecase
	admin        *usecase.AdminUsecase
	auth         *service.AuthService
	signal       *service.SignalService
}

func NewHandler(
	search *usecase.SearchUsecase,
	rating *usecase.RatingUsecase,
	conversation *usecase.ConversationUsecase,
	request *usecase.RequestUsecase,
	dashboard *usecase.DashboardUsecase,
	catalog *usecase.CatalogUsecase,
	account *usecase.AccountUsecase,
	admin *usecase.AdminUsecase,
	auth *service.AuthService,
	signal *service.SignalService,
) *Handler {
	return &Handler{
		search:       search,
		rating:       rating,
		conversation: conversation,
		request:      request,
		dashboard:    dashboard,
		catalog:      catalog,
		account:      account,
		admin:        admin,
		auth:         auth,
		signal:       signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, auth *middleware.AuthMiddleware) {
	e.GET("/", h.handleHome)
	e.GET("/api/v1/professionals", h.handleSearch)
	e.GET("/api/v1/professionals/categories", h.handleCategories)
	e.GET("/api/v1/professionals/stats", h.handleSearchStats)
	e.GET("/api/v1/professionals/:id", h.handleProfessionalDetail)
	e.GET("/api/v1/offerings/:id", h.handleOfferingDetail)
	e.POST("/api/v1/register", h.handleRegister)
	e.POST("/api/v1/login", h.handleLogin)

	me := e.Group("/api/v1", auth.RequireAuth)
	me.GET("/me", h.handleMe)
	me.PUT("/me", h.handleUpdateProfile)
	me.PUT("/me/password", h.handleChangePassword)
	me.POST("/me/deactivate", h.handleDeactivate)
	me.PUT("/me/premium", h.handleSetPremium)
	me.GET("/me/ratings", h.handleMyRatings)

	me.GET("/favorites", h.handleFavorites)
	me.POST("/favorites/:id", h.handleAddFavorite)
	me.DELETE("/favorites/:id", h.handleRemoveFavorite)

	me.GET("/dashboard", h.handleDashboard)

	me.GET("/conversations", h.handleConversations)
	me.GET("/conversations/:userId", h.handleOpenConversation)
	me.DELETE("/conversations/:userId", h.handleDeleteConversation)
	me.POST("/messages", h.handleSendMessage)
	me.DELETE("/messages/:id", h.handleDeleteMessage)
	me.GET("/messages/unread-count", h.handleUnreadCount)
	me.GET("/contacts", h.handleContacts)

	me.POST("/requests", h.handleCreateRequest)
	me.GET("/requests", h.handleListRequests)
	me.GET("/requests/:id", h.handleGetRequest)
	me.PUT("/requests/:id", h.handleEditRequest)
	me.POST("/requests/:id/accept", h.handleAcceptRequest)
	me.POST("/requests/:id/decline", h.handleDeclineRequest)
	me.POST("/requests/:id/start", h.handleStartRequest)
	me.POST("/requests/:id/complete", h.handleCompleteRequest)
	me.POST("/requests/:id/cancel", h.handleCancelRequest)
	me.POST("/requests/:id/rating", h.handleRateRequest)
	me.POST("/ratings/:id/reply", h.handleReplyRating)

	me.GET("/me/offerings", h.handleMyOfferings)
	me.POST("/me/offerings", h.handleCreateOffering)
	me.PUT("/me/offerings/:id", h.handleEditOffering)
	me.DELETE("/me/offerings/:id", h.handleDeleteOffering)
	me.PUT("/me/offerings/:id/active", h.handleToggleOffering)

	me.POST("/reports", h.handleFileReport)

	e.GET("/realtime", h.handleRealtime, auth.RequireAuth)

	ad := e.Group("/api/v1/admin", auth.RequireAdmin)
	ad.GET("/stats", h.handleAdminStats)
	ad.GET("/users", h.handleAdminListUsers)
	ad.POST("/users/:id/toggle-active", h.handleAdminToggleActive)
	ad.POST("/users/:id/toggle-admin", h.handleAdminToggleAdmin)
	ad.GET("/reports", h.handleAdminListReports)
	ad.GET("/reports/:id", h.handleAdminGetReport)
	ad.PUT("/reports/:id", h.handleAdminUpdateReport)
	ad.PUT("/offerings/:id/active", h.handleAdminToggleOffering)
	ad.PUT("/portfolio/:id/active", h.handleAdminTogglePortfolioItem)
}

func pathID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func (h *Handler) handleHome(c echo.Context) error {
	view, err := h.search.Home(c.Request().Context())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, view)
}
