package rest

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/edsg/edsg/internal/present/rest/middleware"
	"github.com/edsg/edsg/internal/present/rest/presenter"
)

func (h *Handler) handleConversations(c echo.Context) error {
	summaries, err := h.conversation.List(c.Request().Context(), middleware.RequesterID(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"conversations": summaries})
}

func (h *Handler) handleOpenConversation(c echo.Context) error {
	msgs, err := h.conversation.Open(c.Request().Context(), middleware.RequesterID(c), c.Param("userId"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"messages": msgs})
}

func (h *Handler) handleDeleteConversation(c echo.Context) error {
	err := h.conversation.DeleteConversation(c.Request().Context(), middleware.RequesterID(c), c.Param("userId"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleSendMessage(c echo.Context) error {
	var in struct {
		RecipientID string `json:"recipientId"`
		Text        string `json:"text"`
	}
	if err := c.Bind(&in); err != nil {
		return presenter.BadRequest(c, err)
	}

	msg, err := h.conversation.Send(c.Request().Context(), middleware.RequesterID(c), in.RecipientID, in.Text)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, msg)
}

func (h *Handler) handleDeleteMessage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid message id")
	}

	if err := h.conversation.DeleteMessage(c.Request().Context(), middleware.RequesterID(c), id); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleUnreadCount(c echo.Context) error {
	count, err := h.conversation.UnreadCount(c.Request().Context(), middleware.RequesterID(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"unread": count})
}

func (h *Handler) handleContacts(c echo.Context) error {
	users, err := h.conversation.Contacts(c.Request().Context(), middleware.RequesterID(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"contacts": users})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleRealtime streams the requester's message events over a websocket.
// The client sends "h" heartbeats; anything else is ignored.
func (h *Handler) handleRealtime(c echo.Context) error {
	userID := middleware.RequesterID(c)

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer func() {
		ws.Close()
	}()

	ctx := c.Request().Context()

	pubsub := h.signal.Subscribe(ctx, userID)
	defer pubsub.Close()

	quit := make(chan struct{})

	go func() {
		defer close(quit)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.DebugContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}
				return
			}
		}
	}()

	ch := pubsub.Channel()
	for {
		select {
		case <-quit:
			return nil
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if err := ws.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
