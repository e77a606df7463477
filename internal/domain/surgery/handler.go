package surgery

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/pkg/pagination"
	"github.com/hms/hms/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/surgeries", h.List)
	g.POST("/surgeries", h.Create)
	g.GET("/surgeries/:id", h.Get)
	g.PUT("/surgeries/:id", h.Update)
	g.DELETE("/surgeries/:id", h.Delete)
	g.GET("/patients/:id/surgeries", h.ListByPatient)
}

func (h *Handler) Create(c echo.Context) error {
	var sc Case
	if err := c.Bind(&sc); err != nil {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &sc); err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, sc)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid id")
	}
	sc, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, sc)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByPatient(c.Request().Context(), patientID, pg.Limit, pg.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid id")
	}
	var sc Case
	if err := c.Bind(&sc); err != nil {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}
	sc.ID = id
	if err := h.svc.Update(c.Request().Context(), &sc); err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, sc)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, nil)
}
