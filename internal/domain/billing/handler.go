package billing

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
	g.GET("/bills", h.List)
	g.POST("/bills", h.Create)
	g.GET("/bills/:id", h.Get)
	g.PUT("/bills/:id", h.Update)
	g.DELETE("/bills/:id", h.Delete)
	g.GET("/patients/:id/bills", h.ListByPatient)
}

func (h *Handler) Create(c echo.Context) error {
	var b Bill
	if err := c.Bind(&b); err != nil {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &b); err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, b)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid id")
	}
	b, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, b)
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
	var b Bill
	if err := c.Bind(&b); err != nil {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}
	b.ID = id
	if err := h.svc.Update(c.Request().Context(), &b); err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, b)
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
