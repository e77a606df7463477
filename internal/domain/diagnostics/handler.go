package diagnostics

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
	g.GET("/lab-orders", h.ListLabOrders)
	g.POST("/lab-orders", h.CreateLabOrder)
	g.GET("/lab-orders/:id", h.GetLabOrder)
	g.PUT("/lab-orders/:id", h.UpdateLabOrder)
	g.DELETE("/lab-orders/:id", h.DeleteLabOrder)

	g.GET("/imaging-studies", h.ListImagingStudies)
	g.POST("/imaging-studies", h.CreateImagingStudy)
	g.GET("/imaging-studies/:id", h.GetImagingStudy)
	g.PUT("/imaging-studies/:id", h.UpdateImagingStudy)
	g.DELETE("/imaging-studies/:id", h.DeleteImagingStudy)
}

// -- Lab Order Handlers --

func (h *Handler) CreateLabOrder(c echo.Context) error {
	var o LabOrder
	if err := c.Bind(&o); err != nil {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateLabOrder(c.Request().Context(), &o); err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, o)
}

func (h *Handler) GetLabOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid id")
	}
	o, err := h.svc.GetLabOrder(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, o)
}

func (h *Handler) ListLabOrders(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListLabOrders(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateLabOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid id")
	}
	var o LabOrder
	if err := c.Bind(&o); err != nil {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}
	o.ID = id
	if err := h.svc.UpdateLabOrder(c.Request().Context(), &o); err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, o)
}

func (h *Handler) DeleteLabOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteLabOrder(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, nil)
}

// -- Imaging Study Handlers --

func (h *Handler) CreateImagingStudy(c echo.Context) error {
	var st ImagingStudy
	if err := c.Bind(&st); err != nil {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateImagingStudy(c.Request().Context(), &st); err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, st)
}

func (h *Handler) GetImagingStudy(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid id")
	}
	st, err := h.svc.GetImagingStudy(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, st)
}

func (h *Handler) ListImagingStudies(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListImagingStudies(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateImagingStudy(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid id")
	}
	var st ImagingStudy
	if err := c.Bind(&st); err != nil {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}
	st.ID = id
	if err := h.svc.UpdateImagingStudy(c.Request().Context(), &st); err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, st)
}

func (h *Handler) DeleteImagingStudy(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteImagingStudy(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, nil)
}
