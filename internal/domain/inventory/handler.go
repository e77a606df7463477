package inventory

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the bed/ward inventory surface. The bed-level routes
// carry the ward id in the path purely as display context; the bed id alone
// is authoritative.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/wards", h.ListWards)
	g.POST("/wards", h.CreateWard)
	g.GET("/wards/:id", h.GetWard)
	g.PUT("/wards/:id", h.UpdateWard)
	g.DELETE("/wards/:id", h.DeleteWard)
	g.POST("/wards/:id/beds", h.AddBeds)

	g.GET("/stats", h.GetBedStats)
	g.POST("/transfer", h.Transfer)

	g.PUT("/:wardId/:bedId", h.UpdateBed)
	g.DELETE("/:wardId/:bedId", h.DeleteBed)
	g.POST("/:wardId/:bedId/assign", h.Assign)
	g.POST("/:wardId/:bedId/discharge", h.Discharge)
}

// -- Ward handlers --

func (h *Handler) ListWards(c echo.Context) error {
	wards, err := h.svc.ListWards(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, wards)
}

func (h *Handler) GetWard(c echo.Context) error {
	ward, err := h.svc.GetWard(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, ward)
}

func (h *Handler) CreateWard(c echo.Context) error {
	var in CreateWardInput
	if err := c.Bind(&in); err != nil {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}
	ward, err := h.svc.CreateWard(c.Request().Context(), in)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, ward)
}

func (h *Handler) UpdateWard(c echo.Context) error {
	var in UpdateWardInput
	if err := c.Bind(&in); err != nil {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}
	ward, err := h.svc.UpdateWard(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, ward)
}

func (h *Handler) DeleteWard(c echo.Context) error {
	if err := h.svc.DeleteWard(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, nil)
}

// -- Bed handlers --

type addBedsRequest struct {
	NumBeds int       `json:"numBeds"`
	Status  BedStatus `json:"status"`
}

func (h *Handler) AddBeds(c echo.Context) error {
	var req addBedsRequest
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}
	beds, err := h.svc.AddBeds(c.Request().Context(), c.Param("id"), req.NumBeds, req.Status)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, beds)
}

func (h *Handler) UpdateBed(c echo.Context) error {
	var patch BedPatch
	if err := c.Bind(&patch); err != nil {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}
	bed, err := h.svc.UpdateBed(c.Request().Context(), c.Param("bedId"), patch)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, bed)
}

func (h *Handler) DeleteBed(c echo.Context) error {
	if err := h.svc.DeleteBed(c.Request().Context(), c.Param("wardId"), c.Param("bedId")); err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, nil)
}

// -- Occupancy handlers --

func (h *Handler) Assign(c echo.Context) error {
	var in AssignInput
	if err := c.Bind(&in); err != nil {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}
	bed, err := h.svc.Assign(c.Request().Context(), c.Param("wardId"), c.Param("bedId"), in)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, bed)
}

func (h *Handler) Discharge(c echo.Context) error {
	bed, patientName, err := h.svc.Discharge(c.Request().Context(), c.Param("wardId"), c.Param("bedId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, map[string]interface{}{
		"bed":         bed,
		"patientName": patientName,
	})
}

type transferRequest struct {
	FromBedID string `json:"fromBedId"`
	ToBedID   string `json:"toBedId"`
}

func (h *Handler) Transfer(c echo.Context) error {
	var req transferRequest
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}
	if req.FromBedID == "" || req.ToBedID == "" {
		return response.Fail(c, http.StatusBadRequest, "fromBedId and toBedId are required")
	}
	result, err := h.svc.Transfer(c.Request().Context(), req.FromBedID, req.ToBedID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, result)
}

// -- Stats --

func (h *Handler) GetBedStats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, stats)
}
