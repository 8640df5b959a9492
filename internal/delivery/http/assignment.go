package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"opsdash/internal/models"
	"opsdash/internal/service"
)

type sessionResponse struct {
	Oid      string                 `json:"oid"`
	Customer string                 `json:"customer"`
	Stage    string                 `json:"stage"`
	Products []models.AssignmentRow `json:"products"`
	Drivers  []models.Driver        `json:"drivers"`
	Airports []models.Airport       `json:"airports"`
}

// LoadSession
// @Summary LoadSession
// @Description Enters the delivery-assignment stage for an order: loads or reconciles the row set and the reference lists
// @ID load-session
// @Accept json
// @Produce json
// @Param oid path string true "order id"
// @Success 200 {object} sessionResponse
// @Failure 400,404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/assignment/{oid} [get]
func (h *Handler) LoadSession(c *gin.Context) {
	oid := strings.TrimSpace(c.Param("oid"))
	if oid == "" {
		newErrorResponse(c, http.StatusBadRequest, "missing oid")
		return
	}

	sess, err := h.svc.LoadSession(c.Request.Context(), oid)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse{
		Oid:      sess.Order.Oid,
		Customer: sess.Order.CustomerName,
		Stage:    string(sess.Stage()),
		Products: sess.Store.Rows(),
		Drivers:  sess.Drivers,
		Airports: sess.Airports,
	})
}

// Summary
// @Summary Summary
// @Description Recomputes the driver and airport grouping for the live row set
// @ID get-summary
// @Produce json
// @Param oid path string true "order id"
// @Success 200 {object} models.Summary
// @Failure 404 {object} errorResponse
// @Router /api/assignment/{oid}/summary [get]
func (h *Handler) Summary(c *gin.Context) {
	sum, err := h.svc.Summary(c.Param("oid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

type addRowRequest struct {
	Oiid string `json:"oiid" binding:"required"`
}

// AddSubRange
// @Summary AddSubRange
// @Description Adds an empty CT sub-range row for a product
// @ID add-sub-range
// @Accept json
// @Produce json
// @Param oid path string true "order id"
// @Success 201 {object} models.AssignmentRow
// @Failure 400,404 {object} errorResponse
// @Router /api/assignment/{oid}/rows [post]
func (h *Handler) AddSubRange(c *gin.Context) {
	var req addRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	row, err := h.svc.AddSubRange(c.Param("oid"), req.Oiid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

// RemoveSubRange
// @Summary RemoveSubRange
// @Description Removes a sub-range row; the last row of a product cannot be removed
// @ID remove-sub-range
// @Produce json
// @Param oid path string true "order id"
// @Param rid path string true "row id"
// @Success 204
// @Failure 404,422 {object} errorResponse
// @Router /api/assignment/{oid}/rows/{rid} [delete]
func (h *Handler) RemoveSubRange(c *gin.Context) {
	if err := h.svc.RemoveSubRange(c.Param("oid"), c.Param("rid")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type ctRequest struct {
	CtRange string `json:"ctRange"`
}

// SetCTRange
// @Summary SetCTRange
// @Description Commits a CT range edit; empty clears the range
// @ID set-ct-range
// @Accept json
// @Produce json
// @Param oid path string true "order id"
// @Param rid path string true "row id"
// @Success 200 {object} models.AssignmentRow
// @Failure 400,404,422 {object} errorResponse
// @Router /api/assignment/{oid}/rows/{rid}/ct [put]
func (h *Handler) SetCTRange(c *gin.Context) {
	var req ctRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	row, err := h.svc.SetCTRange(c.Param("oid"), c.Param("rid"), req.CtRange)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

type driverRequest struct {
	DriverId string `json:"driverId"`
}

// SetDriver
// @Summary SetDriver
// @Description Selects a driver for a row and re-derives the denormalized display fields
// @ID set-driver
// @Accept json
// @Produce json
// @Param oid path string true "order id"
// @Param rid path string true "row id"
// @Success 200 {object} models.AssignmentRow
// @Failure 400,404 {object} errorResponse
// @Router /api/assignment/{oid}/rows/{rid}/driver [put]
func (h *Handler) SetDriver(c *gin.Context) {
	var req driverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	row, err := h.svc.SetDriver(c.Param("oid"), c.Param("rid"), req.DriverId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

type airportRequest struct {
	AirportName string `json:"airportName"`
}

// SetAirport
// @Summary SetAirport
// @Description Selects the destination airport for a row
// @ID set-airport
// @Accept json
// @Produce json
// @Param oid path string true "order id"
// @Param rid path string true "row id"
// @Success 200 {object} models.AssignmentRow
// @Failure 400,404 {object} errorResponse
// @Router /api/assignment/{oid}/rows/{rid}/airport [put]
func (h *Handler) SetAirport(c *gin.Context) {
	var req airportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	row, err := h.svc.SetAirport(c.Param("oid"), c.Param("rid"), req.AirportName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

type statusRequest struct {
	Status models.RowStatus `json:"status" binding:"required"`
}

// SetStatus
// @Summary SetStatus
// @Description Updates the delivery status of a row
// @ID set-status
// @Accept json
// @Produce json
// @Param oid path string true "order id"
// @Param rid path string true "row id"
// @Success 200 {object} models.AssignmentRow
// @Failure 400,404,422 {object} errorResponse
// @Router /api/assignment/{oid}/rows/{rid}/status [put]
func (h *Handler) SetStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	row, err := h.svc.SetStatus(c.Param("oid"), c.Param("rid"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// Submit
// @Summary Submit
// @Description Persists the complete stage-3 payload and advances the workflow to pricing
// @ID submit-assignment
// @Produce json
// @Param oid path string true "order id"
// @Success 200 {object} models.Stage3Payload
// @Failure 404,409,422 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /api/assignment/{oid}/submit [post]
func (h *Handler) Submit(c *gin.Context) {
	payload, err := h.svc.Submit(c.Request.Context(), c.Param("oid"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSession),
			errors.Is(err, service.ErrStageOrder),
			errors.Is(err, service.ErrValidation):
			respondError(c, err)
		default:
			// persistence failed; the rows stay editable for retry
			newErrorResponse(c, http.StatusBadGateway, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, payload)
}
