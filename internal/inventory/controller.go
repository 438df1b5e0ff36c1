package inventory

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"boletera/internal/events"
	"boletera/internal/orders"
	"boletera/internal/shared/utils/response"
)

type Controller interface {
	Reserve(c *gin.Context)
	Confirm(c *gin.Context)
	Cancel(c *gin.Context)
	CancelHold(c *gin.Context)
	GetSeatAvailability(c *gin.Context)
	GetSessionSeatMap(c *gin.Context)
	GetOrder(c *gin.Context)
	AdminAllocate(c *gin.Context)
	CleanupHolds(c *gin.Context)
	CheckIn(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) Reserve(c *gin.Context) {
	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	reservation, err := ctrl.service.Reserve(c.Request.Context(), req)
	if err != nil {
		ctrl.respondReserveError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Seats reserved successfully", reservation, nil)
}

func (ctrl *controller) respondReserveError(c *gin.Context, err error) {
	var unavailable *SeatUnavailableError
	var capacity *CapacityExceededError
	switch {
	case errors.As(err, &unavailable):
		response.RespondJSON(c, "error", http.StatusConflict, "Some seats are no longer available", gin.H{
			"unavailable_seats": unavailable.SeatIDs,
		}, err.Error())
	case errors.As(err, &capacity):
		response.RespondJSON(c, "error", http.StatusConflict, "Not enough capacity remaining", gin.H{
			"tier_id":   capacity.TierID,
			"requested": capacity.Requested,
			"available": capacity.Available,
		}, err.Error())
	case errors.Is(err, ErrSessionNotSellable):
		response.RespondJSON(c, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
	case errors.Is(err, events.ErrSessionNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
	default:
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
	}
}

func (ctrl *controller) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := ctrl.service.Confirm(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrReservationExpired):
			response.RespondJSON(c, "error", http.StatusGone, err.Error(), nil, nil)
		case errors.Is(err, ErrTicketNotReserved), errors.Is(err, ErrTicketNotFound):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Purchase confirmed successfully", result, nil)
}

func (ctrl *controller) Cancel(c *gin.Context) {
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	freed, err := ctrl.service.Cancel(c.Request.Context(), req.TicketIDs)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Reservation cancelled", gin.H{"released": freed}, nil)
}

func (ctrl *controller) CancelHold(c *gin.Context) {
	holdID, err := uuid.Parse(c.Param("holdId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid hold ID", nil, err.Error())
		return
	}

	freed, err := ctrl.service.CancelHold(c.Request.Context(), holdID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Hold released", gin.H{"released": freed}, nil)
}

func (ctrl *controller) GetSeatAvailability(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid session ID", nil, err.Error())
		return
	}
	seatID, err := uuid.Parse(c.Param("seatId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid seat ID", nil, err.Error())
		return
	}

	info, err := ctrl.service.CheckSeatAvailability(c.Request.Context(), sessionID, seatID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat availability retrieved successfully", info, nil)
}

func (ctrl *controller) GetSessionSeatMap(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid session ID", nil, err.Error())
		return
	}

	statuses, err := ctrl.service.SessionSeatStatus(c.Request.Context(), sessionID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat map retrieved successfully", statuses, nil)
}

func (ctrl *controller) GetOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid order ID", nil, err.Error())
		return
	}

	order, tickets, err := ctrl.service.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Order retrieved successfully", gin.H{
		"order":   order,
		"tickets": tickets,
	}, nil)
}

func (ctrl *controller) AdminAllocate(c *gin.Context) {
	var req AdminAllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := ctrl.service.AdminAllocate(c.Request.Context(), req)
	if err != nil {
		ctrl.respondReserveError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Courtesy tickets issued successfully", result, nil)
}

// CleanupHolds reclaims expired holds on demand; an external cron can hit
// it between ticks of the background sweeper.
func (ctrl *controller) CleanupHolds(c *gin.Context) {
	reclaimed, err := ctrl.service.CleanupExpired(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Expired holds reclaimed", gin.H{"reclaimed": reclaimed}, nil)
}

func (ctrl *controller) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	ticket, err := ctrl.service.CheckIn(c.Request.Context(), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, ErrTicketNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrTicketAlreadyUsed):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		case errors.Is(err, ErrTicketNotSold):
			response.RespondJSON(c, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ticket checked in successfully", ticket, nil)
}
