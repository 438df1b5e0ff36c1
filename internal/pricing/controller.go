package pricing

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"boletera/internal/shared/utils/response"
)

type Controller interface {
	ListTiers(c *gin.Context)
	CreateTier(c *gin.Context)
	UpdateTier(c *gin.Context)
	DeleteTier(c *gin.Context)
	GetQuote(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) ListTiers(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	tiers, err := ctrl.service.ListTiers(c.Request.Context(), eventID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Price tiers retrieved successfully", tiers, nil)
}

func (ctrl *controller) CreateTier(c *gin.Context) {
	var req CreateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	tier, err := ctrl.service.CreateTier(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Price tier created successfully", tier, nil)
}

func (ctrl *controller) UpdateTier(c *gin.Context) {
	tierID, err := uuid.Parse(c.Param("tierId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid tier ID", nil, err.Error())
		return
	}

	var req UpdateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	tier, err := ctrl.service.UpdateTier(c.Request.Context(), tierID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrTierNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Price tier updated successfully", tier, nil)
}

func (ctrl *controller) DeleteTier(c *gin.Context) {
	tierID, err := uuid.Parse(c.Param("tierId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid tier ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteTier(c.Request.Context(), tierID); err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrTierNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Price tier deleted successfully", nil, nil)
}

func (ctrl *controller) GetQuote(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	var query QuoteQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	sessionID, err := uuid.Parse(query.SessionID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid session ID", nil, err.Error())
		return
	}

	seatCtx := SeatContext{SessionID: sessionID, SeatType: query.SeatType}
	if query.SectionID != "" {
		id, err := uuid.Parse(query.SectionID)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid section ID", nil, err.Error())
			return
		}
		seatCtx.SectionID = &id
	}
	if query.ZoneID != "" {
		id, err := uuid.Parse(query.ZoneID)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid zone ID", nil, err.Error())
			return
		}
		seatCtx.ZoneID = &id
	}

	quote, err := ctrl.service.ResolveForSeat(c.Request.Context(), eventID, seatCtx)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Quote resolved successfully", quote, nil)
}
