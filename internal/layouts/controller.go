package layouts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"boletera/internal/shared/utils/response"
)

type Controller interface {
	GetLayout(c *gin.Context)
	GetSectionStats(c *gin.Context)
	SyncLayout(c *gin.Context)
}

type controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) Controller {
	return &controller{
		service:   service,
		validator: validator.New(),
	}
}

func (ctrl *controller) GetLayout(c *gin.Context) {
	layoutID, err := uuid.Parse(c.Param("layoutId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid layout ID", nil, err.Error())
		return
	}

	layout, err := ctrl.service.GetLayout(c.Request.Context(), layoutID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrLayoutNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Layout retrieved successfully", layout, nil)
}

func (ctrl *controller) GetSectionStats(c *gin.Context) {
	layoutID, err := uuid.Parse(c.Param("layoutId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid layout ID", nil, err.Error())
		return
	}

	sessionID, err := uuid.Parse(c.Query("session_id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid or missing session_id", nil, err.Error())
		return
	}

	stats, err := ctrl.service.GetSectionStats(c.Request.Context(), layoutID, sessionID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrLayoutNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Section stats retrieved successfully", stats, nil)
}

func (ctrl *controller) SyncLayout(c *gin.Context) {
	layoutID, err := uuid.Parse(c.Param("layoutId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid layout ID", nil, err.Error())
		return
	}

	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	if req.EditedBy == "" {
		if userID, exists := c.Get("user_id"); exists {
			if s, ok := userID.(string); ok {
				req.EditedBy = s
			}
		}
	}

	report, err := ctrl.service.Sync(c.Request.Context(), layoutID, &req)
	if err != nil {
		var conflict *VersionConflictError
		switch {
		case errors.Is(err, ErrLayoutNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
		case errors.As(err, &conflict):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), gin.H{
				"current_version":   conflict.CurrentVersion,
				"requested_version": conflict.RequestedVersion,
				"last_edited_by":    conflict.LastEditedBy,
			}, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Layout synced successfully", report, nil)
}
