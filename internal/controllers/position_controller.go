package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"transit_api/internal/models"
)

// PositionStore is the persistence the position endpoints depend on.
type PositionStore interface {
	List(ctx context.Context) ([]models.VehiclePosition, error)
	Get(ctx context.Context, id int64) (*models.VehiclePosition, error)
	Create(ctx context.Context, pos *models.VehiclePosition) error
	Update(ctx context.Context, id int64, in models.VehiclePositionInput) (*models.VehiclePosition, error)
	Delete(ctx context.Context, id int64) error
}

// PositionPublisher receives every position that was stored successfully.
type PositionPublisher interface {
	Publish(pos models.VehiclePosition)
}

// PositionController serves /posicoes.
type PositionController struct {
	positions PositionStore
	publisher PositionPublisher
}

// NewPositionController wires the position endpoints. publisher may be nil.
func NewPositionController(positions PositionStore, publisher PositionPublisher) *PositionController {
	return &PositionController{positions: positions, publisher: publisher}
}

type createPositionRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	VehicleID *int64   `json:"vehicleId" binding:"required"`
}

type updatePositionRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	VehicleID *int64   `json:"vehicleId"`
}

// List handles GET /posicoes
func (h *PositionController) List(c *gin.Context) {
	positions, err := h.positions.List(c.Request.Context())
	if err != nil {
		respondError(c, "list positions", err)
		return
	}
	c.JSON(http.StatusOK, positions)
}

// Get handles GET /posicoes/:id
func (h *PositionController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	pos, err := h.positions.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "get position", err)
		return
	}
	c.JSON(http.StatusOK, pos)
}

// Create handles POST /posicoes
func (h *PositionController) Create(c *gin.Context) {
	var req createPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	pos := &models.VehiclePosition{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		VehicleID: req.VehicleID,
	}
	if err := h.positions.Create(c.Request.Context(), pos); err != nil {
		respondError(c, "create position", err)
		return
	}
	h.publish(*pos)
	c.JSON(http.StatusCreated, gin.H{"message": "Posição adicionada com sucesso!"})
}

// Update handles PUT /posicoes/:id
func (h *PositionController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	in := models.VehiclePositionInput{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		VehicleID: req.VehicleID,
	}
	pos, err := h.positions.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, "update position", err)
		return
	}
	h.publish(*pos)
	c.JSON(http.StatusOK, gin.H{"message": "Posição atualizada com sucesso!"})
}

// Delete handles DELETE /posicoes/:id
func (h *PositionController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.positions.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "delete position", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PositionController) publish(pos models.VehiclePosition) {
	if h.publisher == nil {
		return
	}
	h.publisher.Publish(pos)
	fields := logrus.Fields{"position_id": pos.ID}
	if pos.VehicleID != nil {
		fields["vehicle_id"] = *pos.VehicleID
	}
	logrus.WithFields(fields).Debug("position published to hub")
}
