package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"transit_api/internal/models"
)

// StopStore is the persistence the stop endpoints depend on.
type StopStore interface {
	List(ctx context.Context) ([]models.Stop, error)
	Get(ctx context.Context, id int64) (*models.Stop, error)
	Create(ctx context.Context, stop *models.Stop) error
	Update(ctx context.Context, currentID int64, in models.StopInput) error
	Delete(ctx context.Context, id int64) error
	ListNear(ctx context.Context, lat, lon float64) ([]models.Stop, error)
	GetWithLines(ctx context.Context, id int64) (*models.StopWithLines, error)
}

// StopController serves /paradas.
type StopController struct {
	stops StopStore
}

func NewStopController(stops StopStore) *StopController {
	return &StopController{stops: stops}
}

type createStopRequest struct {
	ID        *int64   `json:"id" binding:"required"`
	Name      string   `json:"name" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

type updateStopRequest struct {
	ID        *int64   `json:"id"`
	Name      *string  `json:"name" binding:"omitempty,min=1"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type nearQuery struct {
	Latitude  *float64 `form:"latitude" binding:"required"`
	Longitude *float64 `form:"longitude" binding:"required"`
}

// List handles GET /paradas
func (h *StopController) List(c *gin.Context) {
	stops, err := h.stops.List(c.Request.Context())
	if err != nil {
		respondError(c, "list stops", err)
		return
	}
	c.JSON(http.StatusOK, stops)
}

// Get handles GET /paradas/:id
func (h *StopController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	stop, err := h.stops.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "get stop", err)
		return
	}
	c.JSON(http.StatusOK, stop)
}

// GetLines handles GET /paradas/:id/linhas
func (h *StopController) GetLines(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	stop, err := h.stops.GetWithLines(c.Request.Context(), id)
	if err != nil {
		respondError(c, "get stop lines", err)
		return
	}
	c.JSON(http.StatusOK, stop)
}

// ListNear handles GET /paradas-posicao?latitude=&longitude=
//
// Returns the stops within one degree of latitude and one degree of
// longitude of the given point.
func (h *StopController) ListNear(c *gin.Context) {
	var q nearQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	stops, err := h.stops.ListNear(c.Request.Context(), *q.Latitude, *q.Longitude)
	if err != nil {
		respondError(c, "list stops near", err)
		return
	}
	c.JSON(http.StatusOK, stops)
}

// Create handles POST /paradas
func (h *StopController) Create(c *gin.Context) {
	var req createStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	stop := &models.Stop{
		ID:        *req.ID,
		Name:      req.Name,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	}
	if err := h.stops.Create(c.Request.Context(), stop); err != nil {
		respondError(c, "create stop", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Parada adicionada com sucesso!"})
}

// Update handles PUT /paradas/:id
func (h *StopController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	in := models.StopInput{
		ID:        req.ID,
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := h.stops.Update(c.Request.Context(), id, in); err != nil {
		respondError(c, "update stop", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Parada atualizada com sucesso!"})
}

// Delete handles DELETE /paradas/:id
func (h *StopController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.stops.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "delete stop", err)
		return
	}
	c.Status(http.StatusNoContent)
}
