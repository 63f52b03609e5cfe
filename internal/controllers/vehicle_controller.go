package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"transit_api/internal/models"
)

// VehicleStore is the persistence the vehicle endpoints depend on.
type VehicleStore interface {
	List(ctx context.Context) ([]models.Vehicle, error)
	Get(ctx context.Context, id int64) (*models.Vehicle, error)
	Create(ctx context.Context, vehicle *models.Vehicle) error
	Update(ctx context.Context, currentID int64, in models.VehicleInput) error
	Delete(ctx context.Context, id int64) error
}

// VehicleController serves /veiculos.
type VehicleController struct {
	vehicles VehicleStore
}

func NewVehicleController(vehicles VehicleStore) *VehicleController {
	return &VehicleController{vehicles: vehicles}
}

type createVehicleRequest struct {
	ID     *int64 `json:"id" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Model  string `json:"model" binding:"required"`
	LineID *int64 `json:"lineId"`
}

type updateVehicleRequest struct {
	ID     *int64  `json:"id"`
	Name   *string `json:"name" binding:"omitempty,min=1"`
	Model  *string `json:"model" binding:"omitempty,min=1"`
	LineID *int64  `json:"lineId"`
}

// List handles GET /veiculos
func (h *VehicleController) List(c *gin.Context) {
	vehicles, err := h.vehicles.List(c.Request.Context())
	if err != nil {
		respondError(c, "list vehicles", err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// Get handles GET /veiculos/:id
func (h *VehicleController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	vehicle, err := h.vehicles.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "get vehicle", err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// Create handles POST /veiculos
func (h *VehicleController) Create(c *gin.Context) {
	var req createVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	vehicle := &models.Vehicle{
		ID:     *req.ID,
		Name:   req.Name,
		Model:  req.Model,
		LineID: req.LineID,
	}
	if err := h.vehicles.Create(c.Request.Context(), vehicle); err != nil {
		respondError(c, "create vehicle", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Veículo adicionado com sucesso!"})
}

// Update handles PUT /veiculos/:id
func (h *VehicleController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	in := models.VehicleInput{
		ID:     req.ID,
		Name:   req.Name,
		Model:  req.Model,
		LineID: req.LineID,
	}
	if err := h.vehicles.Update(c.Request.Context(), id, in); err != nil {
		respondError(c, "update vehicle", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Veículo atualizado com sucesso!"})
}

// Delete handles DELETE /veiculos/:id
func (h *VehicleController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.vehicles.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "delete vehicle", err)
		return
	}
	c.Status(http.StatusNoContent)
}
