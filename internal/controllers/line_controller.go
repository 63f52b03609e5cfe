package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"transit_api/internal/models"
)

// LineStore is the persistence the line endpoints depend on.
type LineStore interface {
	List(ctx context.Context) ([]models.LineWithStops, error)
	Get(ctx context.Context, id int64) (*models.LineWithStops, error)
	GetWithVehicles(ctx context.Context, id int64) (*models.LineWithVehicles, error)
	Create(ctx context.Context, line *models.Line, stopIDs []int64) error
	Update(ctx context.Context, currentID int64, in models.LineInput, stopIDs *[]int64) error
	Delete(ctx context.Context, id int64) error
}

// LineController serves /linhas.
type LineController struct {
	lines LineStore
}

func NewLineController(lines LineStore) *LineController {
	return &LineController{lines: lines}
}

type createLineRequest struct {
	ID      *int64  `json:"id" binding:"required"`
	Name    string  `json:"name" binding:"required"`
	StopIDs []int64 `json:"stopIds" binding:"required"`
}

type updateLineRequest struct {
	ID      *int64   `json:"id"`
	Name    *string  `json:"name" binding:"omitempty,min=1"`
	StopIDs *[]int64 `json:"stopIds"`
}

// List handles GET /linhas
func (h *LineController) List(c *gin.Context) {
	lines, err := h.lines.List(c.Request.Context())
	if err != nil {
		respondError(c, "list lines", err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

// Get handles GET /linhas/:id
func (h *LineController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	line, err := h.lines.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "get line", err)
		return
	}
	c.JSON(http.StatusOK, line)
}

// GetVehicles handles GET /linhas/:id/veiculos
func (h *LineController) GetVehicles(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	line, err := h.lines.GetWithVehicles(c.Request.Context(), id)
	if err != nil {
		respondError(c, "get line vehicles", err)
		return
	}
	c.JSON(http.StatusOK, line)
}

// GeoJSON handles GET /linhas/:id/geojson
//
// The response is a FeatureCollection with one Point per stop, in route
// order, followed by a LineString through them when there are two or more.
func (h *LineController) GeoJSON(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	line, err := h.lines.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "get line geojson", err)
		return
	}

	fc, err := lineFeatures(line)
	if err != nil {
		respondError(c, "encode line geojson", err)
		return
	}
	body, err := json.Marshal(fc)
	if err != nil {
		respondError(c, "encode line geojson", err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", body)
}

func lineFeatures(line *models.LineWithStops) (*geojson.FeatureCollection, error) {
	fc := &geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, len(line.Stops)+1),
	}
	coords := make([]geom.Coord, 0, len(line.Stops))
	for _, s := range line.Stops {
		coord := geom.Coord{s.Longitude, s.Latitude}
		pt, err := geom.NewPoint(geom.XY).SetCoords(coord)
		if err != nil {
			return nil, err
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       strconv.FormatInt(s.ID, 10),
			Geometry: pt,
			Properties: map[string]interface{}{
				"kind": "parada",
				"id":   s.ID,
				"name": s.Name,
			},
		})
		coords = append(coords, coord)
	}

	if len(coords) >= 2 {
		path, err := geom.NewLineString(geom.XY).SetCoords(coords)
		if err != nil {
			return nil, err
		}
		fc.BBox = path.Bounds()
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       "linha-" + strconv.FormatInt(line.ID, 10),
			Geometry: path,
			Properties: map[string]interface{}{
				"kind": "linha",
				"id":   line.ID,
				"name": line.Name,
			},
		})
	}
	return fc, nil
}

// Create handles POST /linhas
func (h *LineController) Create(c *gin.Context) {
	var req createLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	line := &models.Line{ID: *req.ID, Name: req.Name}
	if err := h.lines.Create(c.Request.Context(), line, req.StopIDs); err != nil {
		respondError(c, "create line", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Linha adicionada com sucesso!"})
}

// Update handles PUT /linhas/:id
//
// A supplied stopIds list replaces the line's stops entirely, even when empty.
func (h *LineController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	in := models.LineInput{ID: req.ID, Name: req.Name}
	if err := h.lines.Update(c.Request.Context(), id, in, req.StopIDs); err != nil {
		respondError(c, "update line", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Linha atualizada com sucesso!"})
}

// Delete handles DELETE /linhas/:id
func (h *LineController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.lines.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "delete line", err)
		return
	}
	c.Status(http.StatusNoContent)
}
