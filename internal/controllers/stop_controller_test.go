package controllers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transit_api/internal/models"
	"transit_api/internal/repository"
)

func stopRouter(store StopStore) *gin.Engine {
	h := NewStopController(store)
	r := gin.New()
	r.GET("/paradas", h.List)
	r.GET("/paradas/:id", h.Get)
	r.GET("/paradas/:id/linhas", h.GetLines)
	r.GET("/paradas-posicao", h.ListNear)
	r.POST("/paradas", h.Create)
	r.PUT("/paradas/:id", h.Update)
	r.DELETE("/paradas/:id", h.Delete)
	return r
}

func TestStopCreate(t *testing.T) {
	store := &fakeStopStore{}
	r := stopRouter(store)

	w := doRequest(r, http.MethodPost, "/paradas", `{"id":1,"name":"A","latitude":0,"longitude":-46.6}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Parada adicionada com sucesso!", decodeBody(t, w)["message"])
	require.NotNil(t, store.created)
	assert.Equal(t, models.Stop{ID: 1, Name: "A", Latitude: 0, Longitude: -46.6}, *store.created)
}

func TestStopCreateValidation(t *testing.T) {
	store := &fakeStopStore{}
	r := stopRouter(store)

	w := doRequest(r, http.MethodPost, "/paradas", `{"id":1,"latitude":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	fields, ok := body["errors"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "required", fields["Name"])
	assert.Equal(t, "required", fields["Longitude"])
	assert.Nil(t, store.created)
}

func TestStopCreateMalformedJSON(t *testing.T) {
	r := stopRouter(&fakeStopStore{})

	w := doRequest(r, http.MethodPost, "/paradas", `{"id":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStopCreateConflict(t *testing.T) {
	store := &fakeStopStore{err: &repository.ConflictError{Message: "Parada com mesmo id já foi cadastrada no sistema!"}}
	r := stopRouter(store)

	w := doRequest(r, http.MethodPost, "/paradas", `{"id":1,"name":"A","latitude":0,"longitude":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Parada com mesmo id já foi cadastrada no sistema!", decodeBody(t, w)["message"])
}

func TestStopUpdatePartial(t *testing.T) {
	store := &fakeStopStore{}
	r := stopRouter(store)

	w := doRequest(r, http.MethodPut, "/paradas/1", `{"latitude":-23.5}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Parada atualizada com sucesso!", decodeBody(t, w)["message"])

	require.NotNil(t, store.updated)
	assert.Nil(t, store.updated.Name)
	assert.Nil(t, store.updated.ID)
	require.NotNil(t, store.updated.Latitude)
	assert.Equal(t, -23.5, *store.updated.Latitude)
}

func TestStopUpdateRejectsEmptyName(t *testing.T) {
	store := &fakeStopStore{}
	r := stopRouter(store)

	w := doRequest(r, http.MethodPut, "/paradas/1", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, store.updated)
}

func TestStopDelete(t *testing.T) {
	r := stopRouter(&fakeStopStore{})

	w := doRequest(r, http.MethodDelete, "/paradas/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestStopDeleteNotFound(t *testing.T) {
	r := stopRouter(&fakeStopStore{err: &repository.NotFoundError{Message: "Parada não encontrada!"}})

	w := doRequest(r, http.MethodDelete, "/paradas/1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Parada não encontrada!", decodeBody(t, w)["message"])
}

func TestStopListFailure(t *testing.T) {
	store := &fakeStopStore{err: &repository.PersistenceError{Op: "list stops", Err: errors.New("connection refused")}}
	r := stopRouter(store)

	w := doRequest(r, http.MethodGet, "/paradas", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, msgUnexpected, body["message"])
	assert.Contains(t, body["error"], "connection refused")
}

func TestStopListNearQuery(t *testing.T) {
	store := &fakeStopStore{stops: []models.Stop{{ID: 1, Name: "A"}}}
	r := stopRouter(store)

	w := doRequest(r, http.MethodGet, "/paradas-posicao?latitude=-23.5&longitude=-46.6", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, -23.5, store.nearLat)
	assert.Equal(t, -46.6, store.nearLon)
}

func TestStopListNearRequiresCoordinates(t *testing.T) {
	r := stopRouter(&fakeStopStore{})

	w := doRequest(r, http.MethodGet, "/paradas-posicao?latitude=1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodGet, "/paradas-posicao?latitude=north&longitude=1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStopGetLines(t *testing.T) {
	r := stopRouter(&fakeStopStore{})

	w := doRequest(r, http.MethodGet, "/paradas/3/linhas", "")
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(3), body["id"])
	assert.Equal(t, []interface{}{}, body["linhas"])
}
