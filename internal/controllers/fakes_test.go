package controllers

import (
	"context"
	"sync"

	"transit_api/internal/models"
)

type fakeStopStore struct {
	err     error
	stops   []models.Stop
	created *models.Stop
	updated *models.StopInput
	nearLat float64
	nearLon float64
}

func (f *fakeStopStore) List(context.Context) ([]models.Stop, error) { return f.stops, f.err }

func (f *fakeStopStore) Get(_ context.Context, id int64) (*models.Stop, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Stop{ID: id, Name: "A"}, nil
}

func (f *fakeStopStore) Create(_ context.Context, stop *models.Stop) error {
	f.created = stop
	return f.err
}

func (f *fakeStopStore) Update(_ context.Context, _ int64, in models.StopInput) error {
	f.updated = &in
	return f.err
}

func (f *fakeStopStore) Delete(context.Context, int64) error { return f.err }

func (f *fakeStopStore) ListNear(_ context.Context, lat, lon float64) ([]models.Stop, error) {
	f.nearLat, f.nearLon = lat, lon
	return f.stops, f.err
}

func (f *fakeStopStore) GetWithLines(_ context.Context, id int64) (*models.StopWithLines, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.StopWithLines{Stop: models.Stop{ID: id}, Lines: []models.Line{}}, nil
}

type fakeLineStore struct {
	err        error
	line       *models.LineWithStops
	createdIDs []int64
	updateIDs  *[]int64
	updateIn   *models.LineInput
}

func (f *fakeLineStore) List(context.Context) ([]models.LineWithStops, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []models.LineWithStops{*f.line}, nil
}

func (f *fakeLineStore) Get(context.Context, int64) (*models.LineWithStops, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.line, nil
}

func (f *fakeLineStore) GetWithVehicles(_ context.Context, id int64) (*models.LineWithVehicles, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.LineWithVehicles{Line: models.Line{ID: id}, Vehicles: []models.Vehicle{}}, nil
}

func (f *fakeLineStore) Create(_ context.Context, _ *models.Line, stopIDs []int64) error {
	f.createdIDs = stopIDs
	return f.err
}

func (f *fakeLineStore) Update(_ context.Context, _ int64, in models.LineInput, stopIDs *[]int64) error {
	f.updateIn = &in
	f.updateIDs = stopIDs
	return f.err
}

func (f *fakeLineStore) Delete(context.Context, int64) error { return f.err }

type fakePositionStore struct {
	err error
}

func (f *fakePositionStore) List(context.Context) ([]models.VehiclePosition, error) {
	return []models.VehiclePosition{}, f.err
}

func (f *fakePositionStore) Get(_ context.Context, id int64) (*models.VehiclePosition, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.VehiclePosition{ID: id}, nil
}

func (f *fakePositionStore) Create(_ context.Context, pos *models.VehiclePosition) error {
	if f.err != nil {
		return f.err
	}
	pos.ID = 1
	return nil
}

func (f *fakePositionStore) Update(_ context.Context, id int64, in models.VehiclePositionInput) (*models.VehiclePosition, error) {
	if f.err != nil {
		return nil, f.err
	}
	pos := &models.VehiclePosition{ID: id, VehicleID: in.VehicleID}
	if in.Latitude != nil {
		pos.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		pos.Longitude = *in.Longitude
	}
	return pos, nil
}

func (f *fakePositionStore) Delete(context.Context, int64) error { return f.err }

type recordingPublisher struct {
	mu        sync.Mutex
	published []models.VehiclePosition
}

func (p *recordingPublisher) Publish(pos models.VehiclePosition) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, pos)
}
