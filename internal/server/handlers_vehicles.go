package server

import (
	"encoding/json"

	"github.com/limmers2015/Car-Part-Connection/internal/domain"
	apierrors "github.com/limmers2015/Car-Part-Connection/internal/errors"
	"github.com/limmers2015/Car-Part-Connection/internal/httpd"
)

// vehiclePayload uses pointers so an absent field is distinguishable from a
// zero value.
type vehiclePayload struct {
	Year     *int    `json:"year"`
	Make     *string `json:"make"`
	Model    *string `json:"model"`
	Nickname string  `json:"nickname"`
}

func (s *Server) handleVehiclesList(req *httpd.Request, res *httpd.Response) {
	ctx, cancel := requestContext()
	defer cancel()

	userID, ok := s.authenticate(ctx, req)
	if !ok {
		fail(res, apierrors.Unauthorized)
		return
	}

	vehicles, err := s.vehicles.List(ctx, userID)
	if err != nil {
		fail(res, apierrors.DBError.WithCause(err))
		return
	}

	_ = res.WriteJSON(200, map[string][]domain.Vehicle{"items": vehicles})
}

func (s *Server) handleVehiclesCreate(req *httpd.Request, res *httpd.Response) {
	ctx, cancel := requestContext()
	defer cancel()

	userID, ok := s.authenticate(ctx, req)
	if !ok {
		fail(res, apierrors.Unauthorized)
		return
	}

	if req.Body == nil {
		fail(res, apierrors.InvalidJSON)
		return
	}
	var payload vehiclePayload
	if err := json.Unmarshal(req.Body, &payload); err != nil {
		fail(res, apierrors.InvalidJSON)
		return
	}
	if payload.Year == nil || payload.Make == nil || payload.Model == nil {
		fail(res, apierrors.InvalidInput)
		return
	}

	vehicle, err := s.vehicles.Create(ctx, userID, domain.NewVehicle{
		Year:     *payload.Year,
		Make:     *payload.Make,
		Model:    *payload.Model,
		Nickname: payload.Nickname,
	})
	if err != nil {
		fail(res, apierrors.DBError.WithCause(err))
		return
	}

	_ = res.WriteJSON(201, vehicle)
}
