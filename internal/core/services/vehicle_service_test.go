package services

import (
	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/pagination"

	"github.com/google/uuid"
)

func (s *ServiceSuite) TestVehicleLifecycle() {
	contract := s.newContract("POL-AUTO", "2025-01-01", "2026-01-01", "480")

	vehicle, err := s.svc.Vehicles.Create(s.ctx, VehicleInput{
		Plate:      " ab-123-cd ",
		Brand:      "Renault",
		Model:      "Clio",
		Year:       2019,
		ContractID: &contract.ID,
	})
	s.Require().NoError(err)
	s.Equal("AB-123-CD", vehicle.Plate)

	got, err := s.svc.Vehicles.Get(s.ctx, "ab-123-cd")
	s.Require().NoError(err)
	s.Equal("Clio", got.Model)

	s.Run("plate taken", func() {
		_, err := s.svc.Vehicles.Create(s.ctx, VehicleInput{Plate: "AB-123-CD"})
		s.requireDuplicate(err, "immatriculation")
	})

	s.Run("year out of range", func() {
		_, err := s.svc.Vehicles.Create(s.ctx, VehicleInput{Plate: "OLD-1", Year: 1850})
		s.requireInvalid(err, "annee")
	})

	s.Run("unknown contract", func() {
		missing := uuid.New()
		_, err := s.svc.Vehicles.Create(s.ctx, VehicleInput{Plate: "NEW-1", ContractID: &missing})
		s.Require().ErrorIs(err, domain.ErrNotFound)
	})

	updated, err := s.svc.Vehicles.Update(s.ctx, "AB-123-CD", UpdateVehicleInput{Model: strPtr("Captur")})
	s.Require().NoError(err)
	s.Equal("Captur", updated.Model)

	list, total, err := s.svc.Vehicles.List(s.ctx, contract.ID.String(), pagination.New(1, 20))
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Require().Len(list, 1)

	s.Require().NoError(s.svc.Vehicles.Delete(s.ctx, "AB-123-CD"))

	events, err := s.svc.History.Timeline(s.ctx, domain.EntityVehicle, "AB-123-CD")
	s.Require().NoError(err)
	s.Require().Len(events, 3)
	s.Equal("Clio", events[1].Before["modele"])
	s.Equal("Captur", events[1].After["modele"])
	s.Equal(domain.EventDeleted, events[2].EventType)
}
