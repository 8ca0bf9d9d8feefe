package services

import (
	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/pagination"
)

func (s *ServiceSuite) TestClientCreate() {
	client, err := s.svc.Clients.Create(s.ctx, ClientInput{
		LastName:   " Bernard ",
		FirstName:  "Luc",
		Email:      "Luc.Bernard@Mail.test",
		NationalID: "AB123456",
	})
	s.Require().NoError(err)
	s.Equal("Bernard", client.LastName)
	s.Equal("luc.bernard@mail.test", client.Email)

	events := s.timeline(domain.EntityClient, client)
	s.Require().Len(events, 1)
	s.Equal(domain.EventCreated, events[0].EventType)
	s.Equal("luc.bernard@mail.test", events[0].After["email"])

	tests := []struct {
		name  string
		input ClientInput
		field string
	}{
		{"missing name", ClientInput{Email: "a@mail.test", NationalID: "X1"}, "nom"},
		{"bad email", ClientInput{LastName: "A", Email: "not-an-email", NationalID: "X1"}, "email"},
		{"missing id card", ClientInput{LastName: "A", Email: "a@mail.test"}, "carte_identite"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.Clients.Create(s.ctx, tt.input)
			s.requireInvalid(err, tt.field)
		})
	}

	s.Run("duplicate email", func() {
		_, err := s.svc.Clients.Create(s.ctx, ClientInput{LastName: "Autre", Email: "luc.bernard@mail.test", NationalID: "ZZ999"})
		s.requireDuplicate(err, "email")
	})

	s.Run("duplicate id card", func() {
		_, err := s.svc.Clients.Create(s.ctx, ClientInput{LastName: "Autre", Email: "autre@mail.test", NationalID: "AB123456"})
		s.requireDuplicate(err, "carte_identite")
	})
}

func (s *ServiceSuite) TestClientUpdate() {
	client := s.newClient("claire@mail.test", "CIN-1")
	other := s.newClient("paul@mail.test", "CIN-2")

	updated, err := s.svc.Clients.Update(s.ctx, client.ID, UpdateClientInput{Phone: strPtr("0601020304")})
	s.Require().NoError(err)
	s.Equal("0601020304", updated.Phone)

	_, err = s.svc.Clients.Update(s.ctx, client.ID, UpdateClientInput{Phone: strPtr("0601020304")})
	s.Require().NoError(err)

	events := s.timeline(domain.EntityClient, client)
	s.Require().Len(events, 2)
	s.Equal(map[string]any{"telephone": "0601020304"}, map[string]any(events[1].After))

	_, err = s.svc.Clients.Update(s.ctx, other.ID, UpdateClientInput{Email: strPtr("CLAIRE@mail.test")})
	s.requireDuplicate(err, "email")
}

func (s *ServiceSuite) TestClientDelete() {
	contract := s.newContract("POL-CLI", "2025-01-01", "2026-01-01", "100")

	err := s.svc.Clients.Delete(s.ctx, contract.ClientID)
	s.requireInvalid(err, "id_client")

	lonely := s.newClient("seul@mail.test", "CIN-SEUL")
	s.Require().NoError(s.svc.Clients.Delete(s.ctx, lonely.ID))

	_, err = s.svc.Clients.Get(s.ctx, lonely.ID)
	s.Require().ErrorIs(err, domain.ErrNotFound)

	events := s.timeline(domain.EntityClient, lonely)
	s.Require().Len(events, 2)
	s.Equal(domain.EventDeleted, events[1].EventType)
	s.Equal("seul@mail.test", events[1].Before["email"])
}

func (s *ServiceSuite) TestClientSearch() {
	s.newClient("claire@mail.test", "CIN-1")
	s.newClient("paul@mail.test", "CIN-2")

	found, total, err := s.svc.Clients.List(s.ctx, "paul", pagination.New(1, 20))
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Require().Len(found, 1)
	s.Equal("paul@mail.test", found[0].Email)

	_, total, err = s.svc.Clients.List(s.ctx, "", pagination.New(1, 1))
	s.Require().NoError(err)
	s.EqualValues(2, total)
}
