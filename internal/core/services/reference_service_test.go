package services

import (
	"assurgest/internal/core/domain"
)

func (s *ServiceSuite) TestInsuranceTypes() {
	types, err := s.svc.References.ListInsuranceTypes(s.ctx)
	s.Require().NoError(err)
	s.Len(types, 5)

	pro, err := s.svc.References.CreateInsuranceType(s.ctx, NamedInput{Name: "Responsabilité civile pro"})
	s.Require().NoError(err)

	_, err = s.svc.References.CreateInsuranceType(s.ctx, NamedInput{Name: "Automobile"})
	s.requireDuplicate(err, "nom")

	_, err = s.svc.References.UpdateInsuranceType(s.ctx, pro.ID, NamedInput{Name: "Habitation"})
	s.requireDuplicate(err, "nom")

	renamed, err := s.svc.References.UpdateInsuranceType(s.ctx, pro.ID, NamedInput{Name: "RC Pro", Description: "Professionnels"})
	s.Require().NoError(err)
	s.Equal("RC Pro", renamed.Name)

	s.newContract("POL-REF", "2025-01-01", "2026-01-01", "100")
	err = s.svc.References.DeleteInsuranceType(s.ctx, s.insuranceTypeID)
	s.requireInvalid(err, "id_type_assurance")

	s.Require().NoError(s.svc.References.DeleteInsuranceType(s.ctx, pro.ID))
}

func (s *ServiceSuite) TestCompaniesAndFolderStates() {
	_, err := s.svc.References.CreateCompany(s.ctx, CompanyInput{Name: " "})
	s.requireInvalid(err, "nom_compagnie")

	s.newContract("POL-COMP", "2025-01-01", "2026-01-01", "100")
	err = s.svc.References.DeleteCompany(s.ctx, s.companyID)
	s.requireInvalid(err, "id_compagnie")

	states, err := s.svc.References.ListFolderStates(s.ctx)
	s.Require().NoError(err)
	s.Len(states, 3)

	_, err = s.svc.References.CreateFolderState(s.ctx, NamedInput{Name: domain.FolderStateOpen})
	s.requireDuplicate(err, "nom_etat")

	suspended, err := s.svc.References.CreateFolderState(s.ctx, NamedInput{Name: "Suspendu"})
	s.Require().NoError(err)
	s.Require().NoError(s.svc.References.DeleteFolderState(s.ctx, suspended.ID))
}
