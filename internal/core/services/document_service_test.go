package services

import (
	"strings"

	"assurgest/internal/core/domain"

	"github.com/google/uuid"
)

func (s *ServiceSuite) upload(ownerType string, ownerID uuid.UUID, name string) (*UploadInput, error) {
	body := "contenu du constat"
	in := &UploadInput{
		FileName:    name,
		ContentType: "application/pdf",
		Size:        int64(len(body)),
		Body:        strings.NewReader(body),
		OwnerType:   ownerType,
		OwnerID:     ownerID,
	}
	_, err := s.svc.Documents.Upload(s.ctx, *in)
	return in, err
}

func (s *ServiceSuite) TestDocumentUploadAndDelete() {
	contract := s.newContract("POL-DOC", "2025-01-01", "2026-01-01", "250")
	claim := s.newClaim(contract, "SIN-DOC")

	doc, err := s.svc.Documents.Upload(s.ctx, UploadInput{
		FileName:    "../../constat.PDF",
		ContentType: "application/pdf",
		Size:        5,
		Body:        strings.NewReader("%PDF-"),
		OwnerType:   domain.OwnerClaim,
		OwnerID:     claim.ID,
	})
	s.Require().NoError(err)
	s.Equal("constat.PDF", doc.FileName)
	s.True(strings.HasSuffix(doc.Path, ".pdf"))
	s.True(s.store.Has(doc.Path))
	s.Require().NotNil(doc.UploadedBy)
	s.Equal(s.userID, *doc.UploadedBy)

	url, err := s.svc.Documents.DownloadURL(s.ctx, doc.ID)
	s.Require().NoError(err)
	s.Equal("memory://"+doc.Path, url)

	docs, err := s.svc.Documents.ListByOwner(s.ctx, domain.OwnerClaim, claim.ID)
	s.Require().NoError(err)
	s.Len(docs, 1)

	s.Require().NoError(s.svc.Documents.Delete(s.ctx, doc.ID))
	s.False(s.store.Has(doc.Path))

	_, err = s.svc.Documents.Get(s.ctx, doc.ID)
	s.Require().ErrorIs(err, domain.ErrNotFound)

	events := s.timeline(domain.EntityDocument, doc)
	s.Require().Len(events, 2)
	s.Equal(domain.EventDeleted, events[1].EventType)
}

func (s *ServiceSuite) TestDocumentUploadRules() {
	contract := s.newContract("POL-DOC-2", "2025-01-01", "2026-01-01", "250")

	s.Run("unknown owner type", func() {
		_, err := s.upload("client", contract.ID, "cni.png")
		s.requireInvalid(err, "type_entite")
	})

	s.Run("missing owner", func() {
		_, err := s.upload(domain.OwnerFolder, uuid.New(), "note.txt")
		s.Require().ErrorIs(err, domain.ErrNotFound)
	})

	s.Run("empty file", func() {
		_, err := s.svc.Documents.Upload(s.ctx, UploadInput{
			FileName:  "vide.txt",
			Body:      strings.NewReader(""),
			OwnerType: domain.OwnerContract,
			OwnerID:   contract.ID,
		})
		s.requireInvalid(err, "taille")
	})

	in, err := s.upload(domain.OwnerContract, contract.ID, "conditions.pdf")
	s.Require().NoError(err)
	s.Equal("conditions.pdf", in.FileName)
}

func (s *ServiceSuite) TestDocumentStorageDisabled() {
	contract := s.newContract("POL-NOSTORE", "2025-01-01", "2026-01-01", "250")
	svc := New(s.db, testConfig(), s.blacklist, nil, nil)

	_, err := svc.Documents.Upload(s.ctx, UploadInput{
		FileName:  "a.pdf",
		Size:      1,
		Body:      strings.NewReader("a"),
		OwnerType: domain.OwnerContract,
		OwnerID:   contract.ID,
	})
	s.Require().ErrorIs(err, domain.ErrStorageDisabled)

	_, err = svc.Documents.DownloadURL(s.ctx, uuid.New())
	s.Require().ErrorIs(err, domain.ErrStorageDisabled)
}
