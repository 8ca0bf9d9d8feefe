package services

import (
	"errors"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/core/domain"

	"gorm.io/gorm"
)

func (s *ServiceSuite) TestFolderCreate() {
	contract := s.newContract("POL-DOS", "2025-01-01", "2026-01-01", "250")

	folder, err := s.svc.Folders.Create(s.ctx, CreateFolderInput{Number: "DOS-001", Title: "Dossier Martin", ContractID: contract.ID})
	s.Require().NoError(err)
	s.Equal("2025-03-10", models.FormatDate(folder.CreatedOn))
	s.Require().NotNil(folder.StateID)

	stored, err := s.svc.Folders.Get(s.ctx, folder.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored.State)
	s.Equal(domain.FolderStateOpen, stored.State.Name)

	s.Run("one folder per contract", func() {
		_, err := s.svc.Folders.Create(s.ctx, CreateFolderInput{Number: "DOS-002", Title: "Doublon", ContractID: contract.ID})
		s.requireDuplicate(err, "id_police")
	})

	s.Run("duplicate number", func() {
		other := s.newContract("POL-DOS-2", "2025-01-01", "2026-01-01", "250")
		_, err := s.svc.Folders.Create(s.ctx, CreateFolderInput{Number: "DOS-001", Title: "Doublon", ContractID: other.ID})
		s.requireDuplicate(err, "numero_dossier")
	})

	s.Run("title required", func() {
		_, err := s.svc.Folders.Update(s.ctx, folder.ID, UpdateFolderInput{Title: strPtr("  ")})
		s.requireInvalid(err, "titre")
	})
}

func (s *ServiceSuite) TestFolderArchive() {
	contract := s.newContract("POL-ARC", "2025-01-01", "2026-01-01", "250")
	folder, err := s.svc.Folders.Create(s.ctx, CreateFolderInput{Number: "DOS-ARC", Title: "A archiver", ContractID: contract.ID})
	s.Require().NoError(err)
	claim, err := s.svc.Claims.Create(s.ctx, CreateClaimInput{
		Number:       "SIN-ARC",
		IncidentDate: "2025-03-02",
		ContractID:   contract.ID,
		FolderID:     &folder.ID,
	})
	s.Require().NoError(err)

	archive, err := s.svc.Folders.Archive(s.ctx, folder.ID, ArchiveFolderInput{Reason: "Contrat soldé"})
	s.Require().NoError(err)
	s.Equal("DOS-ARC", archive.FolderNumber)
	s.Equal(testNow, archive.ArchivedAt)

	stored, err := s.svc.Folders.GetArchive(s.ctx, archive.ID)
	s.Require().NoError(err)
	s.Equal("Contrat soldé", stored.Reason)
	s.Equal("A archiver", stored.Content["titre"])
	s.Equal([]any{"SIN-ARC"}, stored.Content["sinistres"])

	_, err = s.svc.Folders.Get(s.ctx, folder.ID)
	s.Require().ErrorIs(err, domain.ErrNotFound)

	detached, err := s.svc.Claims.Get(s.ctx, claim.ID)
	s.Require().NoError(err)
	s.Nil(detached.FolderID)

	events := s.timeline(domain.EntityFolder, folder)
	s.Require().Len(events, 2)
	s.Equal(domain.EventFolderArchived, events[1].EventType)
	s.Equal(archive.ID.String(), events[1].Before["id_archive"])

	claimEvents := s.timeline(domain.EntityClaim, claim)
	s.Require().Len(claimEvents, 2)
	s.Equal(folder.ID.String(), claimEvents[1].Before["id_dossier"])
	s.Nil(claimEvents[1].After["id_dossier"])
}

func (s *ServiceSuite) TestFolderArchiveRollsBackOnFailure() {
	contract := s.newContract("POL-ATOM", "2025-01-01", "2026-01-01", "250")
	folder, err := s.svc.Folders.Create(s.ctx, CreateFolderInput{Number: "DOS-ATOM", Title: "Atomique", ContractID: contract.ID})
	s.Require().NoError(err)
	claim, err := s.svc.Claims.Create(s.ctx, CreateClaimInput{
		Number:       "SIN-ATOM",
		IncidentDate: "2025-03-02",
		ContractID:   contract.ID,
		FolderID:     &folder.ID,
	})
	s.Require().NoError(err)

	errDisk := errors.New("disk full")
	s.Require().NoError(s.db.Callback().Delete().Before("gorm:delete").Register("test:fail_folder_delete", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "dossiers" {
			_ = tx.AddError(errDisk)
		}
	}))
	events := s.historyCount()

	_, err = s.svc.Folders.Archive(s.ctx, folder.ID, ArchiveFolderInput{Reason: "échec"})
	s.Require().ErrorIs(err, errDisk)

	var archives int64
	s.Require().NoError(s.db.Model(&models.Archive{}).Count(&archives).Error)
	s.Zero(archives)

	_, err = s.svc.Folders.Get(s.ctx, folder.ID)
	s.Require().NoError(err)

	attached, err := s.svc.Claims.Get(s.ctx, claim.ID)
	s.Require().NoError(err)
	s.Require().NotNil(attached.FolderID)
	s.Equal(folder.ID, *attached.FolderID)

	s.Equal(events, s.historyCount())
}
