package condo_service

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/billing_core"
)

type MigrationHandler func() error

func NewMigrationHandler(
	db *gorm.DB,
	log *zap.Logger,
) MigrationHandler {
	return func() error {
		log.Info("migrating condo service")
		return db.AutoMigrate(
			&accounting_core.Account{},
			&accounting_core.Ledger{},
			&accounting_core.Transaction{},
			&accounting_core.AccountingDocument{},
			&accounting_core.DocumentEntry{},
			&accounting_core.FiscalYear{},

			&billing_core.Unit{},
			&billing_core.InstallmentDefinition{},
			&billing_core.UserInstallment{},
			&billing_core.PaymentRecord{},
			&billing_core.Penalty{},
			&billing_core.PenaltySetting{},
		)
	}
}

type SeedHandler func(projectID uint) error

// NewSeedHandler installs the default chart for a project, skipping
// codes that already exist so reseeding is harmless.
func NewSeedHandler(
	db *gorm.DB,
	log *zap.Logger,
) SeedHandler {
	return func(projectID uint) error {
		log.Info("seeding default chart", zap.Uint("project_id", projectID))

		return db.Transaction(func(tx *gorm.DB) error {
			byCode := map[accounting_core.AccountCode]uint{}

			for _, tmpl := range accounting_core.DefaultChart() {
				var old accounting_core.Account
				err := tx.Model(&accounting_core.Account{}).
					Where("project_id = ?", projectID).
					Where("code = ?", tmpl.Code).
					Find(&old).
					Error
				if err != nil {
					return err
				}
				if old.ID != 0 {
					byCode[old.Code] = old.ID
					continue
				}

				acc := accounting_core.Account{
					ProjectID: projectID,
					Code:      tmpl.Code,
					Name:      tmpl.Name,
					Type:      tmpl.Type,
					Level:     tmpl.Level,
					IsActive:  tmpl.IsActive,
				}
				if parentCode, ok := tmpl.Code.ParentCode(); ok {
					if parentID, found := byCode[parentCode]; found {
						acc.ParentID = &parentID
					}
				}

				err = tx.Create(&acc).Error
				if err != nil {
					return err
				}
				byCode[acc.Code] = acc.ID
			}

			return nil
		})
	}
}
