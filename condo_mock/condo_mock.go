package condo_mock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/billing_core"
)

// NewTestDB opens a per-test in-memory sqlite database with the full
// schema migrated. cache=shared keeps every connection of the pool on
// the same database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
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
	require.NoError(t, err)

	return db
}

// SeedChart installs the default chart for a project and returns the
// created accounts keyed by code.
func SeedChart(t *testing.T, db *gorm.DB, projectID uint) map[accounting_core.AccountCode]*accounting_core.Account {
	t.Helper()

	byCode := map[accounting_core.AccountCode]*accounting_core.Account{}
	for _, tmpl := range accounting_core.DefaultChart() {
		acc := &accounting_core.Account{
			ProjectID: projectID,
			Code:      tmpl.Code,
			Name:      tmpl.Name,
			Type:      tmpl.Type,
			Level:     tmpl.Level,
			IsActive:  tmpl.IsActive,
		}
		if parentCode, ok := tmpl.Code.ParentCode(); ok {
			if parent, found := byCode[parentCode]; found {
				acc.ParentID = &parent.ID
			}
		}

		err := db.Create(acc).Error
		require.NoError(t, err)
		byCode[acc.Code] = acc
	}

	return byCode
}

// SeedFiscalYear creates one fiscal year row for a project.
func SeedFiscalYear(t *testing.T, db *gorm.DB, projectID uint, year int) *accounting_core.FiscalYear {
	t.Helper()

	fy := &accounting_core.FiscalYear{
		ProjectID: projectID,
		Year:      year,
		StartDate: time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(year, 12, 31, 23, 59, 59, 0, time.UTC),
	}
	err := db.Create(fy).Error
	require.NoError(t, err)
	return fy
}

// SeedUnit creates one unit for the given user with the given area.
func SeedUnit(t *testing.T, db *gorm.DB, projectID, userID uint, name string, area float64) *billing_core.Unit {
	t.Helper()

	unit := &billing_core.Unit{
		ProjectID: projectID,
		UserID:    userID,
		Name:      name,
		Area:      area,
		Created:   time.Now(),
	}
	err := db.Create(unit).Error
	require.NoError(t, err)
	return unit
}
