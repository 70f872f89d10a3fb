package database

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/mhbaltimore/directory/internal/infrastructure/clients/postgres"
)

func newMockClient(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return postgres.NewClientFromDB(db), mock
}

func columnNames(cols []interface{}) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.(string)
	}
	return names
}

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// providerRow returns a row in providerColumns order
func providerRow(id, lastName, status string, waitWeeks interface{}) []driver.Value {
	return []driver.Value{
		id, "Dana", lastName, "LCSW-C", "lcsw", "female",
		nil, nil, "410-555-0100", nil, nil, "1 N Charles St", "Baltimore", "MD",
		"21224", "{anxiety,depression}", "{adults}", "{in_person,telehealth}", "{medicaid,self_pay}",
		"{\"CareFirst\"}", "{english,spanish}", status,
		waitWeeks, true, true, false,
		fixedTime, fixedTime,
	}
}

// organizationRow returns a row in organizationColumns order
func organizationRow(id, name string) []driver.Value {
	return []driver.Value{
		id, name, "community_center", "Peer support", nil, "410-555-0199",
		nil, nil, nil, "Baltimore", "MD", "21201",
		"{anxiety}", "{adults,seniors}", "{in_person}", "{free}",
		true, true, false, true,
		false, true, fixedTime, fixedTime,
	}
}
