package user

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Grupo5-Biologia-Marina/server/internal/database"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	originalDB := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = originalDB })

	return mock
}

func TestExistsByEmail(t *testing.T) {
	tests := []struct {
		name     string
		count    int64
		expected bool
	}{
		{name: "Email taken", count: 1, expected: true},
		{name: "Email free", count: 0, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupMockDB(t)
			mock.ExpectQuery(`SELECT count`).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			assert.Equal(t, tt.expected, ExistsByEmail("alice@x.com"))
		})
	}
}

func TestExistsByUsername(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT count`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	assert.True(t, ExistsByUsername("alice"))
}

func TestRoleOf(t *testing.T) {
	tests := []struct {
		name         string
		mockRows     *sqlmock.Rows
		expectedRole string
	}{
		{
			name:         "User is admin",
			mockRows:     sqlmock.NewRows([]string{"role"}).AddRow("admin"),
			expectedRole: "admin",
		},
		{
			name:         "User is regular",
			mockRows:     sqlmock.NewRows([]string{"role"}).AddRow("user"),
			expectedRole: "user",
		},
		{
			name:         "User not found",
			mockRows:     sqlmock.NewRows([]string{"role"}),
			expectedRole: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupMockDB(t)
			mock.ExpectQuery(`SELECT`).WillReturnRows(tt.mockRows)

			role, err := RoleOf("some-user-id")
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedRole, role)
		})
	}
}
