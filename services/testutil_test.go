package services

import (
	"testing"

	"hostel-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Admin{},
		&models.HostelSetting{},
		&models.Hostel{},
		&models.Floor{},
		&models.Room{},
		&models.RoomAllocation{},
		&models.Payment{},
		&models.Student{},
		&models.Application{},
	))
	return db
}

// seedDirectory builds the smallest usable directory: one mixed hostel, a
// ground floor and rooms G01 (capacity 2, 575 per semester) and G02
// (capacity 2). Returns the hostel ID.
func seedDirectory(t *testing.T, db *gorm.DB) string {
	t.Helper()

	hostels := NewHostelService(db)
	hostelID, err := hostels.Create(CreateHostelInput{
		Name:             "Hostel1",
		Gender:           models.GenderMixed,
		PricePerSemester: 575,
	})
	require.NoError(t, err)

	floor, err := hostels.AddFloor(hostelID, "ground", "Ground Floor")
	require.NoError(t, err)

	for _, number := range []string{"G01", "G02"} {
		_, err = hostels.AddRoom(hostelID, floor.ID, AddRoomInput{
			Number:   number,
			Capacity: 2,
			Gender:   models.GenderMixed,
		})
		require.NoError(t, err)
	}
	return hostelID
}

func newAllocationService(db *gorm.DB) *AllocationService {
	return NewAllocationService(db, NewSettingsService(db))
}
