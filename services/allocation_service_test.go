package services

import (
	"testing"
	"time"

	"hostel-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateRoom(t *testing.T) {
	db := newTestDB(t)
	hostelID := seedDirectory(t, db)
	svc := newAllocationService(db)

	roomID := hostelID + "_floor_ground_G01"
	alloc, err := svc.Allocate("H250001A", roomID, hostelID)
	require.NoError(t, err)

	assert.Equal(t, models.AllocationPaymentPending, alloc.PaymentStatus)
	assert.NotEmpty(t, alloc.ID)
	assert.WithinDuration(t, time.Now().Add(168*time.Hour), alloc.PaymentDeadline, time.Minute)

	var room models.Room
	require.NoError(t, db.First(&room, "id = ?", roomID).Error)
	assert.Equal(t, []string{"H250001A"}, room.OccupantList())
	assert.True(t, room.IsAvailable, "one of two slots still free")

	var hostel models.Hostel
	require.NoError(t, db.First(&hostel, "id = ?", hostelID).Error)
	assert.Equal(t, 1, hostel.CurrentOccupancy)
}

func TestAllocateRejectsSecondAllocationForStudent(t *testing.T) {
	db := newTestDB(t)
	hostelID := seedDirectory(t, db)
	svc := newAllocationService(db)

	_, err := svc.Allocate("H250001A", hostelID+"_floor_ground_G01", hostelID)
	require.NoError(t, err)

	_, err = svc.Allocate("H250001A", hostelID+"_floor_ground_G02", hostelID)
	assert.ErrorIs(t, err, ErrAlreadyAllocated)
}

func TestAllocateNeverExceedsCapacity(t *testing.T) {
	db := newTestDB(t)
	hostelID := seedDirectory(t, db)
	svc := newAllocationService(db)

	roomID := hostelID + "_floor_ground_G01"
	_, err := svc.Allocate("H250001A", roomID, hostelID)
	require.NoError(t, err)
	_, err = svc.Allocate("H250002B", roomID, hostelID)
	require.NoError(t, err)

	_, err = svc.Allocate("H250003C", roomID, hostelID)
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	var room models.Room
	require.NoError(t, db.First(&room, "id = ?", roomID).Error)
	assert.Len(t, room.OccupantList(), 2)
	assert.False(t, room.IsAvailable)
}

func TestAllocateRejectsReservedRoom(t *testing.T) {
	db := newTestDB(t)
	hostelID := seedDirectory(t, db)
	svc := newAllocationService(db)

	roomID := hostelID + "_floor_ground_G01"
	_, err := svc.Reserve(roomID, "warden@hostel.local", 7)
	require.NoError(t, err)

	_, err = svc.Allocate("H250001A", roomID, hostelID)
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	room, err := svc.Unreserve(roomID)
	require.NoError(t, err)
	assert.True(t, room.IsAvailable)

	_, err = svc.Allocate("H250001A", roomID, hostelID)
	assert.NoError(t, err)
}

func TestStaleRoomVersionLosesTheWrite(t *testing.T) {
	db := newTestDB(t)
	hostelID := seedDirectory(t, db)

	roomID := hostelID + "_floor_ground_G01"
	var stale models.Room
	require.NoError(t, db.First(&stale, "id = ?", roomID).Error)

	var current models.Room
	require.NoError(t, db.First(&current, "id = ?", roomID).Error)
	require.NoError(t, writeRoomOccupants(db, &current, []string{"H250001A"}))

	err := writeRoomOccupants(db, &stale, []string{"H250002B"})
	assert.ErrorIs(t, err, ErrRoomConflict)

	var room models.Room
	require.NoError(t, db.First(&room, "id = ?", roomID).Error)
	assert.Equal(t, []string{"H250001A"}, room.OccupantList())
}

func TestRevokeIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	hostelID := seedDirectory(t, db)
	svc := newAllocationService(db)

	roomID := hostelID + "_floor_ground_G01"
	alloc, err := svc.Allocate("H250001A", roomID, hostelID)
	require.NoError(t, err)
	_, err = svc.Allocate("H250002B", roomID, hostelID)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(alloc.ID))
	require.NoError(t, svc.Revoke(alloc.ID), "second revoke is a no-op")

	var room models.Room
	require.NoError(t, db.First(&room, "id = ?", roomID).Error)
	assert.Equal(t, []string{"H250002B"}, room.OccupantList())
	assert.True(t, room.IsAvailable, "recomputed from the remaining occupant")

	var hostel models.Hostel
	require.NoError(t, db.First(&hostel, "id = ?", hostelID).Error)
	assert.Equal(t, 1, hostel.CurrentOccupancy)
}

func TestChangeMovesOccupantAcrossHostels(t *testing.T) {
	db := newTestDB(t)
	hostels := NewHostelService(db)
	sourceID := seedDirectory(t, db)
	svc := newAllocationService(db)

	targetID, err := hostels.Create(CreateHostelInput{
		Name:             "Hostel2",
		Gender:           models.GenderMixed,
		PricePerSemester: 600,
	})
	require.NoError(t, err)
	targetFloor, err := hostels.AddFloor(targetID, "ground", "Ground Floor")
	require.NoError(t, err)
	targetRoom, err := hostels.AddRoom(targetID, targetFloor.ID, AddRoomInput{
		Number:   "G01",
		Capacity: 1,
		Gender:   models.GenderMixed,
	})
	require.NoError(t, err)

	sourceRoomID := sourceID + "_floor_ground_G01"
	alloc, err := svc.Allocate("H250001A", sourceRoomID, sourceID)
	require.NoError(t, err)

	moved, err := svc.Change(alloc.ID, targetRoom.ID, targetID)
	require.NoError(t, err)
	assert.Equal(t, targetRoom.ID, moved.RoomID)
	assert.Equal(t, targetID, moved.HostelID)

	var source, target models.Room
	require.NoError(t, db.First(&source, "id = ?", sourceRoomID).Error)
	require.NoError(t, db.First(&target, "id = ?", targetRoom.ID).Error)
	assert.Empty(t, source.OccupantList())
	assert.Equal(t, []string{"H250001A"}, target.OccupantList())
	assert.False(t, target.IsAvailable, "capacity 1, now full")

	var oldHostel, newHostel models.Hostel
	require.NoError(t, db.First(&oldHostel, "id = ?", sourceID).Error)
	require.NoError(t, db.First(&newHostel, "id = ?", targetID).Error)
	assert.Equal(t, 0, oldHostel.CurrentOccupancy)
	assert.Equal(t, 1, newHostel.CurrentOccupancy)
}

func TestChangeHonorsRoomChangesToggle(t *testing.T) {
	db := newTestDB(t)
	hostelID := seedDirectory(t, db)
	settings := NewSettingsService(db)
	svc := NewAllocationService(db, settings)

	alloc, err := svc.Allocate("H250001A", hostelID+"_floor_ground_G01", hostelID)
	require.NoError(t, err)

	off := false
	_, err = settings.Update(UpdateSettingsInput{AllowRoomChanges: &off})
	require.NoError(t, err)

	_, err = svc.Change(alloc.ID, hostelID+"_floor_ground_G02", hostelID)
	assert.ErrorIs(t, err, ErrRoomChangesOff)
}

func TestChangeIntoCurrentRoomIsNoOp(t *testing.T) {
	db := newTestDB(t)
	hostelID := seedDirectory(t, db)
	svc := newAllocationService(db)

	roomID := hostelID + "_floor_ground_G01"
	alloc, err := svc.Allocate("H250001A", roomID, hostelID)
	require.NoError(t, err)

	moved, err := svc.Change(alloc.ID, roomID, hostelID)
	require.NoError(t, err)
	assert.Equal(t, roomID, moved.RoomID)

	var room models.Room
	require.NoError(t, db.First(&room, "id = ?", roomID).Error)
	assert.Equal(t, []string{"H250001A"}, room.OccupantList())
}

func TestRemoveOccupantDeletesAllocation(t *testing.T) {
	db := newTestDB(t)
	hostelID := seedDirectory(t, db)
	svc := newAllocationService(db)

	roomID := hostelID + "_floor_ground_G01"
	_, err := svc.Allocate("H250001A", roomID, hostelID)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveOccupant(hostelID, roomID, "H250001A"))

	var room models.Room
	require.NoError(t, db.First(&room, "id = ?", roomID).Error)
	assert.Empty(t, room.OccupantList())

	allocs, err := svc.FetchStudentAllocations("H250001A")
	require.NoError(t, err)
	assert.Empty(t, allocs)
}

func TestOverdueCheckFlipsPendingPastDeadline(t *testing.T) {
	db := newTestDB(t)
	hostelID := seedDirectory(t, db)
	svc := newAllocationService(db)

	alloc, err := svc.Allocate("H250001A", hostelID+"_floor_ground_G01", hostelID)
	require.NoError(t, err)

	// not yet overdue
	result, err := svc.CheckAndUpdateOverduePayments()
	require.NoError(t, err)
	assert.Equal(t, 1, result.CheckedCount)
	assert.Equal(t, 0, result.UpdatedCount)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.RoomAllocation{}).
		Where("id = ?", alloc.ID).
		Update("payment_deadline", past).Error)

	result, err = svc.CheckAndUpdateOverduePayments()
	require.NoError(t, err)
	assert.Equal(t, 1, result.UpdatedCount)

	updated, err := svc.FetchByID(alloc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AllocationPaymentOverdue, updated.PaymentStatus)
}

func TestSweepRevokesOnlyPastDeadlinePlusGrace(t *testing.T) {
	db := newTestDB(t)
	hostelID := seedDirectory(t, db)
	svc := newAllocationService(db)

	overdue, err := svc.Allocate("H250001A", hostelID+"_floor_ground_G01", hostelID)
	require.NoError(t, err)
	fresh, err := svc.Allocate("H250002B", hostelID+"_floor_ground_G02", hostelID)
	require.NoError(t, err)

	// deadline passed, but still inside the second grace window
	require.NoError(t, db.Model(&models.RoomAllocation{}).
		Where("id = ?", overdue.ID).
		Update("payment_deadline", time.Now().Add(-time.Hour)).Error)

	result, err := svc.SweepExpiredAllocations()
	require.NoError(t, err)
	assert.True(t, result.AutoRevokeEnabled)
	assert.Equal(t, 0, result.TotalExpired)

	// push past deadline + grace
	require.NoError(t, db.Model(&models.RoomAllocation{}).
		Where("id = ?", overdue.ID).
		Update("payment_deadline", time.Now().Add(-169*time.Hour)).Error)

	result, err = svc.SweepExpiredAllocations()
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalExpired)
	assert.Equal(t, 1, result.RevokedCount)

	_, err = svc.FetchByID(overdue.ID)
	assert.ErrorIs(t, err, ErrAllocationNotFound)
	_, err = svc.FetchByID(fresh.ID)
	assert.NoError(t, err)
}

func TestSweepRespectsAutoRevokeToggle(t *testing.T) {
	db := newTestDB(t)
	hostelID := seedDirectory(t, db)
	settings := NewSettingsService(db)
	svc := NewAllocationService(db, settings)

	alloc, err := svc.Allocate("H250001A", hostelID+"_floor_ground_G01", hostelID)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.RoomAllocation{}).
		Where("id = ?", alloc.ID).
		Update("payment_deadline", time.Now().Add(-400*time.Hour)).Error)

	off := false
	_, err = settings.Update(UpdateSettingsInput{AutoRevokeUnpaidAllocations: &off})
	require.NoError(t, err)

	result, err := svc.SweepExpiredAllocations()
	require.NoError(t, err)
	assert.False(t, result.AutoRevokeEnabled)
	assert.Equal(t, 0, result.RevokedCount)

	_, err = svc.FetchByID(alloc.ID)
	assert.NoError(t, err)
}

func TestDeadlineStatusReportsExpiredDetails(t *testing.T) {
	db := newTestDB(t)
	hostelID := seedDirectory(t, db)
	svc := newAllocationService(db)

	alloc, err := svc.Allocate("H250001A", hostelID+"_floor_ground_G01", hostelID)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.RoomAllocation{}).
		Where("id = ?", alloc.ID).
		Update("payment_deadline", time.Now().Add(-170*time.Hour)).Error)

	status, err := svc.DeadlineStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalUnpaidAllocations)
	require.Equal(t, 1, status.ExpiredAllocations)
	assert.Equal(t, "H250001A", status.ExpiredDetails[0].StudentRegNumber)
	assert.GreaterOrEqual(t, status.ExpiredDetails[0].HoursOverdue, 1)
}
