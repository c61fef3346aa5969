package services

import (
	"encoding/json"
	"testing"

	"hostel-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentFixture(t *testing.T) (*PaymentService, *AllocationService, string) {
	t.Helper()
	db := newTestDB(t)
	hostelID := seedDirectory(t, db)
	allocations := newAllocationService(db)
	return NewPaymentService(db, allocations), allocations, hostelID
}

func TestSubmitPaymentStartsPending(t *testing.T) {
	payments, allocations, hostelID := newPaymentFixture(t)

	alloc, err := allocations.Allocate("H250001A", hostelID+"_floor_ground_G01", hostelID)
	require.NoError(t, err)

	payment, err := payments.Submit(SubmitPaymentInput{
		StudentRegNumber: "H250001A",
		AllocationID:     alloc.ID,
		ReceiptNumber:    "RCPT-001",
		Amount:           575,
		PaymentMethod:    "Bank Transfer",
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.Nil(t, payment.ApprovedBy)

	// submitting does not touch the allocation
	current, err := allocations.FetchByID(alloc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AllocationPaymentPending, current.PaymentStatus)
}

func TestApprovePaymentMarksAllocationPaid(t *testing.T) {
	payments, allocations, hostelID := newPaymentFixture(t)

	alloc, err := allocations.Allocate("H250001A", hostelID+"_floor_ground_G01", hostelID)
	require.NoError(t, err)
	payment, err := payments.Submit(SubmitPaymentInput{
		StudentRegNumber: "H250001A",
		AllocationID:     alloc.ID,
		ReceiptNumber:    "RCPT-002",
		Amount:           575,
		PaymentMethod:    "Cash",
	})
	require.NoError(t, err)

	approved, err := payments.Approve(payment.ID, "bursar@hostel.local")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "bursar@hostel.local", *approved.ApprovedBy)

	current, err := allocations.FetchByID(alloc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AllocationPaymentPaid, current.PaymentStatus)
	require.NotNil(t, current.PaymentID)
	assert.Equal(t, payment.ID, *current.PaymentID)

	// approving again keeps the allocation Paid
	_, err = payments.Approve(payment.ID, "bursar@hostel.local")
	require.NoError(t, err)
	current, err = allocations.FetchByID(alloc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AllocationPaymentPaid, current.PaymentStatus)
}

func TestUpdateRejectedOnceApproved(t *testing.T) {
	payments, allocations, hostelID := newPaymentFixture(t)

	alloc, err := allocations.Allocate("H250001A", hostelID+"_floor_ground_G01", hostelID)
	require.NoError(t, err)
	payment, err := payments.Submit(SubmitPaymentInput{
		StudentRegNumber: "H250001A",
		AllocationID:     alloc.ID,
		ReceiptNumber:    "RCPT-003",
		Amount:           575,
		PaymentMethod:    "Mobile Money",
	})
	require.NoError(t, err)

	newReceipt := "RCPT-003-FIXED"
	updated, err := payments.UpdateStudentPayment(payment.ID, UpdateStudentPaymentInput{
		ReceiptNumber: &newReceipt,
	})
	require.NoError(t, err)
	assert.Equal(t, newReceipt, updated.ReceiptNumber)

	_, err = payments.Approve(payment.ID, "bursar@hostel.local")
	require.NoError(t, err)

	another := "RCPT-003-AGAIN"
	_, err = payments.UpdateStudentPayment(payment.ID, UpdateStudentPaymentInput{
		ReceiptNumber: &another,
	})
	assert.ErrorIs(t, err, ErrPaymentNotEditable)
}

func TestRejectPaymentLeavesAllocationAlone(t *testing.T) {
	payments, allocations, hostelID := newPaymentFixture(t)

	alloc, err := allocations.Allocate("H250001A", hostelID+"_floor_ground_G01", hostelID)
	require.NoError(t, err)
	payment, err := payments.Submit(SubmitPaymentInput{
		StudentRegNumber: "H250001A",
		AllocationID:     alloc.ID,
		ReceiptNumber:    "RCPT-004",
		Amount:           575,
		PaymentMethod:    "Card",
	})
	require.NoError(t, err)

	rejected, err := payments.Reject(payment.ID, "bursar@hostel.local", "receipt unreadable")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "receipt unreadable", *rejected.RejectionReason)

	current, err := allocations.FetchByID(alloc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AllocationPaymentPending, current.PaymentStatus)
	assert.Nil(t, current.PaymentID)
}

// The end-to-end admin scenario: student H250010B takes a slot in room
// hostel1_floor_ground_G02 and the bursar records the full 575 directly.
func TestAdminPaymentEndToEnd(t *testing.T) {
	payments, allocations, hostelID := newPaymentFixture(t)

	roomID := hostelID + "_floor_ground_G02"
	alloc, err := allocations.Allocate("H250010B", roomID, hostelID)
	require.NoError(t, err)

	payment, err := payments.AddAdminPayment(AddAdminPaymentInput{
		StudentRegNumber: "H250010B",
		AllocationID:     alloc.ID,
		ReceiptNumber:    "RCPT-ADMIN-1",
		Amount:           575,
		PaymentMethod:    "Cash",
	}, "bursar@hostel.local")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusApproved, payment.Status)

	current, err := allocations.FetchByID(alloc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AllocationPaymentPaid, current.PaymentStatus)

	details, err := allocations.RoomDetails(current)
	require.NoError(t, err)
	assert.Equal(t, 575.0, details.Price)
	assert.Contains(t, details.Room.OccupantList(), "H250010B")

	report, err := payments.DeriveStatus("H250010B")
	require.NoError(t, err)
	assert.Equal(t, models.DerivedPaid, report.Status)
	assert.Equal(t, 575.0, report.AmountPaid)
	assert.Equal(t, 575.0, report.AmountRequired)
}

func TestDeriveStatusLabels(t *testing.T) {
	payments, allocations, hostelID := newPaymentFixture(t)

	report, err := payments.DeriveStatus("H250099Z")
	require.NoError(t, err)
	assert.Equal(t, models.DerivedNotAllocated, report.Status)

	alloc, err := allocations.Allocate("H250001A", hostelID+"_floor_ground_G01", hostelID)
	require.NoError(t, err)

	report, err = payments.DeriveStatus("H250001A")
	require.NoError(t, err)
	assert.Equal(t, models.DerivedPending, report.Status)
	assert.Equal(t, 575.0, report.AmountRequired)

	_, err = payments.AddAdminPayment(AddAdminPaymentInput{
		StudentRegNumber: "H250001A",
		AllocationID:     alloc.ID,
		ReceiptNumber:    "RCPT-PART",
		Amount:           300,
		PaymentMethod:    "Mobile Money",
	}, "bursar@hostel.local")
	require.NoError(t, err)

	report, err = payments.DeriveStatus("H250001A")
	require.NoError(t, err)
	assert.Equal(t, models.DerivedPartial, report.Status)
	assert.Equal(t, 300.0, report.AmountPaid)

	_, err = payments.AddAdminPayment(AddAdminPaymentInput{
		StudentRegNumber: "H250001A",
		AllocationID:     alloc.ID,
		ReceiptNumber:    "RCPT-REST",
		Amount:           275,
		PaymentMethod:    "Mobile Money",
	}, "bursar@hostel.local")
	require.NoError(t, err)

	report, err = payments.DeriveStatus("H250001A")
	require.NoError(t, err)
	assert.Equal(t, models.DerivedPaid, report.Status)
	assert.Equal(t, 575.0, report.AmountPaid)
}

func TestFetchPendingAndForAllocation(t *testing.T) {
	payments, allocations, hostelID := newPaymentFixture(t)

	alloc, err := allocations.Allocate("H250001A", hostelID+"_floor_ground_G01", hostelID)
	require.NoError(t, err)

	first, err := payments.Submit(SubmitPaymentInput{
		StudentRegNumber: "H250001A",
		AllocationID:     alloc.ID,
		ReceiptNumber:    "RCPT-A",
		Amount:           100,
		PaymentMethod:    "Cash",
	})
	require.NoError(t, err)
	second, err := payments.Submit(SubmitPaymentInput{
		StudentRegNumber: "H250001A",
		AllocationID:     alloc.ID,
		ReceiptNumber:    "RCPT-B",
		Amount:           475,
		PaymentMethod:    "Cash",
	})
	require.NoError(t, err)

	pending, err := payments.FetchPending()
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	_, err = payments.Approve(second.ID, "bursar@hostel.local")
	require.NoError(t, err)

	pending, err = payments.FetchPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, first.ID, pending[0].ID)

	approved, err := payments.FetchForAllocation(alloc.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, approved.ID)

	_, err = payments.FetchForAllocation("no-such-allocation")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestAppendAttachmentWhilePending(t *testing.T) {
	payments, allocations, hostelID := newPaymentFixture(t)

	alloc, err := allocations.Allocate("H250001A", hostelID+"_floor_ground_G01", hostelID)
	require.NoError(t, err)
	payment, err := payments.Submit(SubmitPaymentInput{
		StudentRegNumber: "H250001A",
		AllocationID:     alloc.ID,
		ReceiptNumber:    "RCPT-ATT-1",
		Amount:           575,
		PaymentMethod:    "Bank Transfer",
	})
	require.NoError(t, err)

	updated, err := payments.AppendAttachment(payment.ID, "https://cdn.example/receipts/one.png")
	require.NoError(t, err)
	updated, err = payments.AppendAttachment(updated.ID, "https://cdn.example/receipts/two.png")
	require.NoError(t, err)

	var attachments []string
	require.NoError(t, json.Unmarshal(updated.Attachments, &attachments))
	assert.Equal(t, []string{
		"https://cdn.example/receipts/one.png",
		"https://cdn.example/receipts/two.png",
	}, attachments)

	_, err = payments.Approve(payment.ID, "bursar@hostel.local")
	require.NoError(t, err)
	_, err = payments.AppendAttachment(payment.ID, "https://cdn.example/receipts/late.png")
	assert.ErrorIs(t, err, ErrPaymentNotEditable)

	_, err = payments.AppendAttachment("no-such-payment", "https://cdn.example/receipts/lost.png")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestDeriveStatusUnpricedRoom(t *testing.T) {
	db := newTestDB(t)
	hostels := NewHostelService(db)
	allocations := newAllocationService(db)
	payments := NewPaymentService(db, allocations)

	hostelID, err := hostels.Create(CreateHostelInput{
		Name:   "Annex",
		Gender: models.GenderMixed,
	})
	require.NoError(t, err)
	floor, err := hostels.AddFloor(hostelID, "ground", "Ground Floor")
	require.NoError(t, err)
	room, err := hostels.AddRoom(hostelID, floor.ID, AddRoomInput{
		Number:   "G01",
		Capacity: 2,
		Gender:   models.GenderMixed,
	})
	require.NoError(t, err)

	alloc, err := allocations.Allocate("H250042C", room.ID, hostelID)
	require.NoError(t, err)

	report, err := payments.DeriveStatus("H250042C")
	require.NoError(t, err)
	assert.Equal(t, models.DerivedPending, report.Status)
	assert.Zero(t, report.AmountRequired)

	// an approved amount against a zero price is reported as Partial, not Paid
	_, err = payments.AddAdminPayment(AddAdminPaymentInput{
		StudentRegNumber: "H250042C",
		AllocationID:     alloc.ID,
		ReceiptNumber:    "RCPT-FREE-1",
		Amount:           100,
		PaymentMethod:    "Cash",
	}, "bursar@hostel.local")
	require.NoError(t, err)

	report, err = payments.DeriveStatus("H250042C")
	require.NoError(t, err)
	assert.Equal(t, models.DerivedPartial, report.Status)
	assert.Equal(t, float64(100), report.AmountPaid)
}
