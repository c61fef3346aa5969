package services

import "errors"

// Domain sentinels. Controllers map these onto HTTP codes; anything else
// coming out of a service is a wrapped store error and surfaces as a 500.
var (
	ErrHostelNotFound      = errors.New("hostel_not_found")
	ErrFloorNotFound       = errors.New("floor_not_found")
	ErrFloorExists         = errors.New("floor_exists")
	ErrRoomNotFound        = errors.New("room_not_found")
	ErrRoomUnavailable     = errors.New("room_unavailable")
	ErrRoomConflict        = errors.New("room_conflict")
	ErrRoomChangesOff      = errors.New("room_changes_disabled")
	ErrCapacityExceeded    = errors.New("capacity_exceeds_maximum")
	ErrAlreadyAllocated    = errors.New("already_allocated")
	ErrAllocationNotFound  = errors.New("allocation_not_found")
	ErrPaymentNotFound     = errors.New("payment_not_found")
	ErrPaymentNotEditable  = errors.New("payment_not_editable")
	ErrStudentNotFound     = errors.New("student_not_found")
	ErrApplicationNotFound = errors.New("application_not_found")
	ErrInvalidStatus       = errors.New("invalid_status")
)
