package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hostel-backend/models"
	"hostel-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentService owns the payment ledger: submissions, approvals,
// rejections, and the derived payment-status reconciliation.
type PaymentService struct {
	DB          *gorm.DB
	Allocations *AllocationService
}

func NewPaymentService(db *gorm.DB, allocations *AllocationService) *PaymentService {
	return &PaymentService{DB: db, Allocations: allocations}
}

type SubmitPaymentInput struct {
	StudentRegNumber string   `json:"studentRegNumber" validate:"required"`
	AllocationID     string   `json:"allocationId" validate:"required"`
	ReceiptNumber    string   `json:"receiptNumber" validate:"required"`
	Amount           float64  `json:"amount" validate:"required,gt=0"`
	PaymentMethod    string   `json:"paymentMethod" validate:"required,oneof='Bank Transfer' 'Mobile Money' Cash Card Other"`
	Notes            string   `json:"notes"`
	Attachments      []string `json:"attachments"`
}

// Submit records a student-initiated payment as Pending.
func (s *PaymentService) Submit(input SubmitPaymentInput) (models.Payment, error) {
	payment := models.Payment{
		ID:               uuid.NewString(),
		StudentRegNumber: input.StudentRegNumber,
		AllocationID:     input.AllocationID,
		ReceiptNumber:    input.ReceiptNumber,
		Amount:           input.Amount,
		PaymentMethod:    input.PaymentMethod,
		SubmittedAt:      time.Now(),
		Status:           models.PaymentStatusPending,
		Notes:            input.Notes,
		Attachments:      toJSONList(input.Attachments),
	}
	if err := s.DB.Create(&payment).Error; err != nil {
		return models.Payment{}, fmt.Errorf("create payment: %w", err)
	}
	return payment, nil
}

type UpdateStudentPaymentInput struct {
	ReceiptNumber *string   `json:"receiptNumber"`
	PaymentMethod *string   `json:"paymentMethod" validate:"omitempty,oneof='Bank Transfer' 'Mobile Money' Cash Card Other"`
	Notes         *string   `json:"notes"`
	Attachments   *[]string `json:"attachments"`
}

// UpdateStudentPayment lets a student edit receipt details while the payment
// is still Pending. Approved or rejected payments are immutable from the
// student side.
func (s *PaymentService) UpdateStudentPayment(paymentID string, input UpdateStudentPaymentInput) (models.Payment, error) {
	var payment models.Payment
	if err := s.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Payment{}, ErrPaymentNotFound
		}
		return models.Payment{}, fmt.Errorf("fetch payment %s: %w", paymentID, err)
	}
	if payment.Status != models.PaymentStatusPending {
		return models.Payment{}, ErrPaymentNotEditable
	}

	if input.ReceiptNumber != nil {
		payment.ReceiptNumber = *input.ReceiptNumber
	}
	if input.PaymentMethod != nil {
		payment.PaymentMethod = *input.PaymentMethod
	}
	if input.Notes != nil {
		payment.Notes = *input.Notes
	}
	if input.Attachments != nil {
		payment.Attachments = toJSONList(*input.Attachments)
	}

	if err := s.DB.Save(&payment).Error; err != nil {
		return models.Payment{}, fmt.Errorf("update payment %s: %w", paymentID, err)
	}
	return payment, nil
}

// AppendAttachment adds a hosted receipt URL to a payment that is still
// under review. Approved and rejected payments are immutable, same gate as
// UpdateStudentPayment.
func (s *PaymentService) AppendAttachment(paymentID, url string) (models.Payment, error) {
	var payment models.Payment
	if err := s.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Payment{}, ErrPaymentNotFound
		}
		return models.Payment{}, fmt.Errorf("fetch payment %s: %w", paymentID, err)
	}
	if payment.Status != models.PaymentStatusPending {
		return models.Payment{}, ErrPaymentNotEditable
	}

	var attachments []string
	if len(payment.Attachments) > 0 {
		if err := json.Unmarshal(payment.Attachments, &attachments); err != nil {
			attachments = nil
		}
	}
	payment.Attachments = toJSONList(append(attachments, url))
	if err := s.DB.Save(&payment).Error; err != nil {
		return models.Payment{}, fmt.Errorf("update payment %s: %w", paymentID, err)
	}
	return payment, nil
}

// Approve marks a payment Approved and, in the same transaction, moves the
// referenced allocation to Paid and stamps it with the payment ID. Approving
// an already-approved payment leaves the allocation Paid.
func (s *PaymentService) Approve(paymentID, adminEmail string) (models.Payment, error) {
	var payment models.Payment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&payment, "id = ?", paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return fmt.Errorf("fetch payment %s: %w", paymentID, err)
		}

		now := time.Now()
		payment.Status = models.PaymentStatusApproved
		payment.ApprovedBy = &adminEmail
		payment.ApprovedAt = &now
		if err := tx.Save(&payment).Error; err != nil {
			return fmt.Errorf("approve payment %s: %w", paymentID, err)
		}
		return markAllocationPaid(tx, payment.AllocationID, paymentID)
	})
	if err != nil {
		return models.Payment{}, err
	}

	s.notify(payment.StudentRegNumber, "Payment approved",
		fmt.Sprintf("Your payment %s (receipt %s) has been approved.", payment.ID, payment.ReceiptNumber))
	return payment, nil
}

// Reject records the rejection reason without touching the allocation.
func (s *PaymentService) Reject(paymentID, adminEmail, reason string) (models.Payment, error) {
	var payment models.Payment
	if err := s.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Payment{}, ErrPaymentNotFound
		}
		return models.Payment{}, fmt.Errorf("fetch payment %s: %w", paymentID, err)
	}

	now := time.Now()
	payment.Status = models.PaymentStatusRejected
	payment.ApprovedBy = &adminEmail
	payment.ApprovedAt = &now
	payment.RejectionReason = &reason
	if err := s.DB.Save(&payment).Error; err != nil {
		return models.Payment{}, fmt.Errorf("reject payment %s: %w", paymentID, err)
	}

	s.notify(payment.StudentRegNumber, "Payment rejected",
		fmt.Sprintf("Your payment %s was rejected: %s", payment.ID, reason))
	return payment, nil
}

type AddAdminPaymentInput struct {
	StudentRegNumber string   `json:"studentRegNumber" validate:"required"`
	AllocationID     string   `json:"allocationId" validate:"required"`
	ReceiptNumber    string   `json:"receiptNumber" validate:"required"`
	Amount           float64  `json:"amount" validate:"required,gt=0"`
	PaymentMethod    string   `json:"paymentMethod" validate:"required,oneof='Bank Transfer' 'Mobile Money' Cash Card Other"`
	Notes            string   `json:"notes"`
	Attachments      []string `json:"attachments"`
}

// AddAdminPayment records a payment on behalf of a student as one
// administrative action: the payment is born Approved and the allocation is
// updated in the same transaction.
func (s *PaymentService) AddAdminPayment(input AddAdminPaymentInput, adminEmail string) (models.Payment, error) {
	now := time.Now()
	payment := models.Payment{
		ID:               uuid.NewString(),
		StudentRegNumber: input.StudentRegNumber,
		AllocationID:     input.AllocationID,
		ReceiptNumber:    input.ReceiptNumber,
		Amount:           input.Amount,
		PaymentMethod:    input.PaymentMethod,
		SubmittedAt:      now,
		Status:           models.PaymentStatusApproved,
		ApprovedBy:       &adminEmail,
		ApprovedAt:       &now,
		Notes:            input.Notes,
		Attachments:      toJSONList(input.Attachments),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		return markAllocationPaid(tx, payment.AllocationID, payment.ID)
	})
	if err != nil {
		return models.Payment{}, err
	}
	return payment, nil
}

func markAllocationPaid(tx *gorm.DB, allocationID, paymentID string) error {
	res := tx.Model(&models.RoomAllocation{}).
		Where("id = ?", allocationID).
		Updates(map[string]interface{}{
			"payment_status": models.AllocationPaymentPaid,
			"payment_id":     paymentID,
		})
	if res.Error != nil {
		return fmt.Errorf("update allocation %s: %w", allocationID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAllocationNotFound
	}
	return nil
}

func (s *PaymentService) FetchByID(paymentID string) (models.Payment, error) {
	var payment models.Payment
	if err := s.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Payment{}, ErrPaymentNotFound
		}
		return models.Payment{}, fmt.Errorf("fetch payment %s: %w", paymentID, err)
	}
	return payment, nil
}

func (s *PaymentService) FetchStudentPayments(regNumber string) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.DB.Where("student_reg_number = ?", regNumber).
		Order("submitted_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("fetch payments for %s: %w", regNumber, err)
	}
	return payments, nil
}

func (s *PaymentService) FetchAll() ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.DB.Order("submitted_at DESC").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("fetch payments: %w", err)
	}
	return payments, nil
}

// FetchPending returns the admin review queue, oldest first.
func (s *PaymentService) FetchPending() ([]models.Payment, error) {
	var payments []models.Payment
	err := s.DB.Where("status = ?", models.PaymentStatusPending).
		Order("submitted_at ASC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("fetch pending payments: %w", err)
	}
	return payments, nil
}

// FetchForAllocation returns the first Approved payment for an allocation.
func (s *PaymentService) FetchForAllocation(allocationID string) (models.Payment, error) {
	var payment models.Payment
	err := s.DB.Where("allocation_id = ? AND status = ?", allocationID, models.PaymentStatusApproved).
		Order("submitted_at ASC").
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Payment{}, ErrPaymentNotFound
		}
		return models.Payment{}, fmt.Errorf("fetch payment for allocation %s: %w", allocationID, err)
	}
	return payment, nil
}

func (s *PaymentService) Delete(paymentID string) error {
	return s.DB.Delete(&models.Payment{}, "id = ?", paymentID).Error
}

// DerivedStatus is the reconciliation report for one student: Approved
// payments summed against the allocated room's price.
type DerivedStatus struct {
	StudentRegNumber string  `json:"studentRegNumber"`
	Status           string  `json:"status"`
	AmountPaid       float64 `json:"amountPaid"`
	AmountRequired   float64 `json:"amountRequired"`
}

// DeriveStatus computes the payment label: Paid when the approved sum covers
// the price, Partial when something but not everything is paid, Pending when
// an allocation exists with nothing approved, Not Allocated otherwise.
func (s *PaymentService) DeriveStatus(regNumber string) (DerivedStatus, error) {
	report := DerivedStatus{StudentRegNumber: regNumber}

	allocations, err := s.Allocations.FetchStudentAllocations(regNumber)
	if err != nil {
		return report, err
	}
	if len(allocations) == 0 {
		report.Status = models.DerivedNotAllocated
		return report, nil
	}

	details, err := s.Allocations.RoomDetails(allocations[0])
	if err != nil {
		return report, err
	}
	report.AmountRequired = details.Price

	allocationIDs := make([]string, len(allocations))
	for i := range allocations {
		allocationIDs[i] = allocations[i].ID
	}
	var approved []models.Payment
	err = s.DB.Where("allocation_id IN ? AND status = ?", allocationIDs, models.PaymentStatusApproved).
		Find(&approved).Error
	if err != nil {
		return report, fmt.Errorf("fetch approved payments for %s: %w", regNumber, err)
	}

	for i := range approved {
		report.AmountPaid += approved[i].Amount
	}

	// A zero price means the room was never priced, so the label stays at
	// Pending or Partial rather than marking an unpriced stay as Paid.
	switch {
	case report.AmountPaid >= report.AmountRequired && report.AmountRequired > 0:
		report.Status = models.DerivedPaid
	case report.AmountPaid > 0:
		report.Status = models.DerivedPartial
	default:
		report.Status = models.DerivedPending
	}
	return report, nil
}

// notify emails the student if we have an address on file. Best-effort and
// asynchronous; ledger writes never wait on SMTP.
func (s *PaymentService) notify(regNumber, subject, body string) {
	var student models.Student
	if err := s.DB.First(&student, "reg_number = ?", regNumber).Error; err != nil || student.Email == "" {
		return
	}
	utils.SendNotificationEmail(student.Email, subject, body)
}
