package settlement

import (
	"github.com/bizledger/backend/internal/domain/shared"
)

// PaymentMethod identifies how the money moved
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCheck        PaymentMethod = "CHECK"
	MethodCard         PaymentMethod = "CARD"
)

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// IsValid returns true if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCheck, MethodCard:
		return true
	}
	return false
}

// MethodDetails carries exactly the fields its method requires. Use the
// per-method constructors; they validate required fields at construction
// instead of conditionally at save time.
type MethodDetails struct {
	Method        PaymentMethod `gorm:"type:varchar(20);not null" json:"method"`
	BankName      string        `gorm:"type:varchar(100)" json:"bank_name,omitempty"`
	AccountNumber string        `gorm:"type:varchar(50)" json:"account_number,omitempty"`
	CheckNumber   string        `gorm:"type:varchar(50)" json:"check_number,omitempty"`
	CardReference string        `gorm:"type:varchar(50)" json:"card_reference,omitempty"`
}

// NewCashDetails creates method details for a cash payment
func NewCashDetails() MethodDetails {
	return MethodDetails{Method: MethodCash}
}

// NewBankTransferDetails creates method details for a bank transfer
func NewBankTransferDetails(bankName, accountNumber string) (MethodDetails, error) {
	if bankName == "" {
		return MethodDetails{}, shared.NewDomainError("INVALID_BANK_DETAILS", "Bank name is required for bank transfers")
	}
	if accountNumber == "" {
		return MethodDetails{}, shared.NewDomainError("INVALID_BANK_DETAILS", "Account number is required for bank transfers")
	}
	return MethodDetails{
		Method:        MethodBankTransfer,
		BankName:      bankName,
		AccountNumber: accountNumber,
	}, nil
}

// NewCheckDetails creates method details for a check payment
func NewCheckDetails(checkNumber string) (MethodDetails, error) {
	if checkNumber == "" {
		return MethodDetails{}, shared.NewDomainError("INVALID_CHECK_DETAILS", "Check number is required for check payments")
	}
	return MethodDetails{
		Method:      MethodCheck,
		CheckNumber: checkNumber,
	}, nil
}

// NewCardDetails creates method details for a card payment
func NewCardDetails(cardReference string) (MethodDetails, error) {
	if cardReference == "" {
		return MethodDetails{}, shared.NewDomainError("INVALID_CARD_DETAILS", "Card reference is required for card payments")
	}
	return MethodDetails{
		Method:        MethodCard,
		CardReference: cardReference,
	}, nil
}
