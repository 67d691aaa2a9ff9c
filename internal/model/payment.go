package model

// PaymentDraft holds the simulated card payment being entered for a paid
// table reservation. Nothing here is sent to a payment processor.
type PaymentDraft struct {
	TableID        int     `json:"table_id,omitempty"`
	Amount         float64 `json:"amount,omitempty"`
	CardNumber     string  `json:"card_number,omitempty"`
	ExpiryDate     string  `json:"expiry_date,omitempty"`
	CVV            string  `json:"cvv,omitempty"`
	CardholderName string  `json:"cardholder_name,omitempty"`
}

// PaymentPatch carries the fields to merge into a PaymentDraft.
type PaymentPatch struct {
	TableID        *int     `json:"table_id,omitempty"`
	Amount         *float64 `json:"amount,omitempty"`
	CardNumber     *string  `json:"card_number,omitempty"`
	ExpiryDate     *string  `json:"expiry_date,omitempty"`
	CVV            *string  `json:"cvv,omitempty"`
	CardholderName *string  `json:"cardholder_name,omitempty"`
}

// Merge returns a copy of d with the non-nil fields of p applied.
func (d PaymentDraft) Merge(p PaymentPatch) PaymentDraft {
	if p.TableID != nil {
		d.TableID = *p.TableID
	}
	if p.Amount != nil {
		d.Amount = *p.Amount
	}
	if p.CardNumber != nil {
		d.CardNumber = *p.CardNumber
	}
	if p.ExpiryDate != nil {
		d.ExpiryDate = *p.ExpiryDate
	}
	if p.CVV != nil {
		d.CVV = *p.CVV
	}
	if p.CardholderName != nil {
		d.CardholderName = *p.CardholderName
	}
	return d
}
