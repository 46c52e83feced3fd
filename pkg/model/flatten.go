package model

import "time"

// Flatten renders the message as a flat field map keyed by the
// canonical snake_case field names. Absent optional fields map to nil
// so consumers can distinguish absence from an empty value.
func Flatten(m *PaymentMessage) map[string]*string {
	if m == nil {
		return nil
	}

	out := map[string]*string{
		"message_id":           Str(m.MessageID),
		"end_to_end_id":        m.EndToEndID,
		"amount":               m.Amount,
		"currency":             m.Currency,
		"sender_bic":           m.SenderBIC,
		"receiver_bic":         m.ReceiverBIC,
		"ordering_institution": m.OrderingInstitution,
		"debtor_name":          m.DebtorName,
		"debtor_account":       m.DebtorAccount,
		"creditor_name":        m.CreditorName,
		"creditor_account":     m.CreditorAccount,
		"uetr":                 m.UETR,
		"sub_type":             m.SubType,
		"remittance":           m.Remittance,
		"charge_bearer":        m.ChargeBearer,
		"original_message_id":  m.OriginalMessageID,
		"case_id":              m.CaseID,
		"group_status":         m.GroupStatus,
		"message_type":         Str(string(m.MessageType)),
		"created_at":           nil,
	}
	if m.CreatedAt != nil {
		out["created_at"] = Str(m.CreatedAt.Format(time.RFC3339))
	}

	return out
}
