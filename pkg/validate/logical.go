package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sirosfoundation/go-finmsg/pkg/model"
)

// bicShape is the ISO 9362 grammar: 4-letter institution code,
// 2-letter country code, 2-character location, optional 3-character
// branch.
var bicShape = regexp.MustCompile(`^[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}([A-Z0-9]{3})?$`)

// bicCountries is the ISO 3166-1 alpha-2 registry plus XK, which the
// BIC directory assigns to Kosovo ahead of ISO.
var bicCountries = map[string]bool{
	"AD": true, "AE": true, "AF": true, "AG": true, "AI": true, "AL": true, "AM": true, "AO": true,
	"AQ": true, "AR": true, "AS": true, "AT": true, "AU": true, "AW": true, "AX": true, "AZ": true,
	"BA": true, "BB": true, "BD": true, "BE": true, "BF": true, "BG": true, "BH": true, "BI": true,
	"BJ": true, "BL": true, "BM": true, "BN": true, "BO": true, "BQ": true, "BR": true, "BS": true,
	"BT": true, "BV": true, "BW": true, "BY": true, "BZ": true, "CA": true, "CC": true, "CD": true,
	"CF": true, "CG": true, "CH": true, "CI": true, "CK": true, "CL": true, "CM": true, "CN": true,
	"CO": true, "CR": true, "CU": true, "CV": true, "CW": true, "CX": true, "CY": true, "CZ": true,
	"DE": true, "DJ": true, "DK": true, "DM": true, "DO": true, "DZ": true, "EC": true, "EE": true,
	"EG": true, "EH": true, "ER": true, "ES": true, "ET": true, "FI": true, "FJ": true, "FK": true,
	"FM": true, "FO": true, "FR": true, "GA": true, "GB": true, "GD": true, "GE": true, "GF": true,
	"GG": true, "GH": true, "GI": true, "GL": true, "GM": true, "GN": true, "GP": true, "GQ": true,
	"GR": true, "GS": true, "GT": true, "GU": true, "GW": true, "GY": true, "HK": true, "HM": true,
	"HN": true, "HR": true, "HT": true, "HU": true, "ID": true, "IE": true, "IL": true, "IM": true,
	"IN": true, "IO": true, "IQ": true, "IR": true, "IS": true, "IT": true, "JE": true, "JM": true,
	"JO": true, "JP": true, "KE": true, "KG": true, "KH": true, "KI": true, "KM": true, "KN": true,
	"KP": true, "KR": true, "KW": true, "KY": true, "KZ": true, "LA": true, "LB": true, "LC": true,
	"LI": true, "LK": true, "LR": true, "LS": true, "LT": true, "LU": true, "LV": true, "LY": true,
	"MA": true, "MC": true, "MD": true, "ME": true, "MF": true, "MG": true, "MH": true, "MK": true,
	"ML": true, "MM": true, "MN": true, "MO": true, "MP": true, "MQ": true, "MR": true, "MS": true,
	"MT": true, "MU": true, "MV": true, "MW": true, "MX": true, "MY": true, "MZ": true, "NA": true,
	"NC": true, "NE": true, "NF": true, "NG": true, "NI": true, "NL": true, "NO": true, "NP": true,
	"NR": true, "NU": true, "NZ": true, "OM": true, "PA": true, "PE": true, "PF": true, "PG": true,
	"PH": true, "PK": true, "PL": true, "PM": true, "PN": true, "PR": true, "PS": true, "PT": true,
	"PW": true, "PY": true, "QA": true, "RE": true, "RO": true, "RS": true, "RU": true, "RW": true,
	"SA": true, "SB": true, "SC": true, "SD": true, "SE": true, "SG": true, "SH": true, "SI": true,
	"SJ": true, "SK": true, "SL": true, "SM": true, "SN": true, "SO": true, "SR": true, "SS": true,
	"ST": true, "SV": true, "SX": true, "SY": true, "SZ": true, "TC": true, "TD": true, "TF": true,
	"TG": true, "TH": true, "TJ": true, "TK": true, "TL": true, "TM": true, "TN": true, "TO": true,
	"TR": true, "TT": true, "TV": true, "TW": true, "TZ": true, "UA": true, "UG": true, "UM": true,
	"US": true, "UY": true, "UZ": true, "VA": true, "VC": true, "VE": true, "VG": true, "VI": true,
	"VN": true, "VU": true, "WF": true, "WS": true, "XK": true, "YE": true, "YT": true, "ZA": true,
	"ZM": true, "ZW": true,
}

// LogicalValidator checks a parsed message against field-level
// business syntax rules: BIC, IBAN, UETR, amount and currency. Every
// check runs regardless of earlier findings.
type LogicalValidator struct{}

// NewLogical creates a logical validator.
func NewLogical() *LogicalValidator {
	return &LogicalValidator{}
}

// Validate runs every field check on m and aggregates the findings.
func (v *LogicalValidator) Validate(m *model.PaymentMessage) *Report {
	rep := NewReport()
	if m == nil {
		rep.add("No message to validate")
		return rep
	}

	if p := bicProblem(model.Deref(m.SenderBIC)); p != "" {
		rep.add("[Sender] %s", p)
	}
	if p := bicProblem(model.Deref(m.ReceiverBIC)); p != "" {
		rep.add("[Receiver] %s", p)
	}
	if p := ibanProblem(model.Deref(m.DebtorAccount)); p != "" {
		rep.add("[Debtor Account] %s", p)
	}
	if p := ibanProblem(model.Deref(m.CreditorAccount)); p != "" {
		rep.add("[Creditor Account] %s", p)
	}

	checkUETR(m, rep)

	if m.Amount != nil {
		if d, err := decimal.NewFromString(*m.Amount); err != nil {
			rep.add("Invalid amount: '%s'", *m.Amount)
		} else if d.IsNegative() {
			rep.add("Negative amount: '%s'", *m.Amount)
		}
	}
	if m.Currency != nil && !currency3.MatchString(*m.Currency) {
		rep.add("Invalid currency code: '%s'", *m.Currency)
	}

	return rep
}

// bicProblem describes what is wrong with a BIC, or returns "" for a
// valid or absent value.
func bicProblem(bic string) string {
	clean := strings.TrimSpace(bic)
	if clean == "" {
		return ""
	}
	if !bicShape.MatchString(clean) {
		return fmt.Sprintf("Invalid BIC format: '%s' (want 8 or 11 alphanumeric characters per ISO 9362)", clean)
	}
	if !bicCountries[clean[4:6]] {
		return fmt.Sprintf("Unknown country code in BIC: '%s'", clean)
	}
	return ""
}

// ibanProblem checks the Modulo-97 checksum of IBAN-shaped account
// values. Values outside the IBAN grammar are domestic schemes and
// pass silently.
func ibanProblem(account string) string {
	if account == "" {
		return ""
	}
	iban := SanitizeIBAN(account)
	if !ibanShape.MatchString(iban) {
		return ""
	}
	if mod97(iban[4:]+iban[:4]) != 1 {
		return fmt.Sprintf("Invalid IBAN checksum: '%s'", iban)
	}
	return ""
}

// checkUETR verifies UETR syntax when present. Only the customer
// credit transfer family mandates one.
func checkUETR(m *model.PaymentMessage, rep *Report) {
	if m.UETR == nil {
		if m.MessageType == model.FamilyPacs008 {
			rep.add("UETR is required for %s", m.MessageType)
		}
		return
	}
	u, err := uuid.Parse(*m.UETR)
	if err != nil || u.Version() != 4 || u.Variant() != uuid.RFC4122 {
		rep.add("Invalid UETR: '%s' (want a version 4 UUID)", *m.UETR)
	}
}
