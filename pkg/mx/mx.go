package mx

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/sirosfoundation/go-finmsg/pkg/bah"
	"github.com/sirosfoundation/go-finmsg/pkg/model"
)

// rootChildFamilies maps a Document's first child local name onto the
// message family, for documents whose namespace is missing or opaque.
var rootChildFamilies = map[string]model.Family{
	"FIToFICstmrCdtTrf":     model.FamilyPacs008,
	"CstmrCdtTrfInitn":      model.FamilyPain001,
	"CstmrPmtStsRpt":        model.FamilyPain002,
	"BkToCstmrAcctRpt":      model.FamilyCamt052,
	"BkToCstmrStmt":         model.FamilyCamt053,
	"BkToCstmrDbtCdtNtfctn": model.FamilyCamt054,
	"FIToFICstmrCdtTrfRcl":  model.FamilyCamt056,
	"FIToFIPmtCxlReq":       model.FamilyCamt056,
	"RsltnOfInvstgtn":       model.FamilyCamt029,
}

// nsFamilies is checked against namespace URIs in declaration order.
var nsFamilies = []model.Family{
	model.FamilyPacs008,
	model.FamilyPain001,
	model.FamilyPain002,
	model.FamilyCamt052,
	model.FamilyCamt053,
	model.FamilyCamt054,
	model.FamilyCamt056,
	model.FamilyCamt029,
}

// Parse maps raw MX bytes onto the canonical model. Malformed XML and
// a document with no message identifier wrap [model.ErrMalformed].
func Parse(data []byte) (*model.PaymentMessage, error) {
	detailed, err := ParseDetailed(data)
	if err != nil {
		return nil, err
	}
	return &detailed.PaymentMessage, nil
}

// ParseDetailed maps raw MX bytes onto the canonical model, including
// the booking entries of camt account reports, statements and
// notifications.
func ParseDetailed(data []byte) (*model.DetailedModel, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformed, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", model.ErrMalformed)
	}

	msg := &model.DetailedModel{}
	msg.MessageType = model.FamilyUnknown
	msg.RawSource = append([]byte(nil), data...)

	// Unwrap a business application header envelope if present.
	var hdr *bah.AppHdr
	scope := root
	switch root.Tag {
	case "BusMsg", "BizMsgEnvlp", "AppHdr":
		hdr, _ = bah.Parse(data)
		if docEl := FindFirst(root, "Document"); docEl != nil {
			scope = docEl
		} else {
			scope = nil
		}
	}

	if scope != nil {
		family := FamilyOf(scope)
		if family == model.FamilyUnknown && hdr != nil {
			family = hdr.Family()
		}
		msg.MessageType = family
		extract(msg, scope, family)
	} else if hdr != nil {
		msg.MessageType = hdr.Family()
	}

	applyHeader(msg, hdr)

	if msg.MessageID == "" {
		return nil, fmt.Errorf("%w: no message identifier", model.ErrMalformed)
	}
	return msg, nil
}

// FamilyOf determines the message family of a Document element from
// its namespace declarations, falling back to its first child's local
// name.
func FamilyOf(docEl *etree.Element) model.Family {
	for _, attr := range docEl.Attr {
		if attr.Space != "xmlns" && !(attr.Space == "" && attr.Key == "xmlns") {
			continue
		}
		for _, family := range nsFamilies {
			if strings.Contains(attr.Value, string(family)) {
				return family
			}
		}
	}
	for _, child := range docEl.ChildElements() {
		if family, ok := rootChildFamilies[child.Tag]; ok {
			return family
		}
	}
	return model.FamilyUnknown
}

// extract populates the model from the Document scope according to
// the family's element layout.
func extract(msg *model.DetailedModel, scope *etree.Element, family model.Family) {
	switch family {
	case model.FamilyPacs008:
		msg.MessageID = FindText(scope, "GrpHdr", "MsgId")
		msg.CreatedAt = parseTime(FindText(scope, "GrpHdr", "CreDtTm"))
		setText(&msg.SenderBIC, firstText(
			FindText(scope, "InstgAgt", "BICFI"),
			FindText(scope, "DbtrAgt", "BICFI")))
		setText(&msg.ReceiverBIC, firstText(
			FindText(scope, "InstdAgt", "BICFI"),
			FindText(scope, "CdtrAgt", "BICFI")))
		if tx := FindFirst(scope, "CdtTrfTxInf"); tx != nil {
			setText(&msg.EndToEndID, FindText(tx, "PmtId", "EndToEndId"))
			setText(&msg.UETR, FindText(tx, "PmtId", "UETR"))
			setAmount(msg, FindFirst(tx, "IntrBkSttlmAmt"))
			setText(&msg.ChargeBearer, FindText(tx, "ChrgBr"))
			setText(&msg.Remittance, FindText(tx, "RmtInf", "Ustrd"))
			extractParties(msg, tx)
		}

	case model.FamilyPain001:
		msg.MessageID = FindText(scope, "GrpHdr", "MsgId")
		msg.CreatedAt = parseTime(FindText(scope, "GrpHdr", "CreDtTm"))
		setText(&msg.SenderBIC, FindText(scope, "DbtrAgt", "BICFI"))
		setText(&msg.ReceiverBIC, FindText(scope, "CdtrAgt", "BICFI"))
		extractParties(msg, scope)
		if msg.DebtorName == nil {
			setText(&msg.DebtorName, FindText(scope, "InitgPty", "Nm"))
		}
		if tx := FindFirst(scope, "CdtTrfTxInf"); tx != nil {
			setText(&msg.EndToEndID, FindText(tx, "PmtId", "EndToEndId"))
			setText(&msg.UETR, FindText(tx, "PmtId", "UETR"))
			setAmount(msg, FindFirst(tx, "InstdAmt"))
			setText(&msg.ChargeBearer, FindText(tx, "ChrgBr"))
			setText(&msg.Remittance, FindText(tx, "RmtInf", "Ustrd"))
		}

	case model.FamilyPain002:
		msg.MessageID = FindText(scope, "GrpHdr", "MsgId")
		msg.CreatedAt = parseTime(FindText(scope, "GrpHdr", "CreDtTm"))
		setText(&msg.OriginalMessageID, FindText(scope, "OrgnlMsgId"))
		setText(&msg.GroupStatus, firstText(
			FindText(scope, "GrpSts"),
			FindText(scope, "TxSts")))
		setText(&msg.EndToEndID, FindText(scope, "OrgnlEndToEndId"))
		setText(&msg.UETR, FindText(scope, "OrgnlUETR"))

	case model.FamilyCamt052, model.FamilyCamt053, model.FamilyCamt054:
		// report and notification shapes may carry only a container Id
		msg.MessageID = firstText(
			FindText(scope, "GrpHdr", "MsgId"),
			FindText(scope, "Id"))
		msg.CreatedAt = parseTime(FindText(scope, "GrpHdr", "CreDtTm"))
		if acct := FindFirst(scope, "Acct"); acct != nil {
			setText(&msg.AccountID, accountOf(acct))
			setText(&msg.Currency, strings.ToUpper(FindText(acct, "Ccy")))
		}
		for _, ntry := range findAll(scope, "Ntry") {
			msg.Entries = append(msg.Entries, bookingEntry(ntry))
		}

	case model.FamilyCamt056, model.FamilyCamt029:
		msg.MessageID = FindText(scope, "Assgnmt", "Id")
		msg.CreatedAt = parseTime(FindText(scope, "Assgnmt", "CreDtTm"))
		setText(&msg.CaseID, firstText(
			FindText(scope, "RslvdCase", "Id"),
			FindText(scope, "Case", "Id")))
		setText(&msg.OriginalMessageID, FindText(scope, "OrgnlMsgId"))
		setText(&msg.EndToEndID, FindText(scope, "OrgnlEndToEndId"))
		setText(&msg.UETR, FindText(scope, "OrgnlUETR"))
		setText(&msg.GroupStatus, FindText(scope, "Sts", "Conf"))
		setAmount(msg, FindFirst(scope, "OrgnlIntrBkSttlmAmt"))

	default:
		// Unregistered family: lift whatever common identifiers exist.
		msg.MessageID = FindText(scope, "MsgId")
		msg.CreatedAt = parseTime(FindText(scope, "CreDtTm"))
		setText(&msg.EndToEndID, FindText(scope, "EndToEndId"))
		setText(&msg.UETR, FindText(scope, "UETR"))
		setAmount(msg, firstElement(
			FindFirst(scope, "IntrBkSttlmAmt"),
			FindFirst(scope, "InstdAmt"),
			FindFirst(scope, "Amt")))
		setText(&msg.Remittance, FindText(scope, "RmtInf", "Ustrd"))
		extractParties(msg, scope)
	}
}

// extractParties lifts debtor and creditor name and account from any
// scope that carries Dbtr/Cdtr party blocks.
func extractParties(msg *model.DetailedModel, scope *etree.Element) {
	if dbtr := FindFirst(scope, "Dbtr"); dbtr != nil {
		setText(&msg.DebtorName, FindText(dbtr, "Nm"))
	}
	if acct := FindFirst(scope, "DbtrAcct"); acct != nil {
		setText(&msg.DebtorAccount, accountOf(acct))
	}
	if cdtr := FindFirst(scope, "Cdtr"); cdtr != nil {
		setText(&msg.CreditorName, FindText(cdtr, "Nm"))
	}
	if acct := FindFirst(scope, "CdtrAcct"); acct != nil {
		setText(&msg.CreditorAccount, accountOf(acct))
	}
}

// applyHeader fills routing fields the Document did not carry from
// the business application header.
func applyHeader(msg *model.DetailedModel, hdr *bah.AppHdr) {
	if hdr == nil {
		return
	}
	if msg.MessageID == "" {
		msg.MessageID = hdr.BizMsgIdr
	}
	setText(&msg.SenderBIC, hdr.Fr.BIC())
	setText(&msg.ReceiverBIC, hdr.To.BIC())
	if msg.CreatedAt == nil && !hdr.CreationTime().IsZero() {
		msg.CreatedAt = model.Time(hdr.CreationTime())
	}
}

// bookingEntry maps one Ntry element onto a canonical booking entry.
func bookingEntry(ntry *etree.Element) model.Entry {
	var entry model.Entry
	if amt := FindFirst(ntry, "Amt"); amt != nil {
		setText(&entry.Amount, strings.TrimSpace(amt.Text()))
		setText(&entry.Currency, strings.ToUpper(amt.SelectAttrValue("Ccy", "")))
	}
	setText(&entry.Status, FindText(ntry, "CdtDbtInd"))
	setText(&entry.BookingDate, firstText(
		FindText(ntry, "BookgDt", "Dt"),
		FindText(ntry, "BookgDt", "DtTm")))
	setText(&entry.Reference, firstText(
		FindText(ntry, "NtryRef"),
		FindText(ntry, "EndToEndId"),
		FindText(ntry, "AcctSvcrRef")))
	setText(&entry.Remittance, FindText(ntry, "RmtInf", "Ustrd"))
	return entry
}

// accountOf reads an account identifier: IBAN first, then the
// generic Othr/Id form.
func accountOf(acct *etree.Element) string {
	if iban := FindText(acct, "IBAN"); iban != "" {
		return iban
	}
	return FindText(acct, "Othr", "Id")
}

// FindFirst returns the first descendant reached by following path,
// one local name per step, in document order. A nil scope or a
// missing step yields nil.
func FindFirst(scope *etree.Element, path ...string) *etree.Element {
	cur := scope
	for _, step := range path {
		if cur == nil {
			return nil
		}
		cur = firstDescendant(cur, step)
	}
	return cur
}

// FindText returns the trimmed text of the element reached by path,
// or "" when the path does not resolve.
func FindText(scope *etree.Element, path ...string) string {
	el := FindFirst(scope, path...)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

func firstDescendant(scope *etree.Element, local string) *etree.Element {
	for _, child := range scope.ChildElements() {
		if child.Tag == local {
			return child
		}
		if found := firstDescendant(child, local); found != nil {
			return found
		}
	}
	return nil
}

// findAll collects every descendant with the given local name in
// document order.
func findAll(scope *etree.Element, local string) []*etree.Element {
	var out []*etree.Element
	for _, child := range scope.ChildElements() {
		if child.Tag == local {
			out = append(out, child)
			continue
		}
		out = append(out, findAll(child, local)...)
	}
	return out
}

// setAmount reads an amount element's text and Ccy attribute into the
// model, first value wins.
func setAmount(msg *model.DetailedModel, amt *etree.Element) {
	if amt == nil || msg.Amount != nil {
		return
	}
	value := strings.TrimSpace(amt.Text())
	if value == "" {
		return
	}
	msg.Amount = model.Str(value)
	if ccy := amt.SelectAttrValue("Ccy", ""); ccy != "" {
		msg.Currency = model.Str(strings.ToUpper(ccy))
	}
}

func setText(dst **string, value string) {
	if *dst == nil && value != "" {
		*dst = model.Str(value)
	}
}

func firstText(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstElement(els ...*etree.Element) *etree.Element {
	for _, el := range els {
		if el != nil {
			return el
		}
	}
	return nil
}

// timeLayouts covers the CreDtTm shapes seen in the wild: zoned,
// naive, and date-only.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTime(v string) *time.Time {
	if v == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return model.Time(t)
		}
	}
	return nil
}
