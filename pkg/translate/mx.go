package translate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/sirosfoundation/go-finmsg/pkg/model"
	"github.com/sirosfoundation/go-finmsg/pkg/validate"
)

// mxSchemas maps a bare family name onto the schema version emitted
// when the caller does not pin one.
var mxSchemas = map[string]string{
	"pacs.008": "pacs.008.001.08",
	"pain.001": "pain.001.001.09",
}

// ToMX renders the message as an ISO 20022 document for the requested
// schema. The schema may be a bare family name ("pacs.008",
// "pain.001") or a pinned version such as "pacs.008.001.02", which is
// emitted verbatim in the document namespace; any other identifier
// wraps [model.ErrUnsupportedTarget].
//
// Only non-nil model fields are emitted; a nil optional never
// produces an empty element. The group header always carries
// NbOfTxs=1 and, for pacs.008, the CLRG settlement method the schema
// mandates.
func (t *Translator) ToMX(m *model.PaymentMessage, schema string) ([]byte, error) {
	family, version, ok := resolveSchema(schema)
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnsupportedTarget, schema)
	}
	if m == nil {
		return nil, errors.New("nil message")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("Document")
	root.CreateAttr("xmlns", "urn:iso:std:iso:20022:tech:xsd:"+version)

	switch family {
	case "pacs.008":
		buildPacs008(root, m)
	case "pain.001":
		buildPain001(root, m)
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

// resolveSchema splits a target identifier into its family and full
// versioned schema name.
func resolveSchema(schema string) (family, version string, ok bool) {
	for fam, def := range mxSchemas {
		if schema == fam {
			return fam, def, true
		}
		if strings.HasPrefix(schema, fam+".") {
			return fam, schema, true
		}
	}
	return "", "", false
}

func buildPacs008(root *etree.Element, m *model.PaymentMessage) {
	cdtTrf := root.CreateElement("FIToFICstmrCdtTrf")

	grpHdr := cdtTrf.CreateElement("GrpHdr")
	if m.MessageID != "" {
		grpHdr.CreateElement("MsgId").SetText(m.MessageID)
	}
	if m.CreatedAt != nil {
		grpHdr.CreateElement("CreDtTm").SetText(m.CreatedAt.Format(time.RFC3339))
	}
	grpHdr.CreateElement("NbOfTxs").SetText("1")
	grpHdr.CreateElement("SttlmInf").CreateElement("SttlmMtd").SetText("CLRG")
	if m.SenderBIC != nil {
		agentElement(grpHdr, "InstgAgt", *m.SenderBIC)
	}
	if m.ReceiverBIC != nil {
		agentElement(grpHdr, "InstdAgt", *m.ReceiverBIC)
	}

	tx := cdtTrf.CreateElement("CdtTrfTxInf")
	pmtID := tx.CreateElement("PmtId")
	if m.EndToEndID != nil {
		pmtID.CreateElement("EndToEndId").SetText(*m.EndToEndID)
	}
	if m.UETR != nil {
		pmtID.CreateElement("UETR").SetText(*m.UETR)
	}
	amountElement(tx, "IntrBkSttlmAmt", m)
	if m.ChargeBearer != nil {
		tx.CreateElement("ChrgBr").SetText(*m.ChargeBearer)
	}
	partyElement(tx, "Dbtr", m.DebtorName)
	accountElement(tx, "DbtrAcct", m.DebtorAccount)
	partyElement(tx, "Cdtr", m.CreditorName)
	accountElement(tx, "CdtrAcct", m.CreditorAccount)
	remittanceElement(tx, m.Remittance)
}

func buildPain001(root *etree.Element, m *model.PaymentMessage) {
	initn := root.CreateElement("CstmrCdtTrfInitn")

	grpHdr := initn.CreateElement("GrpHdr")
	if m.MessageID != "" {
		grpHdr.CreateElement("MsgId").SetText(m.MessageID)
	}
	if m.CreatedAt != nil {
		grpHdr.CreateElement("CreDtTm").SetText(m.CreatedAt.Format(time.RFC3339))
	}
	grpHdr.CreateElement("NbOfTxs").SetText("1")
	// the initiating party of a customer-initiated transfer is the debtor
	partyElement(grpHdr, "InitgPty", m.DebtorName)

	pmtInf := initn.CreateElement("PmtInf")
	if m.EndToEndID != nil {
		pmtInf.CreateElement("PmtInfId").SetText("PMTINF-" + *m.EndToEndID)
	}
	partyElement(pmtInf, "Dbtr", m.DebtorName)
	accountElement(pmtInf, "DbtrAcct", m.DebtorAccount)
	if m.SenderBIC != nil {
		agentElement(pmtInf, "DbtrAgt", *m.SenderBIC)
	}

	tx := pmtInf.CreateElement("CdtTrfTxInf")
	pmtID := tx.CreateElement("PmtId")
	if m.EndToEndID != nil {
		pmtID.CreateElement("EndToEndId").SetText(*m.EndToEndID)
	}
	if m.UETR != nil {
		pmtID.CreateElement("UETR").SetText(*m.UETR)
	}
	if m.Amount != nil {
		amountElement(tx.CreateElement("Amt"), "InstdAmt", m)
	}
	if m.ChargeBearer != nil {
		tx.CreateElement("ChrgBr").SetText(*m.ChargeBearer)
	}
	if m.ReceiverBIC != nil {
		agentElement(tx, "CdtrAgt", *m.ReceiverBIC)
	}
	partyElement(tx, "Cdtr", m.CreditorName)
	accountElement(tx, "CdtrAcct", m.CreditorAccount)
	remittanceElement(tx, m.Remittance)
}

// agentElement writes a financial institution agent with its BIC.
func agentElement(parent *etree.Element, name, bic string) {
	parent.CreateElement(name).CreateElement("FinInstnId").CreateElement("BICFI").SetText(bic)
}

// partyElement writes a named party.
func partyElement(parent *etree.Element, name string, partyName *string) {
	if partyName == nil {
		return
	}
	parent.CreateElement(name).CreateElement("Nm").SetText(*partyName)
}

// accountElement writes an account identifier: as IBAN when the value
// has IBAN shape, in the generic Othr/Id form otherwise.
func accountElement(parent *etree.Element, name string, account *string) {
	if account == nil {
		return
	}
	id := parent.CreateElement(name).CreateElement("Id")
	if validate.IsIBANShaped(*account) {
		id.CreateElement("IBAN").SetText(*account)
	} else {
		id.CreateElement("Othr").CreateElement("Id").SetText(*account)
	}
}

// remittanceElement writes unstructured remittance information.
func remittanceElement(parent *etree.Element, remittance *string) {
	if remittance == nil {
		return
	}
	parent.CreateElement("RmtInf").CreateElement("Ustrd").SetText(*remittance)
}

// amountElement writes an amount with its Ccy attribute. The exact
// decimal text of the model is emitted unchanged.
func amountElement(parent *etree.Element, name string, m *model.PaymentMessage) {
	if m.Amount == nil {
		return
	}
	amt := parent.CreateElement(name)
	amt.SetText(*m.Amount)
	if m.Currency != nil {
		amt.CreateAttr("Ccy", *m.Currency)
	}
}
