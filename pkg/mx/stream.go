package mx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirosfoundation/go-finmsg/pkg/model"
)

// amountNode is a currency-attributed amount element.
type amountNode struct {
	Ccy   string `xml:"Ccy,attr"`
	Value string `xml:",chardata"`
}

// txNode decodes one CdtTrfTxInf element of a pacs.008 or pain.001
// batch.
type txNode struct {
	EndToEndId     string     `xml:"PmtId>EndToEndId"`
	UETR           string     `xml:"PmtId>UETR"`
	IntrBkSttlmAmt amountNode `xml:"IntrBkSttlmAmt"`
	InstdAmt       amountNode `xml:"Amt>InstdAmt"`
	DbtrNm         string     `xml:"Dbtr>Nm"`
	CdtrNm         string     `xml:"Cdtr>Nm"`
	DbtrIBAN       string     `xml:"DbtrAcct>Id>IBAN"`
	CdtrIBAN       string     `xml:"CdtrAcct>Id>IBAN"`
	Remittance     string     `xml:"RmtInf>Ustrd"`
}

// entryNode decodes one Ntry element of a camt report, statement or
// notification.
type entryNode struct {
	Amt        amountNode `xml:"Amt"`
	CdtDbtInd  string     `xml:"CdtDbtInd"`
	NtryRef    string     `xml:"NtryRef"`
	EndToEndId string     `xml:"NtryDtls>TxDtls>Refs>EndToEndId"`
	DbtrNm     string     `xml:"NtryDtls>TxDtls>RltdPties>Dbtr>Nm"`
	CdtrNm     string     `xml:"NtryDtls>TxDtls>RltdPties>Cdtr>Nm"`
	Remittance string     `xml:"NtryDtls>TxDtls>RmtInf>Ustrd"`
}

// ForEachTransaction streams a batch document, calling fn once per
// CdtTrfTxInf or Ntry with a canonical model holding that
// transaction's fields. The document is never held in memory as a
// whole, so arbitrarily large batch files stream in constant space.
//
// An error returned by fn stops the walk and is returned unchanged.
// Empty input yields no calls and no error; broken XML wraps
// [model.ErrMalformed].
func ForEachTransaction(r io.Reader, fn func(*model.PaymentMessage) error) error {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", model.ErrMalformed, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "CdtTrfTxInf":
			var node txNode
			if err := dec.DecodeElement(&node, &start); err != nil {
				return fmt.Errorf("%w: %v", model.ErrMalformed, err)
			}
			if err := fn(node.message()); err != nil {
				return err
			}
		case "Ntry":
			var node entryNode
			if err := dec.DecodeElement(&node, &start); err != nil {
				return fmt.Errorf("%w: %v", model.ErrMalformed, err)
			}
			if err := fn(node.message()); err != nil {
				return err
			}
		}
	}
}

func (n *txNode) message() *model.PaymentMessage {
	msg := &model.PaymentMessage{MessageType: model.FamilyUnknown}
	assign(&msg.EndToEndID, n.EndToEndId)
	assign(&msg.UETR, n.UETR)
	amt := n.IntrBkSttlmAmt
	if strings.TrimSpace(amt.Value) == "" {
		amt = n.InstdAmt
	}
	assign(&msg.Amount, amt.Value)
	assign(&msg.Currency, strings.ToUpper(amt.Ccy))
	assign(&msg.DebtorName, n.DbtrNm)
	assign(&msg.DebtorAccount, n.DbtrIBAN)
	assign(&msg.CreditorName, n.CdtrNm)
	assign(&msg.CreditorAccount, n.CdtrIBAN)
	assign(&msg.Remittance, n.Remittance)
	return msg
}

func (n *entryNode) message() *model.PaymentMessage {
	msg := &model.PaymentMessage{MessageType: model.FamilyUnknown}
	assign(&msg.EndToEndID, firstText(n.EndToEndId, n.NtryRef))
	assign(&msg.Amount, n.Amt.Value)
	assign(&msg.Currency, strings.ToUpper(n.Amt.Ccy))
	assign(&msg.SubType, n.CdtDbtInd)
	assign(&msg.DebtorName, n.DbtrNm)
	assign(&msg.CreditorName, n.CdtrNm)
	assign(&msg.Remittance, n.Remittance)
	return msg
}

func assign(dst **string, value string) {
	value = strings.TrimSpace(value)
	if value != "" {
		*dst = model.Str(value)
	}
}
