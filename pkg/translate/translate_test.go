package translate

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirosfoundation/go-finmsg/pkg/model"
	"github.com/sirosfoundation/go-finmsg/pkg/mt"
	"github.com/sirosfoundation/go-finmsg/pkg/mx"
)

const sampleMT103 = "{1:F01BANKBEBBAXXX0000000000}{2:I103BANKDEFFXXXXN}{4:\n" +
	":20:REF-1\n" +
	":32A:231024EUR50000,00\n" +
	":50K:/BE68539007547034\n" +
	"ACME NV\n" +
	":59:/DE89370400440532013000\n" +
	"SUPPLIER GMBH\n" +
	":70:INVOICE 9\n" +
	":71A:SHA\n" +
	"-}"

const samplePacs008 = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pacs.008.001.08">
  <FIToFICstmrCdtTrf>
    <GrpHdr><MsgId>MX-REF-1</MsgId><CreDtTm>2024-03-01T09:00:00Z</CreDtTm></GrpHdr>
    <CdtTrfTxInf>
      <PmtId><EndToEndId>E2E-MX-1</EndToEndId></PmtId>
      <IntrBkSttlmAmt Ccy="USD">1234.56</IntrBkSttlmAmt>
      <Dbtr><Nm>Alice</Nm></Dbtr>
      <Cdtr><Nm>Bob</Nm></Cdtr>
    </CdtTrfTxInf>
  </FIToFICstmrCdtTrf>
</Document>`

func TestToMT_103(t *testing.T) {
	msg := &model.PaymentMessage{
		MessageID:    "TRANSLATEST",
		Amount:       model.Str("500.50"),
		Currency:     model.Str("USD"),
		SenderBIC:    model.Str("BANKUS33XXX"),
		ReceiverBIC:  model.Str("BANKGB22XXX"),
		DebtorName:   model.Str("Alice"),
		CreditorName: model.Str("Bob"),
		CreatedAt:    model.Time(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)),
	}

	out, err := New().ToMT(msg, "103")
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "{1:F01BANKUS33XXXX0000000000}")
	assert.Contains(t, text, "{2:I103BANKGB22XXXXN}")
	assert.Contains(t, text, ":20:TRANSLATEST")
	assert.Contains(t, text, ":23B:CRED")
	assert.Contains(t, text, ":32A:240115USD500,50")

	roundtrip, err := mt.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, model.FamilyMT103, roundtrip.MessageType)
	assert.Equal(t, "TRANSLATEST", roundtrip.MessageID)
	assert.Equal(t, "500.50", model.Deref(roundtrip.Amount))
	assert.Equal(t, "USD", model.Deref(roundtrip.Currency))
	assert.Equal(t, "BANKUS33XXXX", model.Deref(roundtrip.SenderBIC))
	assert.Equal(t, "BANKGB22XXXX", model.Deref(roundtrip.ReceiverBIC))
	assert.Equal(t, "Alice", model.Deref(roundtrip.DebtorName))
	assert.Equal(t, "Bob", model.Deref(roundtrip.CreditorName))
}

func TestToMT_202(t *testing.T) {
	msg := &model.PaymentMessage{
		MessageID:           "FI-REF-77",
		EndToEndID:          model.Str("REL-1"),
		Amount:              model.Str("250000.00"),
		Currency:            model.Str("EUR"),
		ReceiverBIC:         model.Str("BANKDEFF"),
		OrderingInstitution: model.Str("ORDERING BANK AG"),
		CreditorName:        model.Str("CREDIT BANK AG"),
		CreditorAccount:     model.Str("DE89370400440532013000"),
		CreatedAt:           model.Time(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
	}

	out, err := New().ToMT(msg, "202")
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "{2:I202BANKDEFFXXXXN}")
	assert.Contains(t, text, ":21:REL-1")
	assert.Contains(t, text, ":32A:240115EUR250000,00")
	assert.Contains(t, text, ":52A:ORDERING BANK AG")
	assert.Contains(t, text, ":58A:/DE89370400440532013000\nCREDIT BANK AG")
	assert.NotContains(t, text, ":23B:")
	assert.NotContains(t, text, ":50K:")

	roundtrip, err := mt.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, model.FamilyMT202, roundtrip.MessageType)
	assert.Equal(t, "REL-1", model.Deref(roundtrip.EndToEndID))
	assert.Equal(t, "ORDERING BANK AG", model.Deref(roundtrip.OrderingInstitution))
	assert.Equal(t, "CREDIT BANK AG", model.Deref(roundtrip.CreditorName))
	assert.Equal(t, "DE89370400440532013000", model.Deref(roundtrip.CreditorAccount))
}

func TestToMT_GeneratesUETR(t *testing.T) {
	msg := &model.PaymentMessage{MessageID: "UETR_TEST"}

	out, err := New().ToMT(msg, "103")
	require.NoError(t, err)
	assert.Contains(t, string(out), "{3:{121:")

	roundtrip, err := mt.Parse(out)
	require.NoError(t, err)
	require.NotNil(t, roundtrip.UETR)
	parsed, err := uuid.Parse(*roundtrip.UETR)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())

	// a model that already carries one keeps it
	msg.UETR = model.Str("550e8400-e29b-41d4-a716-446655440000")
	out, err = New().ToMT(msg, "103")
	require.NoError(t, err)
	assert.Contains(t, string(out), "{3:{121:550e8400-e29b-41d4-a716-446655440000}}")
}

func TestToMT_NilFieldsOmitted(t *testing.T) {
	out, err := New().ToMT(&model.PaymentMessage{MessageID: "BARE"}, "103")
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "{1:F01XXXXXXXXXXXX0000000000}")
	assert.Contains(t, text, ":20:BARE")
	assert.Contains(t, text, ":23B:CRED")
	assert.NotContains(t, text, ":32A:")
	assert.NotContains(t, text, ":50K:")
	assert.NotContains(t, text, ":59:")
	assert.NotContains(t, text, ":70:")
	assert.NotContains(t, text, ":71A:")

	// a missing sender reference falls back to NONREF
	out, err = New().ToMT(&model.PaymentMessage{}, "103")
	require.NoError(t, err)
	assert.Contains(t, string(out), ":20:NONREF")
}

func TestToMT_AmountRoundTrip(t *testing.T) {
	msg, err := mt.Parse([]byte(sampleMT103))
	require.NoError(t, err)
	require.Equal(t, "50000.00", model.Deref(msg.Amount))

	out, err := New().ToMT(msg, "103")
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "EUR50000,00")
	assert.Contains(t, text, ":50K:/BE68539007547034\nACME NV")
	assert.Contains(t, text, ":59:/DE89370400440532013000\nSUPPLIER GMBH")
	assert.Contains(t, text, ":70:INVOICE 9")
	assert.Contains(t, text, ":71A:SHA")

	roundtrip, err := mt.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, msg.Amount, roundtrip.Amount)
	assert.Equal(t, msg.Currency, roundtrip.Currency)
	assert.Equal(t, msg.DebtorName, roundtrip.DebtorName)
	assert.Equal(t, msg.DebtorAccount, roundtrip.DebtorAccount)
	assert.Equal(t, msg.CreditorName, roundtrip.CreditorName)
	assert.Equal(t, msg.CreditorAccount, roundtrip.CreditorAccount)
	assert.Equal(t, msg.Remittance, roundtrip.Remittance)
	assert.Equal(t, msg.ChargeBearer, roundtrip.ChargeBearer)
}

func TestToMT_Unsupported(t *testing.T) {
	_, err := New().ToMT(&model.PaymentMessage{MessageID: "X"}, "999")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnsupportedTarget)
	assert.Contains(t, err.Error(), "MT999")
}

func TestToMX_Pacs008RoundTrip(t *testing.T) {
	msg := &model.PaymentMessage{
		MessageID:       "XMLTEST",
		EndToEndID:      model.Str("E2E123"),
		Amount:          model.Str("750.00"),
		Currency:        model.Str("EUR"),
		SenderBIC:       model.Str("XMLUS33XXX"),
		ReceiverBIC:     model.Str("XMLGB22XXX"),
		DebtorName:      model.Str("Charlie"),
		DebtorAccount:   model.Str("GB29NWBK60161331926819"),
		CreditorName:    model.Str("Dave"),
		CreditorAccount: model.Str("FR1420041010050500013M02606"),
		UETR:            model.Str("550e8400-e29b-41d4-a716-446655440000"),
		ChargeBearer:    model.Str("SHAR"),
		Remittance:      model.Str("INVOICE 42"),
		CreatedAt:       model.Time(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)),
	}

	out, err := New().ToMX(msg, "pacs.008")
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, text, `xmlns="urn:iso:std:iso:20022:tech:xsd:pacs.008.001.08"`)
	assert.Contains(t, text, "<MsgId>XMLTEST</MsgId>")
	assert.Contains(t, text, `Ccy="EUR">750.00</IntrBkSttlmAmt>`)
	assert.Contains(t, text, "<SttlmMtd>CLRG</SttlmMtd>")

	roundtrip, err := mx.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, model.FamilyPacs008, roundtrip.MessageType)
	assert.Equal(t, "XMLTEST", roundtrip.MessageID)
	assert.Equal(t, msg.EndToEndID, roundtrip.EndToEndID)
	assert.Equal(t, msg.Amount, roundtrip.Amount)
	assert.Equal(t, msg.Currency, roundtrip.Currency)
	assert.Equal(t, msg.SenderBIC, roundtrip.SenderBIC)
	assert.Equal(t, msg.ReceiverBIC, roundtrip.ReceiverBIC)
	assert.Equal(t, msg.DebtorName, roundtrip.DebtorName)
	assert.Equal(t, msg.DebtorAccount, roundtrip.DebtorAccount)
	assert.Equal(t, msg.CreditorName, roundtrip.CreditorName)
	assert.Equal(t, msg.CreditorAccount, roundtrip.CreditorAccount)
	assert.Equal(t, msg.UETR, roundtrip.UETR)
	assert.Equal(t, msg.ChargeBearer, roundtrip.ChargeBearer)
	assert.Equal(t, msg.Remittance, roundtrip.Remittance)
	require.NotNil(t, roundtrip.CreatedAt)
	assert.True(t, msg.CreatedAt.Equal(*roundtrip.CreatedAt))
}

func TestToMX_Pain001RoundTrip(t *testing.T) {
	msg := &model.PaymentMessage{
		MessageID:       "INIT-777",
		EndToEndID:      model.Str("INB-999"),
		Amount:          model.Str("7500.00"),
		Currency:        model.Str("EUR"),
		SenderBIC:       model.Str("STARTUS33"),
		ReceiverBIC:     model.Str("VENDORDE22"),
		DebtorName:      model.Str("Startup LLC"),
		DebtorAccount:   model.Str("BE68539007547034"),
		CreditorName:    model.Str("Supplier GmbH"),
		CreditorAccount: model.Str("DE89370400440532013000"),
	}

	out, err := New().ToMX(msg, "pain.001")
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, `xmlns="urn:iso:std:iso:20022:tech:xsd:pain.001.001.09"`)
	assert.Contains(t, text, "<CstmrCdtTrfInitn>")
	assert.Contains(t, text, "<PmtInfId>PMTINF-INB-999</PmtInfId>")
	assert.Contains(t, text, `<InstdAmt Ccy="EUR">7500.00</InstdAmt>`)

	roundtrip, err := mx.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, model.FamilyPain001, roundtrip.MessageType)
	assert.Equal(t, "INIT-777", roundtrip.MessageID)
	assert.Equal(t, msg.EndToEndID, roundtrip.EndToEndID)
	assert.Equal(t, msg.Amount, roundtrip.Amount)
	assert.Equal(t, msg.Currency, roundtrip.Currency)
	assert.Equal(t, msg.SenderBIC, roundtrip.SenderBIC)
	assert.Equal(t, msg.ReceiverBIC, roundtrip.ReceiverBIC)
	assert.Equal(t, msg.DebtorName, roundtrip.DebtorName)
	assert.Equal(t, msg.DebtorAccount, roundtrip.DebtorAccount)
	assert.Equal(t, msg.CreditorName, roundtrip.CreditorName)
	assert.Equal(t, msg.CreditorAccount, roundtrip.CreditorAccount)
}

func TestToMX_VersionedSchema(t *testing.T) {
	msg := &model.PaymentMessage{MessageID: "V2"}

	out, err := New().ToMX(msg, "pacs.008.001.02")
	require.NoError(t, err)
	assert.Contains(t, string(out), `xmlns="urn:iso:std:iso:20022:tech:xsd:pacs.008.001.02"`)

	roundtrip, err := mx.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, model.FamilyPacs008, roundtrip.MessageType)
}

func TestToMX_AccountShapes(t *testing.T) {
	msg := &model.PaymentMessage{
		MessageID:       "ACCTS",
		DebtorAccount:   model.Str("GB29NWBK60161331926819"),
		CreditorAccount: model.Str("ACCT-778899"),
	}

	out, err := New().ToMX(msg, "pacs.008")
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "<IBAN>GB29NWBK60161331926819</IBAN>")
	assert.Contains(t, text, "<Othr>")
	assert.Contains(t, text, "<Id>ACCT-778899</Id>")

	roundtrip, err := mx.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, "GB29NWBK60161331926819", model.Deref(roundtrip.DebtorAccount))
	assert.Equal(t, "ACCT-778899", model.Deref(roundtrip.CreditorAccount))
}

func TestToMX_NilFieldsOmitted(t *testing.T) {
	out, err := New().ToMX(&model.PaymentMessage{MessageID: "BARE"}, "pacs.008")
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "<NbOfTxs>1</NbOfTxs>")
	assert.NotContains(t, text, "<IntrBkSttlmAmt")
	assert.NotContains(t, text, "<Dbtr>")
	assert.NotContains(t, text, "<RmtInf>")
	assert.NotContains(t, text, "<UETR>")
	assert.NotContains(t, text, "<InstgAgt>")

	_, err = mx.Parse(out)
	require.NoError(t, err)
}

func TestToMX_Unsupported(t *testing.T) {
	for _, schema := range []string{"unknown.schema", "camt.053", "999"} {
		_, err := New().ToMX(&model.PaymentMessage{MessageID: "X"}, schema)
		require.Error(t, err, schema)
		assert.ErrorIs(t, err, model.ErrUnsupportedTarget)
	}
}

func TestTranslate_CrossFormat(t *testing.T) {
	// legacy block text to ISO 20022
	msg, err := mt.Parse([]byte(sampleMT103))
	require.NoError(t, err)

	xml, err := New().ToMX(msg, "pacs.008")
	require.NoError(t, err)
	assert.Contains(t, string(xml), `Ccy="EUR">50000.00</IntrBkSttlmAmt>`)
	assert.Contains(t, string(xml), "<IBAN>BE68539007547034</IBAN>")

	mxTrip, err := mx.Parse(xml)
	require.NoError(t, err)
	assert.Equal(t, "REF-1", mxTrip.MessageID)
	assert.Equal(t, "50000.00", model.Deref(mxTrip.Amount))
	assert.Equal(t, "ACME NV", model.Deref(mxTrip.DebtorName))
	assert.Equal(t, "SUPPLIER GMBH", model.Deref(mxTrip.CreditorName))
	assert.Equal(t, "INVOICE 9", model.Deref(mxTrip.Remittance))
	assert.Equal(t, "SHA", model.Deref(mxTrip.ChargeBearer))

	// ISO 20022 to legacy block text
	msg, err = mx.Parse([]byte(samplePacs008))
	require.NoError(t, err)

	raw, err := New().ToMT(msg, "103")
	require.NoError(t, err)
	assert.Contains(t, string(raw), ":20:MX-REF-1")
	assert.Contains(t, string(raw), ":32A:240301USD1234,56")

	mtTrip, err := mt.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "MX-REF-1", mtTrip.MessageID)
	assert.Equal(t, "1234.56", model.Deref(mtTrip.Amount))
	assert.Equal(t, "USD", model.Deref(mtTrip.Currency))
	assert.Equal(t, "Alice", model.Deref(mtTrip.DebtorName))
	assert.Equal(t, "Bob", model.Deref(mtTrip.CreditorName))
}

func TestTranslate_NilMessage(t *testing.T) {
	_, err := New().ToMT(nil, "103")
	require.Error(t, err)
	_, err = New().ToMX(nil, "pacs.008")
	require.Error(t, err)
}

func TestGenerateUETR(t *testing.T) {
	a, b := GenerateUETR(), GenerateUETR()
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
	assert.Equal(t, uuid.RFC4122, parsed.Variant())
}
