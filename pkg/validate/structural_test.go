package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirosfoundation/go-finmsg/pkg/model"
	"github.com/sirosfoundation/go-finmsg/pkg/profile"
)

func hasError(rep *Report, substr string) bool {
	for _, e := range rep.Errors {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func TestValidateSchema_ValidMT(t *testing.T) {
	raw := []byte("{1:F01BANKUS33AXXX0000000000}{2:I103RECVGB22XXXXN}{4:\n" +
		":20:MSG12345\n" +
		":32A:231024USD1000,50\n" +
		"-}")

	rep := NewStructural().ValidateSchema(raw)
	assert.True(t, rep.Valid)
	assert.Empty(t, rep.Errors)
}

func TestValidateSchema_MT32A(t *testing.T) {
	build := func(field32A string) []byte {
		return []byte("{1:F01BANKUS33AXXX0000000000}{2:I103RECVGB22XXXXN}{4:\n" +
			":20:MSG12345\n" +
			":32A:" + field32A + "\n" +
			"-}")
	}

	t.Run("month 13", func(t *testing.T) {
		rep := NewStructural().ValidateSchema(build("231324USD1000,50"))
		assert.False(t, rep.Valid)
		assert.True(t, hasError(rep, "Invalid date in Field 32A"))
	})

	t.Run("day 30 in February", func(t *testing.T) {
		rep := NewStructural().ValidateSchema(build("230230USD1000,50"))
		assert.False(t, rep.Valid)
		assert.True(t, hasError(rep, "Invalid date in Field 32A"))
	})

	t.Run("digit in currency", func(t *testing.T) {
		rep := NewStructural().ValidateSchema(build("231024US11000,50"))
		assert.False(t, rep.Valid)
		assert.True(t, hasError(rep, "Invalid currency in Field 32A"))
		assert.False(t, hasError(rep, "Invalid date"))
	})

	t.Run("letters in amount", func(t *testing.T) {
		rep := NewStructural().ValidateSchema(build("231024USDAABC,50"))
		assert.False(t, rep.Valid)
		assert.True(t, hasError(rep, "Invalid amount format in Field 32A"))
	})

	t.Run("missing comma", func(t *testing.T) {
		rep := NewStructural().ValidateSchema(build("231024USD1000.50"))
		assert.False(t, rep.Valid)
		assert.True(t, hasError(rep, "Invalid amount format in Field 32A"))
	})

	t.Run("truncated field", func(t *testing.T) {
		rep := NewStructural().ValidateSchema(build("2310"))
		assert.False(t, rep.Valid)
		assert.True(t, hasError(rep, "Invalid date in Field 32A"))
		assert.True(t, hasError(rep, "Invalid currency in Field 32A"))
		assert.True(t, hasError(rep, "Invalid amount format in Field 32A"))
	})
}

func TestValidateSchema_MTMissingField20(t *testing.T) {
	raw := []byte("{1:F01BANKUS33AXXX0000000000}{2:I103RECVGB22XXXXN}{4:\n" +
		":32A:231024USD1000,50\n" +
		"-}")

	rep := NewStructural().ValidateSchema(raw)
	assert.False(t, rep.Valid)
	assert.True(t, hasError(rep, "Mandatory Field :20: (Sender's Reference) missing"))
}

func TestValidateSchema_MTHeaderBIC(t *testing.T) {
	raw := []byte("{1:F01BAD!BIC!AXXX0000000000}{2:I103RECVGB22XXXXN}{4:\n" +
		":20:MSG1\n" +
		"-}")

	rep := NewStructural().ValidateSchema(raw)
	assert.False(t, rep.Valid)
	assert.True(t, hasError(rep, "Invalid BIC format in Block 1"))
}

func TestValidateSchema_MTMalformedBlocks(t *testing.T) {
	rep := NewStructural().ValidateSchema([]byte("{1:F01}{2:I103}{4: -}"))
	assert.False(t, rep.Valid)
	assert.True(t, hasError(rep, " structure"))
	assert.True(t, hasError(rep, "unterminated block 4"))
}

func TestValidateSchema_MTUnterminatedBlock4(t *testing.T) {
	raw := []byte("{1:F01BANKUS33AXXX0000000000}{2:I103RECVGB22XXXXN}{4:\n" +
		":20:MSG12345\n" +
		":32A:231024USD1000,50\n")

	rep := NewStructural().ValidateSchema(raw)
	assert.False(t, rep.Valid)
	assert.True(t, hasError(rep, "unterminated block 4"))
}

func TestValidateSchema_MTMissingBlocks(t *testing.T) {
	rep := NewStructural().ValidateSchema([]byte("{1:F01BANKUS33AXXX0000000000}{2:I103RECVGB22XXXXN}"))
	assert.False(t, rep.Valid)
	assert.True(t, hasError(rep, "Mandatory Block 4 missing"))
	assert.False(t, hasError(rep, "Mandatory Block 1 missing"))
}

func TestValidateSchema_MTMalformedTagLine(t *testing.T) {
	raw := []byte("{1:F01BANKUS33AXXX0000000000}{2:I103RECVGB22XXXXN}{4:\n" +
		":20:MSG12345\n" +
		":20ab:BADTAG\n" +
		"-}")

	rep := NewStructural().ValidateSchema(raw)
	assert.False(t, rep.Valid)
	assert.True(t, hasError(rep, "Malformed tag line in Block 4"))
}

func TestValidateSchema_ValidMX(t *testing.T) {
	raw := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pacs.008.001.08">
  <FIToFICstmrCdtTrf>
    <GrpHdr><MsgId>VALID123</MsgId><CreDtTm>2023-10-24T12:00:00Z</CreDtTm></GrpHdr>
    <CdtTrfTxInf><PmtId><EndToEndId>E2E1</EndToEndId></PmtId></CdtTrfTxInf>
  </FIToFICstmrCdtTrf>
</Document>`)

	rep := NewStructural().ValidateSchema(raw)
	assert.True(t, rep.Valid)
	assert.Empty(t, rep.Errors)
}

func TestValidateSchema_MXMissingRequiredElement(t *testing.T) {
	raw := []byte(`<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pacs.008.001.08">
  <FIToFICstmrCdtTrf>
    <GrpHdr><MsgId>VALID123</MsgId></GrpHdr>
  </FIToFICstmrCdtTrf>
</Document>`)

	rep := NewStructural().ValidateSchema(raw)
	assert.False(t, rep.Valid)
	assert.True(t, hasError(rep, "Mandatory element <CdtTrfTxInf> missing for pacs.008"))
}

func TestValidateSchema_MXMalformed(t *testing.T) {
	rep := NewStructural().ValidateSchema([]byte("<Document><GrpHdr>broken"))
	assert.False(t, rep.Valid)
	assert.True(t, hasError(rep, "Malformed XML"))
}

func TestValidateSchema_MXUnregisteredFamily(t *testing.T) {
	raw := []byte(`<Document xmlns="urn:iso:std:iso:20022:tech:xsd:remt.001.001.02">
  <RmtAdvc><GrpHdr><MsgId>R1</MsgId></GrpHdr></RmtAdvc>
</Document>`)

	// no profile registered: well-formedness is the whole check
	rep := NewStructural().ValidateSchema(raw)
	assert.True(t, rep.Valid)
}

func TestValidateSchema_MXEnvelope(t *testing.T) {
	raw := []byte(`<BusMsg>
  <AppHdr><BizMsgIdr>BIZ1</BizMsgIdr><MsgDefIdr>pacs.008.001.08</MsgDefIdr></AppHdr>
  <Document xmlns="urn:iso:std:iso:20022:tech:xsd:pacs.008.001.08">
    <FIToFICstmrCdtTrf>
      <GrpHdr><MsgId>M1</MsgId></GrpHdr>
      <CdtTrfTxInf/>
    </FIToFICstmrCdtTrf>
  </Document>
</BusMsg>`)

	rep := NewStructural().ValidateSchema(raw)
	assert.True(t, rep.Valid)
}

func TestValidateSchema_MXNulByte(t *testing.T) {
	rep := NewStructural().ValidateSchema([]byte("<Docu\x00ment/>"))
	assert.False(t, rep.Valid)
	assert.True(t, hasError(rep, "NUL byte"))
}

func TestValidateSchema_CustomRegistry(t *testing.T) {
	reg := profile.DefaultRegistry()
	reg.Register(&profile.Profile{
		Family:           model.FamilyPacs008,
		RequiredElements: []string{"GrpHdr", "MsgId", "CdtTrfTxInf", "SttlmInf"},
	})

	raw := []byte(`<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pacs.008.001.08">
  <FIToFICstmrCdtTrf>
    <GrpHdr><MsgId>M1</MsgId></GrpHdr>
    <CdtTrfTxInf/>
  </FIToFICstmrCdtTrf>
</Document>`)

	rep := NewStructural(WithRegistry(reg)).ValidateSchema(raw)
	assert.False(t, rep.Valid)
	assert.True(t, hasError(rep, "Mandatory element <SttlmInf> missing for pacs.008"))

	// same bytes pass under the default profile
	require.True(t, NewStructural().ValidateSchema(raw).Valid)
}

func TestValidateSchema_InputGuards(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		rep := NewStructural().ValidateSchema(nil)
		assert.False(t, rep.Valid)
		assert.True(t, hasError(rep, "Input is empty"))
	})

	t.Run("oversized", func(t *testing.T) {
		big := make([]byte, MaxMessageSize+1)
		rep := NewStructural().ValidateSchema(big)
		assert.False(t, rep.Valid)
		assert.True(t, hasError(rep, "exceeds"))
	})

	t.Run("unrecognized format", func(t *testing.T) {
		rep := NewStructural().ValidateSchema([]byte("plain text, no markers"))
		assert.False(t, rep.Valid)
		assert.True(t, hasError(rep, "Unrecognized message format"))
	})
}
