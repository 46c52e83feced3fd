package finmsg

import (
	"fmt"
	"log/slog"

	"github.com/sirosfoundation/go-finmsg/pkg/anonymize"
	"github.com/sirosfoundation/go-finmsg/pkg/compression"
	"github.com/sirosfoundation/go-finmsg/pkg/detect"
	"github.com/sirosfoundation/go-finmsg/pkg/model"
	"github.com/sirosfoundation/go-finmsg/pkg/mt"
	"github.com/sirosfoundation/go-finmsg/pkg/mx"
	"github.com/sirosfoundation/go-finmsg/pkg/profile"
	"github.com/sirosfoundation/go-finmsg/pkg/reconcile"
	"github.com/sirosfoundation/go-finmsg/pkg/translate"
	"github.com/sirosfoundation/go-finmsg/pkg/validate"
)

// Processor composes the message engines behind one configured
// entry point.
type Processor struct {
	registry *profile.Registry
	logger   *slog.Logger
	salt     string

	translator *translate.Translator
	anonymizer *anonymize.Anonymizer
	reconciler *reconcile.Reconciler
	structural *validate.StructuralValidator
	logical    *validate.LogicalValidator
	compressor *compression.Compressor
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger used for debug traces. The default is
// slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithRegistry replaces the structural profile registry.
func WithRegistry(r *profile.Registry) Option {
	return func(p *Processor) {
		if r != nil {
			p.registry = r
		}
	}
}

// WithSalt fixes the anonymization salt, keeping aliases stable
// across processors within one batch run.
func WithSalt(salt string) Option {
	return func(p *Processor) {
		p.salt = salt
	}
}

// New creates a processor with the given options applied over the
// defaults.
func New(opts ...Option) *Processor {
	p := &Processor{
		registry: profile.DefaultRegistry(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	var anonOpts []anonymize.Option
	if p.salt != "" {
		anonOpts = append(anonOpts, anonymize.WithSalt(p.salt))
	}
	p.translator = translate.New()
	p.anonymizer = anonymize.New(anonOpts...)
	p.reconciler = reconcile.New()
	p.structural = validate.NewStructural(validate.WithRegistry(p.registry))
	p.logical = validate.NewLogical()
	p.compressor = compression.NewCompressor()
	return p
}

// Parse converts raw message bytes into the canonical model. The
// format is detected from the input; gzip-compressed input is
// decompressed first.
func (p *Processor) Parse(data []byte) (*model.PaymentMessage, error) {
	payload, err := p.unwrap(data)
	if err != nil {
		return nil, err
	}

	format, err := detect.Detect(payload)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("format detected", "format", string(format), "bytes", len(payload))

	if format == detect.FormatMX {
		return mx.Parse(payload)
	}
	return mt.Parse(payload)
}

// ParseDetailed is Parse plus statement detail: booking entries and
// the account identification for statement-family messages.
func (p *Processor) ParseDetailed(data []byte) (*model.DetailedModel, error) {
	payload, err := p.unwrap(data)
	if err != nil {
		return nil, err
	}

	format, err := detect.Detect(payload)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("format detected", "format", string(format), "bytes", len(payload))

	if format == detect.FormatMX {
		return mx.ParseDetailed(payload)
	}
	return mt.ParseDetailed(payload)
}

// ValidateSchema checks raw bytes against the structural rules of
// their detected format. It never returns an error; problems are
// reported as findings, including undecodable gzip input.
func (p *Processor) ValidateSchema(data []byte) *validate.Report {
	if payload, err := p.unwrap(data); err == nil {
		data = payload
	}
	return p.structural.ValidateSchema(data)
}

// Validate runs field-level business syntax checks on a parsed
// message.
func (p *Processor) Validate(m *model.PaymentMessage) *validate.Report {
	return p.logical.Validate(m)
}

// ToMT renders a canonical message as an MT message of the given
// type ("103" or "202").
func (p *Processor) ToMT(m *model.PaymentMessage, mtType string) ([]byte, error) {
	return p.translator.ToMT(m, mtType)
}

// ToMX renders a canonical message as an ISO 20022 document of the
// given schema family or exact version.
func (p *Processor) ToMX(m *model.PaymentMessage, schema string) ([]byte, error) {
	return p.translator.ToMX(m, schema)
}

// Anonymize replaces personally identifying fields in raw message
// bytes, preserving structure. Gzip input is decompressed first; the
// output is always uncompressed.
func (p *Processor) Anonymize(data []byte) ([]byte, error) {
	payload, err := p.unwrap(data)
	if err != nil {
		return nil, err
	}
	return p.anonymizer.Anonymize(payload)
}

// TraceLifecycle collects the messages in pool transitively
// correlated with seed, in chronological order.
func (p *Processor) TraceLifecycle(seed *model.PaymentMessage, pool []*model.PaymentMessage) []*model.PaymentMessage {
	timeline := p.reconciler.TraceLifecycle(seed, pool)
	if seed != nil {
		p.logger.Debug("lifecycle traced", "seed", seed.MessageID, "messages", len(timeline))
	}
	return timeline
}

// unwrap transparently decompresses gzip input, as produced by
// archived statement feeds.
func (p *Processor) unwrap(data []byte) ([]byte, error) {
	if !compression.IsGzip(data) {
		return data, nil
	}
	p.logger.Debug("decompressing input", "compressed_bytes", len(data))
	out, err := p.compressor.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%w: gzip: %v", model.ErrMalformed, err)
	}
	return out, nil
}

var defaultProcessor = New()

// Parse converts raw message bytes into the canonical model using a
// shared default processor.
func Parse(data []byte) (*model.PaymentMessage, error) {
	return defaultProcessor.Parse(data)
}

// ParseDetailed parses raw message bytes including statement detail
// using a shared default processor.
func ParseDetailed(data []byte) (*model.DetailedModel, error) {
	return defaultProcessor.ParseDetailed(data)
}
