package translate

import "github.com/google/uuid"

// Translator renders canonical messages as MT or MX wire bytes. The
// zero value is ready to use; a Translator holds no state and is safe
// for concurrent use.
type Translator struct{}

// New returns a Translator.
func New() *Translator { return &Translator{} }

// GenerateUETR returns a fresh unique end-to-end transaction
// reference: a version 4 UUID in canonical text form. Callers stamp
// models that lack one before translating to a format that mandates
// it.
func GenerateUETR() string { return uuid.NewString() }
