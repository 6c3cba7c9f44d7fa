package finding

import "fmt"

// Severity classifies a finding as a hard failure or a warning.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Kind identifies the class of a validation finding. The set is closed:
// every check in the pipeline maps its outcome onto one of these.
type Kind string

const (
	KindPathTraversal      Kind = "PathTraversal"
	KindPayloadTooLarge    Kind = "PayloadTooLarge"
	KindUnsafeKey          Kind = "UnsafeKey"
	KindParseError         Kind = "ParseError"
	KindReadError          Kind = "ReadError"
	KindBadChecksum        Kind = "BadChecksum"
	KindBadFormat          Kind = "BadFormat"
	KindZeroAddress        Kind = "ZeroAddress"
	KindAddressMismatch    Kind = "AddressMismatch"
	KindDuplicateAddress   Kind = "DuplicateAddress"
	KindInvalidURL         Kind = "InvalidURL"
	KindPrivateNetworkURL  Kind = "PrivateNetworkURL"
	KindInvalidEmail       Kind = "InvalidEmail"
	KindDisposableDomain   Kind = "DisposableDomain"
	KindMissingLogo        Kind = "MissingLogo"
	KindTooLarge           Kind = "TooLarge"
	KindFormatMismatch     Kind = "FormatMismatch"
	KindUnrecognizedFormat Kind = "UnrecognizedFormat"
	KindInvalidABI         Kind = "InvalidABI"
	KindNameMismatch       Kind = "NameMismatch"
	KindSchemaViolation    Kind = "SchemaViolation"
	KindCrossReference     Kind = "CrossReferenceError"
	KindRateLimitExceeded  Kind = "RateLimitExceeded"

	KindDuplicateName Kind = "DuplicateName"

	// Advisory kinds, always reported as warnings.
	KindSecurityPattern Kind = "SecurityPattern"
	KindAdvisory        Kind = "Advisory"
)

// Finding is a single validation result.
type Finding struct {
	Kind     Kind     `json:"kind"`
	Severity Severity `json:"severity"`
	Subject  string   `json:"subject"` // offending identifier: address, symbol, slug or path
	Message  string   `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s: %s (%s)", f.Severity, f.Kind, f.Message, f.Subject)
}

// IsError reports whether the finding is a hard failure.
func (f Finding) IsError() bool {
	return f.Severity == SeverityError
}

// Errorf builds an error-severity finding.
func Errorf(kind Kind, subject, format string, args ...interface{}) Finding {
	return Finding{Kind: kind, Severity: SeverityError, Subject: subject, Message: fmt.Sprintf(format, args...)}
}

// Warnf builds a warning-severity finding.
func Warnf(kind Kind, subject, format string, args ...interface{}) Finding {
	return Finding{Kind: kind, Severity: SeverityWarning, Subject: subject, Message: fmt.Sprintf(format, args...)}
}

// Recorder accumulates findings for one validation run. It is created per
// run and never shared between runs.
type Recorder struct {
	findings []Finding
	errors   int
	warnings int
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Add(f Finding) {
	r.findings = append(r.findings, f)
	if f.IsError() {
		r.errors++
	} else {
		r.warnings++
	}
}

func (r *Recorder) AddAll(fs []Finding) {
	for _, f := range fs {
		r.Add(f)
	}
}

// HasError reports whether any of the given findings is a hard failure.
func HasError(fs []Finding) bool {
	for _, f := range fs {
		if f.IsError() {
			return true
		}
	}
	return false
}

func (r *Recorder) Findings() []Finding { return r.findings }
func (r *Recorder) Errors() int        { return r.errors }
func (r *Recorder) Warnings() int      { return r.warnings }
