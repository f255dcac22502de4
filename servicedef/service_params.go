package servicedef

// Capabilities that a test service can report. Each one names an operation the processor
// supports; tests for operations the service does not report are skipped.
const (
	CapabilityExpand    = "expand"
	CapabilityCompact   = "compact"
	CapabilityFlatten   = "flatten"
	CapabilityToRDF     = "toRdf"
	CapabilityFromRDF   = "fromRdf"
	CapabilityFrame     = "frame"
	CapabilityNormalize = "normalize"
)

// AllCapabilities lists every capability the harness knows about.
func AllCapabilities() []string {
	return []string{
		CapabilityExpand,
		CapabilityCompact,
		CapabilityFlatten,
		CapabilityToRDF,
		CapabilityFromRDF,
		CapabilityFrame,
		CapabilityNormalize,
	}
}
