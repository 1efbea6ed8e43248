package stagehand

// Run identifies one execution instance of the host's workload, bounded by a
// begin and a matching end notification. The handle is created and owned by
// the host engine; the dispatcher never inspects it, it only passes it
// through to listeners. A Run must not outlive its begin/end pair.
type Run struct {
	// Number is the host-assigned run identifier, used by listeners for
	// keying statistics and by logs for correlation.
	Number int

	// Payload carries arbitrary host data through to listeners.
	Payload any
}
