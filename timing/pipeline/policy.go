package pipeline

// Policy selects the hazard model used for every stall decision.
type Policy struct {
	// Forwarding enables the bypass path. Without it a RAW hazard stalls up
	// to a distance of 2; with it only a load-use hazard at distance 1 does.
	Forwarding bool
}

// Hazard policies.
var (
	PolicyNoForwarding = Policy{Forwarding: false}
	PolicyForwarding   = Policy{Forwarding: true}
)

// String returns a human-readable policy name.
func (p Policy) String() string {
	if p.Forwarding {
		return "forwarding"
	}
	return "no forwarding"
}
