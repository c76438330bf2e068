package lattice

// Version is the project version, surfaced by `lattice version` and the
// scoringd /healthz payload.
var Version = "0.2.0"
