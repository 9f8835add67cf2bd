package core

// Artifact represents any output of the system
type Artifact struct {
	ID        ArtifactID   `json:"id"`
	Kind      ArtifactKind `json:"kind"`
	Payload   interface{}  `json:"payload"`
	CreatedAt Timestamp    `json:"created_at"`
}

// ArtifactKind defines types of artifacts
type ArtifactKind string

const (
	// ArtifactRunManifest captures audit metadata for an estimation run
	// (input fingerprint, parameters, runtime).
	ArtifactRunManifest ArtifactKind = "run_manifest"
	// ArtifactTrace is the per-sample mean/stddev convergence trace.
	ArtifactTrace ArtifactKind = "trace"
	// ArtifactPosterior is the final posterior density sampled on the grid.
	ArtifactPosterior ArtifactKind = "posterior"
	// ArtifactConvergenceReport is the diagnostic verdict over a trace.
	ArtifactConvergenceReport ArtifactKind = "convergence_report"
)

// NewArtifact wraps a payload in an artifact envelope
func NewArtifact(kind ArtifactKind, payload interface{}) Artifact {
	return Artifact{
		ID:        ArtifactID(NewID()),
		Kind:      kind,
		Payload:   payload,
		CreatedAt: Now(),
	}
}
