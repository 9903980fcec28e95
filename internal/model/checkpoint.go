package model

// ContentCheckpoint holds the key information extracted from a text,
// used to approximate whether a summary preserved the source content.
type ContentCheckpoint struct {
	KeyPoints     []string `json:"key_points"`
	Entities      []string `json:"entities"`
	Relationships []string `json:"relationships"`
	Metrics       []string `json:"metrics"`
	Context       []string `json:"context"`
}

// CoverageReport compares a summary checkpoint against the source one.
// A category that is empty in the source counts as fully covered.
type CoverageReport struct {
	KeyPointRatio     float64 `json:"key_point_ratio"`
	EntityRatio       float64 `json:"entity_ratio"`
	RelationshipRatio float64 `json:"relationship_ratio"`
	MetricRatio       float64 `json:"metric_ratio"`
	ContextRatio      float64 `json:"context_ratio"`
	Passed            bool    `json:"passed"`
}
