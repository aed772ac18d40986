package cache

// Keyer derives cache keys. Implementations must be deterministic: the same
// inputs always yield the same key.
type Keyer interface {
	// LayoutKey keys a computed layout by dataset content hash and options.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys a rendered artifact by layout hash and render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the layout options that change the computed layout.
type LayoutKeyOpts struct {
	SpacingX       float64 `json:"spacing_x"`
	SpacingY       float64 `json:"spacing_y"`
	MaxSweepPasses int     `json:"max_sweep_passes"`
	Residue        string  `json:"residue"`
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Engine   string `json:"engine"`
	Selected string `json:"selected,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
	Title    string `json:"title,omitempty"`
}

// DefaultKeyer produces unscoped keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
