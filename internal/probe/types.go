package probe

// --- ffprobe JSON wire types ---

// probeOutput is the subset of ffprobe's JSON document requested by
// DurationArgs. Numbers arrive as strings.
type probeOutput struct {
	Format *probeFormat `json:"format"`
}

type probeFormat struct {
	Duration string `json:"duration"`
}
