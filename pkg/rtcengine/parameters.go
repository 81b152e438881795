package rtcengine

// Encoding is one outbound layer of a sender.
type Encoding struct {
	// Tag is the layer's rid ("f", "h", "q" for simulcast tiers).
	Tag string
	// MaxBitrate caps the layer in bits per second. 0 means uncapped.
	MaxBitrate uint64
	// ScaleDownBy divides the source resolution. 0 means full resolution.
	ScaleDownBy float64
	// ScalabilityMode is the SVC layout tag, e.g. "L3T3". Empty when the
	// layer is a plain or simulcast encoding.
	ScalabilityMode string
}

// SendParameters is the full outbound configuration of a sender. Encodings
// are ordered highest tier first.
type SendParameters struct {
	Encodings []Encoding
}

// Clone returns a deep copy, so callers can mutate freely before SetParameters.
func (p SendParameters) Clone() SendParameters {
	out := SendParameters{}
	if p.Encodings != nil {
		out.Encodings = make([]Encoding, len(p.Encodings))
		copy(out.Encodings, p.Encodings)
	}

	return out
}
