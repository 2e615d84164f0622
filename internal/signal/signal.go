package signal

// Metadata is the descriptive record attached to a signal.
type Metadata struct {
	General GeneralMetadata `json:"General"`
	Signal  SignalMetadata  `json:"Signal"`
}

// GeneralMetadata holds file-level information.
type GeneralMetadata struct {
	OriginalFilename string `json:"original_filename"`
}

// SignalMetadata classifies the data.
type SignalMetadata struct {
	SignalType string `json:"signal_type"`
	RecordBy   string `json:"record_by"`
}

// Signal is a labelled array: pixel data plus calibrated axes.
type Signal struct {
	Data     Data
	Axes     *AxesManager
	Metadata Metadata
}

// New wraps data as a signal whose last signalDims dimensions are signal
// dimensions and the rest navigation dimensions.
func New(data Data, signalDims int) (*Signal, error) {
	axes, err := NewAxesManager(data.Shape(), signalDims)
	if err != nil {
		return nil, err
	}
	return &Signal{Data: data, Axes: axes}, nil
}

// NewSignal2D wraps a (height, width) array as an image signal.
func NewSignal2D(data Data) (*Signal, error) {
	return New(data, 2)
}

// SignalDimension returns the number of signal axes.
func (s *Signal) SignalDimension() int { return len(s.Axes.SignalAxes()) }

// NavigationDimension returns the number of navigation axes.
func (s *Signal) NavigationDimension() int { return len(s.Axes.NavigationAxes()) }
