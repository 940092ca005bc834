package record

// Status is a periodic housekeeping record.
type Status struct {
	ReadoutTime       float64  // seconds since the epoch
	ReadoutTimeNs     uint32   // sub-second part of ReadoutTime, in ns
	TriggerThresholds []uint32 // per beam
	GlobalScalers     []uint16
	BeamScalers       []uint16
	Deadtime          uint32
	LatchedPPSTime    float64
	DynamicBeamMask   uint32
}

// Header describes one triggered readout.
type Header struct {
	EventNumber       uint64
	TriggerNumber     uint32
	BufferLength      uint16
	PretriggerSamples uint16
	ReadoutTime       float64
	ReadoutTimeNs     uint32
	TriggerTime       uint64
	TriggerType       uint8
	TriggeredBeams    uint32
	ChannelMask       uint32
	Calpulser         bool
	SyncProblem       bool
}

// Event holds the digitized waveforms of one readout, indexed as
// Data[board][channel][sample].
type Event struct {
	EventNumber  uint64
	BufferLength uint16
	Data         [][][]int16
}
