package score

// Role identifies which part of the arrangement a track carries.
type Role int

const (
	RoleMelody Role = iota
	RoleBass
	RoleChord
	RoleDrum
)

func (r Role) String() string {
	switch r {
	case RoleMelody:
		return "melody"
	case RoleBass:
		return "bass"
	case RoleChord:
		return "chord"
	case RoleDrum:
		return "drum"
	}
	return "unknown"
}

// Percussion event frequencies. The synthesizer dispatches drum-track events
// on these values: KickFreq selects the kick generator, SnareFreq the snare.
const (
	KickFreq  = 60.0
	SnareFreq = 200.0
)

// NoteEvent is a single symbolic event in beat time. Events are owned by the
// track that created them and are never mutated after creation.
type NoteEvent struct {
	Freq          float64 // Hz
	StartBeat     float64
	DurationBeats float64
	Velocity      float64 // 0-1
	Rest          bool
}

// Gain is a per-channel mix weight pair applied to a whole track.
type Gain struct {
	Left  float64
	Right float64
}

// MixGain returns the fixed stereo gain pair for a track role.
func MixGain(r Role) Gain {
	switch r {
	case RoleMelody:
		return Gain{Left: 0.40, Right: 0.35}
	case RoleBass:
		return Gain{Left: 0.30, Right: 0.30}
	case RoleChord:
		return Gain{Left: 0.20, Right: 0.25}
	case RoleDrum:
		return Gain{Left: 0.10, Right: 0.10}
	}
	return Gain{Left: 0.25, Right: 0.25}
}

// Track is an ordered event list for one role. Tracks share a beat timeline
// but are otherwise independent; the synthesizer consumes them in parallel.
type Track struct {
	Role   Role
	Gain   Gain
	Events []NoteEvent
}

// Degradation records a generator step that was replaced with a safe
// fallback. Generators return these instead of logging or failing; the
// assembler decides what to do with them.
type Degradation struct {
	Stage  string
	Detail string
}
