package parameter

import "time"

// Audio Engine
const (
	// AudioSampleRate is the speaker output rate, decoded speech is resampled to it
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// AudioResampleQuality is the beep resampler quality (1..64)
	AudioResampleQuality = 4

	// ChimeFrequency/ChimeDuration shape the soft tone played when a reply appears
	ChimeFrequency = 528.0
	ChimeDuration  = 900 * time.Millisecond

	// ChimeVolume is the beep effects.Volume exponent (base 2), negative is quieter
	ChimeVolume = -3.0

	// WhooshVolume is the whoosh level, base 2 exponent
	WhooshVolume = -4.0
)

// ElevenLabs voice settings
const (
	VoiceStability       = 0.4
	VoiceSimilarityBoost = 0.7
)

// ChimeAttack is the chime fade-in
const ChimeAttack = 30 * time.Millisecond
