package speech

// SpeechConfig describes the synthesized voice and where audio objects go.
type SpeechConfig struct {
	LanguageCode string `json:"languageCode"` // en-US
	Gender       string `json:"gender"`       // NEUTRAL, FEMALE, MALE
	VoiceName    string `json:"voiceName,omitempty"`
	Encoding     string `json:"encoding"` // mp3
	ObjectPrefix string `json:"objectPrefix"`
}

// DefaultConfig returns the en-US neutral MP3 voice stored under audio/.
func DefaultConfig() SpeechConfig {
	return SpeechConfig{
		LanguageCode: "en-US",
		Gender:       "NEUTRAL",
		Encoding:     "mp3",
		ObjectPrefix: "audio/",
	}
}
