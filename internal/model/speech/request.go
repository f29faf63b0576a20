package speech

// TTSRequest asks for text to be spoken. Empty Language and Voice use the configured defaults.
type TTSRequest struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
	Voice    string `json:"voice,omitempty"`
}
