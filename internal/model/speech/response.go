package speech

import "time"

// TTSResponse describes an uploaded audio clip.
type TTSResponse struct {
	AudioData []byte    `json:"-"`
	AudioURL  string    `json:"audio_url"`
	Format    string    `json:"format"`
	ObjectKey string    `json:"objectKey"`
	CreatedAt time.Time `json:"createdAt"`
}
