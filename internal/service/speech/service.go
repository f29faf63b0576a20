package speech

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/google/uuid"
	"github.com/googleapis/gax-go/v2"

	"github.com/milo-garden/mindful-garden/backend/internal/apperr"
	"github.com/milo-garden/mindful-garden/backend/internal/model/speech"
)

const audioContentType = "audio/mpeg"

// Synthesizer is the part of the Cloud Text-to-Speech client the service calls.
type Synthesizer interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
}

// BlobStore stores audio objects and reports their public URL.
type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) error
	URL(key string) string
}

// Service turns text into an uploaded MP3 clip.
type Service struct {
	config      speech.SpeechConfig
	synthesizer Synthesizer
	blobs       BlobStore
	newID       func() string
}

// NewService wires the synthesizer and blob store. Zero config fields fall back to DefaultConfig.
func NewService(config speech.SpeechConfig, synthesizer Synthesizer, blobs BlobStore) *Service {
	defaults := speech.DefaultConfig()
	if config.LanguageCode == "" {
		config.LanguageCode = defaults.LanguageCode
	}
	if config.Gender == "" {
		config.Gender = defaults.Gender
	}
	if config.Encoding == "" {
		config.Encoding = defaults.Encoding
	}
	if config.ObjectPrefix == "" {
		config.ObjectPrefix = defaults.ObjectPrefix
	}

	return &Service{
		config:      config,
		synthesizer: synthesizer,
		blobs:       blobs,
		newID:       uuid.NewString,
	}
}

// SynthesizeSpeech synthesizes req.Text and uploads the MP3 under a fresh key.
// A failed upload after a successful synthesis is reported as one upstream error.
func (s *Service) SynthesizeSpeech(ctx context.Context, req *speech.TTSRequest) (*speech.TTSResponse, error) {
	if req == nil || req.Text == "" {
		return nil, apperr.MissingField("text")
	}

	resp, err := s.synthesizer.SynthesizeSpeech(ctx, s.buildRequest(req))
	if err != nil {
		return nil, apperr.Upstream(err)
	}

	key := s.ObjectKey(s.newID())
	if err := s.blobs.Upload(ctx, key, audioContentType, resp.GetAudioContent()); err != nil {
		return nil, apperr.Upstream(err)
	}

	log.Printf("[speech] uploaded %s (%d bytes)", key, len(resp.GetAudioContent()))
	return &speech.TTSResponse{
		AudioData: resp.GetAudioContent(),
		AudioURL:  s.blobs.URL(key),
		Format:    s.config.Encoding,
		ObjectKey: key,
		CreatedAt: time.Now(),
	}, nil
}

// ObjectKey returns the object key for id, e.g. audio/<id>.mp3.
func (s *Service) ObjectKey(id string) string {
	prefix := s.config.ObjectPrefix
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return fmt.Sprintf("%s%s.mp3", prefix, id)
}

func (s *Service) buildRequest(req *speech.TTSRequest) *texttospeechpb.SynthesizeSpeechRequest {
	language := req.Language
	if language == "" {
		language = s.config.LanguageCode
	}
	voiceName := req.Voice
	if voiceName == "" {
		voiceName = s.config.VoiceName
	}

	return &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: req.Text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: language,
			Name:         voiceName,
			SsmlGender:   parseGender(s.config.Gender),
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}
}

func parseGender(value string) texttospeechpb.SsmlVoiceGender {
	if v, ok := texttospeechpb.SsmlVoiceGender_value[strings.ToUpper(strings.TrimSpace(value))]; ok {
		return texttospeechpb.SsmlVoiceGender(v)
	}
	return texttospeechpb.SsmlVoiceGender_NEUTRAL
}
