package sentiment

import (
	"context"
	"fmt"

	"cloud.google.com/go/language/apiv1/languagepb"
	"github.com/googleapis/gax-go/v2"

	"github.com/milo-garden/mindful-garden/backend/internal/apperr"
)

// LanguageClient is the part of the Cloud Natural Language client the service calls.
type LanguageClient interface {
	AnalyzeSentiment(ctx context.Context, req *languagepb.AnalyzeSentimentRequest, opts ...gax.CallOption) (*languagepb.AnalyzeSentimentResponse, error)
}

// Result is the document-level sentiment.
type Result struct {
	Score     float32 `json:"score"`
	Magnitude float32 `json:"magnitude"`
}

// Service scores text sentiment.
type Service struct {
	client LanguageClient
}

func NewService(client LanguageClient) *Service {
	return &Service{client: client}
}

// Analyze sends text as a plain-text document and returns its overall sentiment.
func (s *Service) Analyze(ctx context.Context, text string) (Result, error) {
	resp, err := s.client.AnalyzeSentiment(ctx, &languagepb.AnalyzeSentimentRequest{
		Document: &languagepb.Document{
			Source: &languagepb.Document_Content{Content: text},
			Type:   languagepb.Document_PLAIN_TEXT,
		},
	})
	if err != nil {
		return Result{}, apperr.Upstream(err)
	}

	doc := resp.GetDocumentSentiment()
	if doc == nil {
		return Result{}, apperr.Upstream(fmt.Errorf("sentiment response has no document sentiment"))
	}

	return Result{Score: doc.GetScore(), Magnitude: doc.GetMagnitude()}, nil
}
