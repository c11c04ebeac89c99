package sentiment

import (
	"context"
	"log"

	"QuantWatch/internal/model"
)

// Classifier labels a batch of texts with sentiment polarity.
type Classifier interface {
	Classify(ctx context.Context, texts []string) ([]model.SentimentLabel, error)
	Name() string
}

// maxHeadlines caps how many headlines feed one signal.
const maxHeadlines = 5

// BuildSignal classifies up to five headlines into polarity counts.
// Missing headlines or a nil classifier yield a neutral signal, and a
// classification failure degrades to neutral with the failure logged.
func BuildSignal(ctx context.Context, cl Classifier, headlines []string) model.SentimentSignal {
	if cl == nil || len(headlines) == 0 {
		return model.SentimentSignal{}
	}
	if len(headlines) > maxHeadlines {
		headlines = headlines[:maxHeadlines]
	}

	labels, err := cl.Classify(ctx, headlines)
	if err != nil {
		log.Printf("[WARN] sentiment classification failed, treating as neutral: %v", err)
		return model.SentimentSignal{Degraded: true}
	}

	var sig model.SentimentSignal
	for _, l := range labels {
		switch l.Label {
		case "positive":
			sig.Positive++
		case "negative":
			sig.Negative++
		}
	}
	return sig
}

// StubClassifier returns fixed labels, for development and testing.
type StubClassifier struct {
	Labels []model.SentimentLabel
	Err    error
}

func (s *StubClassifier) Name() string { return "stub" }

func (s *StubClassifier) Classify(_ context.Context, texts []string) ([]model.SentimentLabel, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Labels != nil {
		return s.Labels, nil
	}
	labels := make([]model.SentimentLabel, len(texts))
	for i := range texts {
		labels[i] = model.SentimentLabel{Label: "neutral", Score: 1}
	}
	return labels, nil
}
