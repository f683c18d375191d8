package estimate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/mandi-advisor/internal/model"
	"github.com/sells-group/mandi-advisor/internal/resilience"
	"github.com/sells-group/mandi-advisor/pkg/anthropic"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

func textResponse(s string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{Content: []anthropic.ContentBlock{{Type: "text", Text: s}}}
}

func fixedNow() time.Time { return time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC) }

func newTestEstimator(c anthropic.Client) *Estimator {
	e := New(c, Config{Model: "test-model", MaxTokens: 128, Timeout: time.Second}, nil)
	e.now = fixedNow
	return e
}

func TestEstimatePrice(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		want    Band
		wantErr error
	}{
		{
			name:   "plain json",
			answer: `{"min_price_quintal": 1000, "modal_price_quintal": 1200, "max_price_quintal": 1500}`,
			want:   Band{Min: 1000, Modal: 1200, Max: 1500},
		},
		{
			name:   "fenced with prose",
			answer: "Here you go:\n```json\n{\"min_price_quintal\": \"900\", \"modal_price_quintal\": 1100, \"max_price_quintal\": 1300}\n```",
			want:   Band{Min: 900, Modal: 1100, Max: 1300},
		},
		{
			name:   "out of order is sorted",
			answer: `{"min_price_quintal": 1500, "modal_price_quintal": 1000, "max_price_quintal": 1200}`,
			want:   Band{Min: 1000, Modal: 1200, Max: 1500},
		},
		{
			name:    "zero price rejected",
			answer:  `{"min_price_quintal": 0, "modal_price_quintal": 1000, "max_price_quintal": 1200}`,
			wantErr: ErrMalformed,
		},
		{
			name:    "missing field rejected",
			answer:  `{"min_price_quintal": 900, "modal_price_quintal": 1000}`,
			wantErr: ErrMalformed,
		},
		{
			name:    "not json",
			answer:  "I cannot estimate that.",
			wantErr: ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &mockClient{}
			c.On("CreateMessage", mock.Anything, mock.MatchedBy(func(req anthropic.MessageRequest) bool {
				return req.Model == "test-model" && strings.Contains(req.Messages[0].Content, `"Onion"`) &&
					strings.Contains(req.Messages[0].Content, "2024-03-10")
			})).Return(textResponse(tt.answer), nil)

			band, err := newTestEstimator(c).EstimatePrice(context.Background(), "Lasalgaon", "Onion")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, band)
			c.AssertExpectations(t)
		})
	}
}

func TestEstimatePrice_NoClient(t *testing.T) {
	e := New(nil, Config{}, nil)
	assert.False(t, e.Available())
	_, err := e.EstimatePrice(context.Background(), "Pune", "Tomato")
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestEstimatePrice_ClientError(t *testing.T) {
	c := &mockClient{}
	c.On("CreateMessage", mock.Anything, mock.Anything).Return(nil, errors.New("503 overloaded"))

	_, err := newTestEstimator(c).EstimatePrice(context.Background(), "Pune", "Tomato")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "estimate: price request")
}

func TestEstimatePrice_EmptyAnswer(t *testing.T) {
	c := &mockClient{}
	c.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse("   "), nil)

	_, err := newTestEstimator(c).EstimatePrice(context.Background(), "Pune", "Tomato")
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestEstimatePrice_BreakerOpens(t *testing.T) {
	c := &mockClient{}
	c.On("CreateMessage", mock.Anything, mock.Anything).Return(nil, errors.New("down")).Once()

	cb := resilience.NewCircuitBreaker("anthropic", 1, time.Hour)
	e := New(c, Config{}, cb)

	_, err := e.EstimatePrice(context.Background(), "Pune", "Tomato")
	require.Error(t, err)

	_, err = e.EstimatePrice(context.Background(), "Pune", "Tomato")
	assert.True(t, errors.Is(err, ErrUnavailable))
	c.AssertNumberOfCalls(t, "CreateMessage", 1)
}

func historyAnswer(n int) string {
	var parts []string
	for i := 0; i < n; i++ {
		base := 1000 + i*10
		parts = append(parts, fmt.Sprintf(`{"date":"1999-01-%02d","open":%d,"high":%d,"low":%d,"close":%d}`,
			i+1, base, base+50, base-40, base+5))
	}
	return "```json\n{\"points\": [" + strings.Join(parts, ",") + "]}\n```"
}

func TestGenerateHistory(t *testing.T) {
	c := &mockClient{}
	c.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(historyAnswer(7)), nil)

	points, err := newTestEstimator(c).GenerateHistory(context.Background(), "Tomato", "Maharashtra", 5)
	require.NoError(t, err)
	require.Len(t, points, 5)

	assert.Equal(t, "2024-03-06", points[0].Date)
	assert.Equal(t, "2024-03-10", points[4].Date)
	assert.Equal(t, float64(1025), points[0].Close)
	assert.Equal(t, float64(1065), points[4].Close)
	for _, p := range points {
		assert.Equal(t, model.SourceAIEstimate, p.Source)
		assert.GreaterOrEqual(t, p.High, p.Open)
		assert.GreaterOrEqual(t, p.High, p.Close)
		assert.LessOrEqual(t, p.Low, p.Open)
		assert.LessOrEqual(t, p.Low, p.Close)
	}
}

func TestGenerateHistory_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		days   int
	}{
		{"too few points", historyAnswer(3), 5},
		{"no array", `{"points": "soon"}`, 2},
		{"negative price", `{"points": [{"open": -1, "high": 2, "low": 1, "close": 2}]}`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &mockClient{}
			c.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(tt.answer), nil)
			_, err := newTestEstimator(c).GenerateHistory(context.Background(), "Tomato", "Pune", tt.days)
			assert.True(t, errors.Is(err, ErrMalformed), err)
		})
	}
}

func TestGenerateHistory_TooManyDays(t *testing.T) {
	c := &mockClient{}
	_, err := newTestEstimator(c).GenerateHistory(context.Background(), "Tomato", "Pune", 365)
	assert.True(t, errors.Is(err, ErrUnavailable))
	c.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestCleanJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSON("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSON(`sure! {"a":1} hope that helps`))
	assert.Equal(t, "nothing", cleanJSON("nothing"))
}
