package tts

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/mandi-advisor/internal/resilience"
)

func TestSynthesize(t *testing.T) {
	var mu sync.Mutex
	var got []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate_tts", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "mr", q.Get("tl"))
		assert.Equal(t, "tw-ob", q.Get("client"))
		mu.Lock()
		got = append(got, q.Get("q"))
		mu.Unlock()
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("mp3-" + q.Get("idx") + ";"))
	}))
	defer ts.Close()

	text := strings.Repeat("कांदा विकू नका. ", 12)
	c := NewClient(WithBaseURL(ts.URL))
	out, err := c.Synthesize(context.Background(), text)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(out)
	require.NoError(t, err)

	require.Greater(t, len(got), 1)
	var want strings.Builder
	for i, chunk := range got {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), MaxChunkRunes)
		want.WriteString("mp3-" + strconv.Itoa(i) + ";")
	}
	assert.Equal(t, want.String(), string(raw))
}

func TestSynthesize_Empty(t *testing.T) {
	c := NewClient(WithBaseURL("http://127.0.0.1:1"))
	out, err := c.Synthesize(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestSynthesize_RetriesThenFails(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	c := NewClient(WithBaseURL(ts.URL), WithRetry(resilience.RetryConfig{
		MaxAttempts: 2, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond,
	}))
	_, err := c.Synthesize(context.Background(), "नमस्कार")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Equal(t, int32(2), calls.Load())
}

func TestSynthesize_EmptyAudio(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer ts.Close()

	_, err := NewClient(WithBaseURL(ts.URL)).Synthesize(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty audio")
}

func TestChunks(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"empty", "", 10, nil},
		{"fits", "Sell now.", 20, []string{"Sell now."}},
		{"sentences packed", "One. Two. Three.", 10, []string{"One. Two.", "Three."}},
		{"danda", "कांदा विका। दर वाढले।", 12, []string{"कांदा विका।", "दर वाढले।"}},
		{"long sentence at spaces", "aaa bbb ccc ddd", 7, []string{"aaa bbb", "ccc ddd"}},
		{"hard cut", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"words then sentence", "aaa bbb ccc. Go.", 8, []string{"aaa bbb", "ccc. Go."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Chunks(tt.text, tt.limit)
			assert.Equal(t, tt.want, got)
			for _, c := range got {
				assert.LessOrEqual(t, utf8.RuneCountInString(c), tt.limit)
			}
		})
	}
}
