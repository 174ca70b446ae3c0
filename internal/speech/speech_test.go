package speech

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_Best(t *testing.T) {
	r := Result{Alternatives: []Alternative{
		{Transcript: "a", Confidence: 0.5},
		{Transcript: "b", Confidence: 0.9},
		{Transcript: "c", Confidence: 0.9},
	}}
	best, ok := r.Best()
	require.True(t, ok)
	assert.Equal(t, "b", best.Transcript)

	_, ok = Result{}.Best()
	assert.False(t, ok)
}

func TestCollect_Recording(t *testing.T) {
	r, err := OpenReplay("testdata/interview.jsonl", nil)
	require.NoError(t, err)
	assert.Len(t, r.SessionID(), 36)

	text, err := Collect(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "I am living here since 2019 and I like it", text)
}

func TestCollect_RecognitionError(t *testing.T) {
	rec := `{"alternatives":[{"transcript":"hello","confidence":0.9}],"isFinal":true}
{"error":"network","message":"connection lost"}
{"alternatives":[{"transcript":"never seen","confidence":0.9}],"isFinal":true}
`
	r, err := NewReplayRecognizer(strings.NewReader(rec), nil)
	require.NoError(t, err)

	_, err = Collect(context.Background(), r)
	var re *RecognitionError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "network", re.Code)
	assert.Equal(t, "speech recognition: network: connection lost", re.Error())
}

func TestCollect_NoSpeech(t *testing.T) {
	rec := `{"alternatives":[{"transcript":"um","confidence":0.2}],"isFinal":false}
{"alternatives":[{"transcript":"   ","confidence":0.9}],"isFinal":true}
`
	r, err := NewReplayRecognizer(strings.NewReader(rec), nil)
	require.NoError(t, err)

	_, err = Collect(context.Background(), r)
	assert.True(t, errors.Is(err, ErrNoSpeech))
}

func TestCollect_ContextCancelled(t *testing.T) {
	r, err := OpenReplay("testdata/interview.jsonl", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Collect(ctx, r)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReplay_StartTwice(t *testing.T) {
	r, err := NewReplayRecognizer(strings.NewReader(""), nil)
	require.NoError(t, err)
	require.NoError(t, r.Start(context.Background()))
	assert.Error(t, r.Start(context.Background()))
}

func TestReplay_StopKeepsFinalResults(t *testing.T) {
	r, err := OpenReplay("testdata/interview.jsonl", nil)
	require.NoError(t, err)
	require.NoError(t, r.Stop())
	require.NoError(t, r.Start(context.Background()))

	var finals int
	for ev := range r.Events() {
		require.NotNil(t, ev.Result)
		assert.True(t, ev.Result.IsFinal)
		finals++
	}
	assert.Equal(t, 2, finals)
}

func TestReplay_AbortClosesStream(t *testing.T) {
	r, err := OpenReplay("testdata/interview.jsonl", nil)
	require.NoError(t, err)
	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Abort())
	require.NoError(t, r.Abort())

	for range r.Events() {
	}
}

func TestNewReplayRecognizer_InvalidLine(t *testing.T) {
	_, err := NewReplayRecognizer(strings.NewReader("{\"isFinal\":true}\nnot json\n"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recording line 2")
}
