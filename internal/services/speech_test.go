package services

import (
	"context"
	"errors"
	"testing"

	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	texttospeechpb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockmate/interview-api/internal/apperrors"
)

type stubSynthesizer struct {
	resp  *texttospeechpb.SynthesizeSpeechResponse
	err   error
	calls int
	last  *texttospeechpb.SynthesizeSpeechRequest
}

func (s *stubSynthesizer) SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error) {
	s.calls++
	s.last = req
	return s.resp, s.err
}

type stubRecognizer struct {
	resp  *speechpb.RecognizeResponse
	err   error
	calls int
	last  *speechpb.RecognizeRequest
}

func (s *stubRecognizer) Recognize(ctx context.Context, req *speechpb.RecognizeRequest, opts ...gax.CallOption) (*speechpb.RecognizeResponse, error) {
	s.calls++
	s.last = req
	return s.resp, s.err
}

func newTestSpeechService(synth *stubSynthesizer, recog *stubRecognizer) SpeechService {
	return NewSpeechService(
		synth,
		recog,
		[]string{"en-US-Neural2-F", "en-US-Neural2-D"},
		"en-US-Neural2-F",
		48000,
		"en-US",
		zerolog.Nop(),
	)
}

func TestTextToSpeechUsesRequestedVoice(t *testing.T) {
	synth := &stubSynthesizer{resp: &texttospeechpb.SynthesizeSpeechResponse{AudioContent: []byte("mp3")}}
	svc := newTestSpeechService(synth, &stubRecognizer{})

	audio, err := svc.TextToSpeech(context.Background(), "hello", "en-US-Neural2-D")

	require.NoError(t, err)
	assert.Equal(t, []byte("mp3"), audio)
	require.NotNil(t, synth.last)
	assert.Equal(t, "en-US-Neural2-D", synth.last.Voice.Name)
	assert.Equal(t, "en-US", synth.last.Voice.LanguageCode)
	assert.Equal(t, texttospeechpb.AudioEncoding_MP3, synth.last.AudioConfig.AudioEncoding)
}

func TestTextToSpeechUnknownVoiceFallsBackSilently(t *testing.T) {
	synth := &stubSynthesizer{resp: &texttospeechpb.SynthesizeSpeechResponse{AudioContent: []byte("mp3")}}
	svc := newTestSpeechService(synth, &stubRecognizer{})

	_, err := svc.TextToSpeech(context.Background(), "hello", "robot-voice")

	require.NoError(t, err)
	require.NotNil(t, synth.last)
	assert.Equal(t, "en-US-Neural2-F", synth.last.Voice.Name)
}

func TestTextToSpeechProviderError(t *testing.T) {
	synth := &stubSynthesizer{err: errors.New("quota exceeded")}
	svc := newTestSpeechService(synth, &stubRecognizer{})

	_, err := svc.TextToSpeech(context.Background(), "hello", "en-US-Neural2-F")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestSpeechToTextEmptyAudioSkipsProvider(t *testing.T) {
	recog := &stubRecognizer{}
	svc := newTestSpeechService(&stubSynthesizer{}, recog)

	result := svc.SpeechToText(context.Background(), nil, "en-US")

	assert.NotEmpty(t, result.Error)
	assert.Empty(t, result.Transcript)
	assert.Zero(t, recog.calls)
}

func TestSpeechToTextProviderErrorIsAValue(t *testing.T) {
	recog := &stubRecognizer{err: errors.New("backend unavailable")}
	svc := newTestSpeechService(&stubSynthesizer{}, recog)

	result := svc.SpeechToText(context.Background(), []byte("audio"), "en-US")

	assert.Contains(t, result.Error, "backend unavailable")
	assert.Empty(t, result.Transcript)
}

func TestSpeechToTextConcatenatesTopAlternatives(t *testing.T) {
	recog := &stubRecognizer{resp: &speechpb.RecognizeResponse{
		Results: []*speechpb.SpeechRecognitionResult{
			{Alternatives: []*speechpb.SpeechRecognitionAlternative{
				{Transcript: "Hello there."},
				{Transcript: "hell o there"},
			}},
			{Alternatives: nil},
			{Alternatives: []*speechpb.SpeechRecognitionAlternative{
				{Transcript: "How are you?"},
			}},
		},
	}}
	svc := newTestSpeechService(&stubSynthesizer{}, recog)

	result := svc.SpeechToText(context.Background(), []byte("audio"), "")

	assert.Empty(t, result.Error)
	assert.Equal(t, "Hello there. How are you?", result.Transcript)

	require.NotNil(t, recog.last)
	assert.Equal(t, speechpb.RecognitionConfig_WEBM_OPUS, recog.last.Config.Encoding)
	assert.Equal(t, int32(48000), recog.last.Config.SampleRateHertz)
	assert.Equal(t, "en-US", recog.last.Config.LanguageCode, "empty language falls back to default")
	assert.True(t, recog.last.Config.EnableAutomaticPunctuation)
}

func TestSpeechToTextNoResultsYieldsEmptyTranscript(t *testing.T) {
	recog := &stubRecognizer{resp: &speechpb.RecognizeResponse{}}
	svc := newTestSpeechService(&stubSynthesizer{}, recog)

	result := svc.SpeechToText(context.Background(), []byte("audio"), "en-US")

	assert.Empty(t, result.Error)
	assert.Empty(t, result.Transcript)
}

func TestVoiceLanguageCode(t *testing.T) {
	assert.Equal(t, "en-US", voiceLanguageCode("en-US-Neural2-F"))
	assert.Equal(t, "ja-JP", voiceLanguageCode("ja-JP-Neural2-B"))
	assert.Equal(t, "en-US", voiceLanguageCode("weird"))
}
