package services

import (
	"context"
	"strings"

	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	texttospeechpb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/rs/zerolog"

	"mockmate/interview-api/internal/apperrors"
	"mockmate/interview-api/internal/models"
)

// Narrow views of the Google Cloud clients, so the bridge can be
// exercised against stubs. The real *texttospeech.Client and
// *speech.Client satisfy them directly.
type SpeechSynthesizer interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
}

type SpeechRecognizer interface {
	Recognize(ctx context.Context, req *speechpb.RecognizeRequest, opts ...gax.CallOption) (*speechpb.RecognizeResponse, error)
}

type SpeechService interface {
	TextToSpeech(ctx context.Context, text, voice string) ([]byte, error)
	SpeechToText(ctx context.Context, audio []byte, languageCode string) models.TranscriptionResult
}

type speechService struct {
	synthesizer     SpeechSynthesizer
	recognizer      SpeechRecognizer
	allowedVoices   map[string]struct{}
	defaultVoice    string
	sampleRateHertz int
	defaultLanguage string
	log             zerolog.Logger
}

func NewSpeechService(
	synthesizer SpeechSynthesizer,
	recognizer SpeechRecognizer,
	allowedVoices []string,
	defaultVoice string,
	sampleRateHertz int,
	defaultLanguage string,
	log zerolog.Logger,
) SpeechService {
	allowed := make(map[string]struct{}, len(allowedVoices))
	for _, voice := range allowedVoices {
		allowed[voice] = struct{}{}
	}

	return &speechService{
		synthesizer:     synthesizer,
		recognizer:      recognizer,
		allowedVoices:   allowed,
		defaultVoice:    defaultVoice,
		sampleRateHertz: sampleRateHertz,
		defaultLanguage: defaultLanguage,
		log:             log.With().Str("service", "speech").Logger(),
	}
}

// TextToSpeech synthesizes text as MP3. A voice outside the allowed
// set is silently replaced with the default voice; the caller never
// sees a voice error.
func (s *speechService) TextToSpeech(ctx context.Context, text, voice string) ([]byte, error) {
	if _, ok := s.allowedVoices[voice]; !ok {
		s.log.Debug().Str("requested", voice).Str("fallback", s.defaultVoice).Msg("voice not in allowed set")
		voice = s.defaultVoice
	}

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: voiceLanguageCode(voice),
			Name:         voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}

	resp, err := s.synthesizer.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, apperrors.NewUpstream("speech.synthesize", err)
	}

	s.log.Info().Str("voice", voice).Int("bytes", len(resp.AudioContent)).Msg("speech synthesized")
	return resp.AudioContent, nil
}

// SpeechToText transcribes WEBM/Opus audio. Failures are values: an
// empty payload short-circuits without touching the provider, and a
// provider failure maps to the error field of the result.
func (s *speechService) SpeechToText(ctx context.Context, audio []byte, languageCode string) models.TranscriptionResult {
	if len(audio) == 0 {
		return models.TranscriptionResult{Error: "audio payload is empty"}
	}
	if languageCode == "" {
		languageCode = s.defaultLanguage
	}

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_WEBM_OPUS,
			SampleRateHertz:            int32(s.sampleRateHertz),
			LanguageCode:               languageCode,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	resp, err := s.recognizer.Recognize(ctx, req)
	if err != nil {
		s.log.Error().Err(err).Msg("speech recognition failed")
		return models.TranscriptionResult{Error: "speech recognition failed: " + err.Error()}
	}

	var transcript strings.Builder
	for _, result := range resp.GetResults() {
		alternatives := result.GetAlternatives()
		if len(alternatives) == 0 {
			continue
		}
		transcript.WriteString(alternatives[0].GetTranscript())
		transcript.WriteString(" ")
	}

	text := strings.TrimSpace(transcript.String())
	s.log.Info().Str("language", languageCode).Int("chars", len(text)).Msg("speech transcribed")

	return models.TranscriptionResult{Transcript: text}
}

// voiceLanguageCode derives the BCP-47 language code from a voice name
// such as "en-US-Neural2-F".
func voiceLanguageCode(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) >= 2 {
		return parts[0] + "-" + parts[1]
	}
	return "en-US"
}
