package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.ImagePaths = []string{"a.jpg", "b.jpg"}
	cfg.AudioPaths = []string{"a.mp3", "b.mp3"}
	cfg.OutputPath = "out.mp4"
	cfg.FontPath = "font.ttf"
	return cfg
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "libx264", cfg.VideoCodec)
	assert.Equal(t, "medium", cfg.Preset)
	assert.Equal(t, 23, cfg.CRF)
	assert.Equal(t, "aac", cfg.AudioCodec)
	assert.Equal(t, "128k", cfg.AudioBitrate)
	assert.Equal(t, 48, cfg.FontSize)
	assert.Equal(t, "white", cfg.FontColor)
	assert.Equal(t, DefaultText, cfg.Text)
	assert.Equal(t, ColorAuto, cfg.ColorMode)
	assert.False(t, cfg.DryRun)
}

func TestValidatePairs(t *testing.T) {
	tests := []struct {
		name    string
		images  []string
		audio   []string
		wantErr error
	}{
		{"one pair", []string{"a.jpg"}, []string{"a.mp3"}, nil},
		{"three pairs", []string{"a", "b", "c"}, []string{"x", "y", "z"}, nil},
		{"more images", []string{"a", "b", "c"}, []string{"x", "y"}, ErrCountMismatch},
		{"more audio", []string{"a"}, []string{"x", "y"}, ErrCountMismatch},
		{"no images with audio", nil, []string{"x"}, ErrCountMismatch},
		{"both empty", nil, nil, ErrNoInputs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePairs(tt.images, tt.audio)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CRF = 99
	cfg.ImagePaths = []string{"a.jpg", "b.jpg", "c.jpg"}
	cfg.AudioPaths = []string{"a.mp3", "b.mp3"}

	err := cfg.Validate()
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.ErrorIs(t, err, ErrCountMismatch)
	assert.Contains(t, err.Error(), "crf must be between 0 and 51")
	assert.Contains(t, err.Error(), "output path is required")
	assert.Contains(t, err.Error(), "font path is required")
	assert.Contains(t, err.Error(), "4 configuration problems")
}

func TestValidate_SingleProblemIsBare(t *testing.T) {
	cfg := validConfig()
	cfg.ImagePaths = nil
	cfg.AudioPaths = nil

	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, ErrNoInputs.Error(), err.Error())
}

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"always is valid", ColorAlways, false},
		{"never is valid", ColorNever, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "rainbow", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			assert.Equal(t, tt.wantErr, err != nil, "Validate() error = %v", err)
		})
	}
}

func TestValidate_CheckOnlySkipsInputs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	assert.NoError(t, cfg.Validate())
}

func TestValidate_NormalizesAudioBitrate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"128k", "128k", false},
		{"192", "192k", false},
		{"256K", "256k", false},
		{"320kbps", "320k", false},
		{" 96k ", "96k", false},
		{"", "", true},
		{"loud", "", true},
		{"-5k", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cfg := validConfig()
			cfg.AudioBitrate = tt.in
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.AudioBitrate)
		})
	}
}

func TestExpandVariadic(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			"multi-value form",
			[]string{"-i", "a.jpg", "b.jpg", "-a", "a.mp3", "b.mp3", "-o", "out.mp4"},
			[]string{"-i", "a.jpg", "-i", "b.jpg", "-a", "a.mp3", "-a", "b.mp3", "-o", "out.mp4"},
		},
		{
			"repeated form unchanged",
			[]string{"-i", "a.jpg", "-i", "b.jpg"},
			[]string{"-i", "a.jpg", "-i", "b.jpg"},
		},
		{
			"long names",
			[]string{"--images", "a.jpg", "b.jpg", "--audio", "x.mp3"},
			[]string{"--images", "a.jpg", "--images", "b.jpg", "--audio", "x.mp3"},
		},
		{
			"other flag ends the run",
			[]string{"-i", "a.jpg", "-t", "hello", "-o", "out.mp4"},
			[]string{"-i", "a.jpg", "-t", "hello", "-o", "out.mp4"},
		},
		{
			"double dash stops rewriting",
			[]string{"-i", "a.jpg", "--", "b.jpg"},
			[]string{"-i", "a.jpg", "--", "b.jpg"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandVariadic(tt.in))
		})
	}
}

func TestParseFlags_MultiValueInputs(t *testing.T) {
	cfg := DefaultConfig()
	args := []string{
		"-i", "a.jpg", "b.jpg",
		"-a", "a.mp3", "b.mp3",
		"-o", "out.mp4",
		"-f", "font.ttf",
		"-t", "Hi:there",
	}
	var out bytes.Buffer
	require.NoError(t, ParseFlags(&cfg, args, "1.0.0", &out))

	assert.Equal(t, []string{"a.jpg", "b.jpg"}, cfg.ImagePaths)
	assert.Equal(t, []string{"a.mp3", "b.mp3"}, cfg.AudioPaths)
	assert.Equal(t, "out.mp4", cfg.OutputPath)
	assert.Equal(t, "font.ttf", cfg.FontPath)
	assert.Equal(t, "Hi:there", cfg.Text)
	require.NoError(t, cfg.Validate())
}

func TestParseFlags_CommaInPathIsNotSplit(t *testing.T) {
	cfg := DefaultConfig()
	var out bytes.Buffer
	require.NoError(t, ParseFlags(&cfg, []string{"-i", "one,two.jpg", "-a", "x.mp3"}, "1.0.0", &out))
	assert.Equal(t, []string{"one,two.jpg"}, cfg.ImagePaths)
}

func TestParseFlags_DefaultText(t *testing.T) {
	cfg := DefaultConfig()
	var out bytes.Buffer
	require.NoError(t, ParseFlags(&cfg, []string{"-i", "a.jpg", "-a", "a.mp3"}, "1.0.0", &out))
	assert.Equal(t, "Centered Text", cfg.Text)
}

func TestParseFlags_Version(t *testing.T) {
	cfg := DefaultConfig()
	var out bytes.Buffer
	err := ParseFlags(&cfg, []string{"--version"}, "1.2.3", &out)
	assert.ErrorIs(t, err, ErrExitEarly)
	assert.Equal(t, "slidereel v1.2.3\n", out.String())
}

func TestParseFlags_Help(t *testing.T) {
	cfg := DefaultConfig()
	var out bytes.Buffer
	err := ParseFlags(&cfg, []string{"--help"}, "1.2.3", &out)
	assert.ErrorIs(t, err, ErrExitEarly)
	assert.Contains(t, out.String(), "--images")
	assert.Contains(t, out.String(), "--font")
}

func TestParseFlags_StrayPositionalRejected(t *testing.T) {
	cfg := DefaultConfig()
	var out bytes.Buffer
	err := ParseFlags(&cfg, []string{"-o", "out.mp4", "stray.jpg"}, "1.0.0", &out)
	assert.Error(t, err)
}

func TestParseFlags_ColorFlags(t *testing.T) {
	cfg := DefaultConfig()
	var out bytes.Buffer
	require.NoError(t, ParseFlags(&cfg, []string{"--no-color"}, "1.0.0", &out))
	assert.Equal(t, ColorNever, cfg.ColorMode)

	cfg = DefaultConfig()
	require.NoError(t, ParseFlags(&cfg, []string{"--color"}, "1.0.0", &out))
	assert.Equal(t, ColorAlways, cfg.ColorMode)
}

func TestParseFlags_ConfigFileFillsUnsetFlags(t *testing.T) {
	path := writeFile(t, "slidereel.yaml", `
encode:
  preset: slow
  crf: 18
  audio_bitrate: 192k
overlay:
  font: /fonts/DejaVuSans.ttf
  font_size: 64
log:
  color: never
`)
	cfg := DefaultConfig()
	var out bytes.Buffer
	args := []string{"--config", path, "--preset", "veryfast"}
	require.NoError(t, ParseFlags(&cfg, args, "1.0.0", &out))

	assert.Equal(t, "veryfast", cfg.Preset, "flag wins over file")
	assert.Equal(t, 18, cfg.CRF)
	assert.Equal(t, "192k", cfg.AudioBitrate)
	assert.Equal(t, "/fonts/DejaVuSans.ttf", cfg.FontPath)
	assert.Equal(t, 64, cfg.FontSize)
	assert.Equal(t, ColorNever, cfg.ColorMode)
	assert.Equal(t, "libx264", cfg.VideoCodec, "unset file value keeps default")
}

func TestParseFlags_ConfigFileBadColor(t *testing.T) {
	path := writeFile(t, "bad.yaml", "log:\n  color: sometimes\n")
	cfg := DefaultConfig()
	var out bytes.Buffer
	err := ParseFlags(&cfg, []string{"--config", path}, "1.0.0", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log.color")
}

func TestLoadFile_UnknownKeyRejected(t *testing.T) {
	path := writeFile(t, "typo.yaml", "encode:\n  presett: slow\n")
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "presett")
}

func TestLoadFile_Empty(t *testing.T) {
	path := writeFile(t, "empty.yaml", "\n")
	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Nil(t, f.Encode.CRF)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
