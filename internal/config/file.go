package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk YAML config. Every field is optional; set values act
// as defaults that CLI flags override.
//
//	tools:
//	  ffmpeg: /usr/local/bin/ffmpeg
//	encode:
//	  preset: slow
//	  crf: 20
//	overlay:
//	  font: /usr/share/fonts/TTF/DejaVuSans.ttf
//	  font_size: 64
//	log:
//	  color: never
type File struct {
	Tools struct {
		FFmpeg  string `yaml:"ffmpeg"`
		FFprobe string `yaml:"ffprobe"`
	} `yaml:"tools"`
	Encode struct {
		VideoCodec   string `yaml:"video_codec"`
		Preset       string `yaml:"preset"`
		CRF          *int   `yaml:"crf"`
		AudioCodec   string `yaml:"audio_codec"`
		AudioBitrate string `yaml:"audio_bitrate"`
	} `yaml:"encode"`
	Overlay struct {
		Font      string `yaml:"font"`
		Text      string `yaml:"text"`
		FontSize  *int   `yaml:"font_size"`
		FontColor string `yaml:"font_color"`
	} `yaml:"overlay"`
	Log struct {
		File    string `yaml:"file"`
		Color   string `yaml:"color"`
		Verbose *bool  `yaml:"verbose"`
	} `yaml:"log"`
}

// LoadFile reads and strictly decodes a YAML config file. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		// An empty document decodes to io.EOF; treat it as "no settings".
		if len(bytes.TrimSpace(data)) == 0 {
			return &f, nil
		}
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("parse config file %s:\n  - %s", path, strings.Join(typeErr.Errors, "\n  - "))
		}
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &f, nil
}
