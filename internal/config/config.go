// ABOUTME: Runtime configuration from flags, environment and .env files
// ABOUTME: Layers defaults, ENGINE_* variables and command-line flags with viper
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/Resonate-Protocol/enginesound-go/internal/logging"
	"github.com/Resonate-Protocol/enginesound-go/pkg/audio/backend"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when reading the environment
const EnvPrefix = "ENGINE"

// Keys double as flag names; ENGINE_<KEY with - replaced by _> sets them from the environment.
const (
	KeyHeadless        = "headless-audio"
	KeyDevice          = "audio-device"
	KeyPreferPipewire  = "prefer-pipewire"
	KeyChannels        = "audio-channels"
	KeyDebug           = "debug"
	KeyBackend         = "audio-backend"
	KeySampleRate      = "sample-rate"
	KeyFramesPerBuffer = "frames-per-buffer"
	KeyPreferredName   = "preferred-device-name"
	KeyRequireAudio    = "require-audio"
	KeyNoKeyboard      = "no-keyboard"
	KeySampleFile      = "sample-file"
	KeyLogLevel        = "log-level"
	KeyLogFile         = "log-file"
	KeyMetricsAddr     = "metrics-addr"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds every runtime switch
type Config struct {
	// Headless skips all audio backend initialisation
	Headless bool
	// Device is an explicit index or name substring
	Device string
	// PreferPipewire favours the preferred sound server device
	PreferPipewire bool
	Channels       int
	Debug          bool

	Backend         string
	SampleRate      int
	FramesPerBuffer int
	PreferredName   string
	// RequireAudio turns "no usable device" into a fatal error
	RequireAudio bool
	// NoKeyboard forces the throttle simulator
	NoKeyboard bool
	SampleFile string

	LogLevel    string
	LogFile     string
	MetricsAddr string

	ShowVersion bool
}

// Default returns the built-in defaults
func Default() *Config {
	return &Config{
		PreferPipewire:  true,
		Channels:        2,
		Backend:         backend.Auto,
		SampleRate:      44100,
		FramesPerBuffer: 512,
		PreferredName:   "pipewire",
		LogLevel:        "info",
	}
}

// Load reads configuration from args (without the program name), the process
// environment and an optional .env file. A missing .env file is not an error.
func Load(args []string, usage io.Writer) (*Config, error) {
	def := Default()

	flags := pflag.NewFlagSet("enginesound", pflag.ContinueOnError)
	if usage != nil {
		flags.SetOutput(usage)
	}
	envFile := flags.String("env-file", ".env", "Load environment variables from this file if it exists")
	showVersion := flags.Bool("version", false, "Print version and exit")

	flags.Bool(KeyHeadless, def.Headless, "Skip audio backend initialisation and run silently")
	flags.String(KeyDevice, def.Device, "Output device index or case-insensitive name substring")
	flags.Bool(KeyPreferPipewire, def.PreferPipewire, "Prefer the preferred sound server device as default")
	flags.Int(KeyChannels, def.Channels, "Desired output channel count")
	flags.Bool(KeyDebug, def.Debug, "Print device tables and debug logs")
	flags.String(KeyBackend, def.Backend, "Audio backend: auto, portaudio, oto or dummy")
	flags.Int(KeySampleRate, def.SampleRate, "Sample rate used when the device reports none")
	flags.Int(KeyFramesPerBuffer, def.FramesPerBuffer, "Frames requested per audio callback")
	flags.String(KeyPreferredName, def.PreferredName, "Device name substring preferred as default")
	flags.Bool(KeyRequireAudio, def.RequireAudio, "Exit with an error when no audio device can be opened")
	flags.Bool(KeyNoKeyboard, def.NoKeyboard, "Ignore the keyboard and sweep the throttle automatically")
	flags.String(KeySampleFile, def.SampleFile, "MP3 recording to loop instead of the synthesized engine")
	flags.String(KeyLogLevel, def.LogLevel, "Log level: none, error, warn, info or debug")
	flags.String(KeyLogFile, def.LogFile, "Write JSON logs to this file")
	flags.String(KeyMetricsAddr, def.MetricsAddr, "Serve Prometheus metrics on this address")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", *envFile, err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	cfg := &Config{
		Headless:        v.GetBool(KeyHeadless),
		Device:          strings.TrimSpace(v.GetString(KeyDevice)),
		PreferPipewire:  v.GetBool(KeyPreferPipewire),
		Channels:        v.GetInt(KeyChannels),
		Debug:           v.GetBool(KeyDebug),
		Backend:         strings.ToLower(v.GetString(KeyBackend)),
		SampleRate:      v.GetInt(KeySampleRate),
		FramesPerBuffer: v.GetInt(KeyFramesPerBuffer),
		PreferredName:   v.GetString(KeyPreferredName),
		RequireAudio:    v.GetBool(KeyRequireAudio),
		NoKeyboard:      v.GetBool(KeyNoKeyboard),
		SampleFile:      v.GetString(KeySampleFile),
		LogLevel:        v.GetString(KeyLogLevel),
		LogFile:         v.GetString(KeyLogFile),
		MetricsAddr:     v.GetString(KeyMetricsAddr),
		ShowVersion:     *showVersion,
	}

	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}

// Validate rejects values the audio path cannot use
func (c *Config) Validate() error {
	if c.Channels < 1 {
		return fmt.Errorf("%w: channels must be at least 1, got %d", ErrInvalidConfig, c.Channels)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidConfig, c.SampleRate)
	}
	if c.FramesPerBuffer < 0 {
		return fmt.Errorf("%w: frames per buffer must not be negative, got %d", ErrInvalidConfig, c.FramesPerBuffer)
	}
	switch c.Backend {
	case backend.Auto, backend.PortAudio, backend.Oto, backend.Dummy:
	default:
		return fmt.Errorf("%w: unknown audio backend %q", ErrInvalidConfig, c.Backend)
	}
	if _, _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
