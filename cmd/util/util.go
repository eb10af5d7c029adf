package util

import (
	"fmt"
	"github.com/VictoriaMetrics/metrics"
	"github.com/ValentinKolb/mediaser/lib/codec"
	"github.com/ValentinKolb/mediaser/lib/common"
	"github.com/ValentinKolb/mediaser/lib/serializer"
	"github.com/joho/godotenv"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"io"
	"os"
	"strings"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

var (
	Logger = logger.GetLogger("cmd")

	// ConfigFile is the optional configuration file set with --config
	ConfigFile string
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// InitConfig loads the env files, the optional config file and sets up viper
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("mediaser")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	if ConfigFile != "" {
		viper.SetConfigFile(ConfigFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to read config file %s: %v\n", ConfigFile, err)
			os.Exit(1)
		}
	}
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// SetupCodecFlags adds the flags shared by all commands that run a serializer
func SetupCodecFlags(cmd *cobra.Command) {
	key := "serializer"
	cmd.PersistentFlags().String(key, serializer.NameJSONManual, WrapString(fmt.Sprintf("The serializer to use (%s)", strings.Join(serializer.Names(), ", "))))

	key = "max-pod-depth"
	cmd.PersistentFlags().Int(key, 0, WrapString(fmt.Sprintf("The maximum length of a pod chain, longer chains are rejected (0 means %d)", codec.DefaultMaxPodDepth)))

	key = "validate"
	cmd.PersistentFlags().Bool(key, false, WrapString("Check the model invariants of every item before encoding it"))
}

// GetCodecConfig reads the codec configuration from viper
func GetCodecConfig() *common.CodecConfig {
	return &common.CodecConfig{
		Serializer:       viper.GetString("serializer"),
		MaxPodDepth:      viper.GetInt("max-pod-depth"),
		ValidateOnEncode: viper.GetBool("validate"),
		LogLevel:         viper.GetString("log-level"),
	}
}

// GetSerializer creates the serializer described by the configuration
func GetSerializer(conf *common.CodecConfig) (serializer.ISerializer, error) {
	if err := conf.Validate(serializer.Names()); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	var opts []codec.Option
	if conf.MaxPodDepth > 0 {
		opts = append(opts, codec.WithMaxPodDepth(conf.MaxPodDepth))
	}
	if conf.ValidateOnEncode {
		opts = append(opts, codec.WithEncodeValidation())
	}
	return serializer.New(conf.Serializer, opts...)
}

// --------------------------------------------------------------------------
// Input and output
// --------------------------------------------------------------------------

// OpenInput opens the file at path for reading, "-" or "" is stdin
func OpenInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, nil
}

// nopWriteCloser keeps stdout open
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// CreateOutput creates the file at path for writing, "-" or "" is stdout
func CreateOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, nil
}

// WriteMetrics writes all process metrics in Prometheus text format to path ("-" is stderr).
// Nothing is written if path is empty.
func WriteMetrics(path string) error {
	switch path {
	case "":
		return nil
	case "-":
		metrics.WritePrometheus(os.Stderr, false)
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	metrics.WritePrometheus(f, false)
	return f.Close()
}
