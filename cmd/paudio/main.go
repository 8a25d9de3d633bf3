// Command paudio is a small utility around the audio binding: it lists
// devices and host APIs, plays WAV/MP3/OGG files, and records from an input
// device, all over the blocking stream interface.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sonicbind/portaudio/internal/config"
	"github.com/sonicbind/portaudio/internal/log"
	"github.com/sonicbind/portaudio/portaudio"
)

var (
	flagConfig   string
	flagLogLevel string

	cfg *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "paudio",
		Short:         "Inspect audio devices, play and record audio",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(flagConfig)
			if err != nil {
				return err
			}
			if flagLogLevel != "" {
				cfg.LogLevel = flagLogLevel
			}
			level, ok := log.ParseLevel(cfg.LogLevel)
			if !ok {
				log.Warnf("unknown log level %q, using info", cfg.LogLevel)
			}
			log.SetLevel(level)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "f", "",
		"Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "",
		"Log level: debug, info, warn, error")

	rootCmd.AddCommand(newDevicesCmd())
	rootCmd.AddCommand(newHostApisCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newRecordCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

// withEngine runs fn inside an Initialize/Terminate pair.
func withEngine(fn func() error) error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	defer portaudio.Terminate()
	log.Debugf("engine: %s", portaudio.GetVersionText())
	return fn()
}
