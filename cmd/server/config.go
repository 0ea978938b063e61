package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind     string
	port     int
	storage  string
	redisURL string
	verbose  bool
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.storage != "memory" && c.storage != "redis" {
		return fmt.Errorf("invalid storage backend (must be memory or redis): %s", c.storage)
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CREWBATTLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "crewbattle",
		Short:         "Crew battle draft server: rooms, captains, alternating picks.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: CREWBATTLE_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: CREWBATTLE_PORT)")
	fs.StringVar(&cfg.storage, "storage", "memory", "credential store backend, memory or redis (env: CREWBATTLE_STORAGE)")
	fs.StringVar(&cfg.redisURL, "redis-url", "redis://localhost:6379/0", "redis connection URL (env: CREWBATTLE_REDIS_URL)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "enable debug logging (env: CREWBATTLE_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	return cmd
}
