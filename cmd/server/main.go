package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"guesswho/internal/config"
	"guesswho/internal/server"
)

func newCmd(cfg *config.Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("GUESSWHO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "guesswho",
		Short:         "Real-time multiplayer server for guessing historical persons.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return server.Run(*cfg)
		},
	}

	defaults := config.Default()
	fs := cmd.Flags()
	fs.StringVarP(&cfg.Bind, "bind", "b", defaults.Bind, "address to bind to (env: GUESSWHO_BIND)")
	fs.IntVarP(&cfg.Port, "port", "p", defaults.Port, "port to listen on (env: GUESSWHO_PORT)")
	fs.StringVar(&cfg.DatabaseURL, "database-url", "", "PostgreSQL DSN; omit to run in-memory (env: GUESSWHO_DATABASE_URL)")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "HMAC secret for login tokens; omit to allow guests only (env: GUESSWHO_JWT_SECRET)")
	fs.DurationVar(&cfg.JWTExpiry, "jwt-expiry", defaults.JWTExpiry, "login token lifetime (env: GUESSWHO_JWT_EXPIRY)")
	fs.IntVar(&cfg.MaxGuesses, "max-guesses", defaults.MaxGuesses, "guess budget per player per game (env: GUESSWHO_MAX_GUESSES)")
	fs.IntVar(&cfg.MaxPlayers, "max-players", defaults.MaxPlayers, "maximum players per room (env: GUESSWHO_MAX_PLAYERS)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	return cmd
}

func main() {
	cfg := &config.Config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}
