package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/infectedparty/backend/internal/config"
	"github.com/infectedparty/backend/internal/httpapi"
	"github.com/infectedparty/backend/internal/room"
)

func main() {
	// Best effort; absence of a .env file is normal outside development.
	_ = godotenv.Load()
	cobra.CheckErr(newCmd().Execute())
}

func newCmd() *cobra.Command {
	cfg := &config.Config{}

	v := viper.New()
	v.SetEnvPrefix("PARTY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Backend for the infected party game: one room, one round, one hidden infected player.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Unset flags fall back to PARTY_* environment variables.
			var err error
			cmd.Flags().VisitAll(func(f *pflag.Flag) {
				if err != nil || f.Changed || !v.IsSet(f.Name) {
					return
				}
				err = f.Value.Set(v.GetString(f.Name))
			})
			if err != nil {
				return err
			}
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&cfg.Bind, "bind", "b", "0.0.0.0", "address to bind to (env: PARTY_BIND)")
	fs.IntVarP(&cfg.Port, "port", "p", 8080, "port to listen on (env: PARTY_PORT)")
	fs.StringVar(&cfg.RoomKey, "room-key", "", "shared secret required to join (env: PARTY_ROOM_KEY)")
	fs.IntVar(&cfg.Capacity, "capacity", 4, "fixed number of players per round (env: PARTY_CAPACITY)")
	fs.StringVar(&cfg.PublicURL, "public-url", "", "externally reachable base URL, used in the join QR code (env: PARTY_PUBLIC_URL)")
	fs.StringVar(&cfg.CatalogFile, "catalog", "", "path to a catalog file overriding the built-in questions and game sets (env: PARTY_CATALOG)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "log at debug level (env: PARTY_VERBOSE)")

	return cmd
}

func run(parent context.Context, cfg *config.Config) error {
	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	catalog, err := config.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	rm := room.New(ctx, room.Config{
		RoomKey:   cfg.RoomKey,
		Capacity:  cfg.Capacity,
		Questions: catalog.Questions,
		GameSets:  catalog.GameSets,
	}, rng, logger.Named("room"))

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: httpapi.SetupRoutes(rm, cfg, logger.Named("ws")),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening",
			zap.String("addr", cfg.Addr()),
			zap.Int("capacity", cfg.Capacity),
			zap.Int("questions", len(catalog.Questions)))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		rm.Inbox() <- room.Shutdown{}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
