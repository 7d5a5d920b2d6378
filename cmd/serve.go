package cmd

import (
	"log"
	"os/signal"
	"syscall"

	"github.com/talentvec/talentvec/internal/clustering"
	"github.com/talentvec/talentvec/internal/logger"
	"github.com/talentvec/talentvec/internal/matching"
	"github.com/talentvec/talentvec/internal/ranking"
	"github.com/talentvec/talentvec/internal/server"
	"github.com/talentvec/talentvec/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the talentvec http api",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "address for the http api to listen on (default :8080)")
	serveCmd.Flags().String("data-file", "", "json file with profiles and positions to load on startup")

	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
	viper.BindPFlag("data-file", serveCmd.Flags().Lookup("data-file"))
}

func serve(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting talentvec", zap.String("version", version))

	repo := store.NewMemoryWithDemoData()
	if dataFile := viper.GetString("data-file"); dataFile != "" {
		if err := repo.LoadFile(dataFile); err != nil {
			logger.Fatal("loading data file", zap.String("path", dataFile), zap.Error(err))
		}
		logger.Info("loaded data file",
			zap.String("path", dataFile),
			zap.Int("profiles", len(repo.Profiles())),
			zap.Int("positions", len(repo.Positions())),
		)
	}

	provider, providerName, model, err := newProvider(ctx, config.Embedding, logger)
	if err != nil {
		logger.Fatal("building embedding provider", zap.Error(err))
	}

	serverCfg := &server.Config{Addr: viper.GetString("server.listen")}
	if config.Server != nil {
		serverCfg.ReadTimeout = config.Server.ReadTimeout
		serverCfg.WriteTimeout = config.Server.WriteTimeout
		serverCfg.ShutdownTimeout = config.Server.ShutdownTimeout
	}

	srv := server.New(serverCfg, server.Deps{
		Logger:       logger,
		Provider:     provider,
		Repo:         repo,
		Ranker:       ranking.NewEngine(provider, logger),
		Scorer:       matching.NewScorer(provider, logger),
		Grouper:      clustering.NewGrouper(provider, logger),
		ProviderName: providerName,
		ModelName:    model,
		Version:      version,
	})

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("http server failed", zap.Error(err))
	}
}
