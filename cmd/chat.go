package cmd

import (
	"errors"
	"fmt"
	"log"
	"os/signal"
	"strings"
	"syscall"

	"github.com/talentvec/talentvec/internal/agent"
	"github.com/talentvec/talentvec/internal/clustering"
	"github.com/talentvec/talentvec/internal/logger"
	"github.com/talentvec/talentvec/internal/matching"
	"github.com/talentvec/talentvec/internal/ranking"
	"github.com/talentvec/talentvec/internal/store"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive recruiting assistant session",
	Run: func(cmd *cobra.Command, _ []string) {
		chat(cmd)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().String("data-file", "", "json file with profiles and positions to load on startup")

	viper.BindPFlag("data-file", chatCmd.Flags().Lookup("data-file"))
}

func chat(cmd *cobra.Command) {
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

	repo := store.NewMemoryWithDemoData()
	if dataFile := viper.GetString("data-file"); dataFile != "" {
		if err := repo.LoadFile(dataFile); err != nil {
			logger.Fatal("loading data file", zap.String("path", dataFile), zap.Error(err))
		}
	}

	provider, providerName, model, err := newProvider(ctx, config.Embedding, logger)
	if err != nil {
		logger.Fatal("building embedding provider", zap.Error(err))
	}

	assistant := agent.New(agent.Deps{
		Store:   repo,
		Ranker:  ranking.NewEngine(provider, logger),
		Scorer:  matching.NewScorer(provider, logger),
		Grouper: clustering.NewGrouper(provider, logger),
		Logger:  logger,
	})

	fmt.Printf("talentvec assistant (provider: %s, model: %s)\n", providerName, model)
	fmt.Println("Ask about candidates and positions. Type 'help' for examples, 'exit' to leave.")

	session := &agent.Session{}
	prompt := promptui.Prompt{Label: "you"}

	for {
		input, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				fmt.Println("bye")
				return
			}
			logger.Fatal("reading input", zap.Error(err))
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			fmt.Println("bye")
			return
		}

		response, err := assistant.Respond(ctx, session, input)
		if err != nil {
			logger.Error("answering", zap.Error(err))
			fmt.Println("Something went wrong talking to the embedding provider. Try again.")
			continue
		}

		fmt.Println(response)
	}
}
