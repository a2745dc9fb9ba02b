package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reliefhub/relief-api/schema"
	"github.com/reliefhub/relief-api/score"
	"github.com/reliefhub/relief-api/store"
)

var (
	configFile string
	logger     *zap.Logger
)

func buildLogger() (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.Level.SetLevel(zapcore.InfoLevel)
	return config.Build()
}

func loadConfig(file string) {
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file. Read config from env.")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("relief")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func connectMongo(ctx context.Context) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(1)
	client, err := mongo.NewClient(opts)
	if err != nil {
		return nil, err
	}
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the donation ledger table and the mongo indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := gorm.Open("postgres", viper.GetString("orm.conn"))
			if err != nil {
				return fmt.Errorf("failed to open postgres: %w", err)
			}
			defer db.Close()

			if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
				return fmt.Errorf("failed to create uuid extension: %w", err)
			}
			if err := db.AutoMigrate(&schema.Donation{}).Error; err != nil {
				return fmt.Errorf("failed to migrate donations: %w", err)
			}
			logger.Info("Migrated postgres tables")

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			client, err := connectMongo(ctx)
			if err != nil {
				return fmt.Errorf("failed to connect mongo: %w", err)
			}
			defer client.Disconnect(context.Background())

			if err := schema.NewMongoDBIndexer(ctx, client, viper.GetString("mongo.database")).IndexAll(); err != nil {
				return fmt.Errorf("failed to create indexes: %w", err)
			}
			logger.Info("Created mongo indexes", zap.String("database", viper.GetString("mongo.database")))

			return nil
		},
	}
}

func leaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Inspect and maintain the leaderboard",
	}

	var (
		filter string
		limit  int64
	)

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the top users of a leaderboard filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withReputation(func(ctx context.Context, engine *score.Engine) error {
				users, err := engine.Leaderboard(ctx, schema.LeaderboardFilter(filter), limit)
				if err != nil {
					return fmt.Errorf("failed to query leaderboard: %w", err)
				}

				fmt.Printf("\nTop %d users (%s):\n\n", len(users), filter)
				for _, u := range users {
					fmt.Printf("%4d. %s (%s) - %d points, %d helped, %.2f donated\n",
						u.LeaderboardRank,
						u.Name,
						u.ID,
						u.Stats.Points,
						u.Stats.TotalHelped,
						u.Stats.TotalDonated,
					)
				}
				return nil
			})
		},
	}
	show.Flags().StringVarP(&filter, "filter", "f", string(schema.LeaderboardAll), "all, donors, volunteers or organizations")
	show.Flags().Int64VarP(&limit, "limit", "n", 20, "number of users to print")

	refresh := &cobra.Command{
		Use:   "refresh",
		Short: "Recompute and store the rank of every active user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withReputation(func(ctx context.Context, engine *score.Engine) error {
				n, err := engine.RefreshLeaderboard(ctx)
				if err != nil {
					return fmt.Errorf("failed to refresh leaderboard: %w", err)
				}
				logger.Info("Refreshed leaderboard", zap.Int("users", n))
				return nil
			})
		},
	}

	cmd.AddCommand(show, refresh)
	return cmd
}

func withReputation(fn func(ctx context.Context, engine *score.Engine) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client, err := connectMongo(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect mongo: %w", err)
	}
	defer client.Disconnect(context.Background())

	mongoStore := store.NewMongoStore(client, viper.GetString("mongo.database"))
	return fn(ctx, score.NewEngine(mongoStore, mongoStore, mongoStore))
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "reliefctl",
		Short: "Relief API administration",
		Long:  `Administrative tasks for the relief api: database migrations and leaderboard maintenance.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if logger, err = buildLogger(); err != nil {
				return err
			}
			loadConfig(configFile)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config.yaml", "path of configuration file")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(leaderboardCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
