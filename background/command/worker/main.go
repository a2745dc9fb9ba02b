package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reliefhub/relief-api/background"
	"github.com/reliefhub/relief-api/consts"
	"github.com/reliefhub/relief-api/notification"
	"github.com/reliefhub/relief-api/presence"
	"github.com/reliefhub/relief-api/score"
	"github.com/reliefhub/relief-api/store"
)

var logger *zap.Logger

func init() {
	logger = buildLogger()
}

func buildLogger() *zap.Logger {
	config := zap.NewDevelopmentConfig()
	config.Level.SetLevel(zapcore.InfoLevel)

	logger, err := config.Build()
	if err != nil {
		panic("Failed to setup logger")
	}

	return logger
}

func initSentry() {
	logger.Info("Initializing sentry")
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		logger.Panic("fail to initialize sentry", zap.Error(err))
	}
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("relief")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("notification.broadcast_limit", consts.DefaultBroadcastLimit)
}

func main() {
	var configFile string
	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)
	initSentry()
	defer sentry.Flush(2 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err := mongo.NewClient(opts)
	if err != nil {
		logger.Panic("create mongo client", zap.Error(err))
	}
	if err := mongoClient.Connect(ctx); err != nil {
		logger.Panic("connect mongo database", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())

	mongoStore := store.NewMongoStore(mongoClient, viper.GetString("mongo.database"))

	bundle, err := notification.NewBundle(viper.GetString("i18n.dir"))
	if err != nil {
		logger.Panic("load i18n messages", zap.Error(err))
	}

	// a separate process has no live connections, notifications are
	// picked up through the api
	dispatcher := notification.NewDispatcher(mongoStore, presence.Discard, bundle)
	reputation := score.NewEngine(mongoStore, mongoStore, mongoStore)

	taskServer, err := background.NewTaskServer(viper.GetString("redis.conn"))
	if err != nil {
		logger.Panic("create task server", zap.Error(err))
	}

	manager := background.New(mongoStore, mongoStore, dispatcher, reputation,
		viper.GetInt64("notification.broadcast_limit"), taskServer)
	if err := manager.RegisterTasks(); err != nil {
		logger.Panic("register tasks", zap.Error(err))
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		logger.Info("Worker is preparing to shutdown")
		manager.Stop()
	}()

	logger.Info("Start background worker", zap.String("queue", background.DefaultQueue))
	if err := manager.Run(); err != nil {
		logger.Error("background worker stopped", zap.Error(err))
	}
}
