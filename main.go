package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/RichardKnop/machinery/v1"
	"github.com/dgrijalva/jwt-go"
	"github.com/getsentry/sentry-go"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/uber-go/tally"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reliefhub/relief-api/api"
	"github.com/reliefhub/relief-api/background"
	"github.com/reliefhub/relief-api/chat"
	"github.com/reliefhub/relief-api/consts"
	"github.com/reliefhub/relief-api/donation"
	"github.com/reliefhub/relief-api/external/geoinfo"
	"github.com/reliefhub/relief-api/lifecycle"
	"github.com/reliefhub/relief-api/notification"
	"github.com/reliefhub/relief-api/presence"
	"github.com/reliefhub/relief-api/score"
	"github.com/reliefhub/relief-api/store"
)

var (
	server *api.Server
	ormDB  *gorm.DB
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
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

	viper.SetDefault("donation.platform_fee_percent", consts.DefaultPlatformFeePercent)
	viper.SetDefault("donation.minimum_amount", consts.DefaultMinimumDonation)
	viper.SetDefault("notification.broadcast_limit", consts.DefaultBroadcastLimit)
	viper.SetDefault("presence.typing_ttl", consts.DefaultTypingTTL)
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())

	var (
		hub         *presence.Hub
		manager     *background.Manager
		local       *background.LocalEnqueuer
		mongoStore  store.MongoStore
		scopeCloser func() error
	)

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		if initialCtx != nil && cancelInitialization != nil {
			log.Info("Cancelling initialization")
			cancelInitialization()
			<-initialCtx.Done()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown relief api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if hub != nil {
			log.Info("Closing live connections")
			hub.Close()
		}

		if manager != nil {
			manager.Stop()
		}

		if local != nil {
			log.Info("Waiting for background jobs")
			local.Wait()
		}

		if mongoStore != nil {
			mongoStore.Close()
		}

		if ormDB != nil {
			log.Info("Shutting down db store")
			if err := ormDB.Close(); err != nil {
				log.Error(err)
			}
		}

		if scopeCloser != nil {
			_ = scopeCloser()
		}

		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	// Load JWT public key of the auth service
	jwtPublicKeyByte, err := ioutil.ReadFile(viper.GetString("jwt.pubkeyfile"))
	if err != nil {
		log.Panic(err)
	}
	jwtPublicKey, err := jwt.ParseRSAPublicKeyFromPEM(jwtPublicKeyByte)
	if err != nil {
		log.Panic(err)
	}
	log.WithField("prefix", "init").Info("Loaded jwt public key")

	ormDB, err = gorm.Open("postgres", viper.GetString("orm.conn"))
	if err != nil {
		log.Panic(err)
	}
	reliefStore := store.NewReliefStore(ormDB)

	// initialise mongodb connections
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		log.Panicf("create mongo client with error: %s", err)
	}

	err = mongoClient.Connect(context.Background())
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}
	mongoStore = store.NewMongoStore(mongoClient, viper.GetString("mongo.database"))

	bundle, err := notification.NewBundle(viper.GetString("i18n.dir"))
	if err != nil {
		log.Panic(err)
	}

	scope, closer := tally.NewRootScope(tally.ScopeOptions{
		Prefix:   "relief",
		Reporter: tally.NullStatsReporter,
	}, time.Second)
	scopeCloser = closer.Close

	hub = presence.NewHub(nil, viper.GetStringSlice("server.cors_origins"))
	chats := chat.NewService(mongoStore, mongoStore, hub, viper.GetDuration("presence.typing_ttl"))
	hub.SetChatHandler(chats)

	dispatcher := notification.NewDispatcher(mongoStore, hub, bundle)
	reputation := score.NewEngine(mongoStore, mongoStore, mongoStore)

	// Background jobs run on machinery when a broker is configured and in
	// process otherwise
	var taskServer *machinery.Server
	if conn := viper.GetString("redis.conn"); conn != "" {
		taskServer, err = background.NewTaskServer(conn)
		if err != nil {
			log.Panic(err)
		}
	}

	manager = background.New(mongoStore, mongoStore, dispatcher, reputation,
		viper.GetInt64("notification.broadcast_limit"), taskServer)

	var enqueuer background.Enqueuer
	if taskServer != nil {
		if err := manager.RegisterTasks(); err != nil {
			log.Panic(err)
		}
		enqueuer = background.NewMachineryEnqueuer(taskServer)

		go func() {
			if err := manager.Run(); err != nil {
				log.WithField("prefix", "background").Error(err)
			}
		}()
		log.WithField("prefix", "init").Info("Started background worker")
	} else {
		local = background.NewLocalEnqueuer(manager)
		enqueuer = local
		log.WithField("prefix", "init").Info("No broker configured, running background jobs in process")
	}

	var geo geoinfo.GeoInfo
	if key := viper.GetString("google.map_apikey"); key != "" {
		if geo, err = geoinfo.New(key); err != nil {
			log.Panic(err)
		}
	}

	// Init http server
	server = api.NewServer(
		mongoStore,
		[]store.Pinger{mongoStore, reliefStore},
		jwtPublicKey,
		api.Services{
			Requests:      lifecycle.NewEngine(mongoStore, dispatcher, reputation, chats, enqueuer, hub, geo, scope),
			Chats:         chats,
			Notifications: dispatcher,
			Reputation:    reputation,
			Donations: donation.NewService(reliefStore, mongoStore, mongoStore, dispatcher,
				viper.GetFloat64("donation.platform_fee_percent"),
				viper.GetFloat64("donation.minimum_amount")),
			Enqueuer: enqueuer,
			Hub:      hub,
		})
	log.WithField("prefix", "init").Info("Initialized http server")

	// Remove initial context
	initialCtx = nil
	cancelInitialization = nil

	log.Fatal(server.Run(":" + viper.GetString("server.port")))
}
