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
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/uber-go/tally"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/confirm-trends/api"
	"github.com/bitmark-inc/confirm-trends/background"
	"github.com/bitmark-inc/confirm-trends/logmodule"
	"github.com/bitmark-inc/confirm-trends/store"
)

const (
	defaultReloadTimeout = time.Minute
)

var (
	server      *api.Server
	mongoClient *mongo.Client
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
	viper.SetEnvPrefix("trends")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("dataset.reload_interval", background.DefaultReloadInterval)
	viper.SetDefault("metrics.interval", time.Minute)
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())
	backgroundCtx, cancelBackground := context.WithCancel(context.Background())

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
		cancelBackground()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown trends api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if mongoClient != nil {
			log.Info("Shutting down mongo store")
			_ = mongoClient.Disconnect(ctx)
		}

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

	// Metrics
	scope, closer := tally.NewRootScope(tally.ScopeOptions{
		Prefix:   "trends",
		Tags:     map[string]string{"version": viper.GetString("server.version")},
		Reporter: logmodule.NewTallyReporter("metrics"),
	}, viper.GetDuration("metrics.interval"))
	defer closer.Close()
	log.WithField("prefix", "init").Info("Initialized metrics scope")

	// initialise mongodb connections
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	var err error
	mongoClient, err = mongo.NewClient(opts)
	if nil != err {
		log.Panicf("create mongo client with error: %s", err)
	}

	err = mongoClient.Connect(initialCtx)
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}

	mStore := store.NewMongoStore(mongoClient, viper.GetString("mongo.database"))

	// Load the latest published data-set, queries answer 503 until one exists
	snapshot := api.NewSnapshot(mStore)
	reloader := background.NewReloader(snapshot, viper.GetDuration("dataset.reload_interval"), defaultReloadTimeout, scope.SubScope("dataset"))
	if err := reloader.Once(initialCtx); err != nil {
		log.WithField("prefix", "init").Warnf("initial data-set load: %s", err)
	}
	go reloader.Run(backgroundCtx)

	// Init http server
	server = api.NewServer(mStore, snapshot, scope.SubScope("api"))
	log.WithField("prefix", "init").Info("Initialized http server")

	// Remove initial context
	initialCtx = nil
	cancelInitialization = nil

	log.Fatal(server.Run(":" + viper.GetString("server.port")))
}
