package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/uber-go/tally"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/confirm-trends/external/jhu"
	"github.com/bitmark-inc/confirm-trends/logmodule"
	"github.com/bitmark-inc/confirm-trends/schema"
	"github.com/bitmark-inc/confirm-trends/store"
)

const (
	logPrefix      = "cron"
	defaultTimeout = 15 * time.Second
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
}

func main() {
	var configFile string

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	defer sentry.Flush(defaultTimeout)

	// Metrics
	scope, closer := tally.NewRootScope(tally.ScopeOptions{
		Prefix:   "trends",
		Tags:     map[string]string{"version": viper.GetString("server.version")},
		Reporter: logmodule.NewTallyReporter("metrics"),
	}, time.Minute)

	// initialise mongodb connections
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		log.Panicf("create mongo client with error: %s", err)
	}

	initialCtx, cancelInitialization := context.WithTimeout(context.Background(), defaultTimeout)
	err = mongoClient.Connect(initialCtx)
	cancelInitialization()
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}

	indexer := schema.NewMongoDBIndexer(viper.GetString("mongo.conn"), viper.GetString("mongo.database"))
	for _, index := range []func() error{indexer.IndexSeriesCollection, indexer.IndexRefreshCollection} {
		if err := index(); err != nil {
			log.WithFields(log.Fields{"prefix": logPrefix, "error": err}).Warn("create index")
		}
	}
	_ = indexer.Client.Disconnect(context.Background())

	mStore := store.NewMongoStore(
		mongoClient,
		viper.GetString("mongo.database"),
	)

	feed := jhu.New(viper.GetString("jhu.url"), viper.GetDuration("jhu.timeout"))
	crawler := newCrawler(feed, mStore, scope.SubScope("crawler"))

	refreshCtx, cancelRefresh := context.WithTimeout(context.Background(), 5*time.Minute)
	_, refreshErr := crawler.Run(refreshCtx)
	cancelRefresh()

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if mongoClient != nil {
		log.Info("Shutting down mongo store")
		_ = mongoClient.Disconnect(ctx)
	}

	_ = closer.Close()

	if refreshErr != nil {
		sentry.Flush(defaultTimeout)
		os.Exit(1)
	}
}
