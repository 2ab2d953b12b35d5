package main

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/bitmark-inc/confirm-trends/schema"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("trends")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	schema.NewMongoDBIndexer(viper.GetString("mongo.conn"), viper.GetString("mongo.database")).IndexAll()
}
