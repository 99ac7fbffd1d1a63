package main

import (
	"flag"

	"pay24/config"
	"pay24/entity"
	"pay24/internal"
	"pay24/services"
)

func main() {

	logger := internal.NewLogger("boot", false, nil)

	configPath := flag.String("conf", "config.yml", "path to config file")
	flag.Parse()

	logger.Info("using config file: " + *configPath)
	conf, err := config.GetConfig(*configPath)
	if err != nil {
		logger.Error("boot", err)
		return
	}

	// credentials are validated once, here; everything downstream works
	// with a value that is known to be well-formed
	creds, err := entity.NewCredentials(conf.Merchant.Mid, conf.Merchant.Key, conf.Merchant.EshopID)
	if err != nil {
		logger.Error("merchant credentials", err)
		return
	}

	var database services.Database
	if conf.Mongo.Enabled {
		database, err = internal.NewMongoClient(conf)
		if err != nil {
			logger.Error("mongo client", err)
			return
		}
		logger.Info("mongo client initialized")
	}

	gateway := internal.NewGatewayClient(creds, conf.Merchant.Staging)
	if conf.Merchant.Staging {
		logger.Warn("staging gateway in use, certificate verification disabled")
	}

	payments := internal.NewPayments(conf, creds, gateway)
	payments.SetLogger(internal.NewLogger("payments", conf.IsDebug, database))
	payments.SetDatabase(database)

	server := internal.NewServer(conf)
	server.SetLogger(internal.NewLogger("server", conf.IsDebug, database))
	server.SetPaymentsService(payments)

	err = server.Start()
	if err != nil {
		logger.Error("server start", err)
		return
	}

}
