package main

import (
	"flag"

	"go.uber.org/zap"

	"github.com/stratafin/condo_service"
	"github.com/stratafin/condo_service/common"
)

func main() {
	seedProject := flag.Uint("seed-project", 0, "seed the default chart for this project id")
	flag.Parse()

	cfg, err := common.NewAppConfig()
	if err != nil {
		panic(err)
	}

	log, err := common.NewLogger(cfg)
	if err != nil {
		panic(err)
	}

	db, err := common.NewDatabase(cfg)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}

	migrate := condo_service.NewMigrationHandler(db, log)
	err = migrate()
	if err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	if *seedProject > 0 {
		seed := condo_service.NewSeedHandler(db, log)
		err = seed(*seedProject)
		if err != nil {
			log.Fatal("seed failed", zap.Error(err))
		}
	}

	log.Info("migration complete")
}
