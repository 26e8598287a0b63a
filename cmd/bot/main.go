package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/fooddiary/internal/bot"
	"github.com/dmitrijs2005/fooddiary/internal/bot/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	app, err := bot.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
