package main

import (
	"context"
	"log"

	"primoboost-be/internal/bootstrap"
	"primoboost-be/internal/config"
	"primoboost-be/internal/server"
	"primoboost-be/internal/tracer"
	"primoboost-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	go func() {
		log.Println("Background: starting purchase event consumer...")
		if err := container.ShellService.Consume(context.Background()); err != nil {
			log.Printf("Background consumer error: %v", err)
		}
	}()

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
