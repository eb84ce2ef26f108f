package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/maendeleo/backend/apps/api/echo"
	"github.com/maendeleo/backend/core"
	"github.com/maendeleo/backend/core/course"
	"github.com/maendeleo/backend/core/progress"
	logsvc "github.com/maendeleo/backend/services/logger"
	"github.com/maendeleo/backend/storage/database"
	sqlxrepos "github.com/maendeleo/backend/storage/database/sqlx"
)

const shutdownTimeout = 5 * time.Second

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lshortfile)

	conf, err := core.NewConfig()
	if err != nil {
		std.Fatalf("loading config: %v", err)
	}

	// set up logger
	var logger core.Logger
	if conf.Debug {
		logger = core.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// set up DB
	sqlDB, err := database.Open(conf)
	if err != nil {
		std.Fatalf("opening database: %v", err)
	}
	defer sqlDB.Close()
	if err := sqlDB.Ping(); err != nil {
		std.Fatalf("pinging database: %v", err)
	}
	// migrate on boot in DEV mode; deployments run the admin CLI
	if conf.Debug {
		if err := database.Migrate(sqlDB); err != nil {
			std.Fatalf("migrating database: %v", err)
		}
	}
	db := sqlx.NewDb(sqlDB, conf.Database.Engine)

	// set up services
	courseSvc := course.NewService(
		sqlxrepos.NewHierarchyRepository(db),
		sqlxrepos.NewLookupRepository(db),
	)
	progressSvc := progress.NewService(
		logger,
		conf,
		sqlxrepos.NewProgressRepository(db),
		sqlxrepos.NewEnrollmentRepository(db),
		sqlxrepos.NewCourseSectionRepository(db),
		courseSvc,
	)

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	app := echoapi.NewServer(
		&echoapi.Options{
			Address:        conf.Server.Address(),
			Conf:           conf,
			Logger:         logger,
			ProgressSvc:    progressSvc,
			SignalShutdown: func() { shutdown <- syscall.SIGTERM },
		},
	)
	go app.Start()

	<-shutdown
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		std.Fatalf("stopping server: %v", err)
	}
}
