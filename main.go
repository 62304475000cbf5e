package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/core/session"
	logsvc "github.com/trezcool/shule/services/logger"
	"github.com/trezcool/shule/services/schoolapi"
	dummyapi "github.com/trezcool/shule/services/schoolapi/dummy"
	cookiestore "github.com/trezcool/shule/storage/session/cookie"
	"github.com/trezcool/shule/web"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.LoadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	var logger core.Logger
	if conf.Debug || conf.TestMode {
		logger = logsvc.NewConsoleLogger(log.New(os.Stdout, "WEB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile))
	} else {
		logger = logsvc.NewRollbarLogger(log.New(os.Stdout, "WEB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
	}
	logger.Enable(true)

	store := cookiestore.NewStore(conf)

	// no API configured: run against an in-process fake for demos
	var auth session.Authenticator
	var directory func(token string) school.Directory
	if conf.API.BaseURL != "" {
		client := schoolapi.NewClient(conf.API.BaseURL)
		auth = client
		directory = client.Directory
	} else {
		logger.Warn("api.baseURL is not set; using the in-process demo backend")
		demo := dummyapi.NewService()
		demo.AddAccount("admin", "admin123", session.User{
			Username: "admin",
			Role:     session.RoleAdmin,
			Email:    "admin@school.cd",
		})
		auth = demo
		directory = demo.Directory
	}

	// =========================================================================
	// Start Web Console

	logger.Info(fmt.Sprintf("%s initializing : version %q", conf.AppName, conf.Build))
	defer logger.Info("Application stopped")

	server := web.NewServer(web.ServerDeps{
		Conf:      conf,
		Logger:    logger,
		Store:     store,
		Auth:      auth,
		Directory: directory,
	})

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
