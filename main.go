package main

import (
	"log"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"quotegen/collections"
	"quotegen/config"
	"quotegen/handlers"
	"quotegen/services"
	"quotegen/templates"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	app := pocketbase.New()

	// Create collections once the database is open, for serve and CLI alike
	app.OnBootstrap().BindFunc(func(e *core.BootstrapEvent) error {
		if err := e.Next(); err != nil {
			return err
		}
		return collections.Setup(e.App)
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		if err := collections.MigrateLegacyHistory(app, cfg.LegacyHistory); err != nil {
			log.Printf("Warning: legacy history migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS(cfg.StaticDir), false))

		session := handlers.NewSession(services.NewHistoryStore(app))
		handlers.RegisterRoutes(se.Router, session, handlerSettings(cfg))

		return se.Next()
	})

	app.RootCmd.AddCommand(newHistoryCmd(app))
	app.RootCmd.AddCommand(newQuoteCmd(app, handlerSettings(cfg)))

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

func handlerSettings(cfg *config.Config) handlers.Settings {
	chromePath := cfg.ChromePath
	if chromePath == "" {
		chromePath = services.DetectChromePath()
	}
	company := cfg.Company()
	return handlers.Settings{
		Brand: cfg.Brand,
		Issuer: templates.Issuer{
			Name:    company.Name,
			Address: company.Address,
			City:    company.City,
			Email:   company.Email,
			LogoURL: cfg.LogoURL,
		},
		Renderer: services.ChromeRenderer{
			ExecPath: chromePath,
			Scale:    2,
			Timeout:  cfg.ImageTimeout,
		},
		Image: cfg.ImageOptions(),
	}
}
