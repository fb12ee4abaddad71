package router

import (
	"net/http"

	cartsvc "cardtrade-backend/internal/application/cart"
	listsvc "cardtrade-backend/internal/application/listings"
	notifsvc "cardtrade-backend/internal/application/notifications"
	"cardtrade-backend/internal/application/search"
	usersvc "cardtrade-backend/internal/application/user"
	"cardtrade-backend/internal/config"
	"cardtrade-backend/internal/infrastructure/database"
	carthandler "cardtrade-backend/internal/interfaces/handlers/cart"
	healthhandler "cardtrade-backend/internal/interfaces/handlers/health"
	listhandler "cardtrade-backend/internal/interfaces/handlers/listings"
	notifhandler "cardtrade-backend/internal/interfaces/handlers/notifications"
	userhandler "cardtrade-backend/internal/interfaces/handlers/user"
	"cardtrade-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionHandler, rdb, err := middleware.Session(middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	})
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, errDB
		}
	}

	hh := &healthhandler.Handlers{DB: db, Rdb: rdb}
	app.Get("/health/json", hh.Check)

	if db != nil {
		cs := &cartsvc.Service{DB: db, Rdb: rdb}
		ns := &notifsvc.Service{DB: db}
		ss := &search.Service{DB: db, Carts: cs}
		ls := &listsvc.Service{DB: db, Notifications: ns}
		us := &usersvc.Service{DB: db}

		lh := &listhandler.Handlers{Service: ls, Search: ss}
		// Browsing is public; anonymous viewers simply get no cart flags
		app.Post("/api/v1/listings/get-all-listing", lh.GetListings)
		app.Get("/api/v1/listings/get-listing-details/:id", lh.GetListingDetails)
		app.Get("/api/v1/listings/get-listings-by-user/:username", lh.GetListingsBySeller)
		lg := app.Group("/api/v1/listings", middleware.RequireAuth())
		lg.Post("/create-listing", lh.CreateListing)
		lg.Put("/update-listing/:id", lh.UpdateListing)
		lg.Put("/update-listing-as-sold/:id", lh.MarkSold)
		lg.Delete("/delete-listing/:id", lh.DeleteListing)

		ch := &carthandler.Handlers{Service: cs}
		cg := app.Group("/api/v1/cart", middleware.RequireAuth())
		cg.Post("/add-item/:listingId", ch.AddItem)
		cg.Delete("/remove-item/:listingId", ch.RemoveItem)
		cg.Get("/get-items", ch.GetItems)

		nh := &notifhandler.Handlers{Service: ns}
		ng := app.Group("/api/v1/notifications", middleware.RequireAuth())
		ng.Get("/", nh.List)
		ng.Put("/:id/read", nh.MarkRead)

		uh := &userhandler.Handlers{Service: us}
		ug := app.Group("/api/v1/users", middleware.RequireAuth())
		ug.Get("/me", uh.GetProfile)
		ug.Put("/update-profile", uh.UpdateProfile)
	}

	return app, db, rdb, nil
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
