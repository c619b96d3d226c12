package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lockstream/internal/handler/api"
	"lockstream/internal/handler/middleware"
	"lockstream/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	eventHandler *api.EventHandler,
	lockerHandler *api.LockerHandler,
	reservationHandler *api.ReservationHandler,
	projectionHandler *api.ProjectionHandler,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, eventHandler, lockerHandler, reservationHandler, projectionHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	eventHandler *api.EventHandler,
	lockerHandler *api.LockerHandler,
	reservationHandler *api.ReservationHandler,
	projectionHandler *api.ProjectionHandler,
) {
	engine.GET("/health", healthCheck)

	addRoutes(&engine.RouterGroup, []route{
		{Method: http.MethodPost, Path: "/events", Handler: eventHandler.IngestEvent},
		{Method: http.MethodGet, Path: "/lockers/:id", Handler: lockerHandler.GetLocker},
		{Method: http.MethodGet, Path: "/lockers/:id/compartments/:cid", Handler: lockerHandler.GetCompartment},
		{Method: http.MethodGet, Path: "/reservations/:id", Handler: reservationHandler.GetReservation},
		{Method: http.MethodPost, Path: "/projection/rebuild", Handler: projectionHandler.Rebuild},
	})
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
