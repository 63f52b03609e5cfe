package routes

import (
	"io"
	"os"
	"time"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"transit_api/internal/controllers"
	"transit_api/internal/middleware"
	"transit_api/internal/repository"
)

// Options carries the router settings that do not come from the store.
type Options struct {
	// JWTSecret guards the write endpoints when non-empty.
	JWTSecret   []byte
	CORSOrigins []string

	// AccessLog receives one line per request. Defaults to stdout.
	AccessLog io.Writer

	// Operator login, served only together with JWTSecret.
	AdminUser         string
	AdminPasswordHash string
	TokenTTL          time.Duration
}

// SetupRouter builds the HTTP surface on top of store. hub may be nil, in
// which case positions are not streamed and /ws/posicoes is not served.
func SetupRouter(store *repository.Store, hub *controllers.PositionHub, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(accessLog(opts.AccessLog))
	r.Use(middleware.CORS(opts.CORSOrigins))

	r.GET("/health", controllers.Health(store))

	write := middleware.RequireAuth(opts.JWTSecret)
	if len(opts.JWTSecret) > 0 && opts.AdminPasswordHash != "" {
		AuthRoutes(r, controllers.NewAuthController(opts.AdminUser, opts.AdminPasswordHash, opts.JWTSecret, opts.TokenTTL))
	}

	StopRoutes(r, controllers.NewStopController(store.Stops), write)
	LineRoutes(r, controllers.NewLineController(store.Lines), write)
	VehicleRoutes(r, controllers.NewVehicleController(store.Vehicles), write)

	var publisher controllers.PositionPublisher
	if hub != nil {
		publisher = hub
		WebSocketRoutes(r, hub)
	}
	PositionRoutes(r, controllers.NewPositionController(store.Positions, publisher), write)

	return r
}

func accessLog(out io.Writer) gin.HandlerFunc {
	if out == nil {
		out = os.Stdout
	}
	return ginlog.SetLogger(
		ginlog.WithSkipPath([]string{"/health"}),
		ginlog.WithLogger(func(_ *gin.Context, l zerolog.Logger) zerolog.Logger {
			return l.Output(out).With().Str("component", "http").Logger()
		}),
	)
}
