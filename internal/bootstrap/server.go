package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/campuslib/roombooking/api"
	"github.com/campuslib/roombooking/config"
	"github.com/campuslib/roombooking/internal/service/request"
	"github.com/campuslib/roombooking/internal/service/rooms"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, roomSvc rooms.RoomUseCase, requestSvc request.RequestUseCase) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(cfg, roomSvc, requestSvc),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(cfg *config.Config, roomSvc rooms.RoomUseCase, requestSvc request.RequestUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.CORS())

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "method not allowed"})
	})

	api.NewRoomHandler(roomSvc).Register(router)
	api.NewRequestHandler(requestSvc).Register(router)

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/roombooking.swagger.json"),
		)))
	}

	return router
}
