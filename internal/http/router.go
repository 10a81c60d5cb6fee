// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"swiftdrop/internal/auth"
	"swiftdrop/internal/http/handlers"
	"swiftdrop/internal/http/middleware"
	"swiftdrop/internal/maps"
	"swiftdrop/internal/modules/mission"
	"swiftdrop/internal/modules/presence"
	"swiftdrop/internal/modules/profile"
	"swiftdrop/internal/poll"
)

type RouterDeps struct {
	Gateway        *auth.Gateway
	Missions       *mission.Service
	Presence       *presence.Service
	Profiles       handlers.ProfileStore
	Search         *maps.SearchService
	Views          *poll.Synchronizer
	DefaultCountry string
	Log            *slog.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	if deps.Log == nil {
		deps.Log = slog.Default()
	}

	r := gin.New()
	r.Use(middleware.Recovery(deps.Log))
	r.Use(middleware.Logging(deps.Log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	authHandler := handlers.NewAuthHandler(deps.Gateway)
	api.POST("/auth/signup", authHandler.SignUp)
	api.POST("/auth/signin", authHandler.SignIn)
	api.POST("/auth/signout", authHandler.SignOut)

	authed := api.Group("")
	authed.Use(middleware.Auth(deps.Gateway))

	geoHandler := handlers.NewGeoHandler(deps.Search, deps.DefaultCountry)
	authed.GET("/geo/search", geoHandler.Search)

	missionHandler := handlers.NewMissionHandler(deps.Missions, deps.Views)
	authed.POST("/missions", middleware.RequireRole(profile.RoleCustomer), missionHandler.Create)
	authed.GET("/missions", missionHandler.List)
	authed.GET("/missions/:id", missionHandler.Get)
	authed.POST("/missions/:id/accept", middleware.RequireRole(profile.RoleDriver), missionHandler.Accept)
	authed.POST("/missions/:id/arrive", middleware.RequireRole(profile.RoleDriver), missionHandler.Arrive)
	authed.POST("/missions/:id/complete", middleware.RequireRole(profile.RoleDriver), missionHandler.Complete)
	authed.POST("/missions/:id/rating", middleware.RequireRole(profile.RoleCustomer), missionHandler.Rate)
	authed.DELETE("/missions/:id", middleware.RequireRole(profile.RoleCustomer), missionHandler.Cancel)

	profileHandler := handlers.NewProfileHandler(deps.Profiles)
	authed.GET("/profiles/me", profileHandler.Me)
	authed.PUT("/profiles/me", profileHandler.UpdateMe)

	driverHandler := handlers.NewDriverHandler(deps.Missions, deps.Presence)
	drivers := authed.Group("/drivers/me", middleware.RequireRole(profile.RoleDriver))
	drivers.GET("/earnings", driverHandler.Earnings)
	drivers.PUT("/online", driverHandler.SetOnline)
	drivers.POST("/resume", driverHandler.Resume)
	drivers.PUT("/location", driverHandler.UpdateLocation)

	adminHandler := handlers.NewAdminHandler(deps.Views, deps.Presence)
	admin := authed.Group("/admin", middleware.RequireRole(profile.RoleAdmin))
	admin.GET("/overview", adminHandler.Overview)
	admin.GET("/drivers/nearby", adminHandler.NearbyDrivers)

	return r
}
