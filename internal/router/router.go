// Package router assembles the Echo instance: global middleware, the
// public surface, and the role-scoped customer/barber/owner groups.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/rakafardani/barbershop-booking/internal/config"
	"github.com/rakafardani/barbershop-booking/internal/handler"
	"github.com/rakafardani/barbershop-booking/internal/middleware"
	"github.com/rakafardani/barbershop-booking/internal/model"
	"github.com/rakafardani/barbershop-booking/internal/notify"
	"github.com/rakafardani/barbershop-booking/internal/store"
)

// New builds the fully wired Echo instance.  rdb may be nil; the rate
// limiter and the response cache then pass requests straight through.
func New(cfg config.Config, s *store.EntityStore, tokens *store.TokenStore, notifier *notify.Notifier, inbox *notify.Inbox, rdb *redis.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	auth := handler.NewAuthHandler(cfg, s, tokens)
	public := handler.NewPublicHandler(s)
	customer := handler.NewCustomerHandler(s, notifier, inbox)
	barber := handler.NewBarberHandler(s, notifier)
	owner := handler.NewOwnerHandler(s, notifier)

	e.GET("/healthz", handler.Health)

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	v1 := e.Group("/v1")
	v1.GET("/services", public.Services, cache)
	v1.GET("/barbers", public.Barbers, cache)

	ag := v1.Group("/auth")
	ag.POST("/register", auth.Register)
	ag.POST("/login", auth.Login)
	ag.POST("/refresh", auth.Refresh)
	ag.POST("/logout", auth.Logout)

	jwt := middleware.JWTAuth(cfg.JWTSecret)
	v1.GET("/me", auth.Me, jwt)
	v1.GET("/notifications", customer.Notifications, jwt)

	cg := v1.Group("/bookings", jwt, middleware.RequireRole(model.RoleCustomer))
	cg.POST("", customer.Create)
	cg.GET("", customer.List)
	cg.GET("/:id", customer.Get)
	cg.POST("/:id/cancel", customer.Cancel)
	cg.POST("/:id/pay", customer.Pay)
	cg.POST("/:id/feedback", customer.Feedback)

	bg := v1.Group("/barber", jwt, middleware.RequireRole(model.RoleBarber))
	bg.GET("/schedule", barber.Schedule)
	bg.PUT("/availability", barber.Availability)
	bg.GET("/stats", barber.Stats)
	bg.GET("/reviews", barber.Reviews)
	bg.POST("/bookings/:id/start", barber.Start)
	bg.POST("/bookings/:id/complete", barber.Complete)

	og := v1.Group("/owner", jwt, middleware.RequireRole(model.RoleOwner))
	og.GET("/overview", owner.Overview)
	og.GET("/schedule", owner.Schedule)
	og.GET("/revenue", owner.Revenue)
	og.GET("/feedbacks", owner.Feedbacks)
	og.GET("/users", owner.Users)
	og.POST("/bookings/:id/start", owner.Start)
	og.POST("/bookings/:id/complete", owner.Complete)

	return e
}
