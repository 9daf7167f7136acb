package main

import (
	"context"
	"net/http"
	"time"

	"hotel/internal/config"
	"hotel/internal/middleware"
	"hotel/internal/modules/auth"
	"hotel/internal/modules/booking"
	"hotel/internal/modules/dashboard"
	"hotel/internal/modules/guest"
	"hotel/internal/modules/payment"
	"hotel/internal/modules/room"
	"hotel/internal/modules/user"
	jwtsvc "hotel/internal/pkg/jwt"
	"hotel/internal/pkg/response"
	"hotel/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// revocationStore is satisfied by the redis denylist.
type revocationStore interface {
	auth.TokenRevoker
	middleware.RevocationChecker
}

type app struct {
	cfg     *config.Config
	log     *zap.Logger
	db      *gorm.DB
	tokens   *jwtsvc.Service
	revoker  revocationStore
	accounts middleware.UserLookup
	limiter  *middleware.IPRateLimiter

	auth      *auth.Handler
	users     *user.Handler
	rooms     *room.Handler
	guests    *guest.Handler
	bookings  *booking.Handler
	payments  *payment.Handler
	dashboard *dashboard.Handler
}

// newApp wires repositories, services and handlers. publisher and revoker
// may be nil.
func newApp(cfg *config.Config, log *zap.Logger, db *gorm.DB, publisher booking.EventPublisher, revoker revocationStore) *app {
	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	tokens := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	bookingService := booking.NewService(
		booking.NewUnitOfWork(repository.NewUnitOfWork(db)),
		bookingRepo,
		roomRepo,
		guestRepo,
		paymentRepo,
		publisher,
		log.Named("booking"),
	)

	return &app{
		cfg:      cfg,
		log:      log,
		db:       db,
		tokens:   tokens,
		revoker:  revoker,
		accounts: userRepo,
		limiter:  middleware.NewIPRateLimiter(cfg.LoginRatePerMin),

		auth:      auth.NewHandler(auth.NewService(userRepo, tokens, revoker, log.Named("auth"))),
		users:     user.NewHandler(user.NewService(userRepo, log.Named("user"))),
		rooms:     room.NewHandler(room.NewService(roomRepo, bookingRepo, log.Named("room"))),
		guests:    guest.NewHandler(guest.NewService(guestRepo, bookingRepo, log.Named("guest"))),
		bookings:  booking.NewHandler(bookingService),
		payments:  payment.NewHandler(payment.NewService(paymentRepo, bookingRepo, log.Named("payment"))),
		dashboard: dashboard.NewHandler(dashboard.NewService(roomRepo, guestRepo, bookingRepo)),
	}
}

func (a *app) router() *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(a.log),
		middleware.RequestLogger(a.log),
		middleware.CORS(a.cfg.AllowedOrigins()),
	)

	r.GET("/health", a.health)

	v1 := r.Group("/api/v1")
	{
		a.auth.RegisterPublicRoutes(v1, a.limiter.Middleware(a.log))

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(a.tokens, a.revoker, a.accounts, a.log))
		{
			a.auth.RegisterProtectedRoutes(protected)
			a.dashboard.RegisterRoutes(protected)
			a.rooms.RegisterRoutes(protected, middleware.AdminOnly())
			a.guests.RegisterRoutes(protected)
			a.bookings.RegisterRoutes(protected)
			a.payments.RegisterRoutes(protected)

			admin := protected.Group("")
			admin.Use(middleware.AdminOnly())
			a.users.RegisterAdminRoutes(admin)
		}
	}

	return r
}

func (a *app) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := a.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		a.log.Warn("health check failed", zap.Error(err))
		response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is unreachable")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "ok"})
}
