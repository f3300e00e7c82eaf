package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"corner/internal/config"
	"corner/internal/handler"
	"corner/internal/infra/cookie"
	"corner/internal/infra/metrics"
	"corner/internal/infra/password"
	infraRepo "corner/internal/infra/repository"
	"corner/internal/infra/token"
	"corner/internal/middleware"
	"corner/internal/usecase"
	"corner/internal/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type uuidGenerator struct{}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// Depsは外から渡す部品。nilのものは既定値になる
type Deps struct {
	DB      *gorm.DB
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Hasher  usecase.PasswordHasher // nilならbcrypt(12)
	Clock   usecase.Clock          // nilなら実時間
}

// Newはrepository→usecase→handlerを組み立ててechoを返す
func New(cfg config.Config, d Deps) (*echo.Echo, error) {
	if d.DB == nil {
		return nil, errors.New("server: db is required")
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Hasher == nil {
		d.Hasher = password.NewBcryptHasher(12)
	}
	if d.Clock == nil {
		d.Clock = realClock{}
	}

	codec, err := token.NewCodec(cfg.JWTSecret, cfg.SessionTTL, d.Clock)
	if err != nil {
		return nil, err
	}
	cookies := cookie.NewSessionCookie(cfg.IsProduction(), codec.TTL())

	//Repository（GORM実装）
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	restaurantRepo := infraRepo.NewRestaurantGormRepository(d.DB)
	wilayaRepo := infraRepo.NewWilayaGormRepository(d.DB)
	activityRepo := infraRepo.NewActivityGormRepository(d.DB)
	revokedRepo := infraRepo.NewRevokedTokenGormRepository(d.DB)
	txm := infraRepo.NewTxManagerGorm(d.DB)

	idGen := uuidGenerator{}

	//Usecase
	identityUC := usecase.NewIdentityUsecase(userRepo, revokedRepo, codec, d.Metrics, d.Logger)
	authUC := usecase.NewAuthUsecase(userRepo, revokedRepo, activityRepo, password.NewBcryptVerifier(), codec, d.Clock, d.Metrics, d.Logger)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo, txm, d.Hasher, idGen, d.Clock, d.Logger)
	restaurantUC := usecase.NewRestaurantUsecase(restaurantRepo, txm, idGen, d.Clock, d.Logger)
	wilayaUC := usecase.NewWilayaUsecase(wilayaRepo, txm, idGen, d.Clock)
	activityUC := usecase.NewActivityUsecase(activityRepo)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler
	e.Validator = validator.New()

	//ログはhandlerの後に書く（user_idもここで取れる）
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FEURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
	}))
	e.Use(middleware.SessionAuth(cookies, identityUC))
	e.Use(d.Metrics.Middleware())

	RegisterRoutes(e, Handlers{
		Auth:            handler.NewAuthHandler(authUC, cookies),
		AdminUsers:      handler.NewAdminUserHandler(adminUserUC),
		Restaurants:     handler.NewRestaurantHandler(restaurantUC),
		OwnerRestaurant: handler.NewOwnerRestaurantHandler(restaurantUC),
		Wilayas:         handler.NewWilayaHandler(wilayaUC),
		Activities:      handler.NewActivityHandler(activityUC),
	}, d.DB, d.Metrics)

	return e, nil
}

// ctxが終わるまで動かして、そのあと猶予つきで止める
func Start(ctx context.Context, e *echo.Echo, addr string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("http server shutting down")
	return e.Shutdown(shutdownCtx)
}
