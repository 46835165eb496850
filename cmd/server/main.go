package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eduportal/internal/config"
	"eduportal/internal/database"
	"eduportal/internal/entity"
	"eduportal/internal/handler"
	"eduportal/internal/logger"
	"eduportal/internal/portal"
	"eduportal/internal/redirector"
	"eduportal/internal/repository"

	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()
	cfg := config.LoadConfig()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Ошибка инициализации логгера: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	backend := portal.NewHTTPBackend(cfg.BackendURL, &http.Client{Timeout: cfg.BackendTimeout}, log)
	portals := map[entity.Role]*portal.Handler{
		entity.RoleStudent: portal.NewHandler(entity.RoleStudent, backend, log),
		entity.RoleTeacher: portal.NewHandler(entity.RoleTeacher, backend, log),
	}

	// Общая форма /login работает только с базой учётных записей
	var checker redirector.CredentialChecker
	db, err := database.Open(cfg.DB, log)
	if err != nil {
		log.Warn("База данных недоступна, /login отключён", zap.Error(err))
	} else {
		defer closeDB(db, log)
		if err := database.Migrate(db, log); err != nil {
			log.Fatal("Ошибка миграции БД", zap.Error(err))
		}
		checker = repository.NewAccountRepository(db)
	}

	if cfg.SessionKey == "" {
		log.Warn("SESSION_KEY не задан, используется случайный ключ")
	}

	router, err := handler.NewRouter(handler.Deps{
		Portals:       portals,
		Checker:       checker,
		Store:         handler.NewSessionStore(cfg.SessionKey),
		BackendURL:    cfg.BackendURL,
		DashboardBase: cfg.DashboardURL,
		Log:           log,
	})
	if err != nil {
		log.Fatal("Ошибка настройки маршрутов", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Сервер запущен", zap.String("addr", srv.Addr), zap.String("backend", cfg.BackendURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Ошибка остановки сервера", zap.Error(err))
	}
	log.Info("Сервер остановлен")
}

func closeDB(db *sql.DB, log *zap.Logger) {
	if err := db.Close(); err != nil {
		log.Warn("Ошибка закрытия БД", zap.Error(err))
		return
	}
	log.Info("Соединение с БД закрыто")
}
