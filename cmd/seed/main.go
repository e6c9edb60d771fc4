package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/escala-dev/escala/backend/internal/config"
	"github.com/escala-dev/escala/backend/internal/repository"
	"github.com/escala-dev/escala/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var establishmentID string

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random users, 2: insert random establishments, 3: insert random employees)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.StringVar(&establishmentID, "establishment-id", "", "establishment to attach random employees to (op 3)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("unable to reach the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		logger.Error("no operation specified")
	case 1:
		if n <= 0 {
			logger.Error("please provide a valid number of users")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			user, err := seed.RandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
			if err != nil {
				logger.Error("unable to generate a random user", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateUser(user); err != nil {
				logger.Error("unable to insert the user", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		logger.Info("users inserted", slog.Int("count", cnt))
	case 2:
		if n <= 0 {
			logger.Error("please provide a valid number of establishments")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			est := seed.RandomEstablishment()
			if err := repo.CreateEstablishment(est); err != nil {
				logger.Error("unable to insert the establishment", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		logger.Info("establishments inserted", slog.Int("count", cnt))
	case 3:
		if n <= 0 {
			logger.Error("please provide a valid number of employees")
			return
		}

		ests, err := repo.GetAllEstablishments()
		if err != nil {
			logger.Error("unable to fetch establishments", slog.String("error", err.Error()))
			return
		}
		if len(ests) == 0 {
			logger.Error("no establishments to attach employees to; run op 2 first")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			targetID := establishmentID
			if targetID == "" {
				targetID = ests[rand.Intn(len(ests))].ID
			}

			emp := seed.RandomEmployee(targetID, cfg.Email.UserDomain)
			if err := repo.CreateEmployee(emp); err != nil {
				logger.Error("unable to insert the employee", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		logger.Info("employees inserted", slog.Int("count", cnt))
	default:
		logger.Error("unknown operation", slog.Int("op", op))
	}
}
