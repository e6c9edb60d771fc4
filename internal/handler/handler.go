package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/escala-dev/escala/backend/internal/config"
	"github.com/escala-dev/escala/backend/internal/domain"
	"github.com/escala-dev/escala/backend/internal/repository"
	"github.com/escala-dev/escala/backend/internal/scheduler"
)

type Handler struct {
	validate     *validator.Validate
	config       *config.Config
	repository   *repository.Repository
	translator   ut.Translator
	notifyCh     *amqp.Channel
	redisClient  *redis.Client
	orchestrator *scheduler.Orchestrator

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, notifyCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	notifier := &queueNotifier{
		cfg:        cfg,
		repository: repo,
		channel:    notifyCh,
	}

	return &Handler{
		validate:     validate,
		config:       cfg,
		repository:   repo,
		translator:   trans,
		notifyCh:     notifyCh,
		redisClient:  rdb,
		orchestrator: scheduler.NewOrchestrator(repo, notifier),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// Everything below requires a logged-in back-office user.
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
			})
		})

		r.Route("/establishments", func(r chi.Router) {
			r.Post("/", h.CreateEstablishment)
			r.Get("/", h.GetAllEstablishments)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.establishment)
				r.Get("/", h.GetEstablishment)
				r.Patch("/", h.UpdateEstablishment)
				r.Delete("/", h.DeleteEstablishment)

				r.Route("/employees", func(r chi.Router) {
					r.Post("/", h.CreateEmployee)
					r.Get("/", h.GetEstablishmentEmployees)
				})

				r.Route("/schedules", func(r chi.Router) {
					r.Get("/", h.GetEstablishmentSchedules)
					r.Post("/generate", h.GenerateSchedule)
					r.Get("/week/{week}", h.GetScheduleByWeek)
					r.Post("/validate", h.ValidateShifts)
				})
			})
		})

		r.Route("/employees/{id}", func(r chi.Router) {
			r.Use(h.employee)
			r.Get("/", h.GetEmployee)
			r.Patch("/", h.UpdateEmployee)
			r.Delete("/", h.DeleteEmployee)
			r.Patch("/availability", h.UpdateEmployeeAvailability)
		})

		r.Route("/schedules/{id}", func(r chi.Router) {
			r.Use(h.schedule)
			r.Get("/", h.GetSchedule)
			r.Put("/shifts", h.ReplaceScheduleShifts)
			r.Post("/publish", h.PublishSchedule)
			r.Post("/archive", h.ArchiveSchedule)
		})
	})
}
