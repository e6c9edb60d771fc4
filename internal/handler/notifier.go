package handler

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/escala-dev/escala/backend/internal/config"
	"github.com/escala-dev/escala/backend/internal/domain"
	"github.com/escala-dev/escala/backend/internal/repository"
)

// queueNotifier implements scheduler.Notifier on top of the notification
// queue. The worker in cmd/notifier consumes what it publishes.
type queueNotifier struct {
	cfg        *config.Config
	repository *repository.Repository
	channel    *amqp.Channel
}

// SchedulePublished fans the schedule out into one message per employee who
// both works that week and has an email address on file.
func (n *queueNotifier) SchedulePublished(ctx context.Context, est *domain.Establishment, schedule *domain.Schedule) error {
	emps, err := n.repository.GetEmployeesByEstablishment(est.ID)
	if err != nil {
		return err
	}

	emails := make(map[string]string, len(emps))
	for _, emp := range emps {
		if emp.Email != "" {
			emails[emp.ID] = emp.Email
		}
	}

	order := []string{}
	perEmployee := make(map[string][]domain.Shift)
	names := make(map[string]string)
	for _, shift := range schedule.Shifts {
		if _, ok := perEmployee[shift.EmployeeID]; !ok {
			order = append(order, shift.EmployeeID)
			names[shift.EmployeeID] = shift.EmployeeName
		}
		perEmployee[shift.EmployeeID] = append(perEmployee[shift.EmployeeID], shift)
	}

	for _, empID := range order {
		email, ok := emails[empID]
		if !ok {
			continue
		}

		message := domain.NotificationMessage{
			Type: "schedule_published",
			To:   email,
			Data: domain.SchedulePublishedData{
				EmployeeName:      names[empID],
				EstablishmentName: est.Name,
				WeekStartDate:     schedule.WeekStartDate,
				WeekEndDate:       schedule.WeekEndDate,
				Shifts:            perEmployee[empID],
			},
		}

		body, err := json.Marshal(message)
		if err != nil {
			return err
		}

		pubCtx, cancel := context.WithTimeout(ctx, time.Duration(n.cfg.RabbitMQ.PublishTimeout)*time.Second)
		err = n.channel.PublishWithContext(
			pubCtx,
			"",
			"notification_queue",
			true,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        body,
			},
		)
		cancel()
		if err != nil {
			return err
		}
	}

	return nil
}
