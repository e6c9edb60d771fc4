package main

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	"github.com/escala-dev/escala/backend/internal/config"
	"github.com/escala-dev/escala/backend/internal/domain"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		return
	}

	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("unable to create the mail client", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	dialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(dialCtx); err != nil {
		logger.Error("unable to reach the mail server", slog.String("error", err.Error()))
		return
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("unable to connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("unable to open a rabbitmq channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"notification_queue",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("unable to declare the notification queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("unable to consume messages", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("message received", slog.String("message", string(msg.Body)))

				notification := domain.NotificationMessage{}
				if err := json.Unmarshal(msg.Body, &notification); err != nil {
					logger.Error("unable to decode the notification", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				m := mail.NewMsg()
				if err := m.From(cfg.Email.SMTP.Username); err != nil {
					logger.Error("unable to set the sender", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.To(notification.To); err != nil {
					logger.Error("unable to set the recipient", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				switch notification.Type {
				case "schedule_published":
					tmpl, err := template.ParseFiles("./templates/schedule_published_email.html")
					if err != nil {
						logger.Error("unable to parse the mail template", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					if err := m.SetBodyHTMLTemplate(tmpl, notification.Data); err != nil {
						logger.Error("unable to set the mail body", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					m.Subject("Escala - Your shifts for the week")
				case "create_user":
					tmpl, err := template.ParseFiles("./templates/new_account_email.html")
					if err != nil {
						logger.Error("unable to parse the mail template", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					if err := m.SetBodyHTMLTemplate(tmpl, notification.Data); err != nil {
						logger.Error("unable to set the mail body", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					m.Subject("Escala - Your account details")
				case "reset_password":
					tmpl, err := template.ParseFiles("./templates/reset_password_otp_email.html")
					if err != nil {
						logger.Error("unable to parse the mail template", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					if err := m.SetBodyHTMLTemplate(tmpl, notification.Data); err != nil {
						logger.Error("unable to set the mail body", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					m.Subject("Escala - Password reset code")
				default:
					logger.Error("unsupported notification type", slog.String("type", notification.Type))
					_ = msg.Nack(false, false)
					continue
				}

				if err := client.DialAndSend(m); err != nil {
					logger.Error("unable to send the mail", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // requeue so a transient SMTP failure retries
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("waiting for notifications... (press CTRL+C to exit)")
	<-sigChan

	logger.Info("shutting down notifier worker...")
	cancel()
	wg.Wait()
	logger.Info("notifier worker stopped")
}
