// Package seed generates plausible development data: manager accounts,
// establishments with realistic opening hours, and employees with a mix of
// availability configurations.
package seed

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/escala-dev/escala/backend/internal/domain"
)

var firstNames = []string{
	"Ana", "Bruno", "Camila", "Diego", "Eduarda", "Felipe", "Gabriela",
	"Henrique", "Isabela", "João", "Larissa", "Marcos", "Natália", "Otávio",
	"Paula", "Rafael", "Sofia", "Thiago", "Vitória", "William",
}
var lastNames = []string{
	"Silva", "Santos", "Oliveira", "Souza", "Lima", "Pereira", "Costa",
	"Ferreira", "Rodrigues", "Almeida", "Nascimento", "Carvalho", "Gomes",
	"Martins", "Araújo", "Ribeiro", "Barbosa", "Rocha", "Dias", "Moreira",
}

var establishmentKinds = []string{
	"Padaria", "Restaurante", "Café", "Mercado", "Farmácia", "Livraria",
}
var establishmentNames = []string{
	"Bela Vista", "do Centro", "Estrela", "Primavera", "São Jorge",
	"Horizonte", "da Praça", "Aurora",
}

func randomFullName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

func usernameFromFullName(fullName string) string {
	parts := strings.Fields(strings.ToLower(fullName))
	username := strings.Join(parts, ".")

	// Strip the accents so usernames stay ASCII.
	replacer := strings.NewReplacer("á", "a", "ã", "a", "â", "a", "é", "e", "ê", "e", "í", "i", "ó", "o", "õ", "o", "ú", "u", "ç", "c")
	username = replacer.Replace(username)

	return fmt.Sprintf("%s%d", username, rand.Intn(100))
}

// RandomUser builds a manager account with a name-derived username and the
// shared seed password.
func RandomUser(password string, emailDomain string) (*domain.User, error) {
	fullName := randomFullName()
	username := usernameFromFullName(fullName)

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomain,
		Role:         domain.RoleManager,
	}, nil
}

// RandomEstablishment builds an establishment that is closed on Sunday and
// sometimes Monday, with opening hours drawn from a few common patterns.
func RandomEstablishment() *domain.Establishment {
	patterns := []domain.DayHours{
		{IsOpen: true, OpenTime: "08:00", CloseTime: "18:00"},
		{IsOpen: true, OpenTime: "09:00", CloseTime: "19:00"},
		{IsOpen: true, OpenTime: "10:00", CloseTime: "22:00"},
		{IsOpen: true, OpenTime: "18:00", CloseTime: "02:00"}, // closes past midnight
	}
	pattern := patterns[rand.Intn(len(patterns))]

	hours := domain.WeekHours{}
	for weekday := 1; weekday <= 6; weekday++ {
		hours[weekday] = pattern
	}
	if rand.Intn(3) == 0 {
		hours[1] = domain.DayHours{}
	}

	name := fmt.Sprintf("%s %s",
		establishmentKinds[rand.Intn(len(establishmentKinds))],
		establishmentNames[rand.Intn(len(establishmentNames))],
	)

	return &domain.Establishment{
		ID:                   uuid.NewString(),
		Name:                 name,
		OperatingHours:       hours,
		MinEmployeesPerShift: rand.Intn(3) + 1,
	}
}

// RandomEmployee builds an employee for the given establishment. Roughly a
// third get a recurring weekly pattern, a third get legacy weekday
// restrictions, and the rest are fully available; a few also get a temporary
// exception so every availability layer shows up in seeded data.
func RandomEmployee(establishmentID string, emailDomain string) *domain.Employee {
	fullName := randomFullName()

	emp := &domain.Employee{
		ID:                    uuid.NewString(),
		EstablishmentID:       establishmentID,
		Name:                  fullName,
		Email:                 usernameFromFullName(fullName) + "@" + emailDomain,
		Status:                domain.EmployeeActive,
		TemporaryAvailability: []domain.TemporaryException{},
	}

	switch rand.Intn(3) {
	case 0:
		week := domain.RecurringWeek{}
		for weekday := range week {
			if rand.Intn(4) == 0 {
				week[weekday] = &domain.RecurringDay{Available: false}
			} else {
				week[weekday] = &domain.RecurringDay{Available: true, StartTime: "09:00", EndTime: "18:00"}
			}
		}
		emp.RecurringAvailability = week
	case 1:
		emp.Restrictions = &domain.Restrictions{
			UnavailableDays: []int{rand.Intn(7)},
		}
	}

	if rand.Intn(4) == 0 {
		emp.TemporaryAvailability = append(emp.TemporaryAvailability, domain.TemporaryException{
			StartDate: "2025-01-06",
			EndDate:   "2025-01-10",
			Type:      domain.ExceptionUnavailable,
		})
	}

	if rand.Intn(10) == 0 {
		emp.Status = domain.EmployeeInactive
	}

	return emp
}
