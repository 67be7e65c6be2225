package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Service struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	PetshopID uint `json:"petshop_id"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	DurationMin int             `json:"duration_min"`
	Price       decimal.Decimal `gorm:"type:decimal(15,2)" json:"price"`

	// Dias da semana em que o serviço é oferecido (0=domingo .. 6=sábado),
	// separados por vírgula. Ex.: "1,2,3,4,5"
	Weekdays string `gorm:"size:20" json:"weekdays"`

	// Janela de atendimento no formato HH:MM
	StartHour string `gorm:"size:5" json:"start_hour"`
	EndHour   string `gorm:"size:5" json:"end_hour"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AvailableOn informa se o serviço é oferecido no dia da semana dado.
func (s *Service) AvailableOn(weekday time.Weekday) bool {
	for _, part := range strings.Split(s.Weekdays, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if time.Weekday(d) == weekday {
			return true
		}
	}
	return false
}
