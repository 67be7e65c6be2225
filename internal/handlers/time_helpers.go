package handlers

import (
	"time"

	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
	"github.com/lmiguelviana/pet-connect-sub000/internal/timezone"
)

// --------------------------------------------------
// Timezone centralizado por petshop
// --------------------------------------------------

func locationFromShop(shop *models.Petshop) *time.Location {
	if shop != nil && shop.Timezone != "" {
		return timezone.Location(shop.Timezone)
	}

	return timezone.Location(timezone.DefaultTimezone)
}

func parseDateInShop(shop *models.Petshop, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromShop(shop),
	)
}

// timezoneToday devolve a meia-noite de hoje no fuso do petshop.
func timezoneToday(shop *models.Petshop) time.Time {
	loc := locationFromShop(shop)
	now := time.Now().In(loc)

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}

// validHourWindow aceita janelas HH:MM com início antes do fim,
// ou ambas vazias (serviço sem agenda pública)
func validHourWindow(startHour, endHour string) bool {
	if startHour == "" && endHour == "" {
		return true
	}

	start, err := time.Parse("15:04", startHour)
	if err != nil {
		return false
	}

	end, err := time.Parse("15:04", endHour)
	if err != nil {
		return false
	}

	return start.Before(end)
}
