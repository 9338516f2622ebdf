package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// MessageOf mengambil pesan user-facing dari *fiber.Error; error lain
// (driver, dsb) jatuh ke fallback supaya detail teknis tidak bocor ke banner.
func MessageOf(err error, fallback string) string {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	return fallback
}
