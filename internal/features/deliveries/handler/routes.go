package handler

import (
	"ecodeli/internal/core/auth"
	"ecodeli/internal/features/deliveries/domain"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the delivery endpoints on r behind the gateway identity middleware.
func RegisterRoutes(r fiber.Router, v *ValidationHandler, l *LifecycleHandler) {
	client := auth.RequireRole(string(domain.RoleClient))
	deliverer := auth.RequireRole(string(domain.RoleDeliverer))
	participant := auth.RequireRole(string(domain.RoleClient), string(domain.RoleDeliverer), string(domain.RoleAdmin))

	announcements := r.Group("/announcements", auth.New())
	announcements.Post("/", client, l.CreateAnnouncement)
	announcements.Get("/:id/validation-status", client, v.GetStatus)
	announcements.Post("/:id/validate", client, v.Validate)
	announcements.Get("/:id/validation-code", client, v.RevealCode)
	announcements.Post("/:id/validation-code/regenerate", client, v.RegenerateCode)
	announcements.Post("/:id/accept", deliverer, l.Accept)

	deliveries := r.Group("/deliveries", auth.New())
	deliveries.Post("/:id/pickup", deliverer, l.PickUp)
	deliveries.Post("/:id/transit", deliverer, l.StartTransit)
	deliveries.Post("/:id/out-for-delivery", deliverer, l.OutForDelivery)
	deliveries.Post("/:id/cancel", participant, l.Cancel)
}
