package api

import "github.com/gofiber/fiber/v2"

func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/health", s.GetHealth)
	router.Get("/infer", s.GetInfer)
	router.Post("/upload", s.PostUpload)
	router.Get("/batches/:id", s.GetBatch)
	router.Get("/batches/:id/wrapped", s.GetWrapped)
}
