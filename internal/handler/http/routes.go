// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	router.Use(withGzipRequest, middleware.Compress(5, "application/json"))

	router.Get("/version", h.getServerVersion)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/auth/me", h.me)

		r.Get("/contracts", h.listContracts)
		r.Post("/contracts", h.createContract)
		r.Post("/contracts/bulk-upsert", h.bulkUpsert)
		r.Get("/contracts/{id}", h.getContract)
		r.Put("/contracts/{id}", h.updateContract)
	})

	router.MethodNotAllowed(allowedMethods(router))

	return router
}
