package handler

import (
	"github.com/go-chi/chi/v5"
)

// NewRouter mounts every API endpoint on a fresh chi router.
// Middleware (logging, CORS, body limits) is the caller's concern; this is
// purely the route table.
func NewRouter(s *Server) *chi.Mux {
	r := chi.NewRouter()

	r.Get("/healthz", s.health)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.createTrip)
		r.Get("/", s.listTrips)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.getTrip)
			r.Put("/", s.updateTrip)
			r.Delete("/", s.deleteTrip)

			r.Get("/itinerary", s.getItinerary)
			r.Get("/share", s.shareTrip)
			r.Post("/drive-times/refresh", s.refreshDriveTimes)

			r.Route("/stops", func(r chi.Router) {
				r.Post("/", s.createStop)
				r.Get("/", s.listStops)
				r.Post("/reorder", s.reorderStops)

				r.Route("/{stopID}", func(r chi.Router) {
					r.Get("/", s.getStop)
					r.Put("/", s.updateStop)
					r.Delete("/", s.deleteStop)
				})
			})
		})
	})

	r.Get("/export", s.exportTrips)
	r.Post("/import", s.importTrip)
	r.Post("/import/share", s.redeemShare)
	r.Get("/places/search", s.searchPlaces)

	return r
}
