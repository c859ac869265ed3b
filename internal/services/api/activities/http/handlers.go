// Package http serves the activity catalog
package http

import (
	"net/http"

	"bukatsu/internal/modkit/httpkit"
	"bukatsu/internal/services/api/activities/domain"
)

// Register mounts the activities routes
func Register(r httpkit.Router) {
	httpkit.Get(r, "/", list)
}

// swagger:route GET /activities Activities activitiesList
// @Summary Activity catalog in display order
// @Tags Activities
// @Produce json
// @Success 200 {array} domain.Activity ok
// @Router /activities [get]
func list(_ *http.Request) (any, error) {
	return domain.All(), nil
}
