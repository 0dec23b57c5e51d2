// Package http provides http transport for facilities
package http

import (
	stdhttp "net/http"

	"facilities/internal/core/facility"
	"facilities/internal/modkit/httpkit"
	"facilities/internal/platform/logger"
	"facilities/internal/platform/net/middleware"
	svc "facilities/internal/services/facilities/service"
)

// UploadInput is the admin upload body
type UploadInput struct {
	Facilities []facility.Payload `json:"facilities" validate:"required,min=1,max=50000"`
}

// uploadLimit caps upload bodies; a full snapshot runs to tens of megabytes
const uploadLimit = 64 << 20

// Register mounts facilities endpoints on the given router. A nil auth port leaves them open
func Register(r httpkit.Router, s svc.Service, auth middleware.AuthPort) {
	h := &handlers{svc: s}

	httpkit.Protected(r, auth, func(pr httpkit.Router) {
		// reconciliation
		httpkit.Post(pr, "/reload", h.reload)
		httpkit.GetJSON(pr, "/reload/last", h.lastReport)
		httpkit.PostJSON[UploadInput](pr, "/upload", h.upload, httpkit.BindOptions{MaxBytes: uploadLimit})

		// single facility admin
		httpkit.GetJSON(pr, "/{id}", h.lookup)
		httpkit.Delete(pr, "/{id}", h.delete)
	})
}

type handlers struct{ svc svc.Service }

// swagger:route POST /facilities/reload Facilities facilitiesReload
// @Summary Run a reconciliation cycle now
// @Tags Facilities
// @Produce json
// @Security BearerAuth
// @Success 200 {object} report.Report "ok"
// @Failure 409 {object} swaggerkit.ErrorResponse "reload already in progress"
// @Failure 503 {object} swaggerkit.ErrorResponse "upstream unavailable"
// @Router /facilities/reload [post]
func (h *handlers) reload(r *stdhttp.Request) (any, error) {
	logger.C(r.Context()).Info().Str("actor", httpkit.Actor(r)).Msg("reload requested")
	return h.svc.Reload(r.Context())
}

// swagger:route GET /facilities/reload/last Facilities facilitiesLastReport
// @Summary Most recent reload or upload report of this instance
// @Tags Facilities
// @Produce json
// @Security BearerAuth
// @Success 200 {object} report.Report "ok"
// @Failure 404 {object} swaggerkit.ErrorResponse "no report yet"
// @Router /facilities/reload/last [get]
func (h *handlers) lastReport(_ *stdhttp.Request) (any, error) {
	rep, ok := h.svc.LastReport()
	if !ok {
		return nil, errNoReport
	}
	return rep, nil
}

// swagger:route POST /facilities/upload Facilities facilitiesUpload
// @Summary Reconcile an uploaded batch without a missing sweep
// @Tags Facilities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body UploadInput true "Facilities"
// @Success 200 {object} report.Report "ok"
// @Failure 409 {object} swaggerkit.ErrorResponse "reload already in progress"
// @Router /facilities/upload [post]
func (h *handlers) upload(r *stdhttp.Request, in UploadInput) (any, error) {
	logger.C(r.Context()).Info().Str("actor", httpkit.Actor(r)).Int("facilities", len(in.Facilities)).Msg("upload requested")
	return h.svc.Upload(r.Context(), in.Facilities)
}

// swagger:route GET /facilities/{id} Facilities facilitiesLookup
// @Summary Lifecycle state of one facility
// @Tags Facilities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Facility id, e.g. vha_402GA"
// @Success 200 {object} domain.LifecycleView "ok"
// @Failure 422 {object} swaggerkit.ErrorResponse "malformed facility id"
// @Router /facilities/{id} [get]
func (h *handlers) lookup(r *stdhttp.Request) (any, error) {
	id, err := facility.ParseID(httpkit.Param(r, "id"))
	if err != nil {
		return nil, err
	}
	return h.svc.Lookup(r.Context(), id)
}

// swagger:route DELETE /facilities/{id} Facilities facilitiesDelete
// @Summary Delete a facility from the active and tombstone stores
// @Tags Facilities
// @Security BearerAuth
// @Param id path string true "Facility id"
// @Success 204 "deleted"
// @Failure 404 {object} swaggerkit.ErrorResponse "not found"
// @Failure 409 {object} swaggerkit.ErrorResponse "facility carries curated overlay data"
// @Failure 503 {object} swaggerkit.ErrorResponse "reload in progress, retry later"
// @Router /facilities/{id} [delete]
func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	id, err := facility.ParseID(httpkit.Param(r, "id"))
	if err != nil {
		return nil, err
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return nil, err
	}
	logger.C(r.Context()).Info().Str("actor", httpkit.Actor(r)).Str("facility_id", id.String()).Msg("facility deleted")
	return httpkit.NoContent(), nil
}
