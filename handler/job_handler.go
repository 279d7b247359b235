package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"flyer-ingest/domain"
	"flyer-ingest/port/job_status_port"

	"github.com/labstack/echo/v4"
)

type JobHandler struct {
	jobs   job_status_port.JobStatusPort
	logger *slog.Logger
}

func NewJobHandler(jobs job_status_port.JobStatusPort, logger *slog.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, logger: logger}
}

// HandleGetJob handles GET /v1/jobs/:id.
func (h *JobHandler) HandleGetJob(c echo.Context) error {
	ctx := c.Request().Context()

	jobID := c.Param("id")
	if jobID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Job ID cannot be empty")
	}

	status, err := h.jobs.Get(ctx, jobID)
	if err != nil {
		return h.lookupError(c, err, "job_id", jobID)
	}
	return c.JSON(http.StatusOK, status)
}

// HandleLatestForZip handles GET /v1/zip-codes/:zip/latest-job.
func (h *JobHandler) HandleLatestForZip(c echo.Context) error {
	ctx := c.Request().Context()

	zip, err := domain.SanitizeZipCode(c.Param("zip"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "ZIP code must have five digits")
	}

	status, err := h.jobs.LatestForZip(ctx, zip)
	if err != nil {
		return h.lookupError(c, err, "zip_code", zip)
	}
	return c.JSON(http.StatusOK, status)
}

func (h *JobHandler) lookupError(c echo.Context, err error, key, value string) error {
	if errors.Is(err, domain.ErrJobNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Job not found")
	}
	h.logger.ErrorContext(c.Request().Context(), "job status lookup failed", key, value, "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "Job status unavailable")
}
