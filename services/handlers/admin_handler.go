package handlers

import (
	"crypto/subtle"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lac-hong-legacy/ven_growth/shared"
)

type AdminHandler struct {
	orchestratorSvc OrchestratorServiceInterface
	archiveSvc      ArchiveServiceInterface
	adminToken      string
}

func NewAdminHandler(orchestratorSvc OrchestratorServiceInterface, archiveSvc ArchiveServiceInterface, adminToken string) *AdminHandler {
	return &AdminHandler{
		orchestratorSvc: orchestratorSvc,
		archiveSvc:      archiveSvc,
		adminToken:      adminToken,
	}
}

// RequireAdminToken rejects requests whose X-Admin-Token header does not match. With no
// token configured every admin route is forbidden.
func (h *AdminHandler) RequireAdminToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if h.adminToken == "" {
			return shared.ResponseForbidden(c)
		}

		token := c.Get(shared.AdminTokenHeader)
		if subtle.ConstantTimeCompare([]byte(token), []byte(h.adminToken)) != 1 {
			return shared.NewUnauthorizedError(nil, "Invalid admin token")
		}
		return c.Next()
	}
}

// @Summary Reset tracking (Admin)
// @Description Clear throttle counters, cooldowns, milestone markers, balances and the in-memory logs
// @Tags admin
// @Produce json
// @Param X-Admin-Token header string true "Admin token"
// @Success 200 {object} shared.Response
// @Router /api/v1/orchestrator/reset [post]
func (h *AdminHandler) ResetTracking(c *fiber.Ctx) error {
	if err := h.orchestratorSvc.ResetTracking(c.UserContext()); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Tracking reset", nil)
}

// @Summary Export funnel archive (Admin)
// @Description Upload one day of funnel events as JSON lines to object storage
// @Tags admin
// @Produce json
// @Param X-Admin-Token header string true "Admin token"
// @Param day query string false "Day to export, YYYY-MM-DD (default yesterday)"
// @Success 200 {object} shared.Response{data=dto.ArchiveExportResponse}
// @Router /api/v1/admin/archive [post]
func (h *AdminHandler) ExportArchive(c *fiber.Ctx) error {
	if !h.archiveSvc.Enabled() {
		return shared.ResponseJSON(c, fiber.StatusServiceUnavailable, "Funnel archive disabled", nil)
	}

	day := time.Now().AddDate(0, 0, -1)
	if raw := c.Query("day"); raw != "" {
		parsed, err := time.Parse(shared.DateLayout, raw)
		if err != nil {
			return shared.ResponseBadRequest(c, "day must be formatted YYYY-MM-DD")
		}
		day = parsed
	}

	resp, err := h.archiveSvc.ExportDay(c.UserContext(), day)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}
