package reminder

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zankoclinic/clinic-api/internal/handler"
	"github.com/zankoclinic/clinic-api/internal/service/reminder"
)

type Handler struct {
	service *reminder.Service
}

func NewHandler(service *reminder.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the clinic-wide reminder feed.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Upcoming)
	rg.GET("/due", h.Due)
}

// RegisterDoctorRoutes mounts the doctor-scoped feed where :id is the
// doctor.
func (h *Handler) RegisterDoctorRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id/reminders", h.UpcomingForDoctor)
	rg.GET("/:id/reminders/due", h.DueForDoctor)
}

func (h *Handler) Upcoming(c *gin.Context) {
	reminders, err := h.service.Upcoming(c.Request.Context(), nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list reminders"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(reminders))
}

// Due flags and returns every reminder that has come due. Each reminder
// is handed out exactly once, so concurrent pollers never double-notify.
func (h *Handler) Due(c *gin.Context) {
	reminders, err := h.service.ResolveDue(c.Request.Context(), nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to resolve due reminders"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(reminders))
}

func (h *Handler) UpcomingForDoctor(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	reminders, err := h.service.Upcoming(c.Request.Context(), &doctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list reminders"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(reminders))
}

func (h *Handler) DueForDoctor(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	reminders, err := h.service.ResolveDue(c.Request.Context(), &doctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to resolve due reminders"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(reminders))
}
