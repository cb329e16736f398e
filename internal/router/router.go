package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/zankoclinic/clinic-api/internal/handler"
	"github.com/zankoclinic/clinic-api/internal/handler/admin"
	"github.com/zankoclinic/clinic-api/internal/handler/appointment"
	"github.com/zankoclinic/clinic-api/internal/handler/auth"
	"github.com/zankoclinic/clinic-api/internal/handler/doctor"
	"github.com/zankoclinic/clinic-api/internal/handler/orthodontic"
	"github.com/zankoclinic/clinic-api/internal/handler/patient"
	"github.com/zankoclinic/clinic-api/internal/handler/reminder"
	"github.com/zankoclinic/clinic-api/internal/handler/stats"
	"github.com/zankoclinic/clinic-api/internal/middleware"
)

type Handlers struct {
	Auth        *auth.Handler
	Admin       *admin.Handler
	Doctor      *doctor.Handler
	Patient     *patient.Handler
	Appointment *appointment.Handler
	Reminder    *reminder.Handler
	Orthodontic *orthodontic.Handler
	Stats       *stats.Handler
	Health      *handler.Health
}

type Config struct {
	RateLimit  rate.Limit
	RateBurst  int
	CORSConfig middleware.CORSConfig
}

type Router struct {
	engine  *gin.Engine
	auth    *middleware.AuthMiddleware
	h       Handlers
	metrics *routerMetrics
}

func NewRouter(authMW *middleware.AuthMiddleware, h Handlers, config Config) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:  engine,
		auth:    authMW,
		h:       h,
		metrics: initRouterMetrics("clinic_api"),
	}

	engine.Use(
		gin.Recovery(),
		middleware.Logger(),
		r.metricsMiddleware(),
		middleware.RequestID(),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   float64(config.RateLimit),
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api")

	r.setupHealthCheck(api)

	// Public routes: only the login endpoints live outside the session.
	r.h.Auth.RegisterPublicRoutes(api.Group("/auth"))

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.setupProtectedRoutes(protected)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.Health.LivenessCheck)
		health.GET("/ready", r.h.Health.ReadinessCheck)
		health.GET("/metrics", r.h.Health.MetricsHandler)
	}
}

func (r *Router) setupProtectedRoutes(rg *gin.RouterGroup) {
	r.h.Auth.RegisterRoutes(rg.Group("/auth"))

	// Reads are open to any session; every mutation goes through an
	// admin-guarded group below.
	doctors := rg.Group("/doctors")
	r.h.Doctor.RegisterRoutes(doctors)

	patients := rg.Group("/patients")
	r.h.Patient.RegisterRoutes(patients)
	r.h.Appointment.RegisterPatientRoutes(patients)
	r.h.Orthodontic.RegisterPatientRoutes(patients)

	appointments := rg.Group("/appointments")
	r.h.Appointment.RegisterRoutes(appointments)

	// The reminder feed and the due resolver are readable by any session;
	// doctor self-scoping lives on /doctor/:id, not here.
	reminders := rg.Group("/reminders")
	r.h.Reminder.RegisterRoutes(reminders)

	adminGroup := rg.Group("/admin")
	adminGroup.Use(r.auth.RequireAdmin())
	r.h.Stats.RegisterAdminRoutes(adminGroup)

	admins := rg.Group("/admins")
	admins.Use(r.auth.RequireAdmin())
	r.h.Admin.RegisterRoutes(admins)

	doctorAdmin := rg.Group("/doctors")
	doctorAdmin.Use(r.auth.RequireAdmin())
	r.h.Doctor.RegisterAdminRoutes(doctorAdmin)

	patientAdmin := rg.Group("/patients")
	patientAdmin.Use(r.auth.RequireAdmin())
	r.h.Patient.RegisterAdminRoutes(patientAdmin)
	r.h.Orthodontic.RegisterPatientAdminRoutes(patientAdmin)

	appointmentAdmin := rg.Group("/appointments")
	appointmentAdmin.Use(r.auth.RequireAdmin())
	r.h.Appointment.RegisterAdminRoutes(appointmentAdmin)

	orthodonticAdmin := rg.Group("/orthodontics")
	orthodonticAdmin.Use(r.auth.RequireAdmin())
	r.h.Orthodontic.RegisterAdminRoutes(orthodonticAdmin)

	// Doctor-scoped feeds: a doctor can only read their own, admins may
	// read any. :id is the doctor throughout.
	doctorScoped := rg.Group("/doctor")
	doctorScoped.Use(r.auth.RequireSelfDoctor())
	r.h.Reminder.RegisterDoctorRoutes(doctorScoped)
	r.h.Patient.RegisterDoctorRoutes(doctorScoped)
	r.h.Appointment.RegisterDoctorRoutes(doctorScoped)
	r.h.Stats.RegisterDoctorRoutes(doctorScoped)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func initRouterMetrics(prefix string) *routerMetrics {
	m := &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
	prometheus.MustRegister(m.requestDuration, m.requestTotal, m.errorTotal)
	return m
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
