package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"collegems/internal/admins"
	"collegems/internal/attendance"
	"collegems/internal/auth"
	"collegems/internal/config"
	"collegems/internal/faculty"
	"collegems/internal/handler"
	"collegems/internal/httpmiddleware"
	"collegems/internal/media"
	"collegems/internal/reports"
	"collegems/internal/store"
	"collegems/internal/students"
	"collegems/internal/subjects"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	db, err := store.NewMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Close(ctx)
	}()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := db.EnsureIndexes(ctx); err != nil {
			cancel()
			return err
		}
		cancel()
	}

	redisClient := store.NewRedis(cfg.RedisAddr)

	mediaStore, err := media.NewStorage(cfg.MediaDir)
	if err != nil {
		return err
	}

	creds := auth.NewCredentials(db)
	studentRepo := students.NewRepository(db)
	studentSvc := students.NewService(studentRepo, creds)
	attendanceRepo := attendance.NewRepository(db)
	attendanceSvc := attendance.NewService(attendanceRepo, studentRepo)
	reportSvc := reports.NewService(attendanceRepo, studentRepo, redisClient, cfg.ReportCacheTTL)
	facultySvc := faculty.NewService(faculty.NewRepository(db))
	adminRepo := admins.NewRepository(db)
	subjectSvc := subjects.NewService(db)

	h := handler.New(
		attendanceSvc, reportSvc, studentSvc, facultySvc, adminRepo, subjectSvc,
		creds, mediaStore,
		cfg.JWTIssuer, cfg.JWTSigningKey, cfg.AccessTTL, cfg.RefreshTTL,
	)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           24 * time.Hour,
	}))
	r.Use(securityHeaders())
	r.Use(httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin).GinMiddleware())
	r.Use(httpmiddleware.Metrics())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		dbHealthy := db.Healthy(c.Request.Context())
		redisHealthy := redisClient.Healthy(c.Request.Context())
		status := http.StatusOK
		if !dbHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "db": dbHealthy, "redis": redisHealthy})
	})

	r.Static("/media", mediaStore.Dir())

	staff := auth.RequireRole(cfg.JWTSigningKey, cfg.JWTIssuer, auth.RoleFaculty, auth.RoleAdmin)
	adminOnly := auth.RequireRole(cfg.JWTSigningKey, cfg.JWTIssuer, auth.RoleAdmin)
	anyUser := auth.RequireRole(cfg.JWTSigningKey, cfg.JWTIssuer)

	api := r.Group("/api")

	att := api.Group("/attendance")
	{
		att.POST("/mark", staff, h.MarkAttendance)
		att.GET("/students/:branch/:semester", staff, h.StudentsForAttendance)
		att.GET("/records", staff, h.AttendanceRecords)
		att.GET("/student", anyUser, h.StudentAttendance)
	}

	rep := api.Group("/reports", staff)
	{
		rep.GET("/attendance", h.AttendanceReport)
		rep.GET("/attendance/student", h.StudentReport)
		rep.GET("/attendance/export", h.ExportAttendanceReport)
	}

	student := api.Group("/student")
	{
		student.POST("/auth/login", h.Login(auth.RoleStudent))
		student.POST("/auth/register", adminOnly, h.Register(auth.RoleStudent))
		student.PUT("/auth/update/:id", adminOnly, h.UpdateCredential(auth.RoleStudent))
		student.DELETE("/auth/delete/:id", adminOnly, h.DeleteCredential(auth.RoleStudent))

		student.POST("/details/getDetails", anyUser, h.GetStudentDetails)
		student.POST("/details/addDetails", adminOnly, h.AddStudentDetails)
		student.POST("/details/addMultiple", adminOnly, h.AddMultipleStudents)
		student.PUT("/details/updateDetails/:id", adminOnly, h.UpdateStudentDetails)
		student.DELETE("/details/deleteDetails/:id", adminOnly, h.DeleteStudentDetails)
		student.GET("/details/count", staff, h.CountStudents)

		student.POST("/excel/import", adminOnly, h.ImportStudents)
	}

	fac := api.Group("/faculty")
	{
		fac.POST("/auth/login", h.Login(auth.RoleFaculty))
		fac.POST("/auth/register", adminOnly, h.Register(auth.RoleFaculty))
		fac.PUT("/auth/update/:id", adminOnly, h.UpdateCredential(auth.RoleFaculty))
		fac.DELETE("/auth/delete/:id", adminOnly, h.DeleteCredential(auth.RoleFaculty))

		fac.POST("/details/getDetails", anyUser, h.GetFacultyDetails)
		fac.POST("/details/addDetails", adminOnly, h.AddFacultyDetails)
		fac.PUT("/details/updateDetails/:id", adminOnly, h.UpdateFacultyDetails)
		fac.DELETE("/details/deleteDetails/:id", adminOnly, h.DeleteFacultyDetails)
		fac.GET("/details/count", staff, h.CountFaculty)
	}

	admin := api.Group("/admin")
	{
		admin.POST("/auth/login", h.Login(auth.RoleAdmin))
		admin.POST("/auth/register", adminOnly, h.Register(auth.RoleAdmin))
		admin.PUT("/auth/update/:id", adminOnly, h.UpdateCredential(auth.RoleAdmin))
		admin.DELETE("/auth/delete/:id", adminOnly, h.DeleteCredential(auth.RoleAdmin))

		admin.POST("/details/getDetails", adminOnly, h.GetAdminDetails)
		admin.PUT("/details/updateDetails/:id", adminOnly, h.UpdateAdminDetails)
		admin.DELETE("/details/deleteDetails/:id", adminOnly, h.DeleteAdminDetails)
	}

	sub := api.Group("/subject")
	{
		sub.GET("/getSubject", anyUser, h.GetSubjects)
		sub.GET("/getSubjectsByBranchAndSemester", anyUser, h.GetSubjectsByBranchAndSemester)
		sub.POST("/addSubject", adminOnly, h.AddSubject)
		sub.DELETE("/deleteSubject/:id", adminOnly, h.DeleteSubject)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
