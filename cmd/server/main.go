package main

import (
	"log/slog"
	"os"

	"github.com/smp-team-2025/smp-backend/internal/config"
	"github.com/smp-team-2025/smp-backend/internal/database"
	"github.com/smp-team-2025/smp-backend/internal/handlers"
	"github.com/smp-team-2025/smp-backend/internal/logger"
	"github.com/smp-team-2025/smp-backend/internal/mail"
	"github.com/smp-team-2025/smp-backend/internal/middleware"
	"github.com/smp-team-2025/smp-backend/internal/services"
	"github.com/smp-team-2025/smp-backend/internal/ws"

	_ "github.com/smp-team-2025/smp-backend/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           SMP Backend API
// @version         1.0
// @description     API for the student outreach program: registration, session scheduling, QR attendance, Fermi quizzes and diplomas
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	logger.Setup(os.Stdout, slog.LevelInfo)
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	var mailer mail.Sender
	if cfg.SendgridAPIKey != "" {
		mailer = mail.NewSendgridSender(cfg.SendgridAPIKey, cfg.AppName, cfg.FromEmail)
	} else {
		slog.Warn("SENDGRID_API_KEY not set, emails are logged instead of sent")
		mailer = mail.NewConsoleSender(cfg.AppName)
	}

	hub := ws.NewHub()

	authService := services.NewAuthService(db, cfg.JWTSecret, mailer, cfg.FrontendBaseURL)
	eventService := services.NewEventService(db)
	sessionService := services.NewSessionService(db)
	registrationService := services.NewRegistrationService(db, eventService, mailer)
	attendanceService := services.NewAttendanceService(db)
	zoomImportService := services.NewZoomImportService(db)
	diplomaService := services.NewDiplomaService(db)
	quizService := services.NewQuizService(db)
	hiwiService := services.NewHiwiService(db, mailer)
	announcementService := services.NewAnnouncementService(db)
	userService := services.NewUserService(db)

	authHandler := handlers.NewAuthHandler(authService)
	eventHandler := handlers.NewEventHandler(eventService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService, zoomImportService, hub)
	diplomaHandler := handlers.NewDiplomaHandler(diplomaService)
	quizHandler := handlers.NewQuizHandler(quizService)
	hiwiHandler := handlers.NewHiwiHandler(hiwiService)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	userHandler := handlers.NewUserHandler(userService)
	liveHandler := handlers.NewLiveHandler(hub, sessionService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := middleware.JWTAuth(authService)

	r.GET("/ws/sessions/:sessionId/attendance", auth, middleware.Require("attendance.live"), liveHandler.Attend)

	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/forgot-password", authHandler.ForgotPassword)
		api.POST("/auth/reset-password", authHandler.ResetPassword)

		api.POST("/registrations", registrationHandler.Create)
		api.GET("/events/active", eventHandler.GetActive)
		api.GET("/diplomas/certificate/:certificateNumber", diplomaHandler.VerifyCertificate)

		users := api.Group("/users", auth)
		{
			users.GET("/me", middleware.Require("user.me"), userHandler.Me)
			users.GET("/me/qr", middleware.Require("user.me"), userHandler.MyQRCode)
		}

		events := api.Group("/events", auth)
		{
			events.GET("", middleware.Require("event.read"), eventHandler.List)
			events.GET("/:eventId", middleware.Require("event.read"), eventHandler.Get)
			events.POST("", middleware.Require("event.manage"), eventHandler.Create)
			events.PUT("/:eventId", middleware.Require("event.manage"), eventHandler.Update)
			events.PUT("/:eventId/registration-deadline", middleware.Require("event.manage"), eventHandler.UpdateRegistrationDeadline)
			events.DELETE("/:eventId", middleware.Require("event.manage"), eventHandler.Delete)

			events.GET("/:eventId/sessions", middleware.Require("session.read"), sessionHandler.List)
			events.GET("/:eventId/sessions/:sessionId", middleware.Require("session.read"), sessionHandler.Get)
			events.POST("/:eventId/sessions", middleware.Require("session.manage"), sessionHandler.Create)
			events.PUT("/:eventId/sessions/:sessionId", middleware.Require("session.manage"), sessionHandler.Update)
			events.DELETE("/:eventId/sessions/:sessionId", middleware.Require("session.manage"), sessionHandler.Delete)
		}

		api.GET("/sessions/:sessionId/hiwis", auth, middleware.Require("session.read"), sessionHandler.AssignedHiwis)

		registrations := api.Group("/registrations", auth, middleware.Require("registration.manage"))
		{
			registrations.GET("", registrationHandler.List)
			registrations.GET("/:id", registrationHandler.Get)
			registrations.POST("/:id/approve", registrationHandler.Approve)
			registrations.POST("/:id/reject", registrationHandler.Reject)
			registrations.POST("/approve-all", registrationHandler.ApproveAllPending)
		}
		api.GET("/students", auth, middleware.Require("students.read"), registrationHandler.Students)

		attendance := api.Group("/attendance", auth)
		{
			attendance.POST("/scan", middleware.Require("attendance.scan"), attendanceHandler.Scan)
			attendance.POST("/manual", middleware.Require("attendance.manual"), attendanceHandler.Manual)
			attendance.DELETE("/:attendanceId", middleware.Require("attendance.remove"), attendanceHandler.Remove)
			attendance.GET("/me", middleware.Require("attendance.me"), attendanceHandler.Me)
			attendance.GET("/session/:sessionId", middleware.Require("attendance.read"), attendanceHandler.Session)
			attendance.GET("/export.csv", middleware.Require("attendance.export"), attendanceHandler.ExportCSV)
			attendance.POST("/zoom/upload", middleware.Require("attendance.import"), attendanceHandler.UploadZoomCSV)
			attendance.GET("/zoom/unmatched/:sessionId", middleware.Require("attendance.unmatched"), attendanceHandler.ZoomUnmatched)
		}

		diplomas := api.Group("/diplomas", auth)
		{
			diplomas.POST("/issue", middleware.Require("diploma.issue"), diplomaHandler.Issue)
			diplomas.GET("/check-eligibility/:participantId/:eventId", middleware.Require("diploma.eligibility"), diplomaHandler.CheckEligibility)
			diplomas.GET("/me", middleware.Require("diploma.read"), diplomaHandler.MyDiplomas)
			diplomas.GET("/eligible/:eventId", middleware.Require("diploma.list"), diplomaHandler.ListEligible)
			diplomas.GET("/issued/:eventId", middleware.Require("diploma.list"), diplomaHandler.ListIssued)
			diplomas.GET("/statistics/:eventId", middleware.Require("diploma.list"), diplomaHandler.Statistics)
			diplomas.GET("/:participantId/:eventId", middleware.Require("diploma.read"), diplomaHandler.Get)
			diplomas.DELETE("/:participantId/:eventId", middleware.Require("diploma.revoke"), diplomaHandler.Delete)
		}

		fermi := api.Group("/fermi", auth)
		{
			fermi.GET("/questions", middleware.Require("quiz.manage"), quizHandler.ListQuestions)
			fermi.POST("/questions", middleware.Require("quiz.manage"), quizHandler.CreateQuestion)
			fermi.PUT("/questions/:id", middleware.Require("quiz.manage"), quizHandler.UpdateQuestion)
			fermi.DELETE("/questions/:id", middleware.Require("quiz.manage"), quizHandler.DeleteQuestion)

			fermi.POST("/quizzes", middleware.Require("quiz.manage"), quizHandler.CreateQuiz)
			fermi.PUT("/quizzes/:id", middleware.Require("quiz.manage"), quizHandler.UpdateQuiz)
			fermi.DELETE("/quizzes/:id", middleware.Require("quiz.manage"), quizHandler.DeleteQuiz)
			fermi.GET("/quizzes/session/:sessionId", middleware.Require("quiz.read"), quizHandler.GetBySession)
			fermi.POST("/quizzes/:id/submit", middleware.Require("quiz.submit"), quizHandler.Submit)
			fermi.GET("/quizzes/:id/results", middleware.Require("quiz.manage"), quizHandler.Results)
			fermi.GET("/quizzes/:id/statistics", middleware.Require("quiz.manage"), quizHandler.Statistics)
			fermi.GET("/quizzes/:id/leaderboard", middleware.Require("quiz.read"), quizHandler.Leaderboard)
		}

		hiwis := api.Group("/hiwis", auth)
		{
			hiwis.GET("", middleware.Require("hiwi.manage"), hiwiHandler.List)
			hiwis.POST("", middleware.Require("hiwi.manage"), hiwiHandler.Create)
			hiwis.GET("/:id", middleware.Require("hiwi.manage"), hiwiHandler.Get)
			hiwis.PUT("/:id", middleware.Require("hiwi.manage"), hiwiHandler.Update)
			hiwis.DELETE("/:id", middleware.Require("hiwi.manage"), hiwiHandler.Delete)

			hiwis.POST("/assignments", middleware.Require("hiwi.manage"), hiwiHandler.Assign)
			hiwis.DELETE("/assignments/:id", middleware.Require("hiwi.manage"), hiwiHandler.Unassign)
			hiwis.PUT("/assignments/:id/status", middleware.Require("hiwi.status"), hiwiHandler.UpdateMyStatus)
			hiwis.GET("/assignments/event/:eventId", middleware.Require("hiwi.manage"), hiwiHandler.AssignmentsByEvent)
		}

		announcements := api.Group("/announcements", auth)
		{
			announcements.GET("", middleware.Require("announcement.read"), announcementHandler.List)
			announcements.POST("", middleware.Require("announcement.write"), announcementHandler.Create)
			announcements.PUT("/:id", middleware.Require("announcement.write"), announcementHandler.Update)
			announcements.DELETE("/:id", middleware.Require("announcement.write"), announcementHandler.Delete)
			announcements.POST("/:id/attachments", middleware.Require("announcement.write"), announcementHandler.AttachFile)

			announcements.GET("/:id/comments", middleware.Require("announcement.read"), announcementHandler.ListComments)
			announcements.POST("/:id/comments", middleware.Require("announcement.comment"), announcementHandler.CreateComment)
			announcements.PUT("/comments/:commentId", middleware.Require("announcement.comment"), announcementHandler.UpdateComment)
			announcements.DELETE("/comments/:commentId", middleware.Require("announcement.comment"), announcementHandler.DeleteComment)
		}
	}

	slog.Info("server starting", "port", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
