package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/teamflow/teamflow-backend/internal/auth/token"
	"github.com/teamflow/teamflow-backend/internal/database/migrations"
	directoryevents "github.com/teamflow/teamflow-backend/internal/directory/events"
	directoryhandler "github.com/teamflow/teamflow-backend/internal/directory/handler"
	directoryrepo "github.com/teamflow/teamflow-backend/internal/directory/repository"
	directoryservice "github.com/teamflow/teamflow-backend/internal/directory/service"
	hrhandler "github.com/teamflow/teamflow-backend/internal/hr/handler"
	hrrepo "github.com/teamflow/teamflow-backend/internal/hr/repository"
	hrservice "github.com/teamflow/teamflow-backend/internal/hr/service"
	okrhandler "github.com/teamflow/teamflow-backend/internal/okr/handler"
	okrrepo "github.com/teamflow/teamflow-backend/internal/okr/repository"
	okrservice "github.com/teamflow/teamflow-backend/internal/okr/service"
	workspaceevents "github.com/teamflow/teamflow-backend/internal/workspace/events"
	workspacehandler "github.com/teamflow/teamflow-backend/internal/workspace/handler"
	workspacerepo "github.com/teamflow/teamflow-backend/internal/workspace/repository"
	workspaceservice "github.com/teamflow/teamflow-backend/internal/workspace/service"
	"github.com/teamflow/teamflow-backend/pkg/config"
	"github.com/teamflow/teamflow-backend/pkg/database"
	"github.com/teamflow/teamflow-backend/pkg/httputil"
	"github.com/teamflow/teamflow-backend/pkg/logger"
	"github.com/teamflow/teamflow-backend/pkg/messaging"
)

func main() {
	// Load configuration
	cfg, err := config.Load("crm-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("crm-service", cfg.Server.Environment)
	log.Info().Msg("starting CRM Service")

	// Connect to database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	if err := migrations.Up(db.DB.DB); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to RabbitMQ
	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rmq.Close()

	// Initialize event publishers
	directoryPublisher, err := directoryevents.NewDirectoryEventPublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create directory event publisher")
	}
	workspacePublisher, err := workspaceevents.NewWorkspaceEventPublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create workspace event publisher")
	}

	// Token manager
	tokens := token.NewManager(&cfg.JWT)

	// Directory
	userRepo := directoryrepo.NewUserRepository(db)
	profileRepo := directoryrepo.NewProfileRepository(db)
	clientRepo := directoryrepo.NewClientRepository(db)
	deptRepo := directoryrepo.NewDepartmentRepository(db)
	roleRepo := directoryrepo.NewRoleRepository(db)
	directoryService := directoryservice.NewDirectoryService(
		userRepo, profileRepo, clientRepo, deptRepo, roleRepo, directoryPublisher, log)
	authHandler := directoryhandler.NewAuthHandler(directoryService, tokens, log)
	userHandler := directoryhandler.NewUserHandler(directoryService, log)
	clientHandler := directoryhandler.NewClientHandler(directoryService, log)
	deptHandler := directoryhandler.NewDepartmentHandler(directoryService, log)

	// Workspace
	eventRepo := workspacerepo.NewEventRepository(db)
	meetingRepo := workspacerepo.NewMeetingRepository(db)
	docRepo := workspacerepo.NewDocumentRepository(db)
	taskRepo := workspacerepo.NewTaskRepository(db)
	userLookup := workspacerepo.NewUserLookup(db)
	workspaceService := workspaceservice.NewWorkspaceService(
		eventRepo, meetingRepo, docRepo, taskRepo, userLookup, workspacePublisher, log)
	eventHandler := workspacehandler.NewEventHandler(workspaceService, log)
	meetingHandler := workspacehandler.NewMeetingHandler(workspaceService, log)
	docHandler := workspacehandler.NewDocumentHandler(workspaceService, log)
	taskHandler := workspacehandler.NewTaskHandler(workspaceService, log)
	managerHandler := workspacehandler.NewManagerHandler(workspaceService, log)

	// HR
	hrService := hrservice.NewHRService(
		hrrepo.NewEmployeeRepository(db),
		hrrepo.NewHRFileRepository(db),
		hrrepo.NewLeaveRepository(db),
		hrrepo.NewTimesheetRepository(db),
		hrrepo.NewPayslipRepository(db),
		hrrepo.NewReviewRepository(db),
		hrrepo.NewExpenseRepository(db),
		hrrepo.NewNoteRepository(db),
		hrrepo.NewPolicyRepository(db),
		log)
	recordsHandler := hrhandler.NewRecordsHandler(hrService, log)
	personalHandler := hrhandler.NewPersonalHandler(hrService, log)

	// OKR
	okrService := okrservice.NewOKRService(
		db, okrrepo.NewObjectiveRepository(db), okrrepo.NewOKRTaskRepository(db), log)
	okrHandler := okrhandler.NewOKRHandler(okrService, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-User-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"service":  "crm-service",
			"database": db.Health(r.Context()),
			"rabbitmq": rmq.Health(),
		})
	})

	// API endpoints
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httputil.Identity(tokens))

		r.Post("/auth/login", authHandler.Login)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Post("/", userHandler.Create)
			r.Get("/{id}", userHandler.Get)
			r.Delete("/{id}", userHandler.Delete)
			r.Get("/{id}/profile", userHandler.GetProfile)
			r.Put("/{id}/profile", userHandler.UpsertProfile)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", clientHandler.List)
			r.Post("/", clientHandler.Create)
		})

		r.Route("/departments", func(r chi.Router) {
			r.Get("/", deptHandler.List)
			r.Post("/", deptHandler.Create)
		})
		r.Route("/roles", func(r chi.Router) {
			r.Get("/", deptHandler.ListRoles)
			r.Post("/", deptHandler.CreateRole)
			r.Get("/{id}/members", deptHandler.ListRoleMembers)
			r.Post("/{id}/members", deptHandler.AddRoleMember)
		})

		r.Route("/calendar/events", func(r chi.Router) {
			r.Get("/", eventHandler.List)
			r.Post("/", eventHandler.Create)
		})

		r.Route("/meetings", func(r chi.Router) {
			r.Get("/", meetingHandler.List)
			r.Post("/", meetingHandler.Create)
		})

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", docHandler.List)
			r.Post("/", docHandler.Create)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)
		})

		r.Route("/manager", func(r chi.Router) {
			r.Get("/dashboard", managerHandler.Dashboard)
			r.Get("/team_members", managerHandler.TeamMembers)
			r.Get("/team_tasks", managerHandler.TeamTasks)
		})

		r.Route("/hr", func(r chi.Router) {
			r.Get("/settings", recordsHandler.GetSettings)
			r.Get("/employee_records", recordsHandler.ListEmployeeRecords)
			r.Get("/payroll_records", recordsHandler.ListPayrollRecords)
			r.Get("/policies", recordsHandler.ListPolicies)
			r.Post("/policies", recordsHandler.CreatePolicy)
			r.Get("/leave_records", recordsHandler.ListLeave)
			r.Post("/leave_records", recordsHandler.CreateLeave)
			r.Get("/timesheets", recordsHandler.ListTimesheets)
			r.Post("/timesheets", recordsHandler.CreateTimesheet)
			r.Get("/payslips", recordsHandler.ListPayslips)
			r.Post("/payslips", recordsHandler.CreatePayslip)
			r.Get("/reviews", recordsHandler.ListReviews)
			r.Post("/reviews", recordsHandler.CreateReview)
			r.Get("/expenses", recordsHandler.ListExpenses)
			r.Post("/expenses", recordsHandler.CreateExpense)
			r.Get("/notes", recordsHandler.ListNotes)
			r.Post("/notes", recordsHandler.CreateNote)
		})

		r.Route("/personal", func(r chi.Router) {
			r.Get("/tasks", taskHandler.ListPersonal)
			r.Get("/hr_file", personalHandler.GetHRFile)
			r.Put("/hr_file", personalHandler.UpsertHRFile)
			r.Get("/leave_records", personalHandler.ListLeave)
			r.Get("/timesheets", personalHandler.ListTimesheets)
			r.Get("/payslips", personalHandler.ListPayslips)
			r.Get("/reviews", personalHandler.ListReviews)
			r.Get("/expenses", personalHandler.ListExpenses)
			r.Get("/notes", personalHandler.ListNotes)
		})

		r.Route("/okr", func(r chi.Router) {
			r.Get("/objectives", okrHandler.ListObjectives)
			r.Post("/objectives", okrHandler.CreateObjective)
			r.Get("/tasks", okrHandler.ListTasks)
			r.Post("/tasks", okrHandler.CreateTask)
			r.Get("/dashboard", okrHandler.Dashboard)
		})
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
