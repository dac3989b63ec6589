package httpapi

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"task-manager/internal/model"
	"task-manager/internal/service"
)

const requestTimeout = 5 * time.Second

// Credentials registers and authenticates users.
type Credentials interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
}

// Tokens issues and verifies bearer tokens.
type Tokens interface {
	TokenVerifier
	Issue(userID string) (string, error)
}

// Tasks is the owner-scoped task API the handlers call into.
type Tasks interface {
	CreateTask(ctx context.Context, ownerID uuid.UUID, input service.TaskInput) (*model.Task, error)
	ListTasks(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*model.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, patch service.TaskPatch) (*model.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error
}

// Server routes the JSON API.
type Server struct {
	credentials Credentials
	tokens      Tokens
	tasks       Tasks
	db          DBPinger
	logger      *log.Logger
	handler     http.Handler
}

func NewServer(credentials Credentials, tokens Tokens, tasks Tasks, db DBPinger, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		credentials: credentials,
		tokens:      tokens,
		tasks:       tasks,
		db:          db,
		logger:      logger,
	}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)

	// Registration and login stay outside the auth gate.
	authRoutes := router.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)

	taskRoutes := router.PathPrefix("/tasks").Subrouter()
	taskRoutes.Use(RequireAuth(tokens, logger))
	for _, root := range []string{"", "/"} {
		taskRoutes.HandleFunc(root, s.handleCreateTask).Methods(http.MethodPost)
		taskRoutes.HandleFunc(root, s.handleListTasks).Methods(http.MethodGet)
	}
	taskRoutes.HandleFunc("/{id}", s.handleGetTask).Methods(http.MethodGet)
	taskRoutes.HandleFunc("/{id}", s.handleUpdateTask).Methods(http.MethodPut)
	taskRoutes.HandleFunc("/{id}", s.handleDeleteTask).Methods(http.MethodDelete)

	s.handler = withRequestID(withLogging(logger)(withTimeout(requestTimeout)(router)))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
