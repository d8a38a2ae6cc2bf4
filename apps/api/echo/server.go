package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/mensahq/sukuu/core"
	"github.com/mensahq/sukuu/core/claim"
	"github.com/mensahq/sukuu/core/otp"
	"github.com/mensahq/sukuu/core/sba"
	"github.com/mensahq/sukuu/core/smstpl"
	"github.com/mensahq/sukuu/core/staff"
	"github.com/mensahq/sukuu/core/student"
)

type (
	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		Validate       *validator.Validate
		Translator     ut.Translator
		DisableReqLogs bool

		StudentSvc  *student.Service
		ClaimSvc    *claim.Service
		StaffSvc    *staff.Service
		SBASvc      *sba.Service
		TemplateSvc *smstpl.Service
		OTPSvc      *otp.Service
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	registerStudentAPI(v1, s.deps.StudentSvc)
	registerClaimAPI(v1, s.deps.ClaimSvc, s.deps.Validate)
	registerStaffAPI(v1, s.deps.StaffSvc, s.deps.Validate)
	registerSBAAPI(v1, s.deps.SBASvc, s.deps.Validate)
	registerVerifyAPI(v1, s.deps.OTPSvc, s.deps.ClaimSvc)
	registerTemplateAPI(v1, s.deps.TemplateSvc)
}

func (s *Server) Start() {
	s.errors <- s.app.Start(s.deps.Conf.Address())
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Sukuu API!")
}
