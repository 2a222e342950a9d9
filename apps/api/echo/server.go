package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/saraswati/sdms/apps"
	"github.com/saraswati/sdms/core"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		Services       *apps.Services
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		conf *core.Config
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		conf: opts.Services.Conf,
		app:  echo.New(),
	}
	if s.opts.Address == "" {
		s.opts.Address = s.conf.Server.Address()
	}
	s.setup()
	return s
}

// maxBodySize bounds request bodies; forms are small and uploads are not accepted.
const maxBodySize = "1M"

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Services.Logger)
	s.app.Debug = s.conf.Debug && !s.conf.TestMode

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.BodyLimit(maxBodySize))
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// panics surface in DEV|TEST mode
	if !s.conf.Debug && !s.conf.TestMode {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.routes()
}

func (s *server) routes() {
	svcs := s.opts.Services
	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(jwtConfig(s.conf))

	registerUserAPI(v1, jwt, s.conf, svcs.User)
	registerCatalogAPI(v1, jwt, svcs.Catalog)
	registerStudentAPI(v1, jwt, svcs)
	registerAcademicAPI(v1, jwt, svcs.Academic)
	registerFinanceAPI(v1, jwt, svcs.Finance)
	registerReportAPI(v1, jwt, svcs.Report)
	registerFeedbackAPI(v1, jwt, svcs.Feedback)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.conf.College.Name+" "+s.conf.AppName+" API!")
}
