package logsvc

import (
	"io"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
	"github.com/sirupsen/logrus"

	"github.com/saraswati/sdms/core"
	"github.com/saraswati/sdms/core/user"
)

// RollbarLogger writes structured entries through logrus and forwards them to Rollbar when a token is
// configured. Args may be errors, map[string]interface{} extras and one user.Session.
type RollbarLogger struct {
	std *logrus.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(out io.Writer, conf *core.Config) *RollbarLogger {
	std := logrus.New()
	std.SetOutput(out)
	if conf.Debug {
		std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		std.SetFormatter(&logrus.JSONFormatter{})
	}
	if lvl, err := logrus.ParseLevel(conf.LogLevel); err == nil {
		std.SetLevel(lvl)
	}

	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetEnabled(conf.RollbarToken != "" && !conf.TestMode)
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// split turns args into the rollbar arguments (msg first, sessions removed) and the logrus entry.
func (l RollbarLogger) split(msg string, args []interface{}) ([]interface{}, *logrus.Entry, *user.Session) {
	var sess *user.Session
	rbArgs := []interface{}{msg}
	e := logrus.NewEntry(l.std)
	for _, arg := range args {
		switch a := arg.(type) {
		case user.Session:
			if sess == nil {
				sess = &a
				e = e.WithField("user", a.UserID)
			}
			continue
		case error:
			e = e.WithError(a)
		case map[string]interface{}:
			e = e.WithFields(a)
		default:
			e = e.WithField("extra", a)
		}
		rbArgs = append(rbArgs, arg)
	}
	return rbArgs, e, sess
}

func (l RollbarLogger) log(level logrus.Level, report func(...interface{}), msg string, args []interface{}) {
	if !l.std.IsLevelEnabled(level) {
		return
	}
	rbArgs, e, sess := l.split(msg, args)
	if sess != nil {
		rollbar.SetPerson(sess.UserID, sess.Name, "")
	} else {
		rollbar.ClearPerson()
	}
	report(rbArgs...)
	e.Log(level, msg)
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	l.log(logrus.DebugLevel, rollbar.Debug, msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	l.log(logrus.InfoLevel, rollbar.Info, msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	l.log(logrus.WarnLevel, rollbar.Warning, msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	l.log(logrus.ErrorLevel, rollbar.Error, msg, args)
}

// Fatal waits for Rollbar to flush then exits.
func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log(logrus.FatalLevel, rollbar.Critical, msg, args)
	rollbar.Wait()
	l.std.Exit(1)
}
