package log

import (
	pionlog "github.com/pion/logging"
	"gopkg.in/op/go-logging.v1"
)

type factory struct {
	b *Backend
}

func (f *factory) NewLogger(scope string) pionlog.LeveledLogger {
	return &leveled{l: f.b.GetLogger(scope)}
}

// leveled maps pion levels onto go-logging. Trace has no counterpart and is
// folded into DEBUG.
type leveled struct {
	l *logging.Logger
}

func (p *leveled) Trace(msg string)                  { p.l.Debug(msg) }
func (p *leveled) Tracef(format string, args ...any) { p.l.Debugf(format, args...) }
func (p *leveled) Debug(msg string)                  { p.l.Debug(msg) }
func (p *leveled) Debugf(format string, args ...any) { p.l.Debugf(format, args...) }
func (p *leveled) Info(msg string)                   { p.l.Info(msg) }
func (p *leveled) Infof(format string, args ...any)  { p.l.Infof(format, args...) }
func (p *leveled) Warn(msg string)                   { p.l.Warning(msg) }
func (p *leveled) Warnf(format string, args ...any)  { p.l.Warningf(format, args...) }
func (p *leveled) Error(msg string)                  { p.l.Error(msg) }
func (p *leveled) Errorf(format string, args ...any) { p.l.Errorf(format, args...) }

var _ pionlog.LeveledLogger = (*leveled)(nil)
