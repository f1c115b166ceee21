package main

import "go.uber.org/zap"

// zapLogger adapts the global sugared zap logger to the calculation
// engine's Logger interface.
type zapLogger struct{}

func (zapLogger) Debugf(format string, args ...any) { zap.S().Debugf(format, args...) }
func (zapLogger) Infof(format string, args ...any)  { zap.S().Infof(format, args...) }
func (zapLogger) Warnf(format string, args ...any)  { zap.S().Warnf(format, args...) }
func (zapLogger) Errorf(format string, args ...any) { zap.S().Errorf(format, args...) }
