package logger

import (
	"time"

	"go.uber.org/zap"
)

// RequestID is the request correlation id field.
func RequestID(v string) zap.Field { return zap.String("request_id", v) }

// Method is the HTTP method field.
func Method(v string) zap.Field { return zap.String("method", v) }

// Path is the HTTP path field.
func Path(v string) zap.Field { return zap.String("path", v) }

// Status is the HTTP status field.
func Status(v int) zap.Field { return zap.Int("status", v) }

// Duration is the elapsed time field.
func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

// UserID identifies the acting user. Never log e-mails or CPFs raw.
func UserID(v string) zap.Field { return zap.String("user_id", v) }

// Component names the emitting subsystem.
func Component(v string) zap.Field { return zap.String("component", v) }

// Op names the operation in progress.
func Op(v string) zap.Field { return zap.String("op", v) }

// Entity is the record id an entry refers to.
func Entity(v string) zap.Field { return zap.String("entity_id", v) }
