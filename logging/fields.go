package logging

import "context"

// Field represents a log field that can be added to a log entry.
type Field interface {
	Apply(entry *LogEntry)
}

type fieldFunc func(*LogEntry)

func (f fieldFunc) Apply(entry *LogEntry) {
	f(entry)
}

func RequestID(id string) Field {
	return fieldFunc(func(e *LogEntry) { e.RequestID = id })
}

func SessionID(id string) Field {
	return fieldFunc(func(e *LogEntry) { e.SessionID = id })
}

func MsgType(msgType string) Field {
	return fieldFunc(func(e *LogEntry) { e.MsgType = msgType })
}

func SeqNum(seq int) Field {
	return fieldFunc(func(e *LogEntry) { e.SeqNum = seq })
}

func Tag(tag int) Field {
	return fieldFunc(func(e *LogEntry) { e.Tag = tag })
}

func Component(component string) Field {
	return fieldFunc(func(e *LogEntry) { e.Component = component })
}

func Duration(ms float64) Field {
	return fieldFunc(func(e *LogEntry) { e.Duration = ms })
}

func String(key, value string) Field {
	return fieldFunc(func(e *LogEntry) {
		if e.Extra == nil {
			e.Extra = make(map[string]interface{})
		}
		e.Extra[key] = value
	})
}

func Int(key string, value int) Field {
	return fieldFunc(func(e *LogEntry) {
		if e.Extra == nil {
			e.Extra = make(map[string]interface{})
		}
		e.Extra[key] = value
	})
}

func Int64(key string, value int64) Field {
	return fieldFunc(func(e *LogEntry) {
		if e.Extra == nil {
			e.Extra = make(map[string]interface{})
		}
		e.Extra[key] = value
	})
}

func Float64(key string, value float64) Field {
	return fieldFunc(func(e *LogEntry) {
		if e.Extra == nil {
			e.Extra = make(map[string]interface{})
		}
		e.Extra[key] = value
	})
}

func Bool(key string, value bool) Field {
	return fieldFunc(func(e *LogEntry) {
		if e.Extra == nil {
			e.Extra = make(map[string]interface{})
		}
		e.Extra[key] = value
	})
}

func Any(key string, value interface{}) Field {
	return fieldFunc(func(e *LogEntry) {
		if e.Extra == nil {
			e.Extra = make(map[string]interface{})
		}
		e.Extra[key] = value
	})
}

// Context keys for storing correlation values in context.
type contextKey string

const (
	requestIDKey contextKey = "request_id"
	sessionIDKey contextKey = "session_id"
)

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func ContextWithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

func FieldsFromContext(ctx context.Context) []Field {
	var fields []Field

	if requestID, ok := ctx.Value(requestIDKey).(string); ok && requestID != "" {
		fields = append(fields, RequestID(requestID))
	}
	if sessionID, ok := ctx.Value(sessionIDKey).(string); ok && sessionID != "" {
		fields = append(fields, SessionID(sessionID))
	}

	return fields
}
