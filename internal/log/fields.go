package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldURL       = "url"
	FieldStatus    = "status_code"
	FieldAttempt   = "attempt"
	FieldDuration  = "duration_ms"
	FieldUserAgent = "user_agent"
	FieldSuccess   = "success"
	FieldError     = "error"
	FieldErrorType = "error_type"
	FieldOperation = "operation"
	FieldMarker    = "marker"
	FieldRows      = "rows"
	FieldRecords   = "records"
	FieldYear      = "year"
	FieldPath      = "path"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentScrape   = "scrape"
	ComponentStorage  = "storage"
	ComponentReport   = "report"
	ComponentPipeline = "pipeline"
	ComponentAMQP     = "amqp"
	ComponentSheets   = "sheets"
)

// Operations defines standard operation names
const (
	OpFetch     = "fetch"
	OpExtract   = "extract"
	OpNormalize = "normalize"
	OpReplace   = "replace_all"
	OpRead      = "read_all"
	OpRender    = "render"
	OpPublish   = "publish"
	OpExport    = "export"
	OpStartup   = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithRunID adds the pipeline run identifier
func (f LogFields) WithRunID(runID string) LogFields {
	f[FieldRunID] = runID
	return f
}

// WithError adds error and error type fields
func (f LogFields) WithError(err error, errorType string) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
		f[FieldErrorType] = errorType
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithFetch adds HTTP fetch fields
func (f LogFields) WithFetch(url string, status int, attempt int, durationMs int64) LogFields {
	f[FieldURL] = url
	f[FieldStatus] = status
	f[FieldAttempt] = attempt
	f[FieldDuration] = durationMs
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
