package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *PagegenError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *PagegenError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *PagegenError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Per-route pipeline errors

func RenderError(route string, cause error) *PagegenError {
	return Wrap(cause, CategoryRender, SeverityError, "content render failed").
		WithContext("route", route)
}

func GenerationError(generator, key string, cause error) *PagegenError {
	return Wrap(cause, CategoryGenerate, SeverityWarning, "generator output failed").
		WithContext("generator", generator).
		WithContext("output_key", key)
}

func ProcessingError(processor, route string, cause error) *PagegenError {
	return Wrap(cause, CategoryProcess, SeverityError, "processor stage failed").
		WithContext("processor", processor).
		WithContext("route", route)
}

func WriteError(path string, cause error) *PagegenError {
	return Wrap(cause, CategoryWrite, SeverityError, "output write failed").
		WithContext("path", path)
}

// Internal errors

func InternalError(message string, cause error) *PagegenError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
