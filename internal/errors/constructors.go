package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *SiteError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *SiteError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *SiteError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Content errors

func KeywordsUnreadable(path string, cause error) *SiteError {
	return Wrap(cause, CategoryKeywords, SeverityWarning, "keyword file unreadable").
		WithContext("path", path)
}

func GenerationFailed(keyword string, cause error) *SiteError {
	return Wrap(cause, CategoryContent, SeverityWarning, "content generation failed").
		WithContext("keyword", keyword)
}

func MalformedContent(keyword string, cause error) *SiteError {
	return Wrap(cause, CategoryContent, SeverityWarning, "content generator returned malformed output").
		WithContext("keyword", keyword)
}

// Build pipeline errors

func RenderFailed(page string, cause error) *SiteError {
	return Wrap(cause, CategoryRender, SeverityFatal, "page render failed").
		WithContext("page", page)
}

func WriteFailed(path string, cause error) *SiteError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "write failed").
		WithContext("path", path)
}

func StagingError(operation string, cause error) *SiteError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "staging operation failed").
		WithContext("operation", operation)
}

func PublishFailed(operation string, cause error) *SiteError {
	return Wrap(cause, CategoryPublish, SeverityError, "publish failed").
		WithContext("operation", operation)
}

// Internal errors

func InternalError(message string, cause error) *SiteError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
