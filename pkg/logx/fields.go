package logx

const (
	FieldAmount          = "amount"
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldCountdown       = "countdown"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldEvent           = "event"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldLotID           = "lot-id"
	FieldMessageID       = "message-id"
	FieldPartyID         = "party-id"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldRole            = "role"
	FieldStack           = "stack"
	FieldTaskType        = "task-type"
	FieldTraceID         = "trace-id"
	FieldURL             = "url"
)
