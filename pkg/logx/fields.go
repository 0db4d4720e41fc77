package logx

const (
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldCustomItems     = "custom-items"
	FieldCustomerID      = "customer-id"
	FieldDealDiscount    = "deal-discount"
	FieldDealID          = "deal-id"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldOrderID         = "order-id"
	FieldOrderNo         = "order-no"
	FieldRemoteService   = "remote-service"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldRow             = "row"
	FieldStack           = "stack"
	FieldState           = "state"
	FieldStockCode       = "stock-code"
	FieldTraceID         = "trace-id"
	FieldURL             = "url"
	FieldVariantID       = "variant-id"
)
