package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	MethodNotAllowed    failure.ErrorCode = "MethodNotAllowed"

	// Sync request preconditions.
	DealIDRequired   failure.ErrorCode = "DealIDRequired"
	WonTimeRequired  failure.ErrorCode = "WonTimeRequired"
	InvalidWonTime   failure.ErrorCode = "InvalidWonTime"
	NoDealProducts   failure.ErrorCode = "NoDealProducts"
	NoOrderRows      failure.ErrorCode = "NoOrderRows"
	InvalidVariantID failure.ErrorCode = "InvalidVariantID"

	OrderAlreadyExists       failure.ErrorCode = "OrderAlreadyExists"
	CustomerResolutionFailed failure.ErrorCode = "CustomerResolutionFailed"
	RemoteCallFailed         failure.ErrorCode = "RemoteCallFailed"
	MalformedRemoteResponse  failure.ErrorCode = "MalformedRemoteResponse"
)
