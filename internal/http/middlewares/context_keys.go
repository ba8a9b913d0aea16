package middlewares

const (
	CtxRequestID  = "request_id"
	ctxAccountKey = "auth.account"
)
