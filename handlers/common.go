package handlers

type Response struct {
	Error string `json:"error"`
}

var (
	// Predefined errors
	OKResponse        = Response{}
	NotFoundResponse  = Response{"not found"}
	ForbiddenResponse = Response{"access denied"}
	DBErrorResponse   = Response{"DB Error"}
	StorageResponse   = Response{"storage error"}
)
