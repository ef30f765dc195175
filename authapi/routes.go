package authapi

// Route path constants shared by the session client and the development server
const (
	RouteLogin   = "/api/v1/auth/login"
	RouteRefresh = "/api/v1/auth/refresh"
	RouteLogout  = "/api/v1/auth/logout"

	RouteMe        = "/api/v1/users/me"
	RouteWebSocket = "/ws"
	RouteMetrics   = "/metrics"
)
