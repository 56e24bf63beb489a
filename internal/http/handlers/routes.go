package handlers

// Client-side routes served by this frontend.
const (
	RouteRoot          = "/"
	RouteLogin         = "/login"
	RouteLogout        = "/logout"
	RouteProfile       = "/profile"
	RouteCancel        = "/profile/transactions/{id:[0-9]+}/cancel"
	RouteMyBooks       = "/my-books"
	RouteManageBooks   = "/manage-books"
	RouteNotifications = "/notifications"
	RouteHealth        = "/health"
)
