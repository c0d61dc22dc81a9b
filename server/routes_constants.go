package server

const (
	RouteAuthRegister = "/auth/register"
	RouteAuthLogin    = "/auth/login"
	RouteAuthRefresh  = "/auth/refresh"
	RouteAuthLogout   = "/auth/logout"
	RouteUserProfile  = "/user/profile"

	RouteBooks     = "/books"
	RouteBooksHome = "/books/home"
	RouteBookByID  = "/books/{id}"
)
