package server

func (s *Server) initRoutes() {
	// AUTH
	s.RegisterRouteHandler("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthRefresh, ChainMiddleware(s.RefreshHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))

	// Protected routes (require valid access token cookie)
	s.RegisterRouteHandler("GET "+RouteUserProfile, ChainMiddleware(s.ProfileHandler(), s.APIMiddleware(s.RequireAuth())...))

	// CATALOG
	s.RegisterRouteHandler("GET "+RouteBooks, ChainMiddleware(s.BooksListHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteBooksHome, ChainMiddleware(s.BooksHomeHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteBookByID, ChainMiddleware(s.BookByIDHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteBooks, ChainMiddleware(s.BookCreateHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())...))
}
