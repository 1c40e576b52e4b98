package httpserver

import echoSwagger "github.com/swaggo/echo-swagger"

// RegisterSwaggerRoutes serves the generated API docs for the watchlist
// endpoints.
func (s *Server) RegisterSwaggerRoutes() {
	s.Router.GET("/swagger/*", echoSwagger.WrapHandler)
}
