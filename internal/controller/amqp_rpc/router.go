// Package amqp_rpc implements the remote control surface over RabbitMQ.
package amqp_rpc

import (
	"mediarelay/internal/usecase"
	"mediarelay/pkg/rabbitmq/rmq_rpc/server"
)

// NewRouter -.
func NewRouter(rooms usecase.Rooms) map[string]server.CallHandler {
	routes := make(map[string]server.CallHandler)
	{
		newRoomRoutes(routes, rooms)
	}

	return routes
}
