package amqp_rpc

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"mediarelay/internal/entity"
	"mediarelay/internal/usecase"
	"mediarelay/pkg/rabbitmq/rmq_rpc/server"
)

type roomRoutes struct {
	rooms usecase.Rooms
}

func newRoomRoutes(routes map[string]server.CallHandler, rooms usecase.Rooms) {
	r := &roomRoutes{rooms}
	{
		routes["room.list"] = r.list()
		routes["room.stats"] = r.stats()
		routes["room.participants"] = r.participants()
	}
}

type listRoomsResponse struct {
	Rooms []string `json:"rooms"`
}

func (r *roomRoutes) list() server.CallHandler {
	return func(*amqp.Delivery) (interface{}, error) {
		return listRoomsResponse{r.rooms.RoomIDs()}, nil
	}
}

type roomRequest struct {
	RoomID string `json:"room_id"`
}

func (r *roomRoutes) stats() server.CallHandler {
	return func(d *amqp.Delivery) (interface{}, error) {
		var request roomRequest
		if err := json.Unmarshal(d.Body, &request); err != nil {
			return nil, fmt.Errorf("amqp_rpc - roomRoutes - stats: %w", err)
		}

		return r.rooms.RoomStats(request.RoomID), nil
	}
}

type participantsResponse struct {
	Participants []entity.ParticipantInfo `json:"participants"`
}

func (r *roomRoutes) participants() server.CallHandler {
	return func(d *amqp.Delivery) (interface{}, error) {
		var request roomRequest
		if err := json.Unmarshal(d.Body, &request); err != nil {
			return nil, fmt.Errorf("amqp_rpc - roomRoutes - participants: %w", err)
		}

		return participantsResponse{r.rooms.Participants(request.RoomID)}, nil
	}
}
