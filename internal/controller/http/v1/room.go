package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mediarelay/internal/entity"
	"mediarelay/internal/usecase"
	"mediarelay/pkg/logger"
)

type roomRoutes struct {
	rooms usecase.Rooms
	l     logger.Interface
}

func newRoomRoutes(handler *gin.RouterGroup, rooms usecase.Rooms, l logger.Interface) {
	r := &roomRoutes{rooms, l}

	h := handler.Group("/rooms")
	{
		h.GET("", r.list)
		h.GET("/:room_id", r.stats)
		h.GET("/:room_id/participants", r.participants)
		h.DELETE("/:room_id/participants/:participant_id", r.kick)
	}
}

type listRoomsResponse struct {
	Rooms []string `json:"rooms" example:"meeting-1"`
}

// @Summary     List rooms
// @Description List the ids of every open room
// @ID          list-rooms
// @Tags  	    rooms
// @Accept      json
// @Produce     json
// @Success     200 {object} listRoomsResponse
// @Router      /rooms [get]
func (r *roomRoutes) list(c *gin.Context) {
	c.JSON(http.StatusOK, listRoomsResponse{r.rooms.RoomIDs()})
}

// @Summary     Room stats
// @Description Forwarding counters of one room
// @ID          room-stats
// @Tags  	    rooms
// @Accept      json
// @Produce     json
// @Param       room_id path string true "room id"
// @Success     200 {object} entity.RoomStats
// @Router      /rooms/{room_id} [get]
func (r *roomRoutes) stats(c *gin.Context) {
	c.JSON(http.StatusOK, r.rooms.RoomStats(c.Param("room_id")))
}

type participantsResponse struct {
	Participants []entity.ParticipantInfo `json:"participants"`
}

// @Summary     Room participants
// @Description List the participants registered in one room
// @ID          room-participants
// @Tags  	    rooms
// @Accept      json
// @Produce     json
// @Param       room_id path string true "room id"
// @Success     200 {object} participantsResponse
// @Router      /rooms/{room_id}/participants [get]
func (r *roomRoutes) participants(c *gin.Context) {
	c.JSON(http.StatusOK, participantsResponse{r.rooms.Participants(c.Param("room_id"))})
}

// @Summary     Kick participant
// @Description Remove a participant and close its connection
// @ID          kick-participant
// @Tags  	    rooms
// @Accept      json
// @Produce     json
// @Param       room_id path string true "room id"
// @Param       participant_id path string true "participant id"
// @Success     204
// @Failure     400 {object} response
// @Router      /rooms/{room_id}/participants/{participant_id} [delete]
func (r *roomRoutes) kick(c *gin.Context) {
	roomID := c.Param("room_id")
	participantID := c.Param("participant_id")

	if roomID == "" || participantID == "" {
		errorResponse(c, http.StatusBadRequest, "invalid request path")

		return
	}

	r.rooms.Leave(roomID, participantID)
	c.Status(http.StatusNoContent)
}
