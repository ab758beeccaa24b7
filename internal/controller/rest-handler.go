package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swipemood/server/internal/service/room"
	"github.com/swipemood/server/pkg/rest"
)

type createRoomRequest struct {
	RoomCode string `json:"roomCode" validate:"omitempty,min=4,max=32"`
	UserName string `json:"userName" validate:"required,max=32"`
}

func (c controller) createRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest

	if err := rest.ReadJSON(r, &req); err != nil {
		c.logger.DebugContext(r.Context(), "failed to read request body", "error", err)
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"message": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		c.logger.DebugContext(r.Context(), "invalid request body", "errors", validationErrors)
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	createRoomResp, err := c.roomService.CreateRoom(r.Context(), &room.CreateRoomParams{
		RoomCode:  req.RoomCode,
		AdminName: req.UserName,
	})
	if err != nil {
		if errors.Is(err, room.ErrRoomAlreadyExists) {
			rest.WriteJSON(w, http.StatusConflict, rest.Envelope{"message": "room already exists"})
			return
		}
		c.logger.ErrorContext(r.Context(), "failed to create room", "error", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"message": "server error"})
		return
	}

	rest.WriteJSON(w, http.StatusCreated, rest.Envelope{
		"success":  true,
		"roomCode": createRoomResp.RoomCode,
	})
}

func (c controller) getRoom(w http.ResponseWriter, r *http.Request) {
	roomCode := chi.URLParam(r, "room-code")

	getRoomResp, err := c.roomService.GetRoom(r.Context(), roomCode)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"message": "room not found"})
			return
		}
		c.logger.ErrorContext(r.Context(), "failed to get room", "error", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"message": "server error"})
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{
		"success": true,
		"room":    getRoomResp,
	})
}

func (c controller) deleteRoom(w http.ResponseWriter, r *http.Request) {
	roomCode := chi.URLParam(r, "room-code")

	removeRoomResp, err := c.roomService.RemoveRoom(r.Context(), roomCode)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"message": "room not found"})
			return
		}
		c.logger.ErrorContext(r.Context(), "failed to delete room", "error", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"message": "server error"})
		return
	}

	c.broadcast(r.Context(), removeRoomResp.Conns, &Output{Type: "room-closed"})

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{
		"success": true,
		"message": "room deleted",
	})
}

type addTrackRequest struct {
	Title      string `json:"title" validate:"required,max=256"`
	Path       string `json:"path" validate:"required,max=1024"`
	UploadedBy string `json:"uploadedBy" validate:"required,max=32"`
}

func (c controller) addTrack(w http.ResponseWriter, r *http.Request) {
	roomCode := chi.URLParam(r, "room-code")

	var req addTrackRequest

	if err := rest.ReadJSON(r, &req); err != nil {
		c.logger.DebugContext(r.Context(), "failed to read request body", "error", err)
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"message": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		c.logger.DebugContext(r.Context(), "invalid request body", "errors", validationErrors)
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	if err := c.roomService.AddTrack(r.Context(), &room.AddTrackParams{
		RoomCode:   roomCode,
		Title:      req.Title,
		Path:       req.Path,
		UploadedBy: req.UploadedBy,
	}); err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"message": "room not found"})
			return
		}
		c.logger.ErrorContext(r.Context(), "failed to add track", "error", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"message": "server error"})
		return
	}

	rest.WriteJSON(w, http.StatusCreated, rest.Envelope{"success": true})
}
