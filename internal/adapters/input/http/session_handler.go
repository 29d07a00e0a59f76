package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// CreateSession func
// CreateSession godoc
// @Summary Create session
// @Description Creates a session from the configured defaults
// @Tags SESSION
// @Accept application/json
// @Success 200 {object} SessionResponse
// @Router /v1/api/sessions	[post]
// @Produce json
// @param CreateSession body CreateSessionRequest false "CreateSession"
func (hdl *HTTPHandler) CreateSession(c *fiber.Ctx) error {
	var request CreateSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&request); err != nil {
			logrus.Errorln(err)
			return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
		}
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return hdl.badRequest(c, err)
	}

	session, err := hdl.sessions.NewSession(c.UserContext(), request.toOverrides())
	if err != nil {
		return hdl.errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ResponseBody{Status: Created, Data: newSessionResponse(session)})
}

// ListSessions func
// ListSessions godoc
// @Summary List sessions
// @Description Lists stored session ids
// @Tags SESSION
// @Success 200 {object} SessionListResponse
// @Router /v1/api/sessions	[get]
// @Produce json
func (hdl *HTTPHandler) ListSessions(c *fiber.Ctx) error {
	ids, err := hdl.sessions.ListSessions(c.UserContext())
	if err != nil {
		return hdl.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: SessionListResponse{Sessions: ids}})
}

// GetSession func
// GetSession godoc
// @Summary Get session
// @Description Returns a session with its history and counters
// @Tags SESSION
// @Success 200 {object} SessionResponse
// @Router /v1/api/sessions/{id}	[get]
// @Produce json
// @param id path string true "uuid"
func (hdl *HTTPHandler) GetSession(c *fiber.Ctx) error {
	id, err := hdl.parseID(c)
	if err != nil {
		return hdl.badRequest(c, err)
	}
	session, err := hdl.sessions.GetSession(c.UserContext(), id)
	if err != nil {
		return hdl.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: newSessionResponse(session)})
}

// DeleteSession func
// DeleteSession godoc
// @Summary Delete session
// @Description Deletes a session
// @Tags SESSION
// @Success 200 {object} ResponseBody
// @Router /v1/api/sessions/{id}	[delete]
// @Produce json
// @param id path string true "uuid"
func (hdl *HTTPHandler) DeleteSession(c *fiber.Ctx) error {
	id, err := hdl.parseID(c)
	if err != nil {
		return hdl.badRequest(c, err)
	}
	// wait for an in-flight generation so its save cannot bring the session back
	unlock := hdl.lockSession(id)
	defer unlock()

	if err := hdl.sessions.DeleteSession(c.UserContext(), id); err != nil {
		return hdl.errorResponse(c, err)
	}
	hdl.locks.Delete(id)
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ""})
}

// ResetSession func
// ResetSession godoc
// @Summary Reset session
// @Description Clears history and counters keeping id and settings
// @Tags SESSION
// @Success 200 {object} SessionResponse
// @Router /v1/api/sessions/{id}/reset	[post]
// @Produce json
// @param id path string true "uuid"
func (hdl *HTTPHandler) ResetSession(c *fiber.Ctx) error {
	id, err := hdl.parseID(c)
	if err != nil {
		return hdl.badRequest(c, err)
	}
	unlock := hdl.lockSession(id)
	defer unlock()

	session, err := hdl.sessions.ResetSession(c.UserContext(), id)
	if err != nil {
		return hdl.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: newSessionResponse(session)})
}
