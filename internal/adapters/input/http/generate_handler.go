package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"localaichat/internal/domain"
)

// Generate func - blocking completion on a session
// Generate godoc
// @Summary Generate
// @Description Runs one blocking completion on a session
// @Tags GENERATE
// @Accept application/json
// @Success 200 {object} GenerateResponse
// @Router /v1/api/sessions/{id}/gen	[post]
// @Produce json
// @param id path string true "uuid"
// @param Generate body GenerateRequest true "Generate"
func (hdl *HTTPHandler) Generate(c *fiber.Ctx) error {
	id, err := hdl.parseID(c)
	if err != nil {
		return hdl.badRequest(c, err)
	}
	var request GenerateRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return hdl.badRequest(c, err)
	}

	ctx := c.UserContext()
	unlock := hdl.lockSession(id)
	defer unlock()

	session, err := hdl.sessions.GetSession(ctx, id)
	if err != nil {
		return hdl.errorResponse(c, err)
	}
	result, err := hdl.chat.Gen(ctx, session, request.toDomain())
	if err != nil {
		return hdl.errorResponse(c, err)
	}
	if err := hdl.sessions.SaveSession(ctx, session); err != nil {
		return hdl.errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(ResponseBody{
		Status: Success,
		Data:   GenerateResponse{Response: result.Content, Usage: result.Usage},
	})
}

// Stream func - server-sent events of {"delta","response"} frames ending with [DONE]
// Stream godoc
// @Summary Stream
// @Description Streams a completion as server-sent events ending with [DONE]
// @Tags GENERATE
// @Accept application/json
// @Success 200 {string} string "event stream"
// @Router /v1/api/sessions/{id}/stream	[post]
// @Produce text/event-stream
// @param id path string true "uuid"
// @param Stream body GenerateRequest true "Stream"
func (hdl *HTTPHandler) Stream(c *fiber.Ctx) error {
	id, err := hdl.parseID(c)
	if err != nil {
		return hdl.badRequest(c, err)
	}
	var request GenerateRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return hdl.badRequest(c, err)
	}

	// the body writer outlives the fiber context
	ctx, cancel := context.WithCancel(context.Background())
	unlock := hdl.lockSession(id)

	session, err := hdl.sessions.GetSession(ctx, id)
	if err != nil {
		cancel()
		unlock()
		return hdl.errorResponse(c, err)
	}
	stream, err := hdl.chat.Stream(ctx, session, request.toDomain())
	if err != nil {
		cancel()
		unlock()
		return hdl.errorResponse(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer unlock()
		defer cancel()
		defer stream.Close()

		for stream.Next() {
			frame, _ := json.Marshal(stream.Delta())
			fmt.Fprintf(w, "data: %s\n\n", frame)
			if err := w.Flush(); err != nil {
				logrus.Debugf("Stream client went away, session: %s", session.ID)
				return
			}
		}

		if err := stream.Err(); err != nil {
			logrus.Errorf("Stream failed, session: %s: %v", session.ID, err)
			payload, _ := json.Marshal(fiber.Map{"error": err.Error()})
			fmt.Fprintf(w, "event: error\ndata: %s\n\n", payload)
			w.Flush()
			return
		}

		if err := hdl.sessions.SaveSession(ctx, session); err != nil {
			logrus.Errorf("Failed to save session %s: %v", session.ID, err)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
		w.Flush()
	}))

	return nil
}

// GenerateWithTools func - routes the prompt among the server tools
// GenerateWithTools godoc
// @Summary Generate with tools
// @Description Lets the model pick a server tool, then answers with its context
// @Tags GENERATE
// @Accept application/json
// @Success 200 {object} ToolResponse
// @Router /v1/api/sessions/{id}/tools	[post]
// @Produce json
// @param id path string true "uuid"
// @param GenerateWithTools body ToolsRequest true "GenerateWithTools"
func (hdl *HTTPHandler) GenerateWithTools(c *fiber.Ctx) error {
	id, err := hdl.parseID(c)
	if err != nil {
		return hdl.badRequest(c, err)
	}
	var request ToolsRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return hdl.badRequest(c, err)
	}
	tools, err := hdl.selectTools(request.Tools)
	if err != nil {
		return hdl.badRequest(c, err)
	}

	ctx := c.UserContext()
	unlock := hdl.lockSession(id)
	defer unlock()

	session, err := hdl.sessions.GetSession(ctx, id)
	if err != nil {
		return hdl.errorResponse(c, err)
	}
	result, err := hdl.chat.GenWithTools(ctx, session, request.toDomain(tools))
	if err != nil {
		return hdl.errorResponse(c, err)
	}
	if err := hdl.sessions.SaveSession(ctx, session); err != nil {
		return hdl.errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(ResponseBody{
		Status: Success,
		Data: ToolResponse{
			Tool:     result.Tool,
			Context:  result.Context,
			Response: result.Response,
			Extra:    result.Extra,
		},
	})
}

// selectTools returns the named server tools in menu order, or all of them
func (hdl *HTTPHandler) selectTools(names []string) ([]domain.Tool, error) {
	if len(names) == 0 {
		return hdl.tools, nil
	}
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}
	selected := make([]domain.Tool, 0, len(names))
	for _, tool := range hdl.tools {
		if wanted[tool.Name()] {
			selected = append(selected, tool)
			delete(wanted, tool.Name())
		}
	}
	for name := range wanted {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	return selected, nil
}
