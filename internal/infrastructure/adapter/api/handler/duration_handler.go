package handler

import (
	"net/http"
	"strconv"

	"github.com/amirhossein-jamali/calendar-duration/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/calendar-duration/internal/domain/port/core"
	"github.com/amirhossein-jamali/calendar-duration/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// DurationHandler exposes the calendar use case over HTTP. The :duration path
// parameter is a duration text such as "20w" or a preset name.
type DurationHandler struct {
	calendarUseCase usecase.CalendarUseCase
	logger          coreport.Logger
}

// NewDurationHandler creates a new duration handler instance
func NewDurationHandler(calendarUseCase usecase.CalendarUseCase, logger coreport.Logger) *DurationHandler {
	return &DurationHandler{
		calendarUseCase: calendarUseCase,
		logger:          logger,
	}
}

// Describe handles GET /durations/:duration
func (h *DurationHandler) Describe(c *gin.Context) {
	info, err := h.calendarUseCase.Describe(c.Request.Context(), c.Param("duration"))
	if err != nil {
		respondError(c, h.logger, "describe", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDurationResponse(info))
}

// Span handles GET /durations/:duration/span?t=&startOpen=
func (h *DurationHandler) Span(c *gin.Context) {
	startOpen, ok := queryBool(c, "startOpen")
	if !ok {
		return
	}

	ref := c.Param("duration")
	span, err := h.calendarUseCase.Span(c.Request.Context(), ref, c.Query("t"), startOpen)
	if err != nil {
		respondError(c, h.logger, "span", err)
		return
	}
	c.JSON(http.StatusOK, dto.SpanResponse{Duration: ref, Span: dto.NewIntervalResponse(span)})
}

// Align returns the handler for GET /durations/:duration/{floor|ceil|next|previous}?t=
func (h *DurationHandler) Align(mode usecase.AlignMode) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Param("duration")
		t, err := h.calendarUseCase.Align(c.Request.Context(), ref, c.Query("t"), mode)
		if err != nil {
			respondError(c, h.logger, string(mode), err)
			return
		}
		c.JSON(http.StatusOK, dto.NewPointResponse(ref, t))
	}
}

// Step handles GET /durations/:duration/step?t=&count=&backward=
func (h *DurationHandler) Step(c *gin.Context) {
	count, ok := queryInt(c, "count", 1)
	if !ok {
		return
	}
	backward, ok := queryBool(c, "backward")
	if !ok {
		return
	}

	ref := c.Param("duration")
	t, err := h.calendarUseCase.Step(c.Request.Context(), ref, c.Query("t"), count, backward)
	if err != nil {
		respondError(c, h.logger, "step", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPointResponse(ref, t))
}

// Walk handles GET /durations/:duration/walk?t=&size=&limit=&backward=&startOpen=
func (h *DurationHandler) Walk(c *gin.Context) {
	if _, ok := c.GetQuery("limit"); !ok {
		badRequest(c, "Missing required query parameter: limit")
		return
	}

	var opts entity.WalkOptions
	var ok bool
	if opts.Limit, ok = queryInt(c, "limit", 0); !ok {
		return
	}
	if opts.Size, ok = queryInt(c, "size", 1); !ok {
		return
	}
	if opts.Backward, ok = queryBool(c, "backward"); !ok {
		return
	}
	if opts.StartOpen, ok = queryBool(c, "startOpen"); !ok {
		return
	}

	ref := c.Param("duration")
	spans, err := h.calendarUseCase.Walk(c.Request.Context(), ref, c.Query("t"), opts)
	if err != nil {
		respondError(c, h.logger, "walk", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSpansResponse(ref, spans))
}

// SpanInterval handles POST /durations/:duration/span-interval
func (h *DurationHandler) SpanInterval(c *gin.Context) {
	var req dto.SpanIntervalRequest
	iv, ok := h.bindInterval(c, &req, &req.Interval)
	if !ok {
		return
	}

	ref := c.Param("duration")
	span, err := h.calendarUseCase.SpanInterval(c.Request.Context(), ref, iv, req.StartOpen)
	if err != nil {
		respondError(c, h.logger, "span-interval", err)
		return
	}
	c.JSON(http.StatusOK, dto.SpanResponse{Duration: ref, Span: dto.NewIntervalResponse(span)})
}

// Iterate handles POST /durations/:duration/iterate
func (h *DurationHandler) Iterate(c *gin.Context) {
	var req dto.IterateRequest
	iv, ok := h.bindInterval(c, &req, &req.Interval)
	if !ok {
		return
	}

	ref := c.Param("duration")
	spans, err := h.calendarUseCase.Iterate(c.Request.Context(), ref, iv, entity.IterateOptions{
		Size:      req.Size,
		Backward:  req.Backward,
		StartOpen: req.StartOpen,
	})
	if err != nil {
		respondError(c, h.logger, "iterate", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSpansResponse(ref, spans))
}

// Count handles POST /durations/:duration/count
func (h *DurationHandler) Count(c *gin.Context) {
	var req dto.CountRequest
	iv, ok := h.bindInterval(c, &req, &req.Interval)
	if !ok {
		return
	}

	ref := c.Param("duration")
	n, err := h.calendarUseCase.Count(c.Request.Context(), ref, iv, req.StartOpen)
	if err != nil {
		respondError(c, h.logger, "count", err)
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Duration: ref, Count: n})
}

// Pad handles POST /durations/:duration/pad
func (h *DurationHandler) Pad(c *gin.Context) {
	var req dto.PadRequest
	iv, ok := h.bindInterval(c, &req, &req.Interval)
	if !ok {
		return
	}

	ref := c.Param("duration")
	padded, err := h.calendarUseCase.Pad(c.Request.Context(), ref, iv, req.Start, req.End)
	if err != nil {
		respondError(c, h.logger, "pad", err)
		return
	}
	c.JSON(http.StatusOK, dto.SpanResponse{Duration: ref, Span: dto.NewIntervalResponse(padded)})
}

// Arithmetic handles GET /durations/:duration/arithmetic?op=&operand=
func (h *DurationHandler) Arithmetic(c *gin.Context) {
	op := usecase.ArithmeticOp(c.DefaultQuery("op", string(usecase.OpSeconds)))

	var operand float64
	if raw := c.Query("operand"); raw != "" {
		var err error
		if operand, err = strconv.ParseFloat(raw, 64); err != nil {
			badRequest(c, "Invalid operand: must be a number")
			return
		}
	}

	ref := c.Param("duration")
	result, err := h.calendarUseCase.Evaluate(c.Request.Context(), ref, op, operand)
	if err != nil {
		respondError(c, h.logger, "arithmetic", err)
		return
	}
	c.JSON(http.StatusOK, dto.ArithmeticResponse{
		Duration: ref,
		Op:       string(op),
		Operand:  operand,
		Result:   result,
	})
}

// bindInterval decodes the JSON body into req and resolves its interval
func (h *DurationHandler) bindInterval(c *gin.Context, req any, interval *dto.IntervalRequest) (entity.Interval, bool) {
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return entity.Interval{}, false
	}

	iv, err := interval.ToInterval()
	if err != nil {
		respondError(c, h.logger, "interval", err)
		return entity.Interval{}, false
	}
	return iv, true
}
