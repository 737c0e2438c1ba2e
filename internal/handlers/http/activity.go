package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gabapcia/validatorwatch/internal/activityscan"
	"github.com/gabapcia/validatorwatch/internal/pkg/logger"
)

var ErrMissingStartBlock = errors.New("missing startBlock parameter")

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	req, err := parseActivityRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	report, err := s.scanner.Scan(ctx, req)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			logger.Error(ctx, "activity scan failed", "start_block", req.StartBlock, "error", err)
		}

		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func parseActivityRequest(query url.Values) (activityscan.Request, error) {
	raw := query.Get("startBlock")
	if raw == "" {
		return activityscan.Request{}, ErrMissingStartBlock
	}

	start, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return activityscan.Request{}, activityscan.ErrInvalidStartBlock
	}

	req := activityscan.Request{StartBlock: start}

	if req.BatchSize, err = optionalInt(query, "batchSize"); err != nil {
		return activityscan.Request{}, err
	}

	if req.MaxWindow, err = optionalInt(query, "maxWindow"); err != nil {
		return activityscan.Request{}, err
	}

	return req, nil
}

func optionalInt(query url.Values, name string) (int, error) {
	raw := query.Get(name)
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", activityscan.ErrInvalidRequest, name)
	}

	return n, nil
}

func statusFor(err error) int {
	if activityscan.IsClientError(err) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
