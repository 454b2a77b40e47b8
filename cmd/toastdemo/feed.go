package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/vango-dev/toastkit/internal/errors"
	"github.com/vango-dev/toastkit/pkg/toast"
)

// sample is one canned notification of the demo feed.
type sample struct {
	severity toast.Severity
	title    string
	message  string
	position toast.Position
}

var samples = []sample{
	{toast.SeveritySuccess, "Saved", "Your changes were saved.", toast.Top},
	{toast.SeverityInfo, "Sync", "3 new items arrived.", toast.Top},
	{toast.SeverityWarning, "Quota", "You have used 90% of your storage.", toast.Bottom},
	{toast.SeverityError, "Upload failed", "The server closed the connection.", toast.Bottom},
}

// feed shows one sample per tick until ctx is done.
func feed(ctx context.Context, reg *toast.Registry, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for i := 0; ; i++ {
		s := samples[i%len(samples)]
		opts := []toast.ShowOption{toast.At(s.position)}
		if s.severity == toast.SeverityError {
			opts = append(opts, toast.Persistent())
		}
		reg.Show(s.severity, s.title, s.message, opts...)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// showRequest is a toast requested over HTTP.
type showRequest struct {
	severity toast.Severity
	title    string
	message  string
	opts     []toast.ShowOption
}

// parseShowRequest reads severity, title, message, position and duration
// from the query. A duration of "persistent" keeps the toast until closed.
func parseShowRequest(r *http.Request) (showRequest, error) {
	q := r.URL.Query()
	req := showRequest{
		severity: toast.ParseSeverity(q.Get("severity")),
		title:    q.Get("title"),
		message:  q.Get("message"),
	}
	if req.severity == "" {
		req.severity = toast.SeverityInfo
	}
	if req.title == "" {
		return req, errors.New("E102")
	}

	if p := q.Get("position"); p != "" {
		pos, err := toast.ParsePosition(p)
		if err != nil {
			return req, err
		}
		req.opts = append(req.opts, toast.At(pos))
	}

	switch d := q.Get("duration"); d {
	case "":
	case "persistent":
		req.opts = append(req.opts, toast.Persistent())
	default:
		if ms, err := strconv.Atoi(d); err == nil {
			req.opts = append(req.opts, toast.WithDuration(time.Duration(ms)*time.Millisecond))
			break
		}
		dur, err := time.ParseDuration(d)
		if err != nil {
			return req, errors.New("E103").WithDetail(strconv.Quote(d)).Wrap(err)
		}
		req.opts = append(req.opts, toast.WithDuration(dur))
	}
	return req, nil
}

// showHandler serves POST /toast.
func showHandler(reg *toast.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseShowRequest(r)
		if err != nil {
			writeError(w, err)
			return
		}
		t := reg.Show(req.severity, req.title, req.message, req.opts...)
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprintln(w, t.String())
	}
}

// writeError answers 400 with the error as JSON.
func writeError(w http.ResponseWriter, err error) {
	var te *errors.ToastError
	if !stderrors.As(err, &te) {
		te = &errors.ToastError{Category: errors.CategoryValidation, Message: err.Error()}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintln(w, te.FormatJSON())
}
