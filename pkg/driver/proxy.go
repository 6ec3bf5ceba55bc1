package driver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"ferrum/runtime-go/pkg/reader"
	"ferrum/runtime-go/pkg/runtime"
)

// Proxy forwards a program's requests to an external process. Each request
// is written to Out as one line of value notation and the reply is read as
// one line from In.
type Proxy struct {
	In     *bufio.Reader
	Out    io.Writer
	Logger *slog.Logger
}

// NewProxy wraps in and out.
func NewProxy(in io.Reader, out io.Writer, logger *slog.Logger) *Proxy {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Proxy{In: bufio.NewReader(in), Out: out, Logger: logger}
}

// Run serves rr until its continuation is nil, then writes the final
// request. Transport and parse failures are returned.
func (p *Proxy) Run(rr runtime.Any) (runtime.Any, error) {
	req, k := runtime.MatchTuple2(rr)
	for !runtime.IsNil(k) {
		if _, err := fmt.Fprintln(p.Out, runtime.Show(req)); err != nil {
			return runtime.Any{}, fmt.Errorf("proxy: write request: %w", err)
		}
		line, err := p.In.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return runtime.Any{}, fmt.Errorf("proxy: read response: %w", err)
		}
		resp, err := reader.Parse(line)
		if err != nil {
			return runtime.Any{}, fmt.Errorf("proxy: parse response: %w", err)
		}
		p.Logger.Debug("proxy response", slog.String("request", runtime.Show(req)), slog.String("response", runtime.Show(resp)))
		req, k = runtime.MatchTuple2(runtime.Call(k, resp))
	}
	if _, err := fmt.Fprintln(p.Out, runtime.Show(req)); err != nil {
		return runtime.Any{}, fmt.Errorf("proxy: write request: %w", err)
	}
	return req, nil
}
