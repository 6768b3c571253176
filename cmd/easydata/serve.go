package main

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"

	"github.com/benjaminschreck/go-easydata/pkg/easydata"
	"github.com/benjaminschreck/go-easydata/pkg/easydata/datasource"
)

// renderRequest is the body of POST /render.
type renderRequest struct {
	Data     json.RawMessage `json:"data"`
	Template string          `json:"template"`
}

func newServeCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expand templates posted over HTTP",
		Long: `Expand templates posted over HTTP.

POST /render?markers=[@]&strict=1 with a JSON body {"data": ..., "template": "..."}
answers the expanded text, or 422 with the error message.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			easydata.WithField("addr", addr).Info("Listening")
			return fasthttp.ListenAndServe(addr, newRenderHandler(easydata.ConfigFromEnvironment(), easydata.GetLogger()))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on")
	return cmd
}

func newRenderHandler(base *easydata.Config, logger *easydata.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Path()) != "/render" {
			ctx.Error("not found", fasthttp.StatusNotFound)
			return
		}
		if !ctx.IsPost() {
			ctx.Error("method not allowed", fasthttp.StatusMethodNotAllowed)
			return
		}

		var req renderRequest
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			ctx.Error("invalid request: "+err.Error(), fasthttp.StatusBadRequest)
			return
		}
		var root interface{}
		if len(bytes.TrimSpace(req.Data)) > 0 {
			var err error
			if root, err = datasource.FromJSON(bytes.NewReader(req.Data)); err != nil {
				ctx.Error("invalid data: "+err.Error(), fasthttp.StatusBadRequest)
				return
			}
		}

		config := *base
		args := ctx.QueryArgs()
		if markers := args.Peek("markers"); len(markers) > 0 {
			config.Markers = string(markers)
		}
		if args.Has("strict") {
			config.StrictMode = args.GetBool("strict")
		}

		expander := easydata.NewWithOptions(easydata.WithConfig(&config), easydata.WithLogger(logger))
		data := expander.NewData(root)
		var out bytes.Buffer
		if err := expander.Expand(data, strings.NewReader(req.Template), &out); err != nil {
			logger.WithField("remote", ctx.RemoteAddr().String()).Warn("Expansion failed: %v", err)
			ctx.Error(err.Error(), fasthttp.StatusUnprocessableEntity)
			return
		}

		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.Response.Header.Set("X-Easydata-Misses", strconv.Itoa(len(data.Misses())))
		ctx.SetBody(out.Bytes())
	}
}
