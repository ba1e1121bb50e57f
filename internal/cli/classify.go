/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"dirpx.dev/dresp"
	"dirpx.dev/dresp/adapter"
	"dirpx.dev/dresp/apis"
	"dirpx.dev/dresp/grpcx"
	"dirpx.dev/dresp/kind"
	"dirpx.dev/dresp/label"
	"dirpx.dev/dresp/labeler"
	"dirpx.dev/dresp/metrics"
	"dirpx.dev/dresp/pipeline"
	"dirpx.dev/dresp/txn"
	"dirpx.dev/dresp/wirecode"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"
	"gopkg.in/yaml.v3"
)

type classifyOptions struct {
	kind         string
	message      string
	code         int
	codeName     string
	wcCode       int
	wtimeout     bool
	serverLabels []string
	state        string
	pinned       bool
	retryWrites  bool
	maxRetries   int
	server       string
	explain      bool
	output       string
	metrics      bool
}

// classifyResult is what classify prints.
type classifyResult struct {
	Error    apis.ErrorView `json:"error" yaml:"error"`
	Unpinned bool           `json:"unpinned" yaml:"unpinned"`
	Explain  string         `json:"explain,omitempty" yaml:"explain,omitempty"`
}

func newClassifyCommand(root *rootOptions) *cobra.Command {
	o := &classifyOptions{}
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Run one simulated failure through the response pipeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := root.cfg.ClientContext()
			if cmd.Flags().Changed("retry-writes") {
				cc.RetryWrites = o.retryWrites
			}
			if cmd.Flags().Changed("max-write-retries") {
				cc.MaxWriteRetries = o.maxRetries
			}
			e, err := o.buildError(cmd)
			if err != nil {
				return err
			}
			reg := prometheus.NewRegistry()
			res, err := o.run(cmd.Context(), root, cc, e, metrics.New(reg))
			if err != nil {
				return err
			}
			if o.output == "status" {
				err = writeStatus(cmd.OutOrStdout(), e)
			} else {
				err = write(cmd.OutOrStdout(), o.output, res)
			}
			if err != nil || !o.metrics {
				return err
			}
			return writeMetrics(cmd.OutOrStdout(), reg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.kind, "kind", string(kind.OperationFailure), "error kind: socket_error, socket_timeout_error, operation_failure, auth_error, generic_driver_error")
	f.StringVar(&o.message, "message", "simulated failure", "error message")
	f.IntVar(&o.code, "code", 0, "server error code (operation failures)")
	f.StringVar(&o.codeName, "code-name", "", "server error code name")
	f.IntVar(&o.wcCode, "wc-code", 0, "write concern error code")
	f.BoolVar(&o.wtimeout, "wtimeout", false, "write concern error reports wtimeout")
	f.StringSliceVar(&o.serverLabels, "server-label", nil, "label attached by the server (repeatable)")
	f.StringVar(&o.state, "state", string(txn.StateNone), "session transaction state")
	f.BoolVar(&o.pinned, "pinned", false, "pin the session to the server before the call")
	f.BoolVar(&o.retryWrites, "retry-writes", false, "enable modern retryable writes (overrides config)")
	f.IntVar(&o.maxRetries, "max-write-retries", 0, "legacy retry count (overrides config)")
	f.StringVar(&o.server, "server", "localhost:27017", "server address")
	f.BoolVar(&o.explain, "explain", false, "include the label engine trace")
	f.BoolVar(&o.metrics, "metrics", false, "print the pipeline metrics after the result (Prometheus text format)")
	f.StringVarP(&o.output, "output", "o", "json", "output format: json, yaml, or status (the gRPC status a server would send)")
	return cmd
}

func (o *classifyOptions) buildError(cmd *cobra.Command) (*dresp.Error, error) {
	k, err := kind.Parse(o.kind)
	if err != nil {
		return nil, fmt.Errorf("--kind: %w", err)
	}
	var opts []dresp.Option
	if cmd.Flags().Changed("code") {
		opts = append(opts, dresp.WithCodeOption(wirecode.Code(o.code)))
	}
	if o.codeName != "" {
		opts = append(opts, dresp.WithCodeNameOption(o.codeName))
	}
	if cmd.Flags().Changed("wc-code") || o.wtimeout {
		opts = append(opts, dresp.WithWriteConcernOption(dresp.WriteConcernError{
			Code:     wirecode.Code(o.wcCode),
			WTimeout: o.wtimeout,
		}))
	}
	if len(o.serverLabels) > 0 {
		ls := make([]label.Label, 0, len(o.serverLabels))
		for _, s := range o.serverLabels {
			l, err := label.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("--server-label %q: %w", s, err)
			}
			ls = append(ls, l)
		}
		opts = append(opts, dresp.WithServerLabelsOption(ls...))
	}
	return dresp.E(k, o.message, opts...), nil
}

func (o *classifyOptions) run(ctx context.Context, root *rootOptions, cc labeler.ClientContext, e *dresp.Error, obs pipeline.Observer) (classifyResult, error) {
	st, err := txn.ParseState(o.state)
	if err != nil {
		return classifyResult{}, fmt.Errorf("--state: %w", err)
	}
	server := grpcx.Target(o.server)
	sess := txn.New(
		txn.WithState(st),
		txn.WithUnpinPolicy(root.cfg.Policy()),
		txn.WithLogger(root.logger),
	)
	if o.pinned {
		sess.Pin(server)
	}

	var res classifyResult
	if o.explain {
		res.Explain = labeler.Explain(e, cc, sess)
	}

	p := pipeline.New(
		pipeline.WithLogger(root.logger),
		pipeline.WithObserver(pipeline.ObserverFunc(func(ctx context.Context, out pipeline.Outcome) {
			res.Unpinned = out.Unpinned
			root.logger.InfoContext(ctx, "operation classified",
				adapter.Attr("error", out.Err),
				"labels_added", len(out.LabelsAdded),
				"noted", out.Noted,
				"unpinned", out.Unpinned,
			)
		})),
		pipeline.WithObserver(obs),
	)
	sc := pipeline.Scope{Session: sess, Client: cc, Server: server}
	_, err = pipeline.Handle(ctx, p, sc, func(context.Context) (struct{}, error) {
		return struct{}{}, e
	})
	res.Error = adapter.ToView(err)
	return res, nil
}

func write(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("--output: unknown format %q (must be json, yaml, or status)", format)
	}
}

// writeMetrics prints everything gathered from reg in the Prometheus text
// exposition format.
func writeMetrics(w io.Writer, reg prometheus.Gatherer) error {
	mfs, err := reg.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

// writeStatus prints e encoded as a gRPC status in protobuf JSON form.
func writeStatus(w io.Writer, e *dresp.Error) error {
	b, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(grpcx.ToStatus(e).Proto())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
