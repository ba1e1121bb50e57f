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

package grpcx

import (
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"

	"dirpx.dev/dresp"
	"dirpx.dev/dresp/apis"
	"dirpx.dev/dresp/kind"
	"dirpx.dev/dresp/label"
	"dirpx.dev/dresp/mapper"
	"dirpx.dev/dresp/pipeline"
	"dirpx.dev/dresp/wirecode"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gstatus "google.golang.org/grpc/status"
)

var defaultMapper = func() apis.Mapper {
	m, err := mapper.New()
	if err != nil {
		panic(err)
	}
	return m
}()

// FromError converts a client-side call error into a taxonomy error.
//
//   - taxonomy errors are returned unchanged;
//   - context.DeadlineExceeded and timeout net.Errors become socket timeouts;
//   - gRPC status errors are decoded: the dresp ErrorInfo reason names the
//     kind when present, otherwise m maps the status code;
//   - other net.Errors, io.EOF and io.ErrUnexpectedEOF become socket errors;
//   - anything else becomes a generic driver error wrapping err.
//
// A nil m uses the library default mapper.
func FromError(m apis.Mapper, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := dresp.As(err); ok {
		return err
	}
	if m == nil {
		m = defaultMapper
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return dresp.SocketTimeout(err.Error(), err)
	}
	if st, ok := gstatus.FromError(err); ok {
		return fromStatus(m, st, err)
	}
	var ne net.Error
	if errors.As(err, &ne) {
		if ne.Timeout() {
			return dresp.SocketTimeout(err.Error(), err)
		}
		return dresp.Socket(err.Error(), err)
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return dresp.Socket(err.Error(), err)
	}
	return dresp.Generic(err.Error(), err)
}

func fromStatus(m apis.Mapper, st *gstatus.Status, err error) *dresp.Error {
	k := m.Kind(st.Code())
	opts := []dresp.Option{dresp.WithCauseOption(err)}
	if info, ok := errorInfo(st); ok {
		if pk, perr := kind.Parse(info.GetReason()); perr == nil {
			k = pk
		}
		opts = append(opts, metadataOptions(info)...)
	}
	return dresp.E(k, st.Message(), opts...)
}

func metadataOptions(info *errdetails.ErrorInfo) []dresp.Option {
	md := info.GetMetadata()
	var opts []dresp.Option
	if c, ok := parseCode(md[MetaCode]); ok {
		opts = append(opts, dresp.WithCodeOption(c))
	}
	if name := md[MetaCodeName]; name != "" {
		opts = append(opts, dresp.WithCodeNameOption(name))
	}
	if raw := md[MetaLabels]; raw != "" {
		var ls []label.Label
		for _, s := range strings.Split(raw, ",") {
			if l, err := label.Parse(s); err == nil {
				ls = append(ls, l)
			}
		}
		if len(ls) > 0 {
			opts = append(opts, dresp.WithServerLabelsOption(ls...))
		}
	}
	if c, ok := parseCode(md[MetaWCCode]); ok {
		wtimeout, _ := strconv.ParseBool(md[MetaWCTimeout])
		opts = append(opts, dresp.WithWriteConcernOption(dresp.WriteConcernError{
			Code:     c,
			CodeName: md[MetaWCCodeName],
			Message:  md[MetaWCMessage],
			WTimeout: wtimeout,
		}))
	}
	return opts
}

func parseCode(s string) (wirecode.Code, bool) {
	if s == "" {
		return wirecode.None, false
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return wirecode.None, false
	}
	return wirecode.Code(n), true
}

// Target is an apis.Server naming a client connection target.
type Target string

// Address implements apis.Server.
func (t Target) Address() string { return string(t) }

// ScopeFunc supplies the pipeline scope for one call.
type ScopeFunc func(ctx context.Context, method string) pipeline.Scope

// UnaryClientInterceptor returns a gRPC UnaryClientInterceptor that runs
// every unary call through p. Invoker errors are converted with FromError
// before the pipeline sees them.
//
// scope may be nil. When the scope names no server, the connection target
// is used.
func UnaryClientInterceptor(p *pipeline.Pipeline, m apis.Mapper, scope ScopeFunc) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		var sc pipeline.Scope
		if scope != nil {
			sc = scope(ctx, method)
		}
		if sc.Server == nil && cc != nil {
			sc.Server = Target(cc.Target())
		}
		_, err := pipeline.Handle(ctx, p, sc, func(ctx context.Context) (any, error) {
			if err := invoker(ctx, method, req, reply, cc, opts...); err != nil {
				return nil, FromError(m, err)
			}
			return reply, nil
		})
		return err
	}
}
