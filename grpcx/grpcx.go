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
	"strconv"
	"strings"

	"dirpx.dev/dresp"
	"dirpx.dev/dresp/kind"
	"dirpx.dev/dresp/wirecode"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gcodes "google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"
)

// Domain is the errdetails.ErrorInfo domain carrying taxonomy errors.
const Domain = "dresp"

// ErrorInfo metadata keys.
const (
	MetaCode       = "code"
	MetaCodeName   = "codeName"
	MetaLabels     = "labels"
	MetaWCCode     = "wcCode"
	MetaWCCodeName = "wcCodeName"
	MetaWCMessage  = "wcMessage"
	MetaWCTimeout  = "wcTimeout"
)

// ToStatus encodes a taxonomy error as a gRPC status with an
// errdetails.ErrorInfo detail. The ErrorInfo reason is the upper-cased kind;
// server code, labels and write-concern error travel as metadata.
//
// If the detail cannot be attached the bare status is returned.
func ToStatus(e *dresp.Error) *gstatus.Status {
	if e == nil {
		return gstatus.New(gcodes.OK, "")
	}
	base := gstatus.New(statusCode(e.Kind), e.Message)
	info := &errdetails.ErrorInfo{
		Reason:   strings.ToUpper(string(e.Kind)),
		Domain:   Domain,
		Metadata: metadata(e),
	}
	if with, err := base.WithDetails(info); err == nil {
		return with
	}
	return base
}

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that encodes
// *dresp.Error results of the handler with ToStatus. Other errors are
// returned as-is.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		de, ok := dresp.As(err)
		if !ok {
			// Not ours; return as-is.
			return nil, err
		}
		return nil, ToStatus(de).Err()
	}
}

// ExtractErrorInfo pulls the dresp errdetails.ErrorInfo out of a gRPC error,
// if present. Useful in tests and client code.
func ExtractErrorInfo(err error) (*errdetails.ErrorInfo, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	return errorInfo(st)
}

func errorInfo(st *gstatus.Status) (*errdetails.ErrorInfo, bool) {
	for _, a := range st.Proto().GetDetails() {
		info := &errdetails.ErrorInfo{}
		if !a.MessageIs(info) {
			continue
		}
		if err := a.UnmarshalTo(info); err != nil {
			continue
		}
		if info.GetDomain() == Domain {
			return info, true
		}
	}
	return nil, false
}

// statusCode picks the status code a kind travels under. Receivers prefer
// the ErrorInfo reason, so this only matters to peers that ignore details.
func statusCode(k kind.Kind) gcodes.Code {
	switch k {
	case kind.SocketError:
		return gcodes.Unavailable
	case kind.SocketTimeoutError:
		return gcodes.DeadlineExceeded
	case kind.AuthError:
		return gcodes.Unauthenticated
	case kind.OperationFailure:
		return gcodes.FailedPrecondition
	case kind.GenericDriverError:
		return gcodes.Internal
	default:
		return gcodes.Unknown
	}
}

func metadata(e *dresp.Error) map[string]string {
	md := make(map[string]string)
	if e.Code != wirecode.None {
		md[MetaCode] = strconv.Itoa(int(e.Code))
	}
	if e.CodeName != "" {
		md[MetaCodeName] = e.CodeName
	}
	if ls := e.ErrorLabels(); len(ls) > 0 {
		md[MetaLabels] = strings.Join(ls, ",")
	}
	if wc := e.WriteConcern; wc != nil {
		md[MetaWCCode] = strconv.Itoa(int(wc.Code))
		if wc.CodeName != "" {
			md[MetaWCCodeName] = wc.CodeName
		}
		if wc.Message != "" {
			md[MetaWCMessage] = wc.Message
		}
		md[MetaWCTimeout] = strconv.FormatBool(wc.WTimeout)
	}
	if len(md) == 0 {
		return nil
	}
	return md
}
