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
	"fmt"
	"strconv"
	"strings"

	"dirpx.dev/dresp/mapper"
	"github.com/spf13/cobra"
	"google.golang.org/grpc/codes"
)

func newMapCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "map <grpc-code>",
		Short: "Show which error kind a gRPC status code maps to",
		Long: `map resolves a gRPC status code, given by name (UNAVAILABLE) or number (14),
to an error kind and prints how the mapping was chosen.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseGRPCCode(args[0])
			if err != nil {
				return err
			}
			m, err := mapper.New()
			if err != nil {
				return err
			}
			root.logger.Debug("mapping status code", "code", c.String())
			_, err = fmt.Fprintln(cmd.OutOrStdout(), m.Explain(c))
			return err
		},
	}
}

func parseGRPCCode(s string) (codes.Code, error) {
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		return codes.Code(n), nil
	}
	var c codes.Code
	if err := c.UnmarshalJSON([]byte(strconv.Quote(strings.ToUpper(s)))); err != nil {
		return 0, fmt.Errorf("unknown gRPC code %q: %w", s, err)
	}
	return c, nil
}
