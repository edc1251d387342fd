// Copyright 2021 Comcast Cable Communications Management, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or   implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/scte35io/scte35-go/internal/streamscan"
	"github.com/spf13/cobra"
)

// scanCommand returns the command for `scte35 scan`
func scanCommand() *cobra.Command {
	var silent bool
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan an MPEG transport stream file for splice_info_sections",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("requires a path to an MPEG-TS file")
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			st := &streamscan.Stream{Silent: silent}
			if err := st.Decode(args[0]); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				return
			}
			if silent {
				_, _ = fmt.Fprintf(os.Stdout, "found %d splice_info_section(s)\n", len(st.Cues))
			}
		},
	}
	cmd.PersistentFlags().BoolVar(&silent, "silent", false, "suppress per-cue output and print only a summary count")
	return cmd
}
