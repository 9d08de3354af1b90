//  Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command hiltic is a thin wrapper around the driver/passes packages,
// useful only for manually smoke-testing a pass pipeline against a
// hand-written test fixture (spec.md §6: the core itself has no CLI or
// persisted state; this binary is not part of that scope).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rsmmr/hilti-sub004/ast"
	"github.com/rsmmr/hilti-sub004/driver"
)

var pipelinePath string

func main() {
	root := &cobra.Command{
		Use:   "hiltic",
		Short: "Smoke-test runner for the hilti pass pipeline",
	}

	runCmd := &cobra.Command{
		Use:   "run <fixture.json>",
		Short: "Load a JSON test-fixture module and run a configured pass pipeline over it",
		Args:  cobra.ExactArgs(1),
		RunE:  runRun,
	}
	runCmd.Flags().StringVar(&pipelinePath, "pipeline", "", "path to a YAML pass-pipeline file (required)")
	runCmd.MarkFlagRequired("pipeline")

	root.AddCommand(runCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	mod, err := loadFixture(args[0])
	if err != nil {
		return err
	}

	pipeline, err := driver.LoadPipeline(pipelinePath)
	if err != nil {
		return err
	}

	ctx := driver.NewCompilerContext()
	ctx.AddModule(mod)

	root := ast.Node(mod)
	for _, p := range pipeline {
		ok, err := ctx.RunPass(p, root)
		fmt.Fprintf(cmd.OutOrStdout(), "pass %-12s ok=%-5v errors=%-3d warnings=%d\n", p.Name(), ok, p.Errors(), p.Warnings())
		if err != nil {
			return fmt.Errorf("pass %s: %w", p.Name(), err)
		}
		if !ok {
			break
		}
	}
	return nil
}
