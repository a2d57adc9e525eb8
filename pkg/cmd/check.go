// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	"github.com/consensys/go-modelkit/pkg/constraint"
	"github.com/consensys/go-modelkit/pkg/model"
	"github.com/consensys/go-modelkit/pkg/parser"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags] model_file",
	Short: "Check the constraints of a model against its current values.",
	Long: `Check every constraint of a JSON model file against the variable
	values given in that file, reporting slacks and overall satisfaction.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		cfg := checkConfig{slacks: GetFlag(cmd, "slacks")}
		// Parse the model
		m, constraints := readModelFile(args[0])
		// Go!
		if !checkModel(m, constraints, cfg) {
			os.Exit(1)
		}
	},
}

// checkConfig encapsulates certain parameters to be used when checking
// models.
type checkConfig struct {
	// Specifies whether to report lower/upper slacks for each constraint.
	slacks bool
}

// checkModel reports the status of every given constraint, returning false if
// any constraint is violated or cannot be evaluated.
func checkModel(m *model.Model, constraints []*model.Constraint, cfg checkConfig) bool {
	ok := true
	//
	for _, c := range constraints {
		entry, err := c.Entry()
		if err != nil {
			fmt.Printf("%s: %v\n", c.Name(), err)
			ok = false
			//
			continue
		}
		//
		sat, err := entry.Satisfied()
		//
		switch {
		case err != nil:
			fmt.Printf("%s: %s: cannot evaluate (%v)\n", c.Name(), entry, err)
			ok = false
		case sat:
			fmt.Printf("%s: %s: satisfied\n", c.Name(), entry)
		default:
			fmt.Printf("%s: %s: VIOLATED\n", c.Name(), entry)
			ok = false
		}
		//
		if cfg.slacks && err == nil {
			reportSlacks(entry)
		}
	}
	//
	return ok
}

func reportSlacks(entry *constraint.Entry) {
	lslack, _ := entry.LSlack()
	uslack, _ := entry.USlack()
	//
	fmt.Printf("\tlslack=%g uslack=%g\n", lslack, uslack)
}

// readModelFile parses a JSON model file, exiting on failure.
func readModelFile(filename string) (*model.Model, []*model.Constraint) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	m, constraints, err := parser.Parse(bytes)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	log.Debugf("parsed model %q with %d constraints", m.Name(), len(constraints))
	//
	return m, constraints
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("slacks", false, "report lower/upper slacks per constraint")
}
