/*
 * init.go, part of gosam.
 *
 * Copyright 2026 The gosam authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/samflow/gosam/internal/logging"
	"github.com/samflow/gosam/statepoint"
	"github.com/samflow/gosam/workspace"
)

// LogFile is written in the project root by every initializer.
const LogFile = "init.log"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the jobs of a parameter sweep",
	Long: `Each initializer derives a base seed from SEED (an integer is used as is,
anything else is hashed), enumerates the sweep for the requested number of
replicas and registers every state point in the project workspace.`,
}

var initFlags struct {
	replicas    int
	chainLength int
	pattern     string
}

var chainlengthsCmd = &cobra.Command{
	Use:   "chainlengths SEED",
	Short: "Sweep the length of alkylsilane chains",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd, statepoint.ChainlengthsPlan(initFlags.replicas), args[0])
	},
}

var backbonesCmd = &cobra.Command{
	Use:   "backbones SEED",
	Short: "Sweep every pair of backbone chemistries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan := statepoint.BackboneChemistriesPlan(initFlags.replicas, initFlags.chainLength, initFlags.pattern)
		return runInit(cmd, plan, args[0])
	},
}

var planCmd = &cobra.Command{
	Use:   "plan PLAN.yaml SEED",
	Short: "Create the jobs described by a YAML plan",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := statepoint.LoadPlan(args[0])
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("num-replicas") {
			plan.Replicas = initFlags.replicas
		}
		return runInit(cmd, plan, args[1])
	},
}

func init() {
	for _, c := range []*cobra.Command{chainlengthsCmd, backbonesCmd, planCmd} {
		c.Flags().IntVarP(&initFlags.replicas, "num-replicas", "n", 1, "Number of replicas")
		initCmd.AddCommand(c)
	}
	backbonesCmd.Flags().IntVarP(&initFlags.chainLength, "chain-length", "c", statepoint.DefaultChainLength, "Length of the chains")
	backbonesCmd.Flags().StringVarP(&initFlags.pattern, "pattern_type", "t", statepoint.DefaultPattern, "Grafting pattern")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, plan *statepoint.Plan, seedArg string) error {
	root := global.dir
	if err := os.MkdirAll(root, 0755); err != nil {
		return err
	}
	//a conflicting project keeps the log of its own init
	p, err := workspace.InitProject(root, plan.Project)
	if err != nil {
		return err
	}
	fileLog, closeLog, err := logging.NewFile(filepath.Join(root, LogFile), slog.LevelInfo)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer closeLog()
	log := logging.Tee(fileLog, consoleLogger())

	log.Info("Init begin", "time", time.Now().Format(time.RFC3339))
	base := statepoint.Seed(seedArg)
	log.Info("Params", "project", plan.Project, "seed", seedArg, "base", base, "literal", statepoint.IsLiteral(seedArg), "replicas", plan.Replicas)

	mgr, release := manager(p)
	defer release()
	jobs, err := workspace.Initialize(cmd.Context(), mgr, plan, base, log)
	if err != nil {
		log.Error("Init failed", "error", err)
		return err
	}
	created := 0
	for _, j := range jobs {
		if j.New {
			created++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d jobs, %d new\n", plan.Project, len(jobs), created)
	return nil
}
